package cache

import (
	"strings"
	"testing"
)

func TestFingerprint_Deterministic(t *testing.T) {
	params := map[string]any{"model": "gpt-4", "temperature": 0.7}

	key1, err := Fingerprint("Generate chapter about AI", params)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	key2, err := Fingerprint("Generate chapter about AI", params)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	if key1 != key2 {
		t.Errorf("Same request produced different keys: %s vs %s", key1, key2)
	}
	if len(key1) != 64 {
		t.Errorf("Expected 64 hex chars (SHA-256), got %d", len(key1))
	}
}

func TestFingerprint_ParamOrderIndependent(t *testing.T) {
	// Maps are assembled in different orders; the canonical encoding must
	// erase that difference.
	a := map[string]any{}
	a["model"] = "gpt-4"
	a["temperature"] = 0.7
	a["chapter"] = 3

	b := map[string]any{}
	b["chapter"] = 3
	b["temperature"] = 0.7
	b["model"] = "gpt-4"

	keyA, err := Fingerprint("prompt", a)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}
	keyB, err := Fingerprint("prompt", b)
	if err != nil {
		t.Fatalf("Fingerprint failed: %v", err)
	}

	if keyA != keyB {
		t.Errorf("Parameter order changed the key: %s vs %s", keyA, keyB)
	}
}

func TestFingerprint_DistinctRequests(t *testing.T) {
	tests := []struct {
		name    string
		promptA string
		paramsA map[string]any
		promptB string
		paramsB map[string]any
	}{
		{
			name:    "different prompts",
			promptA: "chapter one",
			promptB: "chapter two",
		},
		{
			name:    "different param values",
			promptA: "prompt", paramsA: map[string]any{"temperature": 0.5},
			promptB: "prompt", paramsB: map[string]any{"temperature": 0.7},
		},
		{
			name:    "different param names",
			promptA: "prompt", paramsA: map[string]any{"a": 1},
			promptB: "prompt", paramsB: map[string]any{"b": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keyA, err := Fingerprint(tt.promptA, tt.paramsA)
			if err != nil {
				t.Fatalf("Fingerprint failed: %v", err)
			}
			keyB, err := Fingerprint(tt.promptB, tt.paramsB)
			if err != nil {
				t.Fatalf("Fingerprint failed: %v", err)
			}
			if keyA == keyB {
				t.Errorf("Distinct requests produced the same key: %s", keyA)
			}
		})
	}
}

func TestFingerprint_EmptyPrompt(t *testing.T) {
	key, err := Fingerprint("", nil)
	if err != nil {
		t.Fatalf("Empty prompt should be legal: %v", err)
	}
	if key == "" {
		t.Error("Empty prompt produced empty key")
	}
}

func TestFingerprint_UnencodableParams(t *testing.T) {
	_, err := Fingerprint("prompt", map[string]any{"fn": func() {}})
	if err == nil {
		t.Fatal("Expected error for unencodable param value")
	}
	if !strings.Contains(err.Error(), "fingerprint params") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestShortKey(t *testing.T) {
	if got := shortKey("abcdefghij"); got != "abcdefgh" {
		t.Errorf("shortKey = %q, want %q", got, "abcdefgh")
	}
	if got := shortKey("abc"); got != "abc" {
		t.Errorf("shortKey = %q, want %q", got, "abc")
	}
}
