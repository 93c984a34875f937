package cache

import (
	"strings"
	"testing"
	"time"
)

func TestNewEntry_TruncatesPrompt(t *testing.T) {
	long := strings.Repeat("x", 500)
	e := newEntry([]byte("v"), long, nil, time.Unix(1700000000, 0))

	if len(e.Prompt) != promptExcerptLen {
		t.Errorf("Prompt excerpt is %d chars, want %d", len(e.Prompt), promptExcerptLen)
	}
	if e.Version != EnvelopeVersion {
		t.Errorf("Version = %d, want %d", e.Version, EnvelopeVersion)
	}
	if e.Timestamp != 1700000000 {
		t.Errorf("Timestamp = %d", e.Timestamp)
	}
}

func TestDecodeEntry(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{"valid", `{"version":1,"content":"aGVsbG8=","timestamp":1700000000}`, false},
		{"not json", `garbage`, true},
		{"wrong version", `{"version":2,"content":"aGVsbG8=","timestamp":1700000000}`, true},
		{"missing version", `{"content":"aGVsbG8=","timestamp":1700000000}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := decodeEntry([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Error("Expected decode error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeEntry failed: %v", err)
			}
			if string(e.Content) != "hello" {
				t.Errorf("Content = %q, want %q", e.Content, "hello")
			}
		})
	}
}

func TestExpired(t *testing.T) {
	created := time.Unix(1700000000, 0)
	ttl := 100 * time.Second

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"fresh", created.Add(50 * time.Second), false},
		{"exactly at ttl", created.Add(100 * time.Second), false},
		{"just past ttl", created.Add(101 * time.Second), true},
		{"same instant", created, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expired(created, tt.now, ttl); got != tt.want {
				t.Errorf("expired = %v, want %v", got, tt.want)
			}
		})
	}
}
