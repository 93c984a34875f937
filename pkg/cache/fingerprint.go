package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Fingerprint derives the cache key for a prompt and its generation
// parameters. Parameters are encoded as canonical JSON (encoding/json emits
// map keys in sorted order), so two requests with the same prompt and the
// same parameter set produce the same key regardless of how the caller
// assembled the map.
//
// A parameter value that cannot be JSON-encoded is a caller error and is
// reported before any hashing happens.
func Fingerprint(prompt string, params map[string]any) (string, error) {
	encoded, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("encode fingerprint params: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(prompt))
	h.Write([]byte{':'})
	h.Write(encoded)

	return hex.EncodeToString(h.Sum(nil)), nil
}

// shortKey truncates a fingerprint for log output.
func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
