// Package cache provides a two-tier (memory + persistent) TTL cache for
// AI-generated content.
package cache

import (
	"encoding/json"
	"fmt"
	"time"
)

// EnvelopeVersion is the serialization format version for persisted entries.
// An entry carrying any other version is discarded as corrupt rather than
// reinterpreted.
const EnvelopeVersion = 1

// promptExcerptLen bounds the debug prompt excerpt stored alongside entries.
const promptExcerptLen = 100

// Entry is one persisted cache record. Content is opaque to the cache.
// Prompt and Params are kept for human inspection of cache files only and
// are never read back for correctness decisions.
type Entry struct {
	// Version identifies the envelope format.
	Version int `json:"version"`

	// Content is the cached payload.
	Content []byte `json:"content"`

	// Timestamp is the creation time in seconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`

	// Prompt is a truncated copy of the originating prompt (debug only).
	Prompt string `json:"prompt,omitempty"`

	// Params are the originating generation parameters (debug only).
	Params map[string]any `json:"kwargs,omitempty"`
}

// CreatedAt returns the entry creation time.
func (e *Entry) CreatedAt() time.Time {
	return time.Unix(e.Timestamp, 0)
}

// newEntry builds a persistable entry for content created at now.
func newEntry(content []byte, prompt string, params map[string]any, now time.Time) *Entry {
	excerpt := prompt
	if len(excerpt) > promptExcerptLen {
		excerpt = excerpt[:promptExcerptLen]
	}
	return &Entry{
		Version:   EnvelopeVersion,
		Content:   content,
		Timestamp: now.Unix(),
		Prompt:    excerpt,
		Params:    params,
	}
}

// decodeEntry deserializes an entry, rejecting unknown envelope versions.
func decodeEntry(data []byte) (*Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("decode cache entry: %w", err)
	}
	if e.Version != EnvelopeVersion {
		return nil, fmt.Errorf("unsupported cache entry version %d", e.Version)
	}
	return &e, nil
}

// expired reports whether an entry created at createdAt has outlived ttl as
// of now. Both tiers apply this identically at lookup time.
func expired(createdAt, now time.Time, ttl time.Duration) bool {
	return now.Sub(createdAt) > ttl
}
