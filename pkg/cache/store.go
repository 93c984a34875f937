package cache

import (
	"context"
	"errors"
)

// ErrNotFound indicates the persistent tier holds no valid entry for a key.
// A corrupt or unreadable entry reports ErrNotFound too, after the store has
// removed it.
var ErrNotFound = errors.New("entry not found")

// ScanItem is one persistent-tier record as seen by Scan. Corrupt records
// carry a nil Entry and Corrupt set; they are removable but not readable.
type ScanItem struct {
	Key     string
	Entry   *Entry
	Corrupt bool
}

// Store is the persistent tier behind the in-memory tier. The default
// implementation is DiskStore; RedisStore offers a shared alternative.
//
// Implementations self-heal: a record that exists but cannot be decoded is
// deleted during Lookup and treated as absent, so a corrupt record is never
// in a weaker state than a missing one.
type Store interface {
	// Lookup returns the entry for key or ErrNotFound.
	Lookup(ctx context.Context, key string) (*Entry, error)

	// Write persists an entry, atomically replacing any prior record for
	// key. A failed Write leaves the prior record intact.
	Write(ctx context.Context, key string, entry *Entry) error

	// Remove deletes the record for key. Removing an absent key is not an
	// error.
	Remove(ctx context.Context, key string) error

	// Scan enumerates every record, tolerating unreadable ones by marking
	// them corrupt instead of failing the scan.
	Scan(ctx context.Context) ([]ScanItem, error)

	// Count returns the number of records currently stored.
	Count(ctx context.Context) (int, error)

	// Clear deletes every record.
	Clear(ctx context.Context) error

	// Close releases store resources.
	Close() error
}
