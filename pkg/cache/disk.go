package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fileSuffix is appended to the fingerprint to form the cache file name.
const fileSuffix = ".cache"

// DiskStore persists one JSON-encoded entry per fingerprint at
// <dir>/<fingerprint>.cache. Writes go through a temp file and rename, so a
// write that dies midway never leaves a partial entry visible to a later
// Lookup.
//
// The directory is assumed to be owned by a single process; DiskStore does
// no inter-process locking.
type DiskStore struct {
	dir string
}

// NewDiskStore creates a store rooted at dir, creating the directory if it
// does not exist.
func NewDiskStore(dir string) (*DiskStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (d *DiskStore) Dir() string {
	return d.dir
}

func (d *DiskStore) path(key string) string {
	return filepath.Join(d.dir, key+fileSuffix)
}

// Lookup reads the entry for key. A missing file is ErrNotFound; a file that
// exists but is unreadable or fails to decode is deleted first, so future
// lookups short-circuit on the missing file.
func (d *DiskStore) Lookup(ctx context.Context, key string) (*Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := d.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		_ = os.Remove(path)
		return nil, ErrNotFound
	}

	entry, err := decodeEntry(data)
	if err != nil {
		_ = os.Remove(path)
		return nil, ErrNotFound
	}
	return entry, nil
}

// Write persists entry for key, replacing any prior file atomically.
func (d *DiskStore) Write(ctx context.Context, key string, entry *Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	// The temp name does not end in .cache, so Scan never sees it.
	tmp, err := os.CreateTemp(d.dir, key+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, d.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

// Remove deletes the file for key. An already-absent file is not an error.
func (d *DiskStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(d.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove cache file: %w", err)
	}
	return nil
}

// Scan enumerates every cache file under the root directory. Files that
// cannot be read or decoded are reported as corrupt items rather than
// failing the scan.
func (d *DiskStore) Scan(ctx context.Context) ([]ScanItem, error) {
	dirents, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("read cache directory: %w", err)
	}

	var items []ScanItem
	for _, de := range dirents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		key := strings.TrimSuffix(name, fileSuffix)

		data, err := os.ReadFile(filepath.Join(d.dir, name))
		if err != nil {
			items = append(items, ScanItem{Key: key, Corrupt: true})
			continue
		}
		entry, err := decodeEntry(data)
		if err != nil {
			items = append(items, ScanItem{Key: key, Corrupt: true})
			continue
		}
		items = append(items, ScanItem{Key: key, Entry: entry})
	}
	return items, nil
}

// Count returns the number of cache files under the root directory.
func (d *DiskStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	dirents, err := os.ReadDir(d.dir)
	if err != nil {
		return 0, fmt.Errorf("read cache directory: %w", err)
	}
	n := 0
	for _, de := range dirents {
		if !de.IsDir() && strings.HasSuffix(de.Name(), fileSuffix) {
			n++
		}
	}
	return n, nil
}

// Clear deletes every cache file. Individual delete failures do not stop the
// pass; the first error is returned after all files have been attempted.
func (d *DiskStore) Clear(ctx context.Context) error {
	dirents, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("read cache directory: %w", err)
	}
	var firstErr error
	for _, de := range dirents {
		if err := ctx.Err(); err != nil {
			return err
		}
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(d.dir, de.Name())); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = fmt.Errorf("remove cache file: %w", err)
			}
		}
	}
	return firstErr
}

// Close implements Store. A DiskStore holds no open resources.
func (d *DiskStore) Close() error {
	return nil
}
