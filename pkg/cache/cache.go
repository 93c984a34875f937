package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrCacheMiss indicates no unexpired entry exists in either tier.
var ErrCacheMiss = errors.New("cache miss")

// Durability selects how Set treats persistent-tier write failures.
type Durability int

const (
	// DurabilityBestEffort logs persistent write failures and keeps the
	// memory write. The fresh result stays usable, but survives only until
	// eviction or process restart.
	DurabilityBestEffort Durability = iota

	// DurabilityStrict returns persistent write failures from Set.
	DurabilityStrict
)

const (
	// DefaultMemoryCapacity is the default memory-tier entry bound.
	DefaultMemoryCapacity = 100

	// DefaultTTL is the default entry time-to-live.
	DefaultTTL = 24 * time.Hour
)

// Config holds cache construction parameters.
type Config struct {
	// Dir is the persistent tier root directory, created if missing.
	// Ignored when Store is set.
	Dir string

	// MemoryCapacity is the maximum memory-tier entry count. Must be
	// positive.
	MemoryCapacity int

	// TTL is the shared time-to-live for all entries. Must be positive.
	TTL time.Duration

	// Durability selects the persistent-write failure policy.
	Durability Durability

	// Store overrides the default disk-backed persistent tier, e.g. with a
	// RedisStore.
	Store Store

	// Logger overrides the default component logger.
	Logger *zerolog.Logger
}

// DefaultConfig returns a configuration with the default capacity and TTL
// for a cache rooted at dir.
func DefaultConfig(dir string) Config {
	return Config{
		Dir:            dir,
		MemoryCapacity: DefaultMemoryCapacity,
		TTL:            DefaultTTL,
	}
}

// Cache coordinates the memory and persistent tiers. One instance owns its
// cache directory; construct it once at startup, share it by reference, and
// Close it on shutdown.
//
// Every operation runs under a single mutex, serializing reads and writes
// alike. Entries can be large blobs, and the coarse lock keeps half-evicted
// state from ever being visible. Persistent I/O happens while holding the
// lock, so a slow disk write stalls concurrent operations; all operations
// accept a context so callers can bound that wait.
type Cache struct {
	mu         sync.Mutex
	memory     *memoryTier
	store      Store
	ttl        time.Duration
	durability Durability
	stats      counters
	logger     zerolog.Logger

	// now is replaced in tests to make TTL behavior deterministic.
	now func() time.Time
}

// New creates a cache from cfg. Zero or negative capacity or TTL is a
// configuration error.
func New(cfg Config) (*Cache, error) {
	if cfg.MemoryCapacity <= 0 {
		return nil, fmt.Errorf("memory capacity must be positive (got %d)", cfg.MemoryCapacity)
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("ttl must be positive (got %s)", cfg.TTL)
	}

	store := cfg.Store
	if store == nil {
		var err error
		store, err = NewDiskStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
	}

	logger := log.With().Str("component", "content-cache").Logger()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	c := &Cache{
		memory:     newMemoryTier(cfg.MemoryCapacity),
		store:      store,
		ttl:        cfg.TTL,
		durability: cfg.Durability,
		logger:     logger,
		now:        time.Now,
	}

	logger.Info().
		Str("dir", cfg.Dir).
		Int("memory_capacity", cfg.MemoryCapacity).
		Dur("ttl", cfg.TTL).
		Msg("Content cache initialized")

	return c, nil
}

// Get returns the cached content for prompt and params. It checks the memory
// tier first, then the persistent tier, promoting a persistent hit back into
// memory. It returns ErrCacheMiss when no unexpired entry exists in either
// tier; persistent I/O failures degrade to a miss rather than surfacing. The
// only other error is a fingerprint failure from unencodable params.
func (c *Cache) Get(ctx context.Context, prompt string, params map[string]any) ([]byte, error) {
	key, err := Fingerprint(prompt, params)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if me, ok := c.memory.lookup(key); ok {
		if expired(me.createdAt, now, c.ttl) {
			c.memory.remove(key)
			c.logger.Debug().Str("key", shortKey(key)).Msg("Expired memory cache entry")
		} else {
			c.memory.touch(key, now)
			c.stats.hits++
			c.stats.memoryHits++
			CacheHits.WithLabelValues("memory").Inc()
			c.logger.Debug().Str("key", shortKey(key)).Msg("Memory cache hit")
			return me.content, nil
		}
	}

	entry, err := c.store.Lookup(ctx, key)
	switch {
	case err == nil:
		if expired(entry.CreatedAt(), now, c.ttl) {
			if err := c.store.Remove(ctx, key); err != nil {
				c.logger.Warn().Err(err).Str("key", shortKey(key)).Msg("Failed to remove expired entry")
			}
			c.logger.Debug().Str("key", shortKey(key)).Msg("Expired disk cache entry")
		} else {
			// Promote, preserving the original creation time so the entry
			// still expires on schedule.
			evicted := c.memory.insert(key, memoryEntry{
				content:   entry.Content,
				createdAt: entry.CreatedAt(),
			}, now)
			c.recordEvictions(evicted)
			c.stats.hits++
			c.stats.diskHits++
			CacheHits.WithLabelValues("disk").Inc()
			c.logger.Debug().Str("key", shortKey(key)).Msg("Disk cache hit")
			return entry.Content, nil
		}
	case errors.Is(err, ErrNotFound):
		// Plain miss.
	default:
		CacheErrors.WithLabelValues("get").Inc()
		c.logger.Warn().Err(err).Str("key", shortKey(key)).Msg("Persistent tier lookup failed")
	}

	c.stats.misses++
	CacheMisses.Inc()
	c.logger.Debug().Str("key", shortKey(key)).Msg("Cache miss")
	return nil, ErrCacheMiss
}

// Set stores content under the fingerprint of prompt and params, writing
// both tiers unconditionally. Under DurabilityBestEffort a failed persistent
// write is logged and the memory write stands; under DurabilityStrict the
// failure is returned. Unencodable params are an error either way.
func (c *Cache) Set(ctx context.Context, prompt string, params map[string]any, content []byte) error {
	key, err := Fingerprint(prompt, params)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := c.memory.insert(key, memoryEntry{content: content, createdAt: now}, now)
	c.recordEvictions(evicted)

	if err := c.store.Write(ctx, key, newEntry(content, prompt, params, now)); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		if c.durability == DurabilityStrict {
			return fmt.Errorf("persist cache entry: %w", err)
		}
		c.logger.Error().Err(err).Str("key", shortKey(key)).Msg("Persistent tier write failed")
		return nil
	}

	c.logger.Debug().Str("key", shortKey(key)).Msg("Cached content")
	return nil
}

// Clear empties the memory tier and, unless memoryOnly is set, deletes every
// persistent record as well. Clearing an already-empty cache is a no-op.
func (c *Cache) Clear(ctx context.Context, memoryOnly bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.memory.clear()
	c.logger.Info().Msg("Memory cache cleared")

	if memoryOnly {
		return nil
	}

	if err := c.store.Clear(ctx); err != nil {
		CacheErrors.WithLabelValues("clear").Inc()
		return fmt.Errorf("clear persistent tier: %w", err)
	}
	c.logger.Info().Msg("Disk cache cleared")
	return nil
}

// CleanupExpired scans the persistent tier and removes expired and corrupt
// entries, returning the number removed. The memory tier is untouched; its
// entries expire lazily on access.
func (c *Cache) CleanupExpired(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.store.Scan(ctx)
	if err != nil {
		CacheErrors.WithLabelValues("cleanup").Inc()
		return 0, fmt.Errorf("scan persistent tier: %w", err)
	}

	now := c.now()
	removed := 0
	for _, item := range items {
		if !item.Corrupt && !expired(item.Entry.CreatedAt(), now, c.ttl) {
			continue
		}
		if err := c.store.Remove(ctx, item.Key); err != nil {
			c.logger.Warn().Err(err).Str("key", shortKey(item.Key)).Msg("Failed to remove entry during cleanup")
			continue
		}
		removed++
	}

	CleanupRemoved.Add(float64(removed))
	c.logger.Info().Int("removed", removed).Msg("Cleanup removed expired entries")
	return removed, nil
}

// Stats returns a consistent snapshot of cache statistics and live tier
// sizes. A failed persistent count leaves DiskEntries at zero and is logged.
func (c *Cache) Stats(ctx context.Context) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats.snapshot()
	s.MemoryEntries = c.memory.len()

	if n, err := c.store.Count(ctx); err == nil {
		s.DiskEntries = n
	} else {
		c.logger.Warn().Err(err).Msg("Persistent tier count failed")
	}

	CacheEntries.WithLabelValues("memory").Set(float64(s.MemoryEntries))
	CacheEntries.WithLabelValues("disk").Set(float64(s.DiskEntries))
	return s
}

// Close releases the persistent tier. The cache must not be used afterward.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Close()
}

// recordEvictions accounts for memory-tier evictions. Called with the mutex
// held.
func (c *Cache) recordEvictions(keys []string) {
	for _, key := range keys {
		c.stats.evictions++
		CacheEvictions.Inc()
		c.logger.Debug().Str("key", shortKey(key)).Msg("Evicted LRU entry")
	}
}
