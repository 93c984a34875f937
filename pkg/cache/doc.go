// Package cache provides a two-tier cache for AI-generated content.
//
// Generation calls are expensive and non-idempotent, so the book pipeline
// caches their results keyed by a fingerprint of the prompt and its
// generation parameters. The cache has the following properties:
//
// - Memory tier with a fixed entry bound and LRU eviction
// - Persistent tier (one file per fingerprint, or Redis) surviving restarts
// - Shared TTL applied identically by both tiers at lookup time
// - Deterministic, parameter-order-independent key derivation
// - Self-healing against corrupt persisted entries
// - Safe for concurrent use by parallel generation workers
// - Prometheus metrics and hit/miss/eviction statistics
//
// # Basic Usage
//
//	c, err := cache.New(cache.DefaultConfig(".cache"))
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	params := map[string]any{"model": "gpt-4", "temperature": 0.7}
//
//	content, err := c.Get(ctx, prompt, params)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		content = generate(ctx, prompt, params) // expensive call
//		if err := c.Set(ctx, prompt, params, content); err != nil {
//			return err
//		}
//	}
//
// # Tiers
//
// Get consults the memory tier first and falls back to the persistent tier,
// promoting a persistent hit back into memory (which may evict the least
// recently used resident entry). Set writes both tiers unconditionally. A
// persistent entry that is expired or fails to decode is deleted on sight
// and treated as absent.
//
// # Durability
//
// By default a failed persistent write during Set is logged and the result
// is kept in memory, trading durability for availability: a generation
// result is never discarded just because the disk write failed. Configure
// DurabilityStrict to have Set return the error instead.
//
// # Maintenance
//
//	removed, err := c.CleanupExpired(ctx) // bulk-remove expired disk entries
//	stats := c.Stats(ctx)                 // hits, misses, evictions, sizes
//	err = c.Clear(ctx, false)             // drop both tiers
//
// # Metrics
//
// The package exports Prometheus metrics:
//
//   - bookgen_cache_hits_total{tier} - Cache hits by tier
//   - bookgen_cache_misses_total - Cache misses
//   - bookgen_cache_evictions_total - Memory tier evictions
//   - bookgen_cache_entries{tier} - Resident entries by tier
//   - bookgen_cache_errors_total{operation} - Cache operation errors
//   - bookgen_cache_cleanup_removed_total - Entries removed by cleanup
//
// # Ownership
//
// A cache directory belongs to exactly one Cache instance in one process;
// no inter-process locking is performed. Use a RedisStore when multiple
// processes need a shared persistent tier.
package cache
