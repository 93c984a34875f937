package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by tier (memory, disk)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgen_cache_hits_total",
			Help: "Total number of content cache hits",
		},
		[]string{"tier"}, // "memory", "disk"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookgen_cache_misses_total",
			Help: "Total number of content cache misses",
		},
	)

	// CacheEvictions tracks memory-tier LRU evictions
	CacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookgen_cache_evictions_total",
			Help: "Total number of memory tier evictions",
		},
	)

	// CacheEntries tracks the number of resident entries by tier
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookgen_cache_entries",
			Help: "Current number of content cache entries by tier",
		},
		[]string{"tier"}, // "memory", "disk"
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookgen_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "clear", "cleanup"
	)

	// CleanupRemoved tracks entries removed by expired-entry cleanup passes
	CleanupRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookgen_cache_cleanup_removed_total",
			Help: "Total number of entries removed by cleanup passes",
		},
	)
)
