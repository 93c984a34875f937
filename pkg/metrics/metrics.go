// Package metrics provides the centralized Prometheus metrics registry for
// the book-generation pipeline. Metrics are defined in their respective
// packages (cache, generate) to maintain modularity and avoid circular
// dependencies.
//
// This package provides documentation and reference for all available
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the pipeline.
// All metrics are automatically registered via promauto in their respective
// packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Cache Metrics (pkg/cache):
//   - bookgen_cache_hits_total{tier} (Counter): Cache hits by tier (memory, disk)
//   - bookgen_cache_misses_total (Counter): Cache misses
//   - bookgen_cache_evictions_total (Counter): Memory tier LRU evictions
//   - bookgen_cache_entries{tier} (Gauge): Resident entries by tier
//   - bookgen_cache_errors_total{operation} (Counter): Cache operation errors
//   - bookgen_cache_cleanup_removed_total (Counter): Entries removed by cleanup passes
//
// Generation Metrics (pkg/generate):
//   - bookgen_generate_requests_total{outcome} (Counter): Requests by outcome (cached, generated, failed)
//   - bookgen_generate_duration_seconds (Histogram): Duration of uncached generation calls
//   - bookgen_generate_retries_total{error_class} (Counter): Retry attempts by error class
//   - bookgen_generate_retry_exhausted_total{error_class} (Counter): Requests that exhausted retries
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   sum(rate(bookgen_cache_hits_total[5m])) /
//   (sum(rate(bookgen_cache_hits_total[5m])) + sum(rate(bookgen_cache_misses_total[5m])))
//
//   # Memory Tier Pressure
//   rate(bookgen_cache_evictions_total[5m])
//
//   # Share of Generation Served From Cache
//   rate(bookgen_generate_requests_total{outcome="cached"}[5m]) /
//   sum(rate(bookgen_generate_requests_total[5m]))
//
//   # P95 Generation Latency
//   histogram_quantile(0.95, rate(bookgen_generate_duration_seconds_bucket[5m]))
