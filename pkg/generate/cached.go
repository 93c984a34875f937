package generate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bookforge/content-cache/pkg/cache"
)

// Prometheus metrics for cached generation.
var (
	generateRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookgen_generate_requests_total",
		Help: "Total generation requests by outcome",
	}, []string{"outcome"}) // "cached", "generated", "failed"

	generateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookgen_generate_duration_seconds",
		Help:    "Duration of uncached generation calls in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	})
)

// CachedProducer fronts a Producer with the content cache. A lookup that
// misses invokes the producer with retry and backoff, then stores the
// result so parallel and repeated runs reuse it.
type CachedProducer struct {
	producer Producer
	cache    *cache.Cache
	retry    RetryConfig
	logger   zerolog.Logger
}

// NewCachedProducer wires producer behind contentCache with default retry
// behavior.
func NewCachedProducer(producer Producer, contentCache *cache.Cache) (*CachedProducer, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer is required")
	}
	if contentCache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	return &CachedProducer{
		producer: producer,
		cache:    contentCache,
		retry:    DefaultRetryConfig(),
		logger:   log.With().Str("component", "cached-producer").Logger(),
	}, nil
}

// SetRetryConfig overrides the retry behavior for uncached calls.
func (p *CachedProducer) SetRetryConfig(cfg RetryConfig) {
	p.retry = cfg
}

// Generate implements Producer. The cache is consulted first; on a miss the
// wrapped producer is called (with retry) and the result cached. A failed
// cache write never discards a successfully generated result.
func (p *CachedProducer) Generate(ctx context.Context, prompt string, params map[string]any) ([]byte, error) {
	content, err := p.cache.Get(ctx, prompt, params)
	if err == nil {
		generateRequestsTotal.WithLabelValues("cached").Inc()
		return content, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		// Unencodable params; no valid key can ever be computed.
		return nil, err
	}

	start := time.Now()
	var result []byte
	err = retryWithBackoff(ctx, p.retry, p.logger, func() error {
		var genErr error
		result, genErr = p.producer.Generate(ctx, prompt, params)
		return genErr
	})
	if err != nil {
		generateRequestsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	generateRequestsTotal.WithLabelValues("generated").Inc()
	generateDuration.Observe(time.Since(start).Seconds())

	if err := p.cache.Set(ctx, prompt, params, result); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to cache generated content")
	}
	return result, nil
}
