// Package generate provides the content-producer side of the book pipeline:
// a cache-fronted producer with retry handling and parallel chapter
// generation.
package generate

import "context"

// Producer generates content for a prompt. Implementations wrap AI provider
// SDK calls; the caching layer assumes only that results are stable enough
// to reuse for the configured TTL.
type Producer interface {
	Generate(ctx context.Context, prompt string, params map[string]any) ([]byte, error)
}

// ProducerFunc adapts a plain function to the Producer interface.
type ProducerFunc func(ctx context.Context, prompt string, params map[string]any) ([]byte, error)

// Generate implements Producer.
func (f ProducerFunc) Generate(ctx context.Context, prompt string, params map[string]any) ([]byte, error) {
	return f(ctx, prompt, params)
}
