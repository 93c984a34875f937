// Package testutil provides test doubles for the generation pipeline.
package testutil

import (
	"context"
	"fmt"
	"sync"
)

// MockProducer is a scripted Producer implementation for tests. It records
// call counts and can be programmed to fail a fixed number of times before
// succeeding, which exercises the retry path without a real provider.
type MockProducer struct {
	mu        sync.Mutex
	calls     int
	failures  int
	failErr   error
	responder func(prompt string, params map[string]any) []byte
}

// NewMockProducer returns a producer that echoes a deterministic response
// derived from the prompt.
func NewMockProducer() *MockProducer {
	return &MockProducer{
		responder: func(prompt string, params map[string]any) []byte {
			return []byte(fmt.Sprintf("generated:%s", prompt))
		},
	}
}

// SetResponder replaces the response function.
func (m *MockProducer) SetResponder(fn func(prompt string, params map[string]any) []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responder = fn
}

// FailTimes scripts the next n calls to return err.
func (m *MockProducer) FailTimes(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = n
	m.failErr = err
}

// Calls returns the number of Generate invocations so far.
func (m *MockProducer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Generate implements the generate.Producer interface.
func (m *MockProducer) Generate(ctx context.Context, prompt string, params map[string]any) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if m.failures > 0 {
		m.failures--
		return nil, m.failErr
	}
	return m.responder(prompt, params), nil
}
