package generate

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation layer.
var (
	// ErrRetryExhausted is returned when all retry attempts are exhausted.
	ErrRetryExhausted = errors.New("retry attempts exhausted")
)

// ErrorClass classifies provider failures for retry decisions.
type ErrorClass string

const (
	// ErrorClassClient represents bad-request failures (4xx). Not retried.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents provider-side failures (5xx).
	ErrorClassServer ErrorClass = "server"

	// ErrorClassRateLimit represents throttling responses (429).
	ErrorClassRateLimit ErrorClass = "rate_limit"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// ProviderError carries the provider status and classification for a failed
// generation call.
type ProviderError struct {
	StatusCode int
	Class      ErrorClass
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s error (status %d): %s: %v",
			e.Class, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("provider %s error (status %d): %s",
		e.Class, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Classify determines the error class used for retry decisions. Errors that
// carry no ProviderError are treated as network failures and retried.
func Classify(err error) ErrorClass {
	var pe *ProviderError
	if errors.As(err, &pe) {
		if pe.Class != "" {
			return pe.Class
		}
		switch {
		case pe.StatusCode == 429:
			return ErrorClassRateLimit
		case pe.StatusCode >= 400 && pe.StatusCode < 500:
			return ErrorClassClient
		case pe.StatusCode >= 500:
			return ErrorClassServer
		}
	}
	return ErrorClassNetwork
}

// shouldRetry reports whether an error class is worth retrying. Client
// errors are deterministic and never retried.
func shouldRetry(class ErrorClass) bool {
	return class != ErrorClassClient
}
