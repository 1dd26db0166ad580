package retry

import (
	"fmt"
	"strings"
	"time"

	"github.com/couchbase/replverify/types/timeprovider"
)

// Algorithm represents a retry algorithm used to determine backoff before retrying function execution.
type Algorithm int

const (
	// AlgorithmFibonacci backs off using the fibonacci sequence e.g. 50ms, 50ms, 100ms ... 128h9m33s
	AlgorithmFibonacci Algorithm = iota

	// AlgorithmExponential backs off exponentially e.g. 100ms, 200ms, 400ms ... 477218h35m18s
	AlgorithmExponential

	// AlgorithmLinear backs off linearly e.g. 50ms, 100ms, 150ms ... 1.75s
	AlgorithmLinear
)

// String returns the configuration name of the algorithm.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmFibonacci:
		return "fibonacci"
	case AlgorithmExponential:
		return "exponential"
	case AlgorithmLinear:
		return "linear"
	}

	return fmt.Sprintf("unknown(%d)", int(a))
}

// ParseAlgorithm parses an algorithm from its (case insensitive) configuration name.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "fibonacci":
		return AlgorithmFibonacci, nil
	case "exponential":
		return AlgorithmExponential, nil
	case "linear":
		return AlgorithmLinear, nil
	}

	return 0, fmt.Errorf("unknown retry algorithm %q", s)
}

// LogFunc is run before each retry attempt after failing to run the given 'RetryableFunc'.
type LogFunc[T any] func(ctx *Context, payload T, err error)

// ShouldRetryFunc allows more control over which payloads/errors are retried.
//
// NOTE: If not supplied, retries will take place if the given 'RetryableFunc' returns an error.
type ShouldRetryFunc[T any] func(ctx *Context, payload T, err error) bool

// CleanupFunc is run with the payload for all, but the last retry attempt.
type CleanupFunc[T any] func(payload T)

// RetryerOptions encapsulates the options available when creating a retryer.
type RetryerOptions[T any] struct {
	// Algorithm is the algorithm to use when calculating backoff.
	Algorithm Algorithm

	// MaxRetries is the maximum number of attempts.
	MaxRetries int

	// MinDelay is the minimum delay to use for backoff.
	MinDelay time.Duration

	// MaxDelay is the maximum delay to use for backoff.
	MaxDelay time.Duration

	// ShouldRetry is a custom retry function, when not supplied, this will be defaulted to 'err != nil'.
	ShouldRetry ShouldRetryFunc[T]

	// Log is run before each retry, when not supplied logging will be skipped.
	Log LogFunc[T]

	// Cleanup is run for all but the last payloads prior to performing a retry.
	Cleanup CleanupFunc[T]

	// TimeProvider is used to wait between attempts, defaults to the wall clock.
	TimeProvider timeprovider.TimeProvider
}

func (r *RetryerOptions[T]) defaults() {
	if r.MaxRetries == 0 {
		r.MaxRetries = 3
	}

	if r.MinDelay == 0 {
		r.MinDelay = 50 * time.Millisecond
	}

	if r.MaxDelay == 0 {
		r.MaxDelay = 2*time.Second + 500*time.Millisecond
	}

	if r.TimeProvider == nil {
		r.TimeProvider = timeprovider.CurrentTimeProvider{}
	}
}
