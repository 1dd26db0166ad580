// Package retry exposes a 'Retryer' allowing conditionally retrying (with back-off) of functions.
package retry

import (
	"context"
	"errors"
	"math"
	"time"
)

// sqrt5 is the square root of five, as calculated by 'math.Sqrt(5)'.
const sqrt5 = 2.236067977499789805051477742381393909454345703125

// Context wraps a 'context.Context' exposing the number of the attempt currently being made.
type Context struct {
	context.Context
	attempt int
}

// NewContext wraps the given context with a retry context, starting at the first attempt.
func NewContext(ctx context.Context) *Context {
	return &Context{Context: ctx, attempt: 1}
}

// Attempt returns the current attempt number, starting at one.
func (c *Context) Attempt() int {
	return c.attempt
}

// RetryableFunc represents a function which is retryable.
type RetryableFunc[T any] func(ctx *Context) (T, error)

// Retryer is a function retryer, which supports executing a given function a number of times until successful.
type Retryer[T any] struct {
	options RetryerOptions[T]
}

// NewRetryer returns a new retryer with the given options.
func NewRetryer[T any](options RetryerOptions[T]) Retryer[T] {
	options.defaults()

	return Retryer[T]{options: options}
}

// Do executes the given function until it's successful.
func (r Retryer[T]) Do(fn RetryableFunc[T]) (T, error) {
	return r.DoWithContext(context.Background(), fn)
}

// DoWithContext executes the given function until it's successful, the provided context may be used for cancellation.
func (r Retryer[T]) DoWithContext(ctx context.Context, fn RetryableFunc[T]) (T, error) {
	var (
		wrapped = NewContext(ctx)
		payload T
		done    bool
		err     error
	)

	for ; wrapped.attempt <= r.options.MaxRetries; wrapped.attempt++ {
		payload, done, err = r.do(wrapped, fn)
		if done {
			return payload, err
		}

		if r.options.Log != nil && wrapped.attempt != r.options.MaxRetries {
			r.options.Log(wrapped, payload, err)
		}
	}

	return payload, &RetriesExhaustedError{attempts: r.options.MaxRetries, err: err}
}

// do executes the given function, returning the payload, error and whether retries should stop.
func (r Retryer[T]) do(ctx *Context, fn RetryableFunc[T]) (T, bool, error) {
	if err := ctx.Err(); err != nil {
		return *new(T), true, &RetriesAbortedError{attempts: ctx.attempt - 1, err: err}
	}

	payload, err := fn(ctx)

	// NOTE: The error returned by 'retry' may differ from the error defined above
	if retry, err := r.retry(ctx, payload, err); !retry {
		return payload, true, err
	}

	// NOTE: The final payload is left intact so the caller may inspect it
	if ctx.attempt == r.options.MaxRetries {
		return payload, false, err
	}

	if r.options.Cleanup != nil {
		r.options.Cleanup(payload)
	}

	if err := r.sleep(ctx); err != nil {
		return *new(T), true, err
	}

	return payload, false, err
}

// retry returns a boolean indicating whether the function should be executed again.
func (r Retryer[T]) retry(ctx *Context, payload T, err error) (bool, error) {
	var abort *AbortRetriesError

	if errors.As(err, &abort) {
		return false, &RetriesAbortedError{attempts: ctx.attempt, err: abort.Unwrap()}
	}

	if r.options.ShouldRetry != nil {
		return r.options.ShouldRetry(ctx, payload, err), err
	}

	return err != nil, err
}

// sleep until the next retry attempt, or the given context is cancelled.
func (r Retryer[T]) sleep(ctx *Context) error {
	select {
	case <-r.options.TimeProvider.After(r.Duration(ctx.Attempt())):
		return nil
	case <-ctx.Done():
		return &RetriesAbortedError{attempts: ctx.attempt, err: ctx.Err()}
	}
}

// Duration returns the duration to sleep for after the given attempt.
//
// NOTE: After fifty attempts, a constant duration is returned (the max available, or the chosen max delay).
func (r Retryer[T]) Duration(attempt int) time.Duration {
	attempt = min(attempt, 50)

	var n time.Duration

	switch r.options.Algorithm {
	case AlgorithmLinear:
		n = time.Duration(attempt)
	case AlgorithmExponential:
		n = 1 << attempt
	case AlgorithmFibonacci:
		n = time.Duration(math.Round(math.Pow(math.Phi, float64(attempt)) / sqrt5))
	}

	duration := n * r.options.MinDelay

	// If we overflow, just return the max delay
	if n != duration/r.options.MinDelay {
		return r.options.MaxDelay
	}

	return min(r.options.MaxDelay, max(r.options.MinDelay, duration))
}
