package retry

import (
	"errors"
	"fmt"
)

// RetriesExhaustedError is returned after exhausting the max number of attempts, unwrapping the error will return the
// error from the last failure (which may be <nil> when a payload was rejected by 'ShouldRetry').
type RetriesExhaustedError struct {
	attempts int
	err      error
}

func (r *RetriesExhaustedError) Error() string {
	msg := fmt.Sprintf("exhausted retry count after %d attempts", r.attempts)
	if r.err != nil {
		msg += fmt.Sprintf(": %s", r.err)
	}

	return msg
}

func (r *RetriesExhaustedError) Unwrap() error {
	return r.err
}

// Attempts returns the number of attempts made.
func (r *RetriesExhaustedError) Attempts() int {
	return r.attempts
}

// IsRetriesExhausted returns a boolean indicating whether the given error is a 'RetriesExhaustedError'.
func IsRetriesExhausted(err error) bool {
	var retriesExhausted *RetriesExhaustedError
	return errors.As(err, &retriesExhausted)
}

// RetriesAbortedError is returned when retries stop early, either because the context was cancelled or because the
// function returned an 'AbortRetriesError'.
type RetriesAbortedError struct {
	attempts int
	err      error
}

func (r *RetriesAbortedError) Error() string {
	msg := fmt.Sprintf("retries aborted after %d attempt(s)", r.attempts)
	if r.err != nil {
		msg += fmt.Sprintf(": %s", r.err)
	}

	return msg
}

func (r *RetriesAbortedError) Unwrap() error {
	return r.err
}

// IsRetriesAborted returns a boolean indicating whether the given error is a 'RetriesAbortedError'.
func IsRetriesAborted(err error) bool {
	var retriesAborted *RetriesAbortedError
	return errors.As(err, &retriesAborted)
}

// NewAbortRetriesError wraps the given error, returning it from a 'RetryableFunc' stops any further attempts.
func NewAbortRetriesError(err error) error {
	return &AbortRetriesError{err: err}
}

// AbortRetriesError is a sentinel used to stop retrying after a fatal error; callers receive a 'RetriesAbortedError'
// wrapping the original error instead.
type AbortRetriesError struct {
	err error
}

func (a *AbortRetriesError) Error() string {
	return fmt.Sprintf("retries aborted due to error: %s", a.err)
}

func (a *AbortRetriesError) Unwrap() error {
	return a.err
}
