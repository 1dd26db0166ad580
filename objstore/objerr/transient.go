package objerr

import (
	"errors"
	"fmt"
)

// TransientError wraps a network/backend error which is safe to retry, for example a throttled request, a 5xx
// response or a reset connection.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient error: %s", e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// IsTransientError returns a boolean indicating whether the given error is a 'TransientError'.
func IsTransientError(err error) bool {
	var transientError *TransientError
	return errors.As(err, &transientError)
}

// FatalError indicates the backend returned a response we couldn't interpret, these errors are never retried.
type FatalError struct {
	Reason string
	Err    error
}

func (e *FatalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("malformed response: %s", e.Reason)
	}

	return fmt.Sprintf("malformed response: %s: %s", e.Reason, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatalError returns a boolean indicating whether the given error is a 'FatalError'.
func IsFatalError(err error) bool {
	var fatalError *FatalError
	return errors.As(err, &fatalError)
}

// IsRetryableStatus returns a boolean indicating whether the given HTTP status code should be treated as transient.
func IsRetryableStatus(code int) bool {
	return code == 429 || code >= 500
}
