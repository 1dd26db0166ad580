package objerr

import (
	"context"
	"errors"
	"io"
	"net"
	"syscall"
)

// HandleError converts the given error into a user friendly error where possible, returning the given error when not.
func HandleError(err error) error {
	if err := TryHandleError(err); err != nil {
		return err
	}

	return err
}

// TryHandleError converts the given error into a user friendly error where possible, returning <nil> where not.
func TryHandleError(err error) error {
	if err == nil || IsTransientError(err) || errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) {
		return nil
	}

	var dnsError *net.DNSError

	if errors.As(err, &dnsError) && dnsError.IsNotFound {
		return ErrEndpointResolutionFailed
	}

	if isTransientNetworkError(err) {
		return &TransientError{Err: err}
	}

	return nil
}

// isTransientNetworkError returns a boolean indicating whether the given error is a network error which is likely to
// succeed if retried.
func isTransientNetworkError(err error) bool {
	if errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var netError net.Error

	return errors.As(err, &netError) && netError.Timeout()
}
