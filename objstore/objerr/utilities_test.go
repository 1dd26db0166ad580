package objerr

import (
	"context"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError(t *testing.T) {
	type test struct {
		name   string
		input  error
		output error
	}

	tests := []*test{
		{
			name:   "ErrEndpointResolutionFailed",
			input:  &net.DNSError{IsNotFound: true},
			output: ErrEndpointResolutionFailed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, HandleError(test.input), test.output)
			require.ErrorIs(t, TryHandleError(test.input), test.output)
		})
	}
}

func TestHandleErrorTransient(t *testing.T) {
	type test struct {
		name  string
		input error
	}

	tests := []*test{
		{name: "UnexpectedEOF", input: fmt.Errorf("failed to read: %w", io.ErrUnexpectedEOF)},
		{name: "ConnectionRefused", input: &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}},
		{name: "ConnectionReset", input: &net.OpError{Op: "read", Err: syscall.ECONNRESET}},
		{name: "Timeout", input: &net.DNSError{IsTimeout: true}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := HandleError(test.input)
			require.True(t, IsTransientError(err))
			require.ErrorIs(t, err, test.input)
		})
	}
}

func TestHandleErrorAlreadyTransient(t *testing.T) {
	err := &TransientError{Err: assert.AnError}
	require.Same(t, err, HandleError(err))
}

func TestHandleErrorUnknown(t *testing.T) {
	require.ErrorIs(t, HandleError(assert.AnError), assert.AnError)
	require.False(t, IsTransientError(HandleError(context.Canceled)))
	require.False(t, IsTransientError(HandleError(context.DeadlineExceeded)))
}

func TestTryHandleErrorUnknown(t *testing.T) {
	require.Nil(t, TryHandleError(assert.AnError))
	require.Nil(t, TryHandleError(nil))
}

func TestErrorTypes(t *testing.T) {
	require.True(t, IsNotFoundError(fmt.Errorf("%w", &NotFoundError{Type: "key", Name: "k"})))
	require.False(t, IsNotFoundError(assert.AnError))

	require.True(t, IsFatalError(&FatalError{Reason: "bad status"}))
	require.Equal(t, "malformed response: bad status", (&FatalError{Reason: "bad status"}).Error())
	require.ErrorIs(t, &FatalError{Reason: "bad status", Err: assert.AnError}, assert.AnError)

	require.Equal(t, "key 'k' not found", (&NotFoundError{Type: "key", Name: "k"}).Error())
}

func TestIsRetryableStatus(t *testing.T) {
	require.True(t, IsRetryableStatus(429))
	require.True(t, IsRetryableStatus(500))
	require.True(t, IsRetryableStatus(503))
	require.False(t, IsRetryableStatus(404))
	require.False(t, IsRetryableStatus(403))
}
