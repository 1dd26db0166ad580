// Package util provides helpers shared by the unit tests of the backend adapters.
package util

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// AnyContext matches any implementation of 'context.Context' when setting expectations on a 'mock.Mock'.
var AnyContext = mock.MatchedBy(func(_ context.Context) bool { return true })

// ReadAll the data from the provided object body then close it, fatally terminating the current test in the event of a
// failure.
func ReadAll(t *testing.T, body io.ReadCloser) []byte {
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)

	return data
}
