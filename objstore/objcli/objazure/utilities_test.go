package objazure

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleError(t *testing.T) {
	type test struct {
		name  string
		err   error
		check func(t *testing.T, err error)
	}

	tests := []*test{
		{
			name:  "Nil",
			check: func(t *testing.T, err error) { require.NoError(t, err) },
		},
		{
			name: "AuthenticationFailed",
			err:  &azcore.ResponseError{ErrorCode: "AuthenticationFailed", StatusCode: http.StatusForbidden},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, objerr.ErrUnauthenticated)
			},
		},
		{
			name: "AuthorizationFailure",
			err:  &azcore.ResponseError{ErrorCode: "AuthorizationFailure", StatusCode: http.StatusForbidden},
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, objerr.ErrUnauthorized)
			},
		},
		{
			name: "ContainerNotFound",
			err:  &azcore.ResponseError{ErrorCode: "ContainerNotFound", StatusCode: http.StatusNotFound},
			check: func(t *testing.T, err error) {
				var notFound *objerr.NotFoundError
				require.ErrorAs(t, err, &notFound)
				require.Equal(t, "container", notFound.Type)
			},
		},
		{
			name: "ServerBusy",
			err:  &azcore.ResponseError{ErrorCode: "ServerBusy", StatusCode: http.StatusServiceUnavailable},
			check: func(t *testing.T, err error) {
				require.True(t, objerr.IsTransientError(err))
			},
		},
		{
			name: "TooManyRequests",
			err:  &azcore.ResponseError{StatusCode: http.StatusTooManyRequests},
			check: func(t *testing.T, err error) {
				require.True(t, objerr.IsTransientError(err))
			},
		},
		{
			name: "Other",
			err:  errors.New("boom"),
			check: func(t *testing.T, err error) {
				require.False(t, objerr.IsTransientError(err))
				require.EqualError(t, err, "boom")
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.check(t, handleError("container", "blob", test.err))
		})
	}
}

func TestDecodeTagsRemovesEntry(t *testing.T) {
	metadata := map[string]string{"tags": `{"a":"1"}`, "customkey": "customValue"}

	tags, err := decodeTags(metadata)
	require.NoError(t, err)
	require.Equal(t, objval.TagSet{{Key: "a", Value: "1"}}, tags)
	require.Equal(t, map[string]string{"customkey": "customValue"}, metadata)
}

func TestEncodeMetadata(t *testing.T) {
	encoded, err := encodeMetadata(map[string]string{"customkey": "customValue"}, nil)
	require.NoError(t, err)
	require.Len(t, encoded, 1)
	require.Equal(t, "customValue", *encoded["customkey"])

	encoded, err = encodeMetadata(nil, objval.TagSet{{Key: "a", Value: "1"}})
	require.NoError(t, err)
	require.JSONEq(t, `{"a":"1"}`, *encoded["tags"])
}
