package objazure

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	jsoniter "github.com/json-iterator/go"

	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// tagsMetadataKey is the metadata entry used by the replication service to carry the source tag set, Azure has no
// equivalent of S3 object tagging.
const tagsMetadataKey = "tags"

// handleError converts an error relating accessing an object via its key into a user friendly error where possible.
func handleError(bucket, key string, err error) error {
	if err == nil {
		return nil
	}

	if bloberror.HasCode(err, bloberror.AuthenticationFailed) {
		return objerr.ErrUnauthenticated
	}

	if bloberror.HasCode(err, bloberror.AuthorizationFailure, bloberror.AuthorizationPermissionMismatch) {
		return objerr.ErrUnauthorized
	}

	if bloberror.HasCode(err, bloberror.ContainerNotFound) {
		// This shouldn't trigger but may aid in debugging in the future
		if bucket == "" {
			bucket = "<empty container name>"
		}

		return &objerr.NotFoundError{Type: "container", Name: bucket}
	}

	var respErr *azcore.ResponseError
	if isKeyNotFound(err) || errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
		// This shouldn't trigger but may aid in debugging in the future
		if key == "" {
			key = "<empty blob name>"
		}

		return &objerr.NotFoundError{Type: "blob", Name: key}
	}

	if bloberror.HasCode(err, bloberror.ServerBusy, bloberror.OperationTimedOut, bloberror.InternalError) ||
		respErr != nil && objerr.IsRetryableStatus(respErr.StatusCode) {
		return &objerr.TransientError{Err: err}
	}

	return objerr.HandleError(err)
}

// isKeyNotFound returns a boolean indicating whether the given error is a 'ServiceCodeBlobNotFound' error.
func isKeyNotFound(err error) bool {
	return bloberror.HasCode(err, bloberror.BlobNotFound)
}

// decodeTags extracts the replicated tag set from the given metadata, removing the entry so that it's not treated as
// user metadata. Returns an empty tag set when no tags were replicated.
func decodeTags(metadata map[string]string) (objval.TagSet, error) {
	encoded, ok := metadata[tagsMetadataKey]
	if !ok {
		return objval.TagSet{}, nil
	}

	delete(metadata, tagsMetadataKey)

	var decoded map[string]string

	err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(encoded, &decoded)
	if err != nil {
		return nil, &objerr.FatalError{Reason: "invalid tags metadata", Err: err}
	}

	return objval.TagSetFromMap(decoded), nil
}

// encodeMetadata converts the given user metadata and tags into the metadata expected by the SDK.
func encodeMetadata(metadata map[string]string, tags objval.TagSet) (map[string]*string, error) {
	encoded := make(map[string]*string, len(metadata)+1)

	for k, v := range metadata {
		encoded[k] = to.Ptr(v)
	}

	if len(tags) == 0 {
		return encoded, nil
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(tags.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to encode tags: %w", err)
	}

	encoded[tagsMetadataKey] = to.Ptr(data)

	return encoded, nil
}

// etag converts the given SDK etag into a string pointer.
func etag(e *azcore.ETag) *string {
	if e == nil {
		return nil
	}

	return to.Ptr(string(*e))
}
