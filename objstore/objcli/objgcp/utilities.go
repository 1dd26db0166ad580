package objgcp

import (
	"errors"
	"net/http"
	"strconv"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// handleError converts an error relating accessing an object via its key into a user friendly error where possible.
func handleError(bucket, key string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, storage.ErrBucketNotExist) {
		return &objerr.NotFoundError{Type: "bucket", Name: orDefault(bucket, "<empty bucket name>")}
	}

	if errors.Is(err, storage.ErrObjectNotExist) {
		return &objerr.NotFoundError{Type: "key", Name: orDefault(key, "<empty key name>")}
	}

	var googleErr *googleapi.Error
	if !errors.As(err, &googleErr) {
		return objerr.HandleError(err)
	}

	switch code := googleErr.Code; {
	case code == http.StatusUnauthorized:
		return objerr.ErrUnauthenticated
	case code == http.StatusForbidden:
		return objerr.ErrUnauthorized
	case code == http.StatusNotFound:
		return &objerr.NotFoundError{Type: "key", Name: orDefault(key, "<empty key name>")}
	case objerr.IsRetryableStatus(code):
		return &objerr.TransientError{Err: err}
	}

	return objerr.HandleError(err)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}

	return s
}

// parseGeneration converts a version id into an object generation, an empty version id is the latest generation.
func parseGeneration(versionID string) (int64, bool, error) {
	if versionID == "" {
		return 0, false, nil
	}

	gen, err := strconv.ParseInt(versionID, 10, 64)
	if err != nil {
		return 0, false, &objerr.FatalError{Reason: "invalid generation", Err: err}
	}

	return gen, true, nil
}

// formatGeneration converts an object generation into a version id.
func formatGeneration(gen int64) string {
	if gen == 0 {
		return ""
	}

	return strconv.FormatInt(gen, 10)
}

// predefinedACL converts an S3 style canned ACL into its Google Storage predefined ACL equivalent.
func predefinedACL(canned string) (string, error) {
	switch canned {
	case "":
		return "", nil
	case "private":
		return "private", nil
	case "public-read":
		return "publicRead", nil
	case "public-read-write":
		return "publicReadWrite", nil
	case "authenticated-read":
		return "authenticatedRead", nil
	case "bucket-owner-read":
		return "bucketOwnerRead", nil
	case "bucket-owner-full-control":
		return "bucketOwnerFullControl", nil
	}

	return "", objerr.ErrUnsupportedOperation
}

// convertAttrs converts the given Google Storage attributes into their canonical form.
func convertAttrs(attrs *storage.ObjectAttrs) *objval.ObjectAttrs {
	converted := &objval.ObjectAttrs{
		Key:                attrs.Name,
		VersionID:          formatGeneration(attrs.Generation),
		ETag:               ptrIfSet(attrs.Etag),
		Size:               &attrs.Size,
		ContentType:        ptrIfSet(attrs.ContentType),
		CacheControl:       ptrIfSet(attrs.CacheControl),
		ContentDisposition: ptrIfSet(attrs.ContentDisposition),
		ContentEncoding:    ptrIfSet(attrs.ContentEncoding),
		ContentLanguage:    ptrIfSet(attrs.ContentLanguage),
		Metadata:           objcli.LowerKeys(attrs.Metadata),
		ReplicationStatus:  objval.ReplicationStatusNone,
	}

	if !attrs.Updated.IsZero() {
		converted.LastModified = &attrs.Updated
	}

	return converted
}

func ptrIfSet(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
