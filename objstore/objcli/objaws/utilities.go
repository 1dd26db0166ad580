package objaws

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// handleError converts an error relating accessing an object via its key into a user friendly error where possible.
func handleError(bucket, key *string, err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return objerr.ErrUnauthenticated
		case "AccessDenied":
			return objerr.ErrUnauthorized
		case "NoSuchKey", "NotFound", "NoSuchVersion":
			return &objerr.NotFoundError{Type: "key", Name: aws.ToString(orDefault(key, "<empty key name>"))}
		case "NoSuchBucket":
			return &objerr.NotFoundError{Type: "bucket", Name: aws.ToString(orDefault(bucket, "<empty bucket name>"))}
		case "SlowDown", "Throttling", "ThrottlingException", "RequestTimeout", "InternalError", "ServiceUnavailable":
			return &objerr.TransientError{Err: err}
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && objerr.IsRetryableStatus(respErr.HTTPStatusCode()) {
		return &objerr.TransientError{Err: err}
	}

	return objerr.HandleError(err)
}

// isKeyNotFound returns a boolean indicating whether the given error code means the key/version doesn't exist.
func isKeyNotFound(code string) bool {
	return code == "NoSuchKey" || code == "NoSuchVersion" || code == "NotFound"
}

func orDefault(s *string, def string) *string {
	if s == nil || *s == "" {
		return aws.String(def)
	}

	return s
}

// parseStatus converts the replication status header into a 'ReplicationStatus'.
func parseStatus(status types.ReplicationStatus) (objval.ReplicationStatus, error) {
	parsed, err := objval.ParseReplicationStatus(string(status))
	if err != nil {
		return parsed, &objerr.FatalError{Reason: "invalid replication status", Err: err}
	}

	return parsed, nil
}

// encodeTags encodes the given tags as URL query parameters, as expected by the 'x-amz-tagging' header.
func encodeTags(tags objval.TagSet) *string {
	if len(tags) == 0 {
		return nil
	}

	values := make(url.Values, len(tags))

	for _, tag := range tags {
		values.Set(tag.Key, tag.Value)
	}

	return aws.String(values.Encode())
}

// grantee returns a string identifying the given grantee, groups are identified by URI and users by ID.
func grantee(g *types.Grantee) string {
	if g == nil {
		return ""
	}

	switch {
	case g.URI != nil:
		return *g.URI
	case g.ID != nil:
		return *g.ID
	case g.EmailAddress != nil:
		return *g.EmailAddress
	}

	return aws.ToString(g.DisplayName)
}

// isReplicationConfigurationNotFound returns a boolean indicating whether the given error indicates the bucket has no
// replication configuration.
func isReplicationConfigurationNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ReplicationConfigurationNotFoundError"
}

// listedVersion is a version along with its modification time, used to merge delete markers and versions.
type listedVersion struct {
	objval.Version
	modified time.Time
}

// sortVersions orders the given versions by key, newest first for versions of the same key.
func sortVersions(listed []listedVersion) []objval.Version {
	slices.SortStableFunc(listed, func(a, b listedVersion) int {
		if n := strings.Compare(a.Key, b.Key); n != 0 {
			return n
		}

		return b.modified.Compare(a.modified)
	})

	versions := make([]objval.Version, 0, len(listed))

	for _, v := range listed {
		versions = append(versions, v.Version)
	}

	return versions
}
