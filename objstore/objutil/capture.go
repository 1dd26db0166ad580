// Package objutil provides helpers composed from the primitive 'objcli.Client' operations.
package objutil

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// CaptureOptions encapsulates the options available when capturing an object snapshot.
type CaptureOptions struct {
	// Bucket is the bucket/container containing the object.
	//
	// NOTE: This attribute is required.
	Bucket string

	// Key is the key of the object being captured.
	//
	// NOTE: This attribute is required.
	Key string

	// VersionID identifies a specific version, the latest version is captured when empty.
	VersionID string

	// Tags indicates whether the object tag set should be captured.
	Tags bool

	// ACL indicates whether the object ACL should be captured.
	ACL bool
}

// CaptureSnapshot fetches the object (including its full body) and optionally its tags/ACL returning an immutable
// snapshot. Tags/ACLs which aren't supported by the backend are recorded as absent.
//
// NOTE: The tags/ACL are fetched for the version returned by the initial fetch so that every fact describes the same
// version of the object.
func CaptureSnapshot(ctx context.Context, client objcli.Client, opts CaptureOptions) (*objval.Snapshot, error) {
	object, err := client.GetObject(ctx, objcli.GetObjectOptions{
		Bucket:    opts.Bucket,
		Key:       opts.Key,
		VersionID: opts.VersionID,
	})
	if err != nil {
		return nil, err // Purposefully not wrapped
	}

	defer object.Body.Close()

	body, err := io.ReadAll(object.Body)
	if err != nil {
		return nil, &objerr.TransientError{Err: fmt.Errorf("failed to read body: %w", err)}
	}

	version := object.VersionID
	if version == "" {
		version = opts.VersionID
	}

	var tags objval.TagSet

	if opts.Tags {
		tags, err = client.GetTags(ctx, objcli.GetTagsOptions{Bucket: opts.Bucket, Key: opts.Key, VersionID: version})
		if err != nil && !errors.Is(err, objerr.ErrUnsupportedOperation) {
			return nil, fmt.Errorf("failed to get tags: %w", err)
		}
	}

	var acl objval.ACL

	if opts.ACL {
		acl, err = client.GetACL(ctx, objcli.GetACLOptions{Bucket: opts.Bucket, Key: opts.Key, VersionID: version})
		if err != nil && !errors.Is(err, objerr.ErrUnsupportedOperation) {
			return nil, fmt.Errorf("failed to get acl: %w", err)
		}
	}

	return objval.NewSnapshot(object.ObjectAttrs, body, tags, acl), nil
}
