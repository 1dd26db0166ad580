package objutil

import (
	"bytes"
	"context"

	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// UploadOptions encapsulates the options available when using the 'Upload' function.
type UploadOptions struct {
	// Client is the client used to perform the operation.
	//
	// NOTE: This attribute is required.
	Client objcli.Client

	// Bucket is the bucket to upload the object to.
	//
	// NOTE: This attribute is required.
	Bucket string

	// Key is the key for the object being uploaded.
	//
	// NOTE: This attribute is required.
	Key string

	// Body is the content of the object.
	Body []byte

	// Attributes are the attributes set on the object when it's created.
	Attributes objval.PutAttributes
}

// Upload writes the given in-memory body to the remote backend, returning the version id assigned by the backend.
func Upload(ctx context.Context, opts UploadOptions) (string, error) {
	return opts.Client.PutObject(ctx, objcli.PutObjectOptions{
		Bucket:     opts.Bucket,
		Key:        opts.Key,
		Body:       bytes.NewReader(opts.Body),
		Attributes: opts.Attributes,
	})
}

// Exists returns a boolean indicating whether the given object (or version) exists.
func Exists(ctx context.Context, client objcli.Client, bucket, key, versionID string) (bool, error) {
	_, err := client.GetObjectAttrs(ctx, objcli.GetObjectAttrsOptions{Bucket: bucket, Key: key, VersionID: versionID})
	if err == nil {
		return true, nil
	}

	if objerr.IsNotFoundError(err) {
		return false, nil
	}

	return false, err
}
