package objcli

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couchbase/replverify/objstore/objval"
)

// TestUploadRAW uploads the given raw data, returning the version id.
func TestUploadRAW(t *testing.T, client Client, bucket, key string, body []byte) string {
	version, err := client.PutObject(context.Background(), PutObjectOptions{
		Bucket: bucket,
		Key:    key,
		Body:   bytes.NewReader(body),
	})
	require.NoError(t, err)

	return version
}

// TestUploadWithAttributes uploads the given raw data with the given attributes, returning the version id.
func TestUploadWithAttributes(
	t *testing.T,
	client Client,
	bucket, key string,
	body []byte,
	attrs objval.PutAttributes,
) string {
	version, err := client.PutObject(context.Background(), PutObjectOptions{
		Bucket:     bucket,
		Key:        key,
		Body:       bytes.NewReader(body),
		Attributes: attrs,
	})
	require.NoError(t, err)

	return version
}

// TestDownloadRAW downloads the latest version of the object as raw data.
func TestDownloadRAW(t *testing.T, client Client, bucket, key string) []byte {
	object, err := client.GetObject(context.Background(), GetObjectOptions{
		Bucket: bucket,
		Key:    key,
	})
	require.NoError(t, err)

	defer object.Body.Close()

	data, err := io.ReadAll(object.Body)
	require.NoError(t, err)

	return data
}
