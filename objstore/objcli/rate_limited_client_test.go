package objcli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/couchbase/replverify/objstore/objval"
)

func TestRateLimitedClientDefersToClient(t *testing.T) {
	var (
		inner  = NewTestClient(t, objval.ProviderAWS)
		client = NewRateLimitedClient(inner, rate.NewLimiter(rate.Inf, 1))
	)

	require.Equal(t, objval.ProviderAWS, client.Provider())

	version := TestUploadRAW(t, client, "bucket", "key", []byte("value"))
	require.NotEmpty(t, version)

	attrs, err := client.GetObjectAttrs(context.Background(), GetObjectAttrsOptions{Bucket: "bucket", Key: "key"})
	require.NoError(t, err)
	require.Equal(t, version, attrs.VersionID)

	require.Equal(t, []byte("value"), TestDownloadRAW(t, client, "bucket", "key"))

	versions, err := client.ListVersions(context.Background(), ListVersionsOptions{Bucket: "bucket"})
	require.NoError(t, err)
	require.Len(t, versions, 1)

	require.NoError(t, client.DeleteObject(context.Background(), DeleteObjectOptions{Bucket: "bucket", Key: "key"}))
	require.Equal(t, 1, inner.Calls("DeleteObject"))
	require.NoError(t, client.Close())
}

func TestRateLimitedClientWaitHonorsContext(t *testing.T) {
	var (
		inner  = NewTestClient(t, objval.ProviderAWS)
		client = NewRateLimitedClient(inner, rate.NewLimiter(rate.Limit(0.001), 1))
	)

	// Consume the only token in the bucket
	_, err := client.ListVersions(context.Background(), ListVersionsOptions{Bucket: "missing"})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.GetObjectAttrs(ctx, GetObjectAttrsOptions{Bucket: "bucket", Key: "key"})
	require.Error(t, err)
	require.Zero(t, inner.Calls("GetObjectAttrs"))
}
