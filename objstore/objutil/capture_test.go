package objutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

func TestCaptureSnapshot(t *testing.T) {
	type test struct {
		name     string
		provider objval.Provider
		tags     bool
		acl      bool
		// nil means the fact was not captured
		expectedTags objval.TagSet
		expectedACL  objval.ACL
	}

	tags := objval.TagSet{{Key: "key1", Value: "value1"}}

	tests := []*test{
		{
			name:     "BodyOnly",
			provider: objval.ProviderAWS,
		},
		{
			name:         "TagsAndACL",
			provider:     objval.ProviderScality,
			tags:         true,
			acl:          true,
			expectedTags: tags,
			expectedACL: objval.ACL{
				{Grantee: "owner", Permission: "FULL_CONTROL"},
				{Grantee: "AllUsers", Permission: "READ"},
			},
		},
		{
			name:         "AzureACLUnsupported",
			provider:     objval.ProviderAzure,
			tags:         true,
			acl:          true,
			expectedTags: tags,
		},
		{
			name:        "GCPTagsUnsupported",
			provider:    objval.ProviderGCP,
			tags:        true,
			acl:         true,
			expectedACL: objval.ACL{{Grantee: "owner", Permission: "FULL_CONTROL"}},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := objcli.NewTestClient(t, test.provider)

			var attrs objval.PutAttributes

			if test.provider != objval.ProviderGCP {
				attrs.Tags = tags
			}

			switch test.provider {
			case objval.ProviderGCP:
				attrs.CannedACL = "private"
			case objval.ProviderScality:
				attrs.CannedACL = "public-read"
			}

			version := objcli.TestUploadWithAttributes(t, client, "bucket", "key", []byte("value"), attrs)

			snapshot, err := CaptureSnapshot(context.Background(), client, CaptureOptions{
				Bucket: "bucket",
				Key:    "key",
				Tags:   test.tags,
				ACL:    test.acl,
			})
			require.NoError(t, err)

			require.Equal(t, "key", snapshot.Key())
			require.Equal(t, version, snapshot.VersionID())
			require.Equal(t, []byte("value"), snapshot.Body())
			require.Equal(t, test.expectedTags, snapshot.Tags())
			require.Equal(t, test.expectedACL, snapshot.ACL())
		})
	}
}

func TestCaptureSnapshotNotFound(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderAWS)

	objcli.TestUploadRAW(t, client, "bucket", "other", []byte("value"))

	_, err := CaptureSnapshot(context.Background(), client, CaptureOptions{Bucket: "bucket", Key: "key"})
	require.True(t, objerr.IsNotFoundError(err))
}

func TestCaptureSnapshotPinsVersion(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderAWS)

	first := objcli.TestUploadRAW(t, client, "bucket", "key", []byte("first"))
	objcli.TestUploadRAW(t, client, "bucket", "key", []byte("second"))

	snapshot, err := CaptureSnapshot(context.Background(), client, CaptureOptions{
		Bucket:    "bucket",
		Key:       "key",
		VersionID: first,
	})
	require.NoError(t, err)
	require.Equal(t, []byte("first"), snapshot.Body())
}

func TestUploadAndExists(t *testing.T) {
	client := objcli.NewTestClient(t, objval.ProviderAWS)

	exists, err := Exists(context.Background(), client, "bucket", "key", "")
	require.NoError(t, err)
	require.False(t, exists)

	version, err := Upload(context.Background(), UploadOptions{
		Client: client,
		Bucket: "bucket",
		Key:    "key",
		Body:   []byte("value"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, version)

	exists, err = Exists(context.Background(), client, "bucket", "key", version)
	require.NoError(t, err)
	require.True(t, exists)

	client.InjectErrors("bucket", "key", objerr.ErrUnauthorized)

	_, err = Exists(context.Background(), client, "bucket", "key", "")
	require.ErrorIs(t, err, objerr.ErrUnauthorized)
}
