package objval

import (
	"bytes"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
)

func TestNewSnapshotCopiesInputs(t *testing.T) {
	var (
		body  = []byte("value")
		tags  = TagSet{{Key: "k", Value: "v"}}
		acl   = ACL{{Grantee: "owner", Permission: "FULL_CONTROL"}}
		attrs = ObjectAttrs{
			Key:         "key",
			VersionID:   "v1",
			ContentType: aws.String("image/png"),
			Metadata:    map[string]string{"customkey": "customValue"},
		}
	)

	snapshot := NewSnapshot(attrs, body, tags, acl)

	body[0] = 'X'
	tags[0].Value = "changed"
	acl[0].Permission = "READ"
	attrs.Metadata["customkey"] = "changed"
	*attrs.ContentType = "text/plain"

	require.Equal(t, []byte("value"), snapshot.Body())
	require.Equal(t, TagSet{{Key: "k", Value: "v"}}, snapshot.Tags())
	require.Equal(t, ACL{{Grantee: "owner", Permission: "FULL_CONTROL"}}, snapshot.ACL())
	require.Equal(t, "image/png", *snapshot.Attrs().ContentType)

	value, ok := snapshot.Metadata("customkey")
	require.True(t, ok)
	require.Equal(t, "customValue", value)
}

func TestSnapshotAccessorsReturnCopies(t *testing.T) {
	snapshot := NewSnapshot(ObjectAttrs{Key: "key", Metadata: map[string]string{"a": "b"}}, []byte("value"), nil, nil)

	snapshot.Body()[0] = 'X'
	snapshot.Attrs().Metadata["a"] = "c"

	require.Equal(t, []byte("value"), snapshot.Body())

	value, _ := snapshot.Metadata("a")
	require.Equal(t, "b", value)
}

func TestSnapshotAbsentTagsAndACL(t *testing.T) {
	snapshot := NewSnapshot(ObjectAttrs{Key: "key"}, nil, nil, nil)

	require.Nil(t, snapshot.Tags())
	require.Nil(t, snapshot.ACL())
	require.NotNil(t, snapshot.Body())
	require.Empty(t, snapshot.Body())

	empty := NewSnapshot(ObjectAttrs{Key: "key"}, nil, TagSet{}, ACL{})
	require.NotNil(t, empty.Tags())
	require.NotNil(t, empty.ACL())
}

func TestSnapshotFingerprint(t *testing.T) {
	large := bytes.Repeat([]byte{0xAB}, 5*1024*1024+1)

	type test struct {
		name  string
		a, b  []byte
		equal bool
	}

	modified := bytes.Clone(large)
	modified[len(modified)/2] ^= 0xFF

	tests := []*test{
		{name: "Empty", a: []byte{}, b: nil, equal: true},
		{name: "Large", a: large, b: bytes.Clone(large), equal: true},
		{name: "SingleByteDiffers", a: large, b: modified},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var (
				a = NewSnapshot(ObjectAttrs{}, test.a, nil, nil)
				b = NewSnapshot(ObjectAttrs{}, test.b, nil, nil)
			)

			require.Equal(t, test.equal, a.Fingerprint() == b.Fingerprint())
		})
	}
}
