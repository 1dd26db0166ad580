package objcli

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// TestHookFunc is run at the start of each read operation performed by a 'TestClient', without any locks held; it may
// be used to mutate the client part way through a test e.g. to simulate asynchronous replication.
type TestHookFunc func(op, bucket, key string)

// TestClient implementation of the 'Client' interface which stores state in memory, and can be used to avoid having to
// manually mock a client during unit testing.
//
// NOTE: Buckets are versioned for every provider other than Azure.
type TestClient struct {
	t        *testing.T
	lock     sync.RWMutex
	provider objval.Provider

	statuses map[string][]objval.ReplicationStatus
	errors   map[string][]error
	calls    map[string]int

	// Hook is run at the start of each read operation, see 'TestHookFunc'.
	Hook TestHookFunc

	// Buckets is the in memory state maintained by the client. Internally, access is guarded by a mutex, however, it's
	// not safe/recommended to access this attribute whilst a test is running; it should only be used to inspect state
	// (to perform assertions) once testing is complete.
	Buckets objval.TestBuckets
}

var _ Client = (*TestClient)(nil)

// NewTestClient returns a new test client, which has no buckets/objects.
func NewTestClient(t *testing.T, provider objval.Provider) *TestClient {
	return &TestClient{
		t:        t,
		provider: provider,
		statuses: make(map[string][]objval.ReplicationStatus),
		errors:   make(map[string][]error),
		calls:    make(map[string]int),
		Buckets:  make(objval.TestBuckets),
	}
}

// SetReplicationStatuses scripts the replication status returned by subsequent reads of the latest version of the
// given key; each read consumes one status, the last status is sticky.
func (t *TestClient) SetReplicationStatuses(bucket, key string, statuses ...objval.ReplicationStatus) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.statuses[bucket+"/"+key] = statuses
}

// InjectErrors causes subsequent reads of the given key to fail with the given errors, one per read.
func (t *TestClient) InjectErrors(bucket, key string, errs ...error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.errors[bucket+"/"+key] = append(t.errors[bucket+"/"+key], errs...)
}

// Calls returns the number of times the given operation has been called.
func (t *TestClient) Calls(op string) int {
	t.lock.RLock()
	defer t.lock.RUnlock()

	return t.calls[op]
}

// PutObjectState stores the given object as the latest version of its key, as a replication service would; a version
// id is generated if one isn't provided and the bucket is versioned.
func (t *TestClient) PutObjectState(bucket string, object *objval.TestObject) string {
	t.lock.Lock()
	defer t.lock.Unlock()

	stored := *object
	stored.ObjectAttrs = object.ObjectAttrs.Clone()
	stored.Body = slices.Clone(object.Body)
	stored.Metadata = LowerKeys(object.Metadata)

	if stored.ReplicationStatus == objval.ReplicationStatusUnknown {
		stored.ReplicationStatus = objval.ReplicationStatusNone
	}

	if stored.VersionID == "" && t.versioned() {
		stored.VersionID = uuid.NewString()
	}

	if stored.Size == nil {
		stored.Size = ptr(int64(len(stored.Body)))
	}

	if stored.ETag == nil {
		stored.ETag = ptr(etag(stored.Body))
	}

	t.appendLocked(bucket, &stored)

	return stored.VersionID
}

func (t *TestClient) Provider() objval.Provider {
	return t.provider
}

func (t *TestClient) GetObject(_ context.Context, opts GetObjectOptions) (*objval.Object, error) {
	if err := t.beforeRead("GetObject", opts.Bucket, opts.Key); err != nil {
		return nil, err
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	object, err := t.getObjectLocked(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return nil, err
	}

	return &objval.Object{
		ObjectAttrs: object.ObjectAttrs.Clone(),
		Body:        readCloser(object.Body),
	}, nil
}

func (t *TestClient) GetObjectAttrs(_ context.Context, opts GetObjectAttrsOptions) (*objval.ObjectAttrs, error) {
	if err := t.beforeRead("GetObjectAttrs", opts.Bucket, opts.Key); err != nil {
		return nil, err
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	object, err := t.getObjectLocked(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return nil, err
	}

	attrs := object.ObjectAttrs.Clone()

	return &attrs, nil
}

func (t *TestClient) PutObject(_ context.Context, opts PutObjectOptions) (string, error) {
	body, err := ReadAllSeekable(opts.Body)
	require.NoError(t.t, err)

	t.lock.Lock()
	t.calls["PutObject"]++
	t.lock.Unlock()

	now := time.Now()

	object := &objval.TestObject{
		ObjectAttrs: objval.ObjectAttrs{
			Key:                opts.Key,
			LastModified:       &now,
			ContentType:        opts.Attributes.ContentType,
			CacheControl:       opts.Attributes.CacheControl,
			ContentDisposition: opts.Attributes.ContentDisposition,
			ContentEncoding:    opts.Attributes.ContentEncoding,
			ContentLanguage:    opts.Attributes.ContentLanguage,
			Metadata:           opts.Attributes.Metadata,
		},
		Body: body,
		Tags: slices.Clone(opts.Attributes.Tags),
		ACL:  cannedACL(opts.Attributes.CannedACL),
	}

	return t.PutObjectState(opts.Bucket, object), nil
}

func (t *TestClient) DeleteObject(_ context.Context, opts DeleteObjectOptions) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.calls["DeleteObject"]++

	bucket, ok := t.Buckets[opts.Bucket]
	if !ok {
		return &objerr.NotFoundError{Type: "bucket", Name: opts.Bucket}
	}

	t.deleteLocked(bucket, opts.Key, opts.VersionID)

	return nil
}

func (t *TestClient) DeleteDirectory(_ context.Context, opts DeleteDirectoryOptions) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.calls["DeleteDirectory"]++

	bucket, ok := t.Buckets[opts.Bucket]
	if !ok {
		return nil
	}

	for key := range bucket.Versions {
		if !strings.HasPrefix(key, opts.Prefix) {
			continue
		}

		if opts.Versions {
			delete(bucket.Versions, key)
			continue
		}

		t.deleteLocked(bucket, key, "")
	}

	return nil
}

func (t *TestClient) ListVersions(_ context.Context, opts ListVersionsOptions) ([]objval.Version, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	bucket, ok := t.Buckets[opts.Bucket]
	if !ok {
		return nil, &objerr.NotFoundError{Type: "bucket", Name: opts.Bucket}
	}

	keys := make([]string, 0, len(bucket.Versions))
	for key := range bucket.Versions {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	versions := make([]objval.Version, 0)

	for _, key := range keys {
		if !strings.HasPrefix(key, opts.Prefix) {
			continue
		}

		stored := bucket.Versions[key]

		// Newest first, matching the ordering used by S3
		for i := len(stored) - 1; i >= 0; i-- {
			versions = append(versions, objval.Version{
				Key:            key,
				VersionID:      stored[i].VersionID,
				IsDeleteMarker: stored[i].DeleteMarker,
				IsLatest:       i == len(stored)-1,
			})
		}
	}

	return versions, nil
}

func (t *TestClient) GetACL(_ context.Context, opts GetACLOptions) (objval.ACL, error) {
	if t.provider == objval.ProviderAzure {
		return nil, objerr.ErrUnsupportedOperation
	}

	if err := t.beforeRead("GetACL", opts.Bucket, opts.Key); err != nil {
		return nil, err
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	object, err := t.getObjectLocked(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return nil, err
	}

	return slices.Clone(object.ACL), nil
}

func (t *TestClient) GetTags(_ context.Context, opts GetTagsOptions) (objval.TagSet, error) {
	if t.provider == objval.ProviderGCP {
		return nil, objerr.ErrUnsupportedOperation
	}

	if err := t.beforeRead("GetTags", opts.Bucket, opts.Key); err != nil {
		return nil, err
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	object, err := t.getObjectLocked(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return nil, err
	}

	tags := slices.Clone(object.Tags)
	if tags == nil {
		tags = make(objval.TagSet, 0)
	}

	return tags, nil
}

func (t *TestClient) Close() error {
	return nil
}

// beforeRead runs the hook, records the call and returns any injected error.
func (t *TestClient) beforeRead(op, bucket, key string) error {
	if t.Hook != nil {
		t.Hook(op, bucket, key)
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	t.calls[op]++

	injected := t.errors[bucket+"/"+key]
	if len(injected) == 0 {
		return nil
	}

	t.errors[bucket+"/"+key] = injected[1:]

	return injected[0]
}

func (t *TestClient) getObjectLocked(bucket, key, version string) (*objval.TestObject, error) {
	b, ok := t.Buckets[bucket]
	if !ok {
		return nil, &objerr.NotFoundError{Type: "bucket", Name: bucket}
	}

	var object *objval.TestObject

	if version == "" {
		object = b.Latest(key)
	} else {
		idx := slices.IndexFunc(b.Versions[key], func(o *objval.TestObject) bool { return o.VersionID == version })
		if idx != -1 {
			object = b.Versions[key][idx]
		}
	}

	if object == nil || object.DeleteMarker {
		name := key
		if version != "" {
			name = fmt.Sprintf("%s@%s", key, version)
		}

		return nil, &objerr.NotFoundError{Type: "key", Name: name}
	}

	if scripted := t.statuses[bucket+"/"+key]; len(scripted) > 0 && object == b.Latest(key) {
		object.ReplicationStatus = scripted[0]

		if len(scripted) > 1 {
			t.statuses[bucket+"/"+key] = scripted[1:]
		}
	}

	return object, nil
}

func (t *TestClient) appendLocked(bucket string, object *objval.TestObject) {
	b, ok := t.Buckets[bucket]
	if !ok {
		b = &objval.TestBucket{Versions: make(map[string][]*objval.TestObject)}
		t.Buckets[bucket] = b
	}

	if !t.versioned() {
		b.Versions[object.Key] = []*objval.TestObject{object}
		return
	}

	b.Versions[object.Key] = append(b.Versions[object.Key], object)
}

func (t *TestClient) deleteLocked(bucket *objval.TestBucket, key, version string) {
	stored, ok := bucket.Versions[key]
	if !ok {
		return
	}

	if !t.versioned() {
		delete(bucket.Versions, key)
		return
	}

	if version == "" {
		if latest := bucket.Latest(key); latest != nil && latest.DeleteMarker {
			return
		}

		bucket.Versions[key] = append(stored, &objval.TestObject{
			ObjectAttrs:  objval.ObjectAttrs{Key: key, VersionID: uuid.NewString()},
			DeleteMarker: true,
		})

		return
	}

	stored = slices.DeleteFunc(stored, func(object *objval.TestObject) bool { return object.VersionID == version })

	if len(stored) == 0 {
		delete(bucket.Versions, key)
		return
	}

	bucket.Versions[key] = stored
}

func (t *TestClient) versioned() bool {
	return t.provider != objval.ProviderAzure
}

func cannedACL(canned string) objval.ACL {
	acl := objval.ACL{{Grantee: "owner", Permission: "FULL_CONTROL"}}

	switch canned {
	case "public-read":
		acl = append(acl, objval.Grant{Grantee: "AllUsers", Permission: "READ"})
	case "public-read-write":
		acl = append(acl,
			objval.Grant{Grantee: "AllUsers", Permission: "READ"},
			objval.Grant{Grantee: "AllUsers", Permission: "WRITE"},
		)
	}

	return acl
}

func etag(body []byte) string {
	sum := md5.Sum(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

func readCloser(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(slices.Clone(data)))
}

func ptr[T any](v T) *T {
	return &v
}
