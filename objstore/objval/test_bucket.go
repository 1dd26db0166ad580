package objval

// TestBuckets represents a number of buckets, and is only used by the 'TestClient' to store state in memory.
type TestBuckets map[string]*TestBucket

// TestBucket represents a versioned bucket and is only used by the 'TestClient' to store objects in memory.
type TestBucket struct {
	// Versions holds every version (including delete markers) of each key, ordered oldest first.
	Versions map[string][]*TestObject
}

// Latest returns the latest version of the given key, <nil> if the key has no versions.
func (t *TestBucket) Latest(key string) *TestObject {
	versions := t.Versions[key]
	if len(versions) == 0 {
		return nil
	}

	return versions[len(versions)-1]
}

// TestObject represents an object version and is only used by the 'TestClient'.
type TestObject struct {
	ObjectAttrs
	Body         []byte
	Tags         TagSet
	ACL          ACL
	DeleteMarker bool
}
