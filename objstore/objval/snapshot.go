package objval

import (
	"bytes"
	"crypto/sha256"
	"slices"
)

// Snapshot is an immutable, point-in-time view of a stored object. Re-fetching an object produces a new snapshot.
type Snapshot struct {
	attrs       ObjectAttrs
	body        []byte
	fingerprint [sha256.Size]byte
	tags        TagSet
	acl         ACL
}

// NewSnapshot captures the given state into a new snapshot; all arguments are copied so later mutation by the caller
// does not affect the snapshot.
//
// NOTE: A <nil> tag set or ACL means it wasn't captured (or isn't supported by the backend), which is distinct from an
// empty one.
func NewSnapshot(attrs ObjectAttrs, body []byte, tags TagSet, acl ACL) *Snapshot {
	snapshot := &Snapshot{
		attrs:       attrs.Clone(),
		body:        bytes.Clone(body),
		fingerprint: sha256.Sum256(body),
		tags:        slices.Clone(tags),
		acl:         slices.Clone(acl),
	}

	if snapshot.body == nil {
		snapshot.body = make([]byte, 0)
	}

	return snapshot
}

// Attrs returns a copy of the object attributes.
func (s *Snapshot) Attrs() ObjectAttrs {
	return s.attrs.Clone()
}

func (s *Snapshot) Key() string {
	return s.attrs.Key
}

func (s *Snapshot) VersionID() string {
	return s.attrs.VersionID
}

func (s *Snapshot) ReplicationStatus() ReplicationStatus {
	return s.attrs.ReplicationStatus
}

// Metadata returns the value of the user metadata entry with the given (lower-case) key.
func (s *Snapshot) Metadata(key string) (string, bool) {
	value, ok := s.attrs.Metadata[key]
	return value, ok
}

// Body returns a copy of the object body.
func (s *Snapshot) Body() []byte {
	return bytes.Clone(s.body)
}

// Fingerprint returns the SHA-256 digest of the body.
func (s *Snapshot) Fingerprint() [sha256.Size]byte {
	return s.fingerprint
}

// Tags returns a copy of the captured tag set, <nil> if tags weren't captured.
func (s *Snapshot) Tags() TagSet {
	return slices.Clone(s.tags)
}

// ACL returns a copy of the captured ACL, <nil> if the ACL wasn't captured.
func (s *Snapshot) ACL() ACL {
	return slices.Clone(s.acl)
}
