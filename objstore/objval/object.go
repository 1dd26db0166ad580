package objval

import (
	"io"
	"time"

	"golang.org/x/exp/maps"
)

// ObjectAttrs represents the attributes attached to an object, normalized from the backend's native representation.
type ObjectAttrs struct {
	// Key is the identifier for the object; a unique path.
	Key string

	// VersionID is the opaque version token of the object, empty for backends without versioning.
	VersionID string

	// ETag is the HTTP entity tag for the object, each backend computes this differently.
	ETag *string

	// Size is the content length of the object in bytes.
	Size *int64

	// LastModified is the time the object was last updated (or created).
	LastModified *time.Time

	ContentType        *string
	CacheControl       *string
	ContentDisposition *string
	ContentEncoding    *string
	ContentLanguage    *string

	// Metadata is the user metadata attached to the object, keys are always lower-cased.
	Metadata map[string]string

	// ReplicationStatus is the status reported by the backend, 'ReplicationStatusNone' when the backend has no native
	// replication status.
	ReplicationStatus ReplicationStatus
}

// Clone returns a deep copy of the attributes.
func (o ObjectAttrs) Clone() ObjectAttrs {
	cloned := o

	cloned.ETag = clonePtr(o.ETag)
	cloned.Size = clonePtr(o.Size)
	cloned.LastModified = clonePtr(o.LastModified)
	cloned.ContentType = clonePtr(o.ContentType)
	cloned.CacheControl = clonePtr(o.CacheControl)
	cloned.ContentDisposition = clonePtr(o.ContentDisposition)
	cloned.ContentEncoding = clonePtr(o.ContentEncoding)
	cloned.ContentLanguage = clonePtr(o.ContentLanguage)

	if o.Metadata != nil {
		cloned.Metadata = maps.Clone(o.Metadata)
	}

	return cloned
}

// Object represents an object stored in a backend, simply the attributes and its body.
type Object struct {
	ObjectAttrs

	// This body will generally be a HTTP response body; it should be read once, and closed to avoid resource leaks.
	Body io.ReadCloser
}

// PutAttributes are the optional attributes which may be set when creating an object.
type PutAttributes struct {
	ContentType        *string
	CacheControl       *string
	ContentDisposition *string
	ContentEncoding    *string
	ContentLanguage    *string

	// Metadata is the user metadata to attach to the object.
	Metadata map[string]string

	// Tags is the tag set to attach to the object.
	Tags TagSet

	// CannedACL is a canned ACL (e.g. 'public-read') applied to the object.
	//
	// NOTE: Only supported by S3 compatible backends.
	CannedACL string
}

// Version is a single entry returned when listing object versions.
type Version struct {
	Key            string
	VersionID      string
	IsDeleteMarker bool
	IsLatest       bool
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}
