// Package objcli exposes a unified 'Client' interface for accessing/managing objects stored in a replication source or
// destination backend.
package objcli

import (
	"context"
	"io"

	"github.com/couchbase/replverify/objstore/objval"
)

// GetObjectOptions encapsulates the options available when using the 'GetObject' function.
type GetObjectOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Key is the key (path) of the object/blob being operated on.
	Key string

	// VersionID optionally selects a specific version, the latest version is used when empty.
	VersionID string
}

// GetObjectAttrsOptions encapsulates the options available when using the 'GetObjectAttrs' function.
type GetObjectAttrsOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Key is the key (path) of the object/blob being operated on.
	Key string

	// VersionID optionally selects a specific version, the latest version is used when empty.
	VersionID string
}

// PutObjectOptions encapsulates the options available when using the 'PutObject' function.
type PutObjectOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Key is the key (path) of the object/blob being operated on.
	Key string

	// Body is the data that will be uploaded.
	//
	// NOTE: Required to be a 'ReadSeeker' to support checksum calculation/validation.
	Body io.ReadSeeker

	// Attributes are the optional attributes attached to the object.
	Attributes objval.PutAttributes
}

// DeleteObjectOptions encapsulates the options available when using the 'DeleteObject' function.
type DeleteObjectOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Key is the key (path) of the object/blob being operated on.
	Key string

	// VersionID permanently deletes the given version, when empty a versioned backend creates a delete marker.
	VersionID string
}

// DeleteDirectoryOptions encapsulates the options available when using the 'DeleteDirectory' function.
type DeleteDirectoryOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Prefix is the prefix that will be operated on.
	Prefix string

	// Versions deletes every version and delete marker, rather than only the latest versions.
	Versions bool
}

// ListVersionsOptions encapsulates the options available when using the 'ListVersions' function.
type ListVersionsOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Prefix limits the listing to keys with the given prefix.
	Prefix string
}

// GetACLOptions encapsulates the options available when using the 'GetACL' function.
type GetACLOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Key is the key (path) of the object/blob being operated on.
	Key string

	// VersionID optionally selects a specific version.
	VersionID string
}

// GetTagsOptions encapsulates the options available when using the 'GetTags' function.
type GetTagsOptions struct {
	// Bucket is the bucket being operated on.
	Bucket string

	// Key is the key (path) of the object/blob being operated on.
	Key string

	// VersionID optionally selects a specific version.
	VersionID string
}

// Client is a unified interface for accessing/managing objects stored in a storage backend. Each call is a single
// blocking request with no internal retries; errors are normalized into the 'objerr' taxonomy.
type Client interface {
	// Provider returns the backend family this client is interfacing with.
	Provider() objval.Provider

	// GetObject retrieves an object and its attributes.
	//
	// NOTE: The returned objects body must be closed to avoid resource leaks.
	GetObject(ctx context.Context, opts GetObjectOptions) (*objval.Object, error)

	// GetObjectAttrs returns the attributes of an object without its body.
	GetObjectAttrs(ctx context.Context, opts GetObjectAttrsOptions) (*objval.ObjectAttrs, error)

	// PutObject creates an object with the given key/options, returning the version id assigned by the backend (empty
	// for backends without versioning).
	PutObject(ctx context.Context, opts PutObjectOptions) (string, error)

	// DeleteObject deletes an object (or a specific version), deleting an object which doesn't exist is not an error.
	DeleteObject(ctx context.Context, opts DeleteObjectOptions) error

	// DeleteDirectory deletes all the objects which have the given prefix.
	DeleteDirectory(ctx context.Context, opts DeleteDirectoryOptions) error

	// ListVersions returns every version of every object with the given prefix, ordered by key.
	ListVersions(ctx context.Context, opts ListVersionsOptions) ([]objval.Version, error)

	// GetACL returns the ACL attached to an object.
	GetACL(ctx context.Context, opts GetACLOptions) (objval.ACL, error)

	// GetTags returns the tags attached to an object.
	GetTags(ctx context.Context, opts GetTagsOptions) (objval.TagSet, error)

	// Close the underlying client/SDK where applicable; use of the client after a call to Close has undefined behavior.
	Close() error
}
