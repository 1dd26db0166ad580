// Package objgcp provides an implementation of 'objcli.Client' for use with Google Cloud Storage.
package objgcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/couchbase/replverify/hofp"
	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// Client implements the 'objcli.Client' interface allowing the creation/management of objects stored in Google Storage.
//
// Object generations are used as version ids; Google Storage has no delete markers, deleting the live generation of an
// object in a versioned bucket makes it noncurrent.
type Client struct {
	serviceAPI serviceAPI
	logger     *slog.Logger
	workers    int
}

var _ objcli.Client = (*Client)(nil)

// ClientOptions encapsulates the options for creating a new GCP Client.
type ClientOptions struct {
	// Client is a client for interacting with Google Cloud Storage.
	//
	// NOTE: Required
	Client *storage.Client

	// Workers is the number of concurrent requests used when deleting a directory, defaults to 16.
	Workers int

	// Logger is the logger used by the client, defaults to 'slog.Default()'.
	Logger *slog.Logger
}

// defaults fills any missing attributes to a sane default.
func (c *ClientOptions) defaults() {
	if c.Workers <= 0 {
		c.Workers = 16
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// NewClient returns a new client which uses the given storage client, in general this should be the one created using
// the 'storage.NewClient' function exposed by the SDK.
func NewClient(options ClientOptions) *Client {
	// Fill out any missing fields with the sane defaults
	options.defaults()

	return &Client{
		serviceAPI: serviceClient{c: options.Client},
		logger:     options.Logger,
		workers:    options.Workers,
	}
}

func (c *Client) Provider() objval.Provider {
	return objval.ProviderGCP
}

// object returns a handle to the given object, pinned to the given version when one is provided.
func (c *Client) object(bucket, key, versionID string) (objectAPI, error) {
	gen, ok, err := parseGeneration(versionID)
	if err != nil {
		return nil, err
	}

	handle := c.serviceAPI.Bucket(bucket).Object(key)

	if ok {
		handle = handle.Generation(gen)
	}

	return handle, nil
}

func (c *Client) GetObject(ctx context.Context, opts objcli.GetObjectOptions) (*objval.Object, error) {
	handle, err := c.object(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return nil, err
	}

	attrs, err := handle.Attrs(ctx)
	if err != nil {
		return nil, handleError(opts.Bucket, opts.Key, err)
	}

	// Pin the read to the generation we fetched the attributes for, so that both describe the same object
	reader, err := handle.Generation(attrs.Generation).NewReader(ctx)
	if err != nil {
		return nil, handleError(opts.Bucket, opts.Key, err)
	}

	object := &objval.Object{
		ObjectAttrs: *convertAttrs(attrs),
		Body:        reader,
	}

	return object, nil
}

func (c *Client) GetObjectAttrs(ctx context.Context, opts objcli.GetObjectAttrsOptions) (*objval.ObjectAttrs, error) {
	handle, err := c.object(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return nil, err
	}

	attrs, err := handle.Attrs(ctx)
	if err != nil {
		return nil, handleError(opts.Bucket, opts.Key, err)
	}

	return convertAttrs(attrs), nil
}

// PutObject uploads the given body, tags are unsupported by Google Storage and result in an error.
func (c *Client) PutObject(ctx context.Context, opts objcli.PutObjectOptions) (string, error) {
	if len(opts.Attributes.Tags) != 0 {
		return "", objerr.ErrUnsupportedOperation
	}

	predefined, err := predefinedACL(opts.Attributes.CannedACL)
	if err != nil {
		return "", err
	}

	attrs := storage.ObjectAttrs{
		ContentType:        deref(opts.Attributes.ContentType),
		CacheControl:       deref(opts.Attributes.CacheControl),
		ContentDisposition: deref(opts.Attributes.ContentDisposition),
		ContentEncoding:    deref(opts.Attributes.ContentEncoding),
		ContentLanguage:    deref(opts.Attributes.ContentLanguage),
		Metadata:           opts.Attributes.Metadata,
		PredefinedACL:      predefined,
	}

	// Cancelling the context is the only way to abort an upload, ensure failures don't leave a partial object
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer := c.serviceAPI.Bucket(opts.Bucket).Object(opts.Key).NewWriter(ctx)
	writer.SetAttrs(attrs)

	_, err = io.Copy(writer, opts.Body)
	if err != nil {
		return "", handleError(opts.Bucket, opts.Key, fmt.Errorf("failed to upload body: %w", err))
	}

	err = writer.Close()
	if err != nil {
		return "", handleError(opts.Bucket, opts.Key, err)
	}

	return formatGeneration(writer.Attrs().Generation), nil
}

func (c *Client) DeleteObject(ctx context.Context, opts objcli.DeleteObjectOptions) error {
	handle, err := c.object(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return err
	}

	err = handle.Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return handleError(opts.Bucket, opts.Key, err)
	}

	return nil
}

// DeleteDirectory deletes all objects with the given prefix, when versions are requested every generation is
// permanently removed.
func (c *Client) DeleteDirectory(ctx context.Context, opts objcli.DeleteDirectoryOptions) error {
	objects, err := c.listObjects(ctx, opts.Bucket, opts.Prefix, opts.Versions)
	if err != nil {
		return err
	}

	c.logger.Debug("deleting objects", log.UserData("prefix", opts.Prefix), "count", len(objects),
		"versions", opts.Versions)

	del := func(ctx context.Context, attrs *storage.ObjectAttrs) error {
		var version string
		if opts.Versions {
			version = formatGeneration(attrs.Generation)
		}

		return c.DeleteObject(ctx, objcli.DeleteObjectOptions{Bucket: opts.Bucket, Key: attrs.Name, VersionID: version})
	}

	return hofp.Each(hofp.Options{Context: ctx, Size: c.workers, LogPrefix: "(objgcp)", Logger: c.logger}, objects, del)
}

func (c *Client) ListVersions(ctx context.Context, opts objcli.ListVersionsOptions) ([]objval.Version, error) {
	objects, err := c.listObjects(ctx, opts.Bucket, opts.Prefix, true)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(objects, func(a, b *storage.ObjectAttrs) int {
		if n := strings.Compare(a.Name, b.Name); n != 0 {
			return n
		}

		// Newest generation first
		switch {
		case a.Generation > b.Generation:
			return -1
		case a.Generation < b.Generation:
			return 1
		}

		return 0
	})

	versions := make([]objval.Version, 0, len(objects))

	for _, attrs := range objects {
		versions = append(versions, objval.Version{
			Key:       attrs.Name,
			VersionID: formatGeneration(attrs.Generation),
			IsLatest:  attrs.Deleted.IsZero(),
		})
	}

	return versions, nil
}

// listObjects returns the attributes of every object with the given prefix, including noncurrent generations when
// requested.
func (c *Client) listObjects(ctx context.Context, bucket, prefix string, versions bool) ([]*storage.ObjectAttrs, error) {
	var (
		objects = make([]*storage.ObjectAttrs, 0)
		it      = c.serviceAPI.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix, Versions: versions})
	)

	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return objects, nil
		}

		if err != nil {
			return nil, fmt.Errorf("failed to get next object: %w", handleError(bucket, "", err))
		}

		objects = append(objects, attrs)
	}
}

func (c *Client) GetACL(ctx context.Context, opts objcli.GetACLOptions) (objval.ACL, error) {
	handle, err := c.object(opts.Bucket, opts.Key, opts.VersionID)
	if err != nil {
		return nil, err
	}

	rules, err := handle.ACL(ctx)
	if err != nil {
		return nil, handleError(opts.Bucket, opts.Key, err)
	}

	acl := make(objval.ACL, 0, len(rules))

	for _, rule := range rules {
		acl = append(acl, objval.Grant{Grantee: string(rule.Entity), Permission: string(rule.Role)})
	}

	return acl, nil
}

// GetTags is unsupported, Google Storage has no object tagging.
func (c *Client) GetTags(_ context.Context, _ objcli.GetTagsOptions) (objval.TagSet, error) {
	return nil, objerr.ErrUnsupportedOperation
}

func (c *Client) Close() error {
	return c.serviceAPI.Close()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
