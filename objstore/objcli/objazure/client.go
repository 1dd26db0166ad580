// Package objazure provides an implementation of 'objcli.Client' for use with Azure blob storage.
package objazure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/streaming"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"

	"github.com/couchbase/replverify/hofp"
	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// NOTE: As apposed to AWS/GCP, Azure use the container/blob naming convention, however, for consistency the Azure
// client implementation continues to use the bucket/key names.

// Client implements the 'objcli.Client' interface allowing the creation/management of blobs stored in Azure blob store.
//
// Replicated blobs carry no native replication status or version id, the replication service records the lineage of
// each blob in its metadata instead.
type Client struct {
	serviceAPI serviceAPI
	logger     *slog.Logger
	workers    int
}

var _ objcli.Client = (*Client)(nil)

// ClientOptions encapsulates the options for creating a new Azure Client.
type ClientOptions struct {
	// Client represents a URL to the Azure Blob Storage service allowing you to manipulate blob containers.
	//
	// NOTE: Required
	Client *service.Client

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

// NewClient returns a new client which uses the given service client, in general this should be the one created using
// the 'service.NewClientFromConnectionString' or 'service.NewClient' functions exposed by the SDK.
func NewClient(options ClientOptions) *Client {
	// Fill out any missing fields with the sane defaults
	options.defaults()

	return &Client{
		serviceAPI: &serviceClient{client: options.Client},
		logger:     options.Logger,
		workers:    options.Workers,
	}
}

func (c *Client) getBlobBlockClient(bucket, key string) blockBlobAPI {
	return c.serviceAPI.NewContainerClient(bucket).NewBlockBlobClient(key)
}

func (c *Client) Provider() objval.Provider {
	return objval.ProviderAzure
}

func (c *Client) GetObject(ctx context.Context, opts objcli.GetObjectOptions) (*objval.Object, error) {
	if opts.VersionID != "" {
		return nil, objerr.ErrUnsupportedOperation
	}

	blobClient := c.getBlobBlockClient(opts.Bucket, opts.Key)

	resp, err := blobClient.DownloadStream(ctx, &blob.DownloadStreamOptions{})
	if err != nil {
		return nil, handleError(opts.Bucket, opts.Key, err)
	}

	metadata := objcli.LowerKeys(resp.Metadata)

	// The tags are surfaced through 'GetTags', they're not user metadata
	delete(metadata, tagsMetadataKey)

	attrs := objval.ObjectAttrs{
		Key:                opts.Key,
		ETag:               etag(resp.ETag),
		Size:               resp.ContentLength,
		LastModified:       resp.LastModified,
		ContentType:        resp.ContentType,
		CacheControl:       resp.CacheControl,
		ContentDisposition: resp.ContentDisposition,
		ContentEncoding:    resp.ContentEncoding,
		ContentLanguage:    resp.ContentLanguage,
		Metadata:           metadata,
		ReplicationStatus:  objval.ReplicationStatusNone,
	}

	object := &objval.Object{
		ObjectAttrs: attrs,
		Body:        resp.Body,
	}

	return object, nil
}

func (c *Client) GetObjectAttrs(ctx context.Context, opts objcli.GetObjectAttrsOptions) (*objval.ObjectAttrs, error) {
	if opts.VersionID != "" {
		return nil, objerr.ErrUnsupportedOperation
	}

	blobClient := c.getBlobBlockClient(opts.Bucket, opts.Key)

	resp, err := blobClient.GetProperties(ctx, &blob.GetPropertiesOptions{})
	if err != nil {
		return nil, handleError(opts.Bucket, opts.Key, err)
	}

	metadata := objcli.LowerKeys(resp.Metadata)

	delete(metadata, tagsMetadataKey)

	attrs := &objval.ObjectAttrs{
		Key:                opts.Key,
		ETag:               etag(resp.ETag),
		Size:               resp.ContentLength,
		LastModified:       resp.LastModified,
		ContentType:        resp.ContentType,
		CacheControl:       resp.CacheControl,
		ContentDisposition: resp.ContentDisposition,
		ContentEncoding:    resp.ContentEncoding,
		ContentLanguage:    resp.ContentLanguage,
		Metadata:           metadata,
		ReplicationStatus:  objval.ReplicationStatusNone,
	}

	return attrs, nil
}

// PutObject uploads the given body as a block blob, tags are stored in the 'tags' metadata entry in the same way the
// replication service stores them. Canned ACLs are not supported.
func (c *Client) PutObject(ctx context.Context, opts objcli.PutObjectOptions) (string, error) {
	if opts.Attributes.CannedACL != "" {
		return "", objerr.ErrUnsupportedOperation
	}

	metadata, err := encodeMetadata(opts.Attributes.Metadata, opts.Attributes.Tags)
	if err != nil {
		return "", err
	}

	options := &blockblob.UploadOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType:        opts.Attributes.ContentType,
			BlobCacheControl:       opts.Attributes.CacheControl,
			BlobContentDisposition: opts.Attributes.ContentDisposition,
			BlobContentEncoding:    opts.Attributes.ContentEncoding,
			BlobContentLanguage:    opts.Attributes.ContentLanguage,
		},
		Metadata: metadata,
	}

	blobClient := c.getBlobBlockClient(opts.Bucket, opts.Key)

	_, err = blobClient.Upload(ctx, streaming.NopCloser(opts.Body), options)
	if err != nil {
		return "", handleError(opts.Bucket, opts.Key, err)
	}

	return "", nil
}

func (c *Client) DeleteObject(ctx context.Context, opts objcli.DeleteObjectOptions) error {
	if opts.VersionID != "" {
		return objerr.ErrUnsupportedOperation
	}

	return c.deleteBlob(ctx, opts.Bucket, opts.Key)
}

func (c *Client) deleteBlob(ctx context.Context, bucket, key string) error {
	blobClient := c.getBlobBlockClient(bucket, key)

	_, err := blobClient.Delete(ctx, &blob.DeleteOptions{DeleteSnapshots: to.Ptr(blob.DeleteSnapshotsOptionTypeInclude)})
	if err != nil && !isKeyNotFound(err) {
		return handleError(bucket, key, err)
	}

	return nil
}

// DeleteDirectory deletes every blob with the given prefix, blobs aren't versioned so 'Versions' has no effect.
func (c *Client) DeleteDirectory(ctx context.Context, opts objcli.DeleteDirectoryOptions) error {
	keys, err := c.listBlobs(ctx, opts.Bucket, opts.Prefix)
	if err != nil {
		return err
	}

	c.logger.Debug("deleting blobs", log.UserData("prefix", opts.Prefix), "count", len(keys))

	del := func(ctx context.Context, key string) error { return c.deleteBlob(ctx, opts.Bucket, key) }

	return hofp.Each(hofp.Options{Context: ctx, Size: c.workers, LogPrefix: "(objazure)", Logger: c.logger}, keys, del)
}

// ListVersions lists the blobs with the given prefix, each blob is reported as the latest (and only) version.
func (c *Client) ListVersions(ctx context.Context, opts objcli.ListVersionsOptions) ([]objval.Version, error) {
	keys, err := c.listBlobs(ctx, opts.Bucket, opts.Prefix)
	if err != nil {
		return nil, err
	}

	versions := make([]objval.Version, 0, len(keys))

	for _, key := range keys {
		versions = append(versions, objval.Version{Key: key, IsLatest: true})
	}

	return versions, nil
}

// listBlobs returns the names of all the blobs in the given container with the given prefix, in listing order.
func (c *Client) listBlobs(ctx context.Context, bucket, prefix string) ([]string, error) {
	var (
		keys  = make([]string, 0)
		pager = c.serviceAPI.NewContainerClient(bucket).NewListBlobsFlatPager(&container.ListBlobsFlatOptions{
			Prefix: &prefix,
		})
	)

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get next page: %w", handleError(bucket, "", err))
		}

		if page.Segment == nil {
			continue
		}

		for _, item := range page.Segment.BlobItems {
			if item != nil && item.Name != nil {
				keys = append(keys, *item.Name)
			}
		}
	}

	return keys, nil
}

// GetACL is unsupported, blob access is controlled at the container/account level.
func (c *Client) GetACL(_ context.Context, _ objcli.GetACLOptions) (objval.ACL, error) {
	return nil, objerr.ErrUnsupportedOperation
}

// GetTags returns the tag set stored in the 'tags' metadata entry.
func (c *Client) GetTags(ctx context.Context, opts objcli.GetTagsOptions) (objval.TagSet, error) {
	if opts.VersionID != "" {
		return nil, objerr.ErrUnsupportedOperation
	}

	blobClient := c.getBlobBlockClient(opts.Bucket, opts.Key)

	resp, err := blobClient.GetProperties(ctx, &blob.GetPropertiesOptions{})
	if err != nil {
		return nil, handleError(opts.Bucket, opts.Key, err)
	}

	return decodeTags(objcli.LowerKeys(resp.Metadata))
}

// Close is a no-op for Azure as this won't result in a memory leak.
func (c *Client) Close() error {
	return nil
}
