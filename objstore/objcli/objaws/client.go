// Package objaws provides an implementation of 'objcli.Client' for use with AWS S3 and S3 compatible (Scality)
// endpoints.
package objaws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/couchbase/replverify/log"
	"github.com/couchbase/replverify/objstore/objcli"
	"github.com/couchbase/replverify/objstore/objerr"
	"github.com/couchbase/replverify/objstore/objval"
)

// Client implements the 'objcli.Client' interface allowing the creation/management of objects stored in AWS S3.
type Client struct {
	serviceAPI serviceAPI
	uploader   *manager.Uploader
	provider   objval.Provider
	logger     *slog.Logger
}

var _ objcli.Client = (*Client)(nil)

// ClientOptions encapsulates the options for creating a new AWS Client.
type ClientOptions struct {
	// ServiceAPI is the is the minimal subset of functions that we use from the AWS SDK, this allows for a greatly
	// reduce surface area for mock generation.
	//
	// NOTE: Required
	ServiceAPI serviceAPI

	// Provider is the backend family reported by the client, defaults to AWS; S3 compatible replication sources should
	// use 'objval.ProviderScality'.
	Provider objval.Provider

	// PartSize is the size of each part when uploading large objects, bodies smaller than this are uploaded with a
	// single request. Defaults to the minimum part size allowed by S3.
	PartSize int64

	// Logger is the logger used by the client, defaults to 'slog.Default()'.
	Logger *slog.Logger
}

// defaults fills any missing attributes to a sane default.
func (c *ClientOptions) defaults() {
	if c.Provider == objval.ProviderNone {
		c.Provider = objval.ProviderAWS
	}

	if c.PartSize == 0 {
		c.PartSize = manager.MinUploadPartSize
	}

	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// NewClient returns a new client which uses the given 'serviceAPI', in general this should be the one created using the
// 's3.NewFromConfig' function exposed by the SDK.
func NewClient(options ClientOptions) *Client {
	// Fill out any missing fields with the sane defaults
	options.defaults()

	client := Client{
		serviceAPI: options.ServiceAPI,
		provider:   options.Provider,
		logger:     options.Logger,
		uploader: manager.NewUploader(options.ServiceAPI, func(u *manager.Uploader) {
			u.PartSize = options.PartSize
		}),
	}

	return &client
}

func (c *Client) Provider() objval.Provider {
	return c.provider
}

func (c *Client) GetObject(ctx context.Context, opts objcli.GetObjectOptions) (*objval.Object, error) {
	input := &s3.GetObjectInput{
		Bucket:    aws.String(opts.Bucket),
		Key:       aws.String(opts.Key),
		VersionId: versionID(opts.VersionID),
	}

	resp, err := c.serviceAPI.GetObject(ctx, input)
	if err != nil {
		return nil, handleError(input.Bucket, input.Key, err)
	}

	status, err := parseStatus(resp.ReplicationStatus)
	if err != nil {
		resp.Body.Close()
		return nil, err
	}

	attrs := objval.ObjectAttrs{
		Key:                opts.Key,
		VersionID:          aws.ToString(resp.VersionId),
		ETag:               resp.ETag,
		Size:               resp.ContentLength,
		LastModified:       resp.LastModified,
		ContentType:        resp.ContentType,
		CacheControl:       resp.CacheControl,
		ContentDisposition: resp.ContentDisposition,
		ContentEncoding:    resp.ContentEncoding,
		ContentLanguage:    resp.ContentLanguage,
		Metadata:           objcli.LowerKeys(resp.Metadata),
		ReplicationStatus:  status,
	}

	object := &objval.Object{
		ObjectAttrs: attrs,
		Body:        resp.Body,
	}

	return object, nil
}

func (c *Client) GetObjectAttrs(ctx context.Context, opts objcli.GetObjectAttrsOptions) (*objval.ObjectAttrs, error) {
	input := &s3.HeadObjectInput{
		Bucket:    aws.String(opts.Bucket),
		Key:       aws.String(opts.Key),
		VersionId: versionID(opts.VersionID),
	}

	resp, err := c.serviceAPI.HeadObject(ctx, input)
	if err != nil {
		return nil, handleError(input.Bucket, input.Key, err)
	}

	status, err := parseStatus(resp.ReplicationStatus)
	if err != nil {
		return nil, err
	}

	attrs := &objval.ObjectAttrs{
		Key:                opts.Key,
		VersionID:          aws.ToString(resp.VersionId),
		ETag:               resp.ETag,
		Size:               resp.ContentLength,
		LastModified:       resp.LastModified,
		ContentType:        resp.ContentType,
		CacheControl:       resp.CacheControl,
		ContentDisposition: resp.ContentDisposition,
		ContentEncoding:    resp.ContentEncoding,
		ContentLanguage:    resp.ContentLanguage,
		Metadata:           objcli.LowerKeys(resp.Metadata),
		ReplicationStatus:  status,
	}

	return attrs, nil
}

// PutObject uploads the object using the upload manager, bodies larger than the configured part size are uploaded
// using a multipart upload.
func (c *Client) PutObject(ctx context.Context, opts objcli.PutObjectOptions) (string, error) {
	input := &s3.PutObjectInput{
		Body:               opts.Body,
		Bucket:             aws.String(opts.Bucket),
		Key:                aws.String(opts.Key),
		ContentType:        opts.Attributes.ContentType,
		CacheControl:       opts.Attributes.CacheControl,
		ContentDisposition: opts.Attributes.ContentDisposition,
		ContentEncoding:    opts.Attributes.ContentEncoding,
		ContentLanguage:    opts.Attributes.ContentLanguage,
		Metadata:           opts.Attributes.Metadata,
		Tagging:            encodeTags(opts.Attributes.Tags),
	}

	if opts.Attributes.CannedACL != "" {
		input.ACL = types.ObjectCannedACL(opts.Attributes.CannedACL)
	}

	output, err := c.uploader.Upload(ctx, input)
	if err != nil {
		return "", handleError(input.Bucket, input.Key, err)
	}

	c.logger.Debug("uploaded object", log.UserData("key", opts.Key), "version", aws.ToString(output.VersionID),
		"parts", len(output.CompletedParts))

	return aws.ToString(output.VersionID), nil
}

func (c *Client) DeleteObject(ctx context.Context, opts objcli.DeleteObjectOptions) error {
	input := &s3.DeleteObjectInput{
		Bucket:    aws.String(opts.Bucket),
		Key:       aws.String(opts.Key),
		VersionId: versionID(opts.VersionID),
	}

	_, err := c.serviceAPI.DeleteObject(ctx, input)

	err = handleError(input.Bucket, input.Key, err)
	if objerr.IsNotFoundError(err) && opts.VersionID != "" {
		return nil
	}

	return err
}

// DeleteDirectory deletes all objects with the given prefix; when versions are requested every delete marker and
// version is permanently removed, otherwise a delete marker is created for each latest version.
func (c *Client) DeleteDirectory(ctx context.Context, opts objcli.DeleteDirectoryOptions) error {
	callback := func(page *s3.ListObjectVersionsOutput) error {
		objects := make([]types.ObjectIdentifier, 0, len(page.Versions)+len(page.DeleteMarkers))

		// Delete markers are removed first, this matches the order used when the object was deleted by a user
		for _, marker := range page.DeleteMarkers {
			if opts.Versions {
				objects = append(objects, types.ObjectIdentifier{Key: marker.Key, VersionId: marker.VersionId})
			}
		}

		for _, version := range page.Versions {
			switch {
			case opts.Versions:
				objects = append(objects, types.ObjectIdentifier{Key: version.Key, VersionId: version.VersionId})
			case aws.ToBool(version.IsLatest):
				objects = append(objects, types.ObjectIdentifier{Key: version.Key})
			}
		}

		return c.deleteObjectVersions(ctx, opts.Bucket, objects...)
	}

	input := &s3.ListObjectVersionsInput{
		Bucket: aws.String(opts.Bucket),
		Prefix: aws.String(opts.Prefix),
	}

	err := c.listObjectVersions(ctx, input, callback)
	if err != nil {
		return handleError(input.Bucket, nil, err)
	}

	return nil
}

// deleteObjectVersions performs a batched delete operation for a single page (<=1000) of object versions.
func (c *Client) deleteObjectVersions(ctx context.Context, bucket string, objects ...types.ObjectIdentifier) error {
	if len(objects) == 0 {
		return nil
	}

	input := &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Quiet:   aws.Bool(true),
			Objects: objects,
		},
	}

	resp, err := c.serviceAPI.DeleteObjects(ctx, input)
	if err != nil {
		return handleError(input.Bucket, nil, err)
	}

	for _, err := range resp.Errors {
		if isKeyNotFound(aws.ToString(err.Code)) {
			continue
		}

		converted := &smithy.GenericAPIError{
			Code:    aws.ToString(err.Code),
			Message: aws.ToString(err.Message),
		}

		return handleError(input.Bucket, err.Key, converted)
	}

	return nil
}

func (c *Client) ListVersions(ctx context.Context, opts objcli.ListVersionsOptions) ([]objval.Version, error) {
	versions := make([]listedVersion, 0)

	callback := func(page *s3.ListObjectVersionsOutput) error {
		for _, marker := range page.DeleteMarkers {
			versions = append(versions, listedVersion{
				Version: objval.Version{
					Key:            aws.ToString(marker.Key),
					VersionID:      aws.ToString(marker.VersionId),
					IsDeleteMarker: true,
					IsLatest:       aws.ToBool(marker.IsLatest),
				},
				modified: aws.ToTime(marker.LastModified),
			})
		}

		for _, version := range page.Versions {
			versions = append(versions, listedVersion{
				Version: objval.Version{
					Key:       aws.ToString(version.Key),
					VersionID: aws.ToString(version.VersionId),
					IsLatest:  aws.ToBool(version.IsLatest),
				},
				modified: aws.ToTime(version.LastModified),
			})
		}

		return nil
	}

	input := &s3.ListObjectVersionsInput{
		Bucket: aws.String(opts.Bucket),
		Prefix: aws.String(opts.Prefix),
	}

	err := c.listObjectVersions(ctx, input, callback)
	if err != nil {
		return nil, handleError(input.Bucket, nil, err)
	}

	return sortVersions(versions), nil
}

// listObjectVersions runs the given function on each page of object versions, following the key/version markers
// until the listing is no longer truncated.
func (c *Client) listObjectVersions(
	ctx context.Context,
	input *s3.ListObjectVersionsInput,
	fn func(page *s3.ListObjectVersionsOutput) error,
) error {
	for {
		page, err := c.serviceAPI.ListObjectVersions(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to get next page: %w", err)
		}

		err = fn(page)
		if err != nil {
			return fmt.Errorf("failed to process page: %w", err)
		}

		if !aws.ToBool(page.IsTruncated) {
			return nil
		}

		input.KeyMarker, input.VersionIdMarker = page.NextKeyMarker, page.NextVersionIdMarker
	}
}

func (c *Client) GetACL(ctx context.Context, opts objcli.GetACLOptions) (objval.ACL, error) {
	input := &s3.GetObjectAclInput{
		Bucket:    aws.String(opts.Bucket),
		Key:       aws.String(opts.Key),
		VersionId: versionID(opts.VersionID),
	}

	resp, err := c.serviceAPI.GetObjectAcl(ctx, input)
	if err != nil {
		return nil, handleError(input.Bucket, input.Key, err)
	}

	acl := make(objval.ACL, 0, len(resp.Grants))

	for _, grant := range resp.Grants {
		acl = append(acl, objval.Grant{Grantee: grantee(grant.Grantee), Permission: string(grant.Permission)})
	}

	return acl, nil
}

func (c *Client) GetTags(ctx context.Context, opts objcli.GetTagsOptions) (objval.TagSet, error) {
	input := &s3.GetObjectTaggingInput{
		Bucket:    aws.String(opts.Bucket),
		Key:       aws.String(opts.Key),
		VersionId: versionID(opts.VersionID),
	}

	resp, err := c.serviceAPI.GetObjectTagging(ctx, input)
	if err != nil {
		return nil, handleError(input.Bucket, input.Key, err)
	}

	tags := make(objval.TagSet, 0, len(resp.TagSet))

	for _, tag := range resp.TagSet {
		tags = append(tags, objval.Tag{Key: aws.ToString(tag.Key), Value: aws.ToString(tag.Value)})
	}

	return tags, nil
}

// GetBucketReplicationStatus returns the status of the first replication rule configured on the given bucket
// (e.g. 'Enabled'). A missing replication configuration is returned as a 'NotFoundError'.
func (c *Client) GetBucketReplicationStatus(ctx context.Context, bucket string) (string, error) {
	input := &s3.GetBucketReplicationInput{Bucket: aws.String(bucket)}

	resp, err := c.serviceAPI.GetBucketReplication(ctx, input)
	if isReplicationConfigurationNotFound(err) {
		return "", &objerr.NotFoundError{Type: "replication configuration", Name: bucket}
	}

	if err != nil {
		return "", handleError(input.Bucket, nil, err)
	}

	if resp.ReplicationConfiguration == nil || len(resp.ReplicationConfiguration.Rules) == 0 {
		return "", &objerr.NotFoundError{Type: "replication rule", Name: bucket}
	}

	return string(resp.ReplicationConfiguration.Rules[0].Status), nil
}

// Close is a no-op for AWS as this won't result in a memory leak.
func (c *Client) Close() error {
	return nil
}

// versionID returns the version id request parameter, <nil> when the latest version should be used.
func versionID(id string) *string {
	if id == "" {
		return nil
	}

	return aws.String(id)
}
