package objcli

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/couchbase/replverify/objstore/objval"
)

// RateLimitedClient implements the 'Client' interface by deferring to the underlying client, waiting on the rate
// limiter before every request so that polling many objects doesn't cause the backend to throttle us.
type RateLimitedClient struct {
	c  Client
	rl *rate.Limiter
}

var _ Client = (*RateLimitedClient)(nil)

// NewRateLimitedClient returns a RateLimitedClient.
func NewRateLimitedClient(c Client, rl *rate.Limiter) *RateLimitedClient {
	return &RateLimitedClient{c: c, rl: rl}
}

func (r *RateLimitedClient) Provider() objval.Provider {
	return r.c.Provider()
}

func (r *RateLimitedClient) GetObject(ctx context.Context, opts GetObjectOptions) (*objval.Object, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return nil, err
	}

	return r.c.GetObject(ctx, opts)
}

func (r *RateLimitedClient) GetObjectAttrs(ctx context.Context, opts GetObjectAttrsOptions) (*objval.ObjectAttrs, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return nil, err
	}

	return r.c.GetObjectAttrs(ctx, opts)
}

func (r *RateLimitedClient) PutObject(ctx context.Context, opts PutObjectOptions) (string, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return "", err
	}

	return r.c.PutObject(ctx, opts)
}

func (r *RateLimitedClient) DeleteObject(ctx context.Context, opts DeleteObjectOptions) error {
	if err := r.rl.Wait(ctx); err != nil {
		return err
	}

	return r.c.DeleteObject(ctx, opts)
}

func (r *RateLimitedClient) DeleteDirectory(ctx context.Context, opts DeleteDirectoryOptions) error {
	if err := r.rl.Wait(ctx); err != nil {
		return err
	}

	return r.c.DeleteDirectory(ctx, opts)
}

func (r *RateLimitedClient) ListVersions(ctx context.Context, opts ListVersionsOptions) ([]objval.Version, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return nil, err
	}

	return r.c.ListVersions(ctx, opts)
}

func (r *RateLimitedClient) GetACL(ctx context.Context, opts GetACLOptions) (objval.ACL, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return nil, err
	}

	return r.c.GetACL(ctx, opts)
}

func (r *RateLimitedClient) GetTags(ctx context.Context, opts GetTagsOptions) (objval.TagSet, error) {
	if err := r.rl.Wait(ctx); err != nil {
		return nil, err
	}

	return r.c.GetTags(ctx, opts)
}

func (r *RateLimitedClient) Close() error {
	return r.c.Close()
}
