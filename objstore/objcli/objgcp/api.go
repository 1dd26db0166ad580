package objgcp

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
)

// serviceAPI is a top level interface which allows interactions with Google cloud storage.
type serviceAPI interface {
	Bucket(name string) bucketAPI
	Close() error
}

// serviceClient implements the 'serviceAPI' interface and encapsulates the Google SDK into a unit testable interface.
type serviceClient struct {
	c *storage.Client
}

func (g serviceClient) Bucket(name string) bucketAPI {
	return bucketHandle{h: g.c.Bucket(name)}
}

func (g serviceClient) Close() error {
	return g.c.Close()
}

// bucketAPI is a bucket level interface which allows interactions with a Google Storage bucket.
type bucketAPI interface {
	Object(key string) objectAPI
	Objects(ctx context.Context, query *storage.Query) objectIteratorAPI
}

// bucketHandle implements the 'bucketAPI' interface and encapsulates the Google Storage SDK into a unit testable
// interface.
type bucketHandle struct {
	h *storage.BucketHandle
}

func (g bucketHandle) Object(key string) objectAPI {
	return objectHandle{h: g.h.Object(key)}
}

func (g bucketHandle) Objects(ctx context.Context, query *storage.Query) objectIteratorAPI {
	return g.h.Objects(ctx, query)
}

// objectAPI is an object level API which allows interactions with an object stored in a Google cloud bucket.
type objectAPI interface {
	Generation(gen int64) objectAPI
	Attrs(ctx context.Context) (*storage.ObjectAttrs, error)
	Delete(ctx context.Context) error
	NewReader(ctx context.Context) (io.ReadCloser, error)
	NewWriter(ctx context.Context) writerAPI
	ACL(ctx context.Context) ([]storage.ACLRule, error)
}

// objectHandle implements the 'objectAPI' interface and encapsulates the Google Storage SDK into a unit testable
// interface.
type objectHandle struct {
	h *storage.ObjectHandle
}

func (g objectHandle) Generation(gen int64) objectAPI {
	return objectHandle{h: g.h.Generation(gen)}
}

func (g objectHandle) Attrs(ctx context.Context) (*storage.ObjectAttrs, error) {
	return g.h.Attrs(ctx)
}

func (g objectHandle) Delete(ctx context.Context) error {
	return g.h.Delete(ctx)
}

func (g objectHandle) NewReader(ctx context.Context) (io.ReadCloser, error) {
	return g.h.NewReader(ctx)
}

func (g objectHandle) NewWriter(ctx context.Context) writerAPI {
	return &writer{w: g.h.NewWriter(ctx)}
}

func (g objectHandle) ACL(ctx context.Context) ([]storage.ACLRule, error) {
	return g.h.ACL().List(ctx)
}

// writerAPI is the writer API which is used to upload data to Google Storage.
type writerAPI interface {
	io.WriteCloser

	// SetAttrs sets the attributes of the object being written, must be called before the first write.
	SetAttrs(attrs storage.ObjectAttrs)

	// Attrs returns the attributes of the written object, only valid after a successful close.
	Attrs() *storage.ObjectAttrs
}

// writer implements the 'writerAPI' and encapsulates the Google Storage SDK into a unit testable interface.
type writer struct {
	w *storage.Writer
}

func (g *writer) Write(p []byte) (int, error) {
	return g.w.Write(p)
}

func (g *writer) Close() error {
	return g.w.Close()
}

func (g *writer) SetAttrs(attrs storage.ObjectAttrs) {
	attrs.Bucket, attrs.Name = g.w.Bucket, g.w.Name
	g.w.ObjectAttrs = attrs
}

func (g *writer) Attrs() *storage.ObjectAttrs {
	return g.w.Attrs()
}

// objectIteratorAPI is an object level iterator API which can be used to list objects in Google Storage.
type objectIteratorAPI interface {
	Next() (*storage.ObjectAttrs, error)
}

var _ objectIteratorAPI = (*storage.ObjectIterator)(nil)
