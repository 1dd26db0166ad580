package objgcp

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/mock"
)

type mockServiceAPI struct {
	mock.Mock
}

func (m *mockServiceAPI) Bucket(name string) bucketAPI {
	return m.Called(name).Get(0).(bucketAPI)
}

func (m *mockServiceAPI) Close() error {
	return m.Called().Error(0)
}

type mockBucketAPI struct {
	mock.Mock
}

func (m *mockBucketAPI) Object(key string) objectAPI {
	return m.Called(key).Get(0).(objectAPI)
}

func (m *mockBucketAPI) Objects(ctx context.Context, query *storage.Query) objectIteratorAPI {
	return m.Called(ctx, query).Get(0).(objectIteratorAPI)
}

type mockObjectAPI struct {
	mock.Mock
}

func (m *mockObjectAPI) Generation(gen int64) objectAPI {
	return m.Called(gen).Get(0).(objectAPI)
}

func (m *mockObjectAPI) Attrs(ctx context.Context) (*storage.ObjectAttrs, error) {
	ret := m.Called(ctx)

	var r0 *storage.ObjectAttrs
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*storage.ObjectAttrs)
	}

	return r0, ret.Error(1)
}

func (m *mockObjectAPI) Delete(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockObjectAPI) NewReader(ctx context.Context) (io.ReadCloser, error) {
	ret := m.Called(ctx)

	var r0 io.ReadCloser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(io.ReadCloser)
	}

	return r0, ret.Error(1)
}

func (m *mockObjectAPI) NewWriter(ctx context.Context) writerAPI {
	return m.Called(ctx).Get(0).(writerAPI)
}

func (m *mockObjectAPI) ACL(ctx context.Context) ([]storage.ACLRule, error) {
	ret := m.Called(ctx)

	var r0 []storage.ACLRule
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]storage.ACLRule)
	}

	return r0, ret.Error(1)
}

// fakeWriter is an in-memory 'writerAPI' which records the attributes and data written.
type fakeWriter struct {
	attrs  storage.ObjectAttrs
	data   []byte
	closed bool
	gen    int64
	err    error
}

func (f *fakeWriter) Write(p []byte) (int, error) {
	f.data = append(f.data, p...)
	return len(p), nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return f.err
}

func (f *fakeWriter) SetAttrs(attrs storage.ObjectAttrs) {
	f.attrs = attrs
}

func (f *fakeWriter) Attrs() *storage.ObjectAttrs {
	attrs := f.attrs
	attrs.Generation = f.gen

	return &attrs
}

// fakeIterator is an 'objectIteratorAPI' over a fixed set of objects.
type fakeIterator struct {
	objects []*storage.ObjectAttrs
	err     error
}

func (f *fakeIterator) Next() (*storage.ObjectAttrs, error) {
	if len(f.objects) == 0 {
		if f.err != nil {
			return nil, f.err
		}

		return nil, iteratorDone
	}

	next := f.objects[0]
	f.objects = f.objects[1:]

	return next, nil
}
