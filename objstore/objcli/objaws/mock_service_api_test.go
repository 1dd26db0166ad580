package objaws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/mock"
)

// mockServiceAPI is a testify mock of 'serviceAPI', the functional options are not forwarded to the mock as the upload
// manager and paginators append their own.
type mockServiceAPI struct {
	mock.Mock
}

func (m *mockServiceAPI) AbortMultipartUpload(ctx context.Context, params *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.AbortMultipartUploadOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.AbortMultipartUploadInput) *s3.AbortMultipartUploadOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.AbortMultipartUploadOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) CompleteMultipartUpload(ctx context.Context, params *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.CompleteMultipartUploadOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.CompleteMultipartUploadInput) *s3.CompleteMultipartUploadOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.CompleteMultipartUploadOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) CreateMultipartUpload(ctx context.Context, params *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.CreateMultipartUploadOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.CreateMultipartUploadInput) *s3.CreateMultipartUploadOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.CreateMultipartUploadOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.DeleteObjectOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.DeleteObjectInput) *s3.DeleteObjectOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.DeleteObjectOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, _ ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.DeleteObjectsOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.DeleteObjectsInput) *s3.DeleteObjectsOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.DeleteObjectsOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) GetBucketReplication(ctx context.Context, params *s3.GetBucketReplicationInput, _ ...func(*s3.Options)) (*s3.GetBucketReplicationOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.GetBucketReplicationOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.GetBucketReplicationInput) *s3.GetBucketReplicationOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.GetBucketReplicationOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.GetObjectOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.GetObjectInput) *s3.GetObjectOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.GetObjectOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) GetObjectAcl(ctx context.Context, params *s3.GetObjectAclInput, _ ...func(*s3.Options)) (*s3.GetObjectAclOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.GetObjectAclOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.GetObjectAclInput) *s3.GetObjectAclOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.GetObjectAclOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) GetObjectTagging(ctx context.Context, params *s3.GetObjectTaggingInput, _ ...func(*s3.Options)) (*s3.GetObjectTaggingOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.GetObjectTaggingOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.GetObjectTaggingInput) *s3.GetObjectTaggingOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.GetObjectTaggingOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.HeadObjectOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.HeadObjectInput) *s3.HeadObjectOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.HeadObjectOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) ListObjectVersions(ctx context.Context, params *s3.ListObjectVersionsInput, _ ...func(*s3.Options)) (*s3.ListObjectVersionsOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.ListObjectVersionsOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.ListObjectVersionsInput) *s3.ListObjectVersionsOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.ListObjectVersionsOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.PutObjectOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.PutObjectInput) *s3.PutObjectOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.PutObjectOutput)
	}

	return r0, ret.Error(1)
}

func (m *mockServiceAPI) UploadPart(ctx context.Context, params *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	ret := m.Called(ctx, params)

	var r0 *s3.UploadPartOutput
	if fn, ok := ret.Get(0).(func(context.Context, *s3.UploadPartInput) *s3.UploadPartOutput); ok {
		r0 = fn(ctx, params)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*s3.UploadPartOutput)
	}

	return r0, ret.Error(1)
}
