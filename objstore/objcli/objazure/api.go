package objazure

import (
	"context"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
)

//go:generate mockgen -source=api.go -destination=mock_api_test.go -package=objazure

// serviceAPI is a top level interface which allows interactions with the Azure blob storage service.
type serviceAPI interface {
	NewContainerClient(container string) containerAPI
}

// serviceClient implements the 'serviceAPI' interface and encapsulates the Azure SDK in a unit testable interface.
type serviceClient struct {
	client *service.Client
}

func (s *serviceClient) NewContainerClient(name string) containerAPI {
	return &containerClient{client: s.client.NewContainerClient(name)}
}

// containerAPI is a container level interface which allows interactions with an Azure blob storage container.
type containerAPI interface {
	NewBlockBlobClient(blob string) blockBlobAPI
	NewListBlobsFlatPager(o *container.ListBlobsFlatOptions) flatPagerAPI
}

// containerClient implements the 'containerAPI' interface and encapsulates the Azure SDK in a unit testable interface.
type containerClient struct {
	client *container.Client
}

func (c *containerClient) NewBlockBlobClient(name string) blockBlobAPI {
	return c.client.NewBlockBlobClient(name)
}

func (c *containerClient) NewListBlobsFlatPager(o *container.ListBlobsFlatOptions) flatPagerAPI {
	return c.client.NewListBlobsFlatPager(o)
}

// flatPagerAPI is the subset of the SDK pager used to list the blobs in a container.
type flatPagerAPI interface {
	More() bool
	NextPage(ctx context.Context) (container.ListBlobsFlatResponse, error)
}

var _ flatPagerAPI = (*runtime.Pager[container.ListBlobsFlatResponse])(nil)

// blockBlobAPI is a block blob interface which allows interactions with a block blob stored in an Azure container.
type blockBlobAPI interface {
	Delete(ctx context.Context, o *blob.DeleteOptions) (blob.DeleteResponse, error)
	DownloadStream(ctx context.Context, o *blob.DownloadStreamOptions) (blob.DownloadStreamResponse, error)
	GetProperties(ctx context.Context, o *blob.GetPropertiesOptions) (blob.GetPropertiesResponse, error)
	Upload(ctx context.Context, body io.ReadSeekCloser, o *blockblob.UploadOptions) (blockblob.UploadResponse, error)
}

var _ blockBlobAPI = (*blockblob.Client)(nil)
