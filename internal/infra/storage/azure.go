package storage

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
)

// AzureStore uploads to Azure Blob Storage.
type AzureStore struct {
	client *azblob.Client
	info   ConnectionInfo
}

// NewAzureStore builds a client from a storage connection string. The blob
// URLs it reports come from the positional parse of the same string.
func NewAzureStore(connectionString string) (*AzureStore, error) {
	info, err := ParseConnectionString(connectionString)
	if err != nil {
		return nil, err
	}
	cli, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, &SinkError{Op: "parse", Err: err}
	}
	return &AzureStore{client: cli, info: info}, nil
}

func (s *AzureStore) Put(ctx context.Context, container, name string, data []byte, contentType string) error {
	_, err := s.client.UploadBuffer(ctx, container, name, data, &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)},
	})
	return err
}

func (s *AzureStore) URL(container, name string) string {
	return s.info.BlobURL(container, name)
}
