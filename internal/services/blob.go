package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/rocjay1/fam/internal/config"
)

// BlobService stores uploaded bank statements in Azure Blob Storage.
type BlobService struct {
	client    *azblob.Client
	container string
}

// NewBlobService creates a BlobService for the statements container.
func NewBlobService(cfg config.StorageConfig) (*BlobService, error) {
	blobURL := cfg.BlobServiceURL
	if blobURL == "" {
		return nil, fmt.Errorf("BLOB_SERVICE_URL is required")
	}

	slog.Info("initializing blob service", "blob_url", blobURL, "container", cfg.StatementsContainer)
	var client *azblob.Client

	if isLocal(blobURL) {
		name, key := azuriteCredentials()
		cred, err := azblob.NewSharedKeyCredential(name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(blobURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client with shared key: %w", err)
		}
	} else {
		cred, err := newDefaultAzureCredential("blob")
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		client, err = azblob.NewClient(blobURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	}

	return &BlobService{client: client, container: cfg.StatementsContainer}, nil
}

// UploadText stores text under blobName, creating the container on first use.
func (s *BlobService) UploadText(ctx context.Context, blobName, text string) error {
	slog.Info("uploading statement", "container", s.container, "blob_name", blobName, "size_bytes", len(text))

	_, err := s.client.CreateContainer(ctx, s.container, nil)
	var azErr *azcore.ResponseError
	if err != nil && !(errors.As(err, &azErr) && azErr.ErrorCode == "ContainerAlreadyExists") {
		slog.Warn("failed to create container", "container", s.container, "error", err)
	}

	if _, err := s.client.UploadBuffer(ctx, s.container, blobName, []byte(text), nil); err != nil {
		return fmt.Errorf("failed to upload blob %s/%s: %w", s.container, blobName, err)
	}
	return nil
}

// DownloadText returns the content of blobName.
func (s *BlobService) DownloadText(ctx context.Context, blobName string) (string, error) {
	resp, err := s.client.DownloadStream(ctx, s.container, blobName, nil)
	if err != nil {
		return "", fmt.Errorf("failed to download blob %s/%s: %w", s.container, blobName, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read blob content: %w", err)
	}

	slog.Info("downloaded statement", "container", s.container, "blob_name", blobName, "size_bytes", len(data))
	return string(data), nil
}
