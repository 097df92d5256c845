package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/dperera/payconfirm/internal/config"
)

// BlobService archives raw inbound SMS payloads in Azure Blob Storage.
// Archived payloads outlive the transaction retention window and are the
// audit trail for what was actually submitted.
type BlobService struct {
	client *azblob.Client
}

// NewBlobService creates a new BlobService instance.
func NewBlobService(cfg *config.Config) (*BlobService, error) {
	slog.Info("initializing blob service", "blob_url", cfg.BlobServiceURL)
	var client *azblob.Client

	// Check if running locally with Azurite (http endpoint)
	if isLocal(cfg.BlobServiceURL) {
		slog.Info("using Azurite shared key credentials for blob service")
		name, key := getAzuriteCredentials()
		cred, err := azblob.NewSharedKeyCredential(name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		var err2 error
		client, err2 = azblob.NewClientWithSharedKeyCredential(cfg.BlobServiceURL, cred, nil)
		if err2 != nil {
			return nil, fmt.Errorf("failed to create blob client with shared key: %w", err2)
		}
	} else {
		// Production: Managed Identity
		cred, err := newDefaultAzureCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		client, err = azblob.NewClient(cfg.BlobServiceURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create blob client: %w", err)
		}
	}

	slog.Info("blob service initialized successfully")
	return &BlobService{client: client}, nil
}

// UploadText uploads a string to a blob.
func (s *BlobService) UploadText(ctx context.Context, containerName, blobName, text string) error {
	slog.Info("uploading blob", "container", containerName, "blob_name", blobName, "size_bytes", len(text))
	// Create container if not exists (mostly for dev)
	_, err := s.client.CreateContainer(ctx, containerName, nil)
	if err != nil && !strings.Contains(err.Error(), "ContainerAlreadyExists") {
		slog.Warn("failed to create container (may already exist)", "container", containerName, "error", err)
	}

	_, err = s.client.UploadBuffer(ctx, containerName, blobName, []byte(text), nil)
	if err != nil {
		slog.Error("failed to upload blob", "container", containerName, "blob_name", blobName, "error", err)
		return fmt.Errorf("failed to upload blob %s/%s: %w", containerName, blobName, err)
	}
	slog.Info("successfully uploaded blob", "container", containerName, "blob_name", blobName)
	return nil
}
