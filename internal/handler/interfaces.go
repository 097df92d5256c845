package handler

import (
	"context"

	"github.com/dperera/payconfirm/internal/models"
)

// TransactionStore defines the storage collaborator used by the handlers.
// DeleteTransactions applies all deletions as one batched write.
type TransactionStore interface {
	AppendTransaction(ctx context.Context, accountID string, rec models.TransactionRecord) (string, error)
	ListAccounts(ctx context.Context) ([]string, error)
	ListTransactions(ctx context.Context, accountID string) ([]models.StoredTransaction, error)
	DeleteTransactions(ctx context.Context, keys []models.TransactionKey) error
	MarkRead(ctx context.Context, accountID, recordID string) error
}

// QueueClient defines the interface for queue operations used by handlers.
type QueueClient interface {
	EnqueueMessage(ctx context.Context, queueName string, message any) error
}

// BlobClient defines the interface for blob storage operations used by handlers.
type BlobClient interface {
	UploadText(ctx context.Context, containerName, blobName, content string) error
}

// AlertClient defines the interface for push alert dispatch.
type AlertClient interface {
	Send(ctx context.Context, msg models.AlertMessage) error
}
