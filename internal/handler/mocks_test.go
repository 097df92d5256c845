package handler

import (
	"context"

	"github.com/dperera/payconfirm/internal/models"
)

// MockTransactionStore is a mock implementation of TransactionStore
type MockTransactionStore struct {
	AppendTransactionFunc  func(ctx context.Context, accountID string, rec models.TransactionRecord) (string, error)
	ListAccountsFunc       func(ctx context.Context) ([]string, error)
	ListTransactionsFunc   func(ctx context.Context, accountID string) ([]models.StoredTransaction, error)
	DeleteTransactionsFunc func(ctx context.Context, keys []models.TransactionKey) error
	MarkReadFunc           func(ctx context.Context, accountID, recordID string) error
}

func (m *MockTransactionStore) AppendTransaction(ctx context.Context, accountID string, rec models.TransactionRecord) (string, error) {
	if m.AppendTransactionFunc != nil {
		return m.AppendTransactionFunc(ctx, accountID, rec)
	}
	return "", nil
}

func (m *MockTransactionStore) ListAccounts(ctx context.Context) ([]string, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx)
	}
	return nil, nil
}

func (m *MockTransactionStore) ListTransactions(ctx context.Context, accountID string) ([]models.StoredTransaction, error) {
	if m.ListTransactionsFunc != nil {
		return m.ListTransactionsFunc(ctx, accountID)
	}
	return nil, nil
}

func (m *MockTransactionStore) DeleteTransactions(ctx context.Context, keys []models.TransactionKey) error {
	if m.DeleteTransactionsFunc != nil {
		return m.DeleteTransactionsFunc(ctx, keys)
	}
	return nil
}

func (m *MockTransactionStore) MarkRead(ctx context.Context, accountID, recordID string) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, accountID, recordID)
	}
	return nil
}

// MockQueueClient is a mock implementation of QueueClient
type MockQueueClient struct {
	EnqueueMessageFunc func(ctx context.Context, queueName string, message any) error
}

func (m *MockQueueClient) EnqueueMessage(ctx context.Context, queueName string, message any) error {
	if m.EnqueueMessageFunc != nil {
		return m.EnqueueMessageFunc(ctx, queueName, message)
	}
	return nil
}

// MockBlobClient is a mock implementation of BlobClient
type MockBlobClient struct {
	UploadTextFunc func(ctx context.Context, containerName, blobName, content string) error
}

func (m *MockBlobClient) UploadText(ctx context.Context, containerName, blobName, content string) error {
	if m.UploadTextFunc != nil {
		return m.UploadTextFunc(ctx, containerName, blobName, content)
	}
	return nil
}

// MockAlertClient is a mock implementation of AlertClient
type MockAlertClient struct {
	SendFunc func(ctx context.Context, msg models.AlertMessage) error
}

func (m *MockAlertClient) Send(ctx context.Context, msg models.AlertMessage) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return nil
}
