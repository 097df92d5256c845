package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/dperera/payconfirm/internal/config"
	"github.com/dperera/payconfirm/internal/models"
	"github.com/google/uuid"
)

// DatabaseService stores transaction records in Azure Table Storage.
// Layout: PartitionKey = account id, RowKey = arrival-ordered key, so a
// partition scan returns records in arrival order.
type DatabaseService struct {
	serviceClient     *aztables.ServiceClient
	transactionsTable string
}

// NewDatabaseService creates a DatabaseService and ensures the table exists.
func NewDatabaseService(cfg *config.Config) (*DatabaseService, error) {
	var client *aztables.ServiceClient

	// Check if running locally with Azurite (http endpoint)
	if isLocal(cfg.TableServiceURL) {
		slog.Info("using Azurite credentials for database service")
		name, key := getAzuriteCredentials()
		cred, err := aztables.NewSharedKeyCredential(name, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		var err2 error
		client, err2 = aztables.NewServiceClientWithSharedKey(cfg.TableServiceURL, cred, nil)
		if err2 != nil {
			return nil, fmt.Errorf("failed to create table service client with shared key: %w", err2)
		}
	} else {
		// Production: Managed Identity
		slog.Info("using default Azure credentials for database service")
		cred, err := newDefaultAzureCredential()
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		var err2 error
		client, err2 = aztables.NewServiceClient(cfg.TableServiceURL, cred, nil)
		if err2 != nil {
			return nil, fmt.Errorf("failed to create table service client: %w", err2)
		}
	}

	svc := &DatabaseService{
		serviceClient:     client,
		transactionsTable: cfg.TransactionsTable,
	}

	if err := svc.CreateTables(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	slog.Info("database service initialized successfully",
		"table_url", cfg.TableServiceURL,
		"transactions_table", cfg.TransactionsTable,
	)
	return svc, nil
}

// CreateTables ensures the transactions table exists.
func (s *DatabaseService) CreateTables(ctx context.Context) error {
	_, err := s.serviceClient.CreateTable(ctx, s.transactionsTable, nil)
	if err != nil {
		// Ignore error if table already exists
		var azErr *azcore.ResponseError
		if errors.As(err, &azErr) && azErr.ErrorCode == "TableAlreadyExists" {
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", s.transactionsTable, err)
	}
	return nil
}

func (s *DatabaseService) getClient() *aztables.Client {
	return s.serviceClient.NewClient(s.transactionsTable)
}

// newRowKey builds a row key that sorts lexically by arrival instant, with
// a uuid suffix so simultaneous arrivals never collide.
func newRowKey(arrival time.Time) string {
	return fmt.Sprintf("%020d_%s", arrival.UnixNano(), uuid.New().String()[:8])
}

// AppendTransaction stores a record under the given account and returns
// the generated record id.
func (s *DatabaseService) AppendTransaction(ctx context.Context, accountID string, rec models.TransactionRecord) (string, error) {
	client := s.getClient()
	rowKey := newRowKey(time.Now())

	// "Timestamp" is reserved by the table service, so the record's
	// creation instant is stored as CreatedAt.
	entity := map[string]any{
		"PartitionKey": accountID,
		"RowKey":       rowKey,
		"Amount":       rec.Amount,
		"Type":         string(rec.Type),
		"OriginalText": rec.OriginalText,
		"CreatedAt":    rec.Timestamp,
		"Read":         rec.Read,
	}

	entityJson, err := json.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("failed to marshal transaction entity: %w", err)
	}

	if _, err := client.AddEntity(ctx, entityJson, nil); err != nil {
		return "", fmt.Errorf("failed to add transaction for account %s: %w", accountID, err)
	}

	return rowKey, nil
}

// ListAccounts returns every distinct account id present in the store.
func (s *DatabaseService) ListAccounts(ctx context.Context) ([]string, error) {
	client := s.getClient()

	selectFields := "PartitionKey"
	pager := client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Select: &selectFields,
	})

	seen := make(map[string]bool)
	var accounts []string

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		for _, entity := range resp.Entities {
			var parsed map[string]any
			if err := json.Unmarshal(entity, &parsed); err != nil {
				continue
			}
			if pk, ok := parsed["PartitionKey"].(string); ok && !seen[pk] {
				seen[pk] = true
				accounts = append(accounts, pk)
			}
		}
	}

	return accounts, nil
}

// ListTransactions returns all records for an account in arrival order.
func (s *DatabaseService) ListTransactions(ctx context.Context, accountID string) ([]models.StoredTransaction, error) {
	client := s.getClient()

	filter := fmt.Sprintf("PartitionKey eq '%s'", accountID)
	pager := client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
	})

	var records []models.StoredTransaction

	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
		}

		for _, entity := range resp.Entities {
			var parsed map[string]any
			if err := json.Unmarshal(entity, &parsed); err != nil {
				continue
			}

			getString := func(key string) string {
				if v, ok := parsed[key].(string); ok {
					return v
				}
				return ""
			}

			read := false
			if v, ok := parsed["Read"].(bool); ok {
				read = v
			}

			records = append(records, models.StoredTransaction{
				ID: getString("RowKey"),
				TransactionRecord: models.TransactionRecord{
					Amount:       getString("Amount"),
					Type:         models.TransactionType(getString("Type")),
					OriginalText: getString("OriginalText"),
					Timestamp:    getString("CreatedAt"),
					Read:         read,
				},
			})
		}
	}

	return records, nil
}

// DeleteTransactions removes the given records as one batched write,
// chunked at the table service's 100-action transaction limit. Batches are
// grouped by account since a table transaction spans a single partition.
func (s *DatabaseService) DeleteTransactions(ctx context.Context, keys []models.TransactionKey) error {
	if len(keys) == 0 {
		return nil
	}

	client := s.getClient()

	partitions := make(map[string][]string)
	for _, k := range keys {
		partitions[k.AccountID] = append(partitions[k.AccountID], k.RecordID)
	}

	for accountID, rowKeys := range partitions {
		var batch []aztables.TransactionAction
		for _, rk := range rowKeys {
			deleteEntity := map[string]any{
				"PartitionKey": accountID,
				"RowKey":       rk,
			}
			deleteJson, _ := json.Marshal(deleteEntity)
			batch = append(batch, aztables.TransactionAction{
				ActionType: aztables.TransactionTypeDelete,
				Entity:     deleteJson,
			})
		}

		const batchSize = 100
		for i := 0; i < len(batch); i += batchSize {
			end := i + batchSize
			if end > len(batch) {
				end = len(batch)
			}
			_, err := client.SubmitTransaction(ctx, batch[i:end], nil)
			if err != nil {
				return fmt.Errorf("failed to submit delete batch for account %s: %w", accountID, err)
			}
		}
	}

	return nil
}

// MarkRead flips the Read flag on a single record. Records are otherwise
// immutable after creation.
func (s *DatabaseService) MarkRead(ctx context.Context, accountID, recordID string) error {
	client := s.getClient()

	resp, err := client.GetEntity(ctx, accountID, recordID, nil)
	if err != nil {
		return fmt.Errorf("failed to get transaction %s/%s: %w", accountID, recordID, err)
	}

	var parsed map[string]any
	if err := json.Unmarshal(resp.Value, &parsed); err != nil {
		return fmt.Errorf("failed to unmarshal transaction entity: %w", err)
	}

	parsed["Read"] = true
	updatedJson, _ := json.Marshal(parsed)
	if _, err := client.UpdateEntity(ctx, updatedJson, nil); err != nil {
		return fmt.Errorf("failed to update transaction %s/%s: %w", accountID, recordID, err)
	}
	return nil
}
