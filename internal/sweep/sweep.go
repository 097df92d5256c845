// Package sweep deletes transaction records older than a retention window.
// It is storage agnostic: any store that can enumerate accounts and records
// and apply a batched delete can be swept.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dperera/payconfirm/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultWindow is the retention window used when none is configured.
const DefaultWindow = 24 * time.Hour

// Store is the slice of the storage collaborator the sweeper needs.
type Store interface {
	ListAccounts(ctx context.Context) ([]string, error)
	ListTransactions(ctx context.Context, accountID string) ([]models.StoredTransaction, error)
	DeleteTransactions(ctx context.Context, keys []models.TransactionKey) error
}

// Result summarizes one sweep run.
type Result struct {
	Deleted    int
	SweptTotal decimal.Decimal
}

// Run scans every account in the store and deletes records whose timestamp
// is strictly before now minus window, as one batched operation.
//
// A record with a missing or malformed timestamp is skipped, not deleted:
// bad input favors retention over cleanup. A failure enumerating one
// account skips that account and continues. Run returns an error only when
// the account enumeration itself cannot start or the batched delete fails.
func Run(ctx context.Context, now time.Time, window time.Duration, store Store) (Result, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	cutoff := now.Add(-window)

	accounts, err := store.ListAccounts(ctx)
	if err != nil {
		return Result{SweptTotal: decimal.Zero}, fmt.Errorf("failed to list accounts: %w", err)
	}

	var keys []models.TransactionKey
	total := decimal.Zero

	for _, account := range accounts {
		records, err := store.ListTransactions(ctx, account)
		if err != nil {
			slog.Error("failed to list transactions, skipping account", "account", account, "error", err)
			continue
		}

		for _, rec := range records {
			ts, err := time.Parse(time.RFC3339, rec.Timestamp)
			if err != nil {
				slog.Warn("skipping record with malformed timestamp",
					"account", account, "record", rec.ID, "timestamp", rec.Timestamp)
				continue
			}

			if ts.Before(cutoff) {
				keys = append(keys, models.TransactionKey{AccountID: account, RecordID: rec.ID})
				total = total.Add(rec.AmountDecimal())
			}
		}
	}

	if len(keys) == 0 {
		return Result{SweptTotal: decimal.Zero}, nil
	}

	if err := store.DeleteTransactions(ctx, keys); err != nil {
		return Result{SweptTotal: decimal.Zero}, fmt.Errorf("failed to delete expired transactions: %w", err)
	}

	return Result{Deleted: len(keys), SweptTotal: total}, nil
}
