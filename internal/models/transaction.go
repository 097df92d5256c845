package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a bank SMS as money in or money out.
type TransactionType string

const (
	TransactionCredit  TransactionType = "CREDIT"
	TransactionDebit   TransactionType = "DEBIT"
	TransactionUnknown TransactionType = "UNKNOWN"
)

// TransactionRecord is a recognized bank transaction persisted under an account.
// Records are immutable after creation except for the Read flag.
type TransactionRecord struct {
	Amount       string          `json:"amount"` // raw extracted string, may contain commas
	Type         TransactionType `json:"type"`
	OriginalText string          `json:"originalText"`
	Timestamp    string          `json:"timestamp"` // ISO 8601, assigned at write time
	Read         bool            `json:"read"`
}

// AmountDecimal returns the amount as a decimal with thousands separators
// stripped. The stored amount string is never modified; this is for
// reporting only. Returns zero if the amount cannot be parsed.
func (r TransactionRecord) AmountDecimal() decimal.Decimal {
	d, err := decimal.NewFromString(strings.ReplaceAll(r.Amount, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// StoredTransaction pairs a record with the row key it was stored under.
type StoredTransaction struct {
	ID string `json:"id"`
	TransactionRecord
}

// TransactionKey identifies a single stored record for deletion.
type TransactionKey struct {
	AccountID string
	RecordID  string
}

// AlertMessage is the payload queued on ingestion and delivered to the
// push alert endpoint by the queue trigger.
type AlertMessage struct {
	AccountID string `json:"accountId"`
	Type      string `json:"type"`
	Amount    string `json:"amount"`
	Timestamp string `json:"timestamp"`
}
