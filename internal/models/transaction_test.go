package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransactionRecord_AmountDecimal(t *testing.T) {
	r := TransactionRecord{Amount: "2,000.00"}
	if !r.AmountDecimal().Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Expected 2000, got %s", r.AmountDecimal())
	}

	r = TransactionRecord{Amount: "500"}
	if !r.AmountDecimal().Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected 500, got %s", r.AmountDecimal())
	}

	r = TransactionRecord{Amount: "1,234,567.89"}
	if !r.AmountDecimal().Equal(decimal.RequireFromString("1234567.89")) {
		t.Errorf("Expected 1234567.89, got %s", r.AmountDecimal())
	}
}

func TestTransactionRecord_AmountDecimal_Invalid(t *testing.T) {
	r := TransactionRecord{Amount: "not-a-number"}
	if !r.AmountDecimal().IsZero() {
		t.Errorf("Expected zero for unparsable amount, got %s", r.AmountDecimal())
	}

	r = TransactionRecord{Amount: ""}
	if !r.AmountDecimal().IsZero() {
		t.Errorf("Expected zero for empty amount, got %s", r.AmountDecimal())
	}
}
