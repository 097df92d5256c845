// Package classify maps raw bank SMS text to a transaction classification.
// It is pure: no I/O, no state, and the same input always yields the same
// result.
package classify

import (
	"regexp"
	"strings"

	"github.com/dperera/payconfirm/internal/models"
)

// NoAmount is the sentinel returned when no monetary value could be
// extracted from the text.
const NoAmount = "0.00"

// Result is the outcome of classifying one SMS.
type Result struct {
	IsBankMessage bool                   `json:"isBankMessage"`
	Type          models.TransactionType `json:"type"`
	Amount        string                 `json:"amount"`
}

// Keyword matching is substring based, not word-boundary based, so e.g.
// "undeposited" matches "deposit". Credit keywords are checked first and
// win when both sets appear in the same message.
var (
	creditKeywords = []string{"credited", "received", "deposit"}
	debitKeywords  = []string{"debited", "paid", "transfer"}
)

// An optional currency marker (lkr, rs, rs., amount), optional separator,
// then digits with optional commas and up to two decimal places. Matched
// against the original text, leftmost match wins. The captured group is
// used verbatim, commas included.
var amountPattern = regexp.MustCompile(`(?i)(?:lkr|rs\.?|amount)\s?[:\-]?\s?([\d,]+\.?\d{0,2})`)

// Classify inspects text and reports whether it looks like a bank
// transaction notification, and if so what kind and for how much.
func Classify(text string) Result {
	lower := strings.ToLower(text)

	typ := models.TransactionUnknown
	switch {
	case containsAny(lower, creditKeywords):
		typ = models.TransactionCredit
	case containsAny(lower, debitKeywords):
		typ = models.TransactionDebit
	}

	amount := NoAmount
	if m := amountPattern.FindStringSubmatch(text); m != nil && m[1] != "" {
		amount = m[1]
	}

	return Result{
		IsBankMessage: amount != NoAmount && typ != models.TransactionUnknown,
		Type:          typ,
		Amount:        amount,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
