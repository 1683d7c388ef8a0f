// Package validator checks transaction batches before feature extraction.
//
// Extraction stops at the first malformed date. Validating up front lets
// callers report every bad row at once instead.
package validator

import (
	"fmt"
	"math"
	"strings"

	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// Issue is one problem found in a batch.
type Issue struct {
	// Index is the position of the transaction in the batch
	Index int `json:"index"`

	// ID is the transaction ID, 0 when unset
	ID int64 `json:"id,omitempty"`

	// Field names the offending column
	Field string `json:"field"`

	// Reason explains the problem
	Reason string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("transaction %d: %s: %s", i.Index, i.Field, i.Reason)
}

// Error wraps the issues of an invalid batch.
type Error struct {
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 1 {
		return e.Issues[0].String()
	}
	return fmt.Sprintf("%s (and %d more)", e.Issues[0].String(), len(e.Issues)-1)
}

// ValidateTransactions returns every issue in txs. Names may be any
// non-blank string; dates must be YYYY-MM-DD; amounts must be finite.
func ValidateTransactions(txs []transaction.Transaction) []Issue {
	var issues []Issue
	add := func(i int, field, reason string) {
		issues = append(issues, Issue{Index: i, ID: txs[i].ID, Field: field, Reason: reason})
	}

	for i, tx := range txs {
		if strings.TrimSpace(tx.UserID) == "" {
			add(i, "user_id", "is empty")
		}
		if strings.TrimSpace(tx.Name) == "" {
			add(i, "name", "is empty")
		}
		if _, err := dates.Parse(tx.Date); err != nil {
			add(i, "date", fmt.Sprintf("%q is not a YYYY-MM-DD date", tx.Date))
		}
		if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
			add(i, "amount", "is not a finite number")
		}
	}

	return issues
}

// Validate returns an *Error when txs has any issue.
func Validate(txs []transaction.Transaction) error {
	if issues := ValidateTransactions(txs); len(issues) > 0 {
		return &Error{Issues: issues}
	}
	return nil
}
