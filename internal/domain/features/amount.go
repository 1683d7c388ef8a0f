package features

import (
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	cents99 = decimal.NewFromInt(99)
)

// EndsIn99 reports whether the amount's cents are 99.
//
// The amount is taken at its shortest decimal representation, made
// positive and rounded half away from zero to cents, so 19.991 counts and
// 19.995 (which rounds to 20.00) does not.
func EndsIn99(tx transaction.Transaction) bool {
	cents := decimal.NewFromFloat(tx.Amount).Abs().Round(2).Mul(hundred).Mod(hundred)
	return cents.Equal(cents99)
}

// CountSameAmount counts history transactions with exactly ref's amount.
func CountSameAmount(ref transaction.Transaction, history []transaction.Transaction) int {
	n := 0
	for _, tx := range history {
		if tx.Amount == ref.Amount {
			n++
		}
	}
	return n
}

// PercentSameAmount is CountSameAmount over len(history), 0 when empty.
func PercentSameAmount(ref transaction.Transaction, history []transaction.Transaction) float64 {
	if len(history) == 0 {
		return 0
	}
	return float64(CountSameAmount(ref, history)) / float64(len(history))
}
