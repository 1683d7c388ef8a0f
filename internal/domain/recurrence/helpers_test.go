package recurrence

import (
	"testing"

	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// Helper to create test transaction
func makeTransaction(name string, amount float64, date string) transaction.Transaction {
	return transaction.Transaction{Name: name, Amount: amount, Date: date}
}

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	return NewDetector(dates.NewCache(dates.DefaultCapacity), DefaultConfig())
}

// series builds n transactions starting at start and spaced by gaps, cycling
// through gaps when n-1 exceeds len(gaps).
func series(t *testing.T, name string, amount float64, start string, n int, gaps ...int) []transaction.Transaction {
	t.Helper()
	d, err := dates.Parse(start)
	if err != nil {
		t.Fatalf("bad start date: %v", err)
	}
	txs := []transaction.Transaction{makeTransaction(name, amount, d.String())}
	for i := 1; i < n; i++ {
		d = dates.NewDate(d.Year(), d.Month(), d.Day()+gaps[(i-1)%len(gaps)])
		txs = append(txs, makeTransaction(name, amount, d.String()))
	}
	return txs
}
