package features

import (
	"testing"

	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
)

func TestEndsIn99(t *testing.T) {
	tests := []struct {
		amount float64
		want   bool
	}{
		{amount: 19.99, want: true},
		{amount: 20.00, want: false},
		{amount: 19.991, want: true},  // rounds to 19.99
		{amount: 19.995, want: false}, // rounds to 20.00
		{amount: 0.99, want: true},
		{amount: -4.99, want: true},
		{amount: 99, want: false},
		{amount: 1099.99, want: true},
	}

	for _, tt := range tests {
		got := EndsIn99(transaction.Transaction{Amount: tt.amount})
		assert.Equal(t, tt.want, got, "amount %v", tt.amount)
	}
}

func TestSameAmount(t *testing.T) {
	ref := transaction.Transaction{Name: "A", Amount: 10, Date: "2024-01-01"}
	history := []transaction.Transaction{
		ref,
		{Name: "B", Amount: 10, Date: "2024-01-02"},
		{Name: "C", Amount: 10.01, Date: "2024-01-03"},
		{Name: "D", Amount: 5, Date: "2024-01-04"},
	}

	assert.Equal(t, 2, CountSameAmount(ref, history))
	assert.InDelta(t, 0.5, PercentSameAmount(ref, history), 1e-9)
}

func TestPercentSameAmount_MatchesCountOverLength(t *testing.T) {
	ref := transaction.Transaction{Amount: 3}
	histories := [][]transaction.Transaction{
		{{Amount: 3}},
		{{Amount: 3}, {Amount: 4}, {Amount: 3}},
		{{Amount: 1}, {Amount: 2}, {Amount: 4}},
	}

	for _, h := range histories {
		want := float64(CountSameAmount(ref, h)) / float64(len(h))
		assert.Equal(t, want, PercentSameAmount(ref, h))
	}
	assert.Equal(t, 0.0, PercentSameAmount(ref, nil))
}
