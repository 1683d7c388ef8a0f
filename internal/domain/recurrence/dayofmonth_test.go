package recurrence

import (
	"testing"

	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountSameDay(t *testing.T) {
	d := newTestDetector(t)
	ref := makeTransaction("Phone", 60, "2024-01-15")
	history := []transaction.Transaction{
		ref,
		makeTransaction("Phone", 60, "2024-02-15"),
		makeTransaction("Phone", 60, "2024-03-14"),
		makeTransaction("Other", 10, "2024-03-17"),
		makeTransaction("Other", 10, "2024-04-01"),
	}

	tests := []struct {
		tolerance int
		want      int
	}{
		{tolerance: 0, want: 2},
		{tolerance: 1, want: 3},
		{tolerance: 2, want: 4},
	}

	for _, tt := range tests {
		n, err := d.CountSameDay(ref, history, tt.tolerance)
		require.NoError(t, err)
		assert.Equal(t, tt.want, n, "tolerance %d", tt.tolerance)
	}
}

func TestCountSameDay_NoMonthWraparound(t *testing.T) {
	d := newTestDetector(t)
	ref := makeTransaction("Rent", 900, "2024-01-31")
	history := []transaction.Transaction{makeTransaction("Rent", 900, "2024-03-01")}

	n, err := d.CountSameDay(ref, history, 2)

	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPctSameDay(t *testing.T) {
	d := newTestDetector(t)
	ref := makeTransaction("Phone", 60, "2024-01-15")
	history := []transaction.Transaction{
		ref,
		makeTransaction("Phone", 60, "2024-02-15"),
		makeTransaction("Phone", 60, "2024-02-16"),
		makeTransaction("Phone", 60, "2024-02-20"),
	}

	pct, err := d.PctSameDay(ref, history, 0)

	require.NoError(t, err)
	assert.InDelta(t, 0.5, pct, 1e-9)
}

func TestPctSameDay_EmptyHistory(t *testing.T) {
	d := newTestDetector(t)

	pct, err := d.PctSameDay(makeTransaction("Phone", 60, "2024-01-15"), nil, 0)

	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)
}

func TestCountSameDay_MalformedReference(t *testing.T) {
	d := newTestDetector(t)

	_, err := d.CountSameDay(makeTransaction("Phone", 60, "2024-1-15"), nil, 0)

	assert.Error(t, err)
}
