package recurrence

import (
	"fmt"

	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// CountSameDay counts history transactions whose day of month is within
// tolerance of ref's day of month.
//
// The comparison is on the plain 1-31 number: the 31st and the 1st are 30
// apart even though they can be adjacent days.
func (d *Detector) CountSameDay(
	ref transaction.Transaction,
	history []transaction.Transaction,
	tolerance int,
) (int, error) {
	if tolerance < 0 {
		return 0, fmt.Errorf("%w: tolerance must not be negative, got %d", ErrInvalidPeriod, tolerance)
	}

	refDate, err := d.parse(ref)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, tx := range history {
		txDate, err := d.parse(tx)
		if err != nil {
			return 0, err
		}
		if abs(txDate.Day()-refDate.Day()) <= tolerance {
			count++
		}
	}

	return count, nil
}

// PctSameDay is CountSameDay divided by len(history). An empty history
// yields 0.
func (d *Detector) PctSameDay(
	ref transaction.Transaction,
	history []transaction.Transaction,
	tolerance int,
) (float64, error) {
	n, err := d.CountSameDay(ref, history, tolerance)
	if err != nil {
		return 0, err
	}
	return ratio(n, len(history)), nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
