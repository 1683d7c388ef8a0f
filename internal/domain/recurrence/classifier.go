package recurrence

import (
	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// recurringPeriods are the gaps (in days) that mark a repeat charge.
var recurringPeriods = []int{7, 14, 30}

// IsRecurring reports whether another transaction with the exact same name
// and amount, on a different date, sits a multiple of 7, 14 or 30 days away
// from ref.
//
// This is a coarse check: a 28-day gap passes through 7.
func (d *Detector) IsRecurring(ref transaction.Transaction, history []transaction.Transaction) (bool, error) {
	refDate, err := d.parse(ref)
	if err != nil {
		return false, err
	}

	var gaps []int
	for _, tx := range history {
		if tx.Name != ref.Name || tx.Amount != ref.Amount || tx.Date == ref.Date {
			continue
		}
		txDate, err := d.parse(tx)
		if err != nil {
			return false, err
		}
		gaps = append(gaps, dates.DaysBetween(refDate, txDate))
	}

	for _, gap := range gaps {
		for _, p := range recurringPeriods {
			if gap%p == 0 {
				return true, nil
			}
		}
	}

	return false, nil
}
