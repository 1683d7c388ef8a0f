package recurrence

import (
	"fmt"

	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// CountDaysApart counts history transactions whose distance from ref lands
// within tolerance days of any positive multiple of period.
//
// A distance d matches when d >= period-tolerance and d mod period is
// within tolerance of 0 on either side of the wrap.
func (d *Detector) CountDaysApart(
	ref transaction.Transaction,
	history []transaction.Transaction,
	period, tolerance int,
) (int, error) {
	if period <= 0 {
		return 0, fmt.Errorf("%w: period must be positive, got %d", ErrInvalidPeriod, period)
	}
	if tolerance < 0 {
		return 0, fmt.Errorf("%w: tolerance must not be negative, got %d", ErrInvalidPeriod, tolerance)
	}

	refDate, err := d.parse(ref)
	if err != nil {
		return 0, err
	}

	lower := period - tolerance
	count := 0
	for _, tx := range history {
		txDate, err := d.parse(tx)
		if err != nil {
			return 0, err
		}
		diff := dates.DaysBetween(refDate, txDate)

		if diff < lower {
			continue
		}

		remainder := diff % period
		if remainder <= tolerance || remainder >= lower {
			count++
		}
	}

	return count, nil
}

// PctDaysApart is CountDaysApart divided by len(history). An empty history
// yields 0.
func (d *Detector) PctDaysApart(
	ref transaction.Transaction,
	history []transaction.Transaction,
	period, tolerance int,
) (float64, error) {
	n, err := d.CountDaysApart(ref, history, period, tolerance)
	if err != nil {
		return 0, err
	}
	return ratio(n, len(history)), nil
}
