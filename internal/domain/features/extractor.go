// Package features assembles the flat feature vector for one transaction.
//
// Example usage:
//
//	ex := features.NewExtractor(detector, vendor.New(vendor.DefaultLists()))
//	f, err := ex.Extract(tx, userTransactions)
//	if err != nil {
//		return err
//	}
//	conf := f[features.RecurringConfidence]
package features

import (
	"fmt"

	"github.com/eshaffer321/recurscan/internal/domain/recurrence"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/eshaffer321/recurscan/internal/domain/vendor"
)

// Features maps feature name to value. Booleans are 1/0 and counts are
// whole numbers.
type Features map[string]float64

// Vector returns the values in Names order.
func (f Features) Vector() []float64 {
	v := make([]float64, len(Names))
	for i, name := range Names {
		v[i] = f[name]
	}
	return v
}

// Extractor computes features for a transaction against its history.
type Extractor struct {
	detector *recurrence.Detector
	vendors  *vendor.Heuristics
}

// NewExtractor creates an extractor.
func NewExtractor(detector *recurrence.Detector, vendors *vendor.Heuristics) *Extractor {
	return &Extractor{
		detector: detector,
		vendors:  vendors,
	}
}

type intervalSpec struct {
	count, pct        string
	period, tolerance int
}

var intervalSpecs = []intervalSpec{
	{Days14ApartExact, PctDays14ApartExact, 14, 0},
	{Days14ApartOffBy1, PctDays14ApartOffBy1, 14, 1},
	{Days7ApartExact, PctDays7ApartExact, 7, 0},
	{Days7ApartOffBy1, PctDays7ApartOffBy1, 7, 1},
}

// Extract builds the full feature set for ref. Only a malformed date
// makes it fail.
func (e *Extractor) Extract(ref transaction.Transaction, history []transaction.Transaction) (Features, error) {
	f := make(Features, len(Names))

	f[NTransactionsSameAmount] = float64(CountSameAmount(ref, history))
	f[PercentTransactionsSameAmount] = PercentSameAmount(ref, history)
	f[EndsIn99Name] = boolValue(EndsIn99(ref))
	f[Amount] = ref.Amount

	for _, tol := range []struct {
		name      string
		tolerance int
	}{{SameDayExact, 0}, {SameDayOffBy1, 1}, {SameDayOffBy2, 2}} {
		n, err := e.detector.CountSameDay(ref, history, tol.tolerance)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", tol.name, err)
		}
		f[tol.name] = float64(n)
	}
	pctSameDay, err := e.detector.PctSameDay(ref, history, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", PctTransactionsSameDay, err)
	}
	f[PctTransactionsSameDay] = pctSameDay

	for _, spec := range intervalSpecs {
		n, err := e.detector.CountDaysApart(ref, history, spec.period, spec.tolerance)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.count, err)
		}
		f[spec.count] = float64(n)

		pct, err := e.detector.PctDaysApart(ref, history, spec.period, spec.tolerance)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", spec.pct, err)
		}
		f[spec.pct] = pct
	}

	f[IsInsurance] = boolValue(e.vendors.IsInsurance(ref))
	f[IsUtility] = boolValue(e.vendors.IsUtility(ref))
	f[IsPhone] = boolValue(e.vendors.IsPhone(ref))
	f[IsAlwaysRecurring] = boolValue(e.vendors.IsAlwaysRecurring(ref))

	recurring, err := e.detector.IsRecurring(ref, history)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", IsRecurring, err)
	}
	f[IsRecurring] = boolValue(recurring)

	confidence, err := e.detector.Confidence(ref, history)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", RecurringConfidence, err)
	}
	f[RecurringConfidence] = confidence

	seq, err := e.detector.DetectSequence(ref, history)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	f[SequenceConfidence] = seq.Confidence
	f[IsSequenceWeekly] = boolValue(seq.Pattern == recurrence.PatternWeekly)
	f[IsSequenceMonthly] = boolValue(seq.Pattern == recurrence.PatternMonthly)
	f[SequenceLength] = float64(seq.Length)

	return f, nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
