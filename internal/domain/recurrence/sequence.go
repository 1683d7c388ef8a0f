package recurrence

import (
	"math"
	"sort"
	"strings"

	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// DetectSequence groups history by vendor and amount, then scores how well
// the group's gaps fit each candidate period.
//
// The group holds transactions whose name matches ref case-insensitively
// and whose amount satisfies |amount - ref.Amount| / ref.Amount below the
// configured tolerance. The ratio is signed by ref.Amount, so a negative
// reference admits every same-name amount.
//
// A period matches when the mean gap is within max(2, 10% of the period)
// of it. Its confidence is 1 - stdev/period, and the highest confidence
// wins. Length is the group size whenever the group is large enough to
// score, even if no period matched.
func (d *Detector) DetectSequence(ref transaction.Transaction, history []transaction.Transaction) (SequenceResult, error) {
	if ref.Amount == 0 {
		return noSequence, nil
	}

	name := strings.ToLower(ref.Name)
	var group []transaction.Transaction
	for _, tx := range history {
		if strings.ToLower(tx.Name) != name {
			continue
		}
		if math.Abs(tx.Amount-ref.Amount)/ref.Amount < d.config.AmountTolerance {
			group = append(group, tx)
		}
	}

	if len(group) < d.config.MinOccurrences || len(group) < 2 {
		return noSequence, nil
	}

	parsed := make([]dates.Date, len(group))
	for i, tx := range group {
		p, err := d.parse(tx)
		if err != nil {
			return SequenceResult{}, err
		}
		parsed[i] = p
	}
	sort.SliceStable(parsed, func(i, j int) bool { return parsed[i].Before(parsed[j]) })

	gaps := make([]float64, 0, len(parsed)-1)
	for i := 1; i < len(parsed); i++ {
		gaps = append(gaps, float64(parsed[i].Sub(parsed[i-1])))
	}

	meanGap := mean(gaps)
	stdevGap := 0.0
	if len(gaps) > 1 {
		stdevGap = sampleStdev(gaps)
	}

	best := SequenceResult{Confidence: 0, Pattern: PatternNone, Length: len(group)}
	for _, p := range d.config.Periods {
		expected := float64(p.Days)
		tolerance := math.Max(2, expected*0.1)
		if math.Abs(meanGap-expected) > tolerance {
			continue
		}

		confidence := 1 - stdevGap/(expected+1e-6)
		if confidence > best.Confidence {
			best.Pattern = p.Pattern
			best.Confidence = clamp(confidence, 0, 1)
		}
	}

	return best, nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
