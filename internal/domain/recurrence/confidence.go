package recurrence

import (
	"strings"

	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// Confidence weights.
const (
	weightAmount     = 0.3
	weightRegularity = 0.3
	weightFrequency  = 0.2
	weightMetadata   = 0.2
)

// ConfidenceSignals are the sub-signals behind Confidence.
type ConfidenceSignals struct {
	// AmountVariation is the coefficient of variation of comparable amounts,
	// 1.0 with fewer than two of them or a zero mean.
	AmountVariation float64
	// IntervalStdev is the sample stdev of the gaps between comparable
	// dates. HasIntervals is false when there are fewer than two gaps.
	IntervalStdev float64
	HasIntervals  bool
	// Nearby counts same-name transactions within the window of ref,
	// including any on ref's own date.
	Nearby int
	// NameSimilarity is the mean token Jaccard similarity of ref's name to
	// each comparable transaction, 0 when there are none.
	NameSimilarity float64
}

// Score blends the signals into a single value. A missing interval
// signal contributes nothing.
func (s ConfidenceSignals) Score() float64 {
	score := weightAmount / (1 + s.AmountVariation)
	if s.HasIntervals {
		score += weightRegularity / (1 + s.IntervalStdev)
	}
	if s.Nearby > 0 {
		// Nearby / max(Nearby, 1) is always 1 here.
		score += weightFrequency * float64(s.Nearby) / float64(max(s.Nearby, 1))
	}
	score += weightMetadata * s.NameSimilarity
	return score
}

// Confidence returns the composite recurring-transaction score for ref.
func (d *Detector) Confidence(ref transaction.Transaction, history []transaction.Transaction) (float64, error) {
	signals, err := d.ConfidenceSignals(ref, history)
	if err != nil {
		return 0, err
	}
	return signals.Score(), nil
}

// ConfidenceSignals computes the sub-signals over transactions with the
// exact same name as ref. Transactions on ref's date are left out of
// everything except the nearby count.
//
// Gaps are taken in history order without sorting, so they may be
// negative.
func (d *Detector) ConfidenceSignals(ref transaction.Transaction, history []transaction.Transaction) (ConfidenceSignals, error) {
	var peers []transaction.Transaction
	for _, tx := range history {
		if tx.Name == ref.Name && tx.Date != ref.Date {
			peers = append(peers, tx)
		}
	}

	signals := ConfidenceSignals{AmountVariation: 1.0}

	if len(peers) >= 2 {
		amounts := make([]float64, len(peers))
		for i, tx := range peers {
			amounts[i] = tx.Amount
		}
		if m := mean(amounts); m != 0 {
			signals.AmountVariation = sampleStdev(amounts) / m
		}
	}

	if len(peers) >= 2 {
		parsed := make([]dates.Date, len(peers))
		for i, tx := range peers {
			p, err := d.parse(tx)
			if err != nil {
				return ConfidenceSignals{}, err
			}
			parsed[i] = p
		}
		gaps := make([]float64, 0, len(parsed)-1)
		for i := 1; i < len(parsed); i++ {
			gaps = append(gaps, float64(parsed[i].Sub(parsed[i-1])))
		}
		if len(gaps) >= 2 {
			signals.IntervalStdev = sampleStdev(gaps)
			signals.HasIntervals = true
		}
	}

	refDate, err := d.parse(ref)
	if err != nil {
		return ConfidenceSignals{}, err
	}
	for _, tx := range history {
		if tx.Name != ref.Name {
			continue
		}
		txDate, err := d.parse(tx)
		if err != nil {
			return ConfidenceSignals{}, err
		}
		if dates.DaysBetween(refDate, txDate) <= d.config.NearbyWindowDays {
			signals.Nearby++
		}
	}

	if len(peers) > 0 {
		refTokens := tokenSet(ref.Name)
		total := 0.0
		for _, tx := range peers {
			total += jaccard(refTokens, tokenSet(tx.Name))
		}
		signals.NameSimilarity = total / float64(len(peers))
	}

	return signals, nil
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		set[tok] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
