package recurrence

import "errors"

// ErrInvalidPeriod is returned when a period is not a positive day count or
// a tolerance is negative.
var ErrInvalidPeriod = errors.New("invalid period")

// Pattern is the periodic pattern a sequence was classified as.
type Pattern string

const (
	PatternNone    Pattern = "none"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternYearly  Pattern = "yearly"
)

// Period is a candidate pattern and its nominal gap in days.
type Period struct {
	Pattern Pattern
	Days    int
}

// Config holds detector configuration
type Config struct {
	MinOccurrences   int      // Sequence group size needed to score a pattern (default: 3)
	AmountTolerance  float64  // Relative amount tolerance for sequence grouping (default: 0.05)
	NearbyWindowDays int      // Frequency window for the confidence score (default: 30)
	Periods          []Period // Candidate periods, earlier entries win ties
}

// DefaultConfig returns the standard detector settings.
func DefaultConfig() Config {
	return Config{
		MinOccurrences:   3,
		AmountTolerance:  0.05,
		NearbyWindowDays: 30,
		Periods: []Period{
			{Pattern: PatternWeekly, Days: 7},
			{Pattern: PatternMonthly, Days: 30},
			{Pattern: PatternYearly, Days: 365},
		},
	}
}

// SequenceResult is the best periodic pattern found for a transaction's
// vendor group.
type SequenceResult struct {
	Confidence float64
	Pattern    Pattern
	Length     int // Group size; 0 when the group is too small to score
}

// noSequence is returned when there is nothing to score.
var noSequence = SequenceResult{Confidence: 0, Pattern: PatternNone, Length: 0}
