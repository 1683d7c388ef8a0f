// Package recurrence computes the recurring-billing signals for a single
// transaction evaluated against the user's transaction history.
//
// All methods are pure functions of (reference, history). The only shared
// state is the injected date cache.
//
// Example usage:
//
//	d := recurrence.NewDetector(dates.NewCache(dates.DefaultCapacity), recurrence.DefaultConfig())
//	seq, err := d.DetectSequence(tx, history)
//	if err != nil {
//		return err
//	}
//	if seq.Pattern == recurrence.PatternMonthly {
//		// ...
//	}
package recurrence

import (
	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// Detector scores recurrence signals.
type Detector struct {
	dates  *dates.Cache
	config Config
}

// NewDetector creates a detector. A nil cache parses every date.
func NewDetector(cache *dates.Cache, config Config) *Detector {
	if len(config.Periods) == 0 {
		config.Periods = DefaultConfig().Periods
	}
	return &Detector{
		dates:  cache,
		config: config,
	}
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.config
}

func (d *Detector) parse(tx transaction.Transaction) (dates.Date, error) {
	return d.dates.Parse(tx.Date)
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
