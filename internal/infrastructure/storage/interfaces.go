package storage

import "errors"

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("not found")

// Repository defines the complete storage interface.
// This interface allows swapping implementations and makes testing with
// mocks straightforward.
type Repository interface {
	RunRepository
	FeatureRepository
	Close() error
}

// RunRepository handles feature run tracking
type RunRepository interface {
	// StartRun records the start of a run and returns it
	StartRun(source string) (*FeatureRun, error)

	// CompleteRun marks a run completed with the number of transactions processed
	CompleteRun(runID string, transactionCount int) error

	// FailRun marks a run failed with the error that stopped it
	FailRun(runID string, message string) error

	// GetRun retrieves a run by ID
	GetRun(runID string) (*FeatureRun, error)

	// ListRuns returns the most recent runs first
	ListRuns(limit int) ([]FeatureRun, error)
}

// FeatureRepository handles per-transaction feature rows
type FeatureRepository interface {
	// SaveFeatures stores rows for a run in a single transaction
	SaveFeatures(runID string, rows []FeatureRow) error

	// ListFeatures returns rows for a run ordered by transaction ID
	ListFeatures(runID string, limit, offset int) (*FeatureListResult, error)
}
