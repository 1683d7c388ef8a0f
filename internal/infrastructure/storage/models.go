package storage

import (
	"time"
)

// Run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// FeatureRun is one batch of feature extraction persisted to the database.
type FeatureRun struct {
	ID               string     `json:"id"`
	Source           string     `json:"source"`
	Status           string     `json:"status"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	TransactionCount int        `json:"transaction_count"`
	ErrorMessage     string     `json:"error_message,omitempty"`
}

// FeatureRow is the feature vector of a single transaction within a run.
type FeatureRow struct {
	ID            int64              `json:"id"`
	RunID         string             `json:"run_id"`
	TransactionID int64              `json:"transaction_id"`
	UserID        string             `json:"user_id"`
	Name          string             `json:"name"`
	Date          string             `json:"date"`
	Amount        float64            `json:"amount"`
	Label         *int               `json:"label,omitempty"`
	Features      map[string]float64 `json:"features"`
}

// FeatureListResult contains paginated feature rows
type FeatureListResult struct {
	Rows       []FeatureRow `json:"rows"`
	TotalCount int          `json:"total_count"`
	Limit      int          `json:"limit"`
	Offset     int          `json:"offset"`
}

const (
	defaultListLimit = 50
	maxListLimit     = 1000
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
