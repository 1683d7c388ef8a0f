package dto

import (
	"time"

	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response with current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// FeaturesResponse carries one feature vector. Values follows Names order.
type FeaturesResponse struct {
	Features map[string]float64 `json:"features"`
	Names    []string           `json:"names"`
	Values   []float64          `json:"values"`
}

// RunResponse represents a feature run in API responses.
type RunResponse struct {
	ID               string `json:"id"`
	Source           string `json:"source"`
	Status           string `json:"status"`
	StartedAt        string `json:"started_at"`
	CompletedAt      string `json:"completed_at,omitempty"`
	TransactionCount int    `json:"transaction_count"`
	ErrorMessage     string `json:"error_message,omitempty"`
}

// NewRunResponse converts a storage run to an API response.
func NewRunResponse(run storage.FeatureRun) RunResponse {
	resp := RunResponse{
		ID:               run.ID,
		Source:           run.Source,
		Status:           run.Status,
		StartedAt:        run.StartedAt.UTC().Format(time.RFC3339),
		TransactionCount: run.TransactionCount,
		ErrorMessage:     run.ErrorMessage,
	}
	if run.CompletedAt != nil {
		resp.CompletedAt = run.CompletedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// RunListResponse is a list of runs.
type RunListResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}

// FeatureRowListResponse is a page of stored feature rows.
type FeatureRowListResponse struct {
	Rows       []storage.FeatureRow `json:"rows"`
	TotalCount int                  `json:"total_count"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}
