package storage

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockRepository is an in-memory implementation of Repository for testing.
// It stores all data in maps and slices, making tests fast and isolated.
type MockRepository struct {
	mu       sync.Mutex
	runs     map[string]*FeatureRun
	runOrder []string
	features map[string][]FeatureRow
	nextRow  int64

	// Hooks for test assertions
	StartRunCalled     bool
	SaveFeaturesCalled bool
	LastSavedRows      []FeatureRow

	// Error injection for testing error paths
	StartRunErr     error
	CompleteRunErr  error
	FailRunErr      error
	SaveFeaturesErr error
	ListRunsErr     error
	ListFeaturesErr error
}

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{
		runs:     make(map[string]*FeatureRun),
		features: make(map[string][]FeatureRow),
		nextRow:  1,
	}
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// Close does nothing for mock
func (m *MockRepository) Close() error {
	return nil
}

// StartRun creates a running run in memory
func (m *MockRepository) StartRun(source string) (*FeatureRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartRunCalled = true
	if m.StartRunErr != nil {
		return nil, m.StartRunErr
	}

	run := &FeatureRun{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	m.runs[run.ID] = run
	m.runOrder = append(m.runOrder, run.ID)

	copied := *run
	return &copied, nil
}

// CompleteRun marks a run completed
func (m *MockRepository) CompleteRun(runID string, transactionCount int) error {
	if m.CompleteRunErr != nil {
		return m.CompleteRunErr
	}
	return m.finish(runID, RunStatusCompleted, transactionCount, "")
}

// FailRun marks a run failed
func (m *MockRepository) FailRun(runID string, message string) error {
	if m.FailRunErr != nil {
		return m.FailRunErr
	}
	return m.finish(runID, RunStatusFailed, 0, message)
}

func (m *MockRepository) finish(runID, status string, count int, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	now := time.Now().UTC()
	run.Status = status
	run.CompletedAt = &now
	run.TransactionCount = count
	run.ErrorMessage = message
	return nil
}

// GetRun retrieves a run by ID
func (m *MockRepository) GetRun(runID string) (*FeatureRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, ok := m.runs[runID]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	copied := *run
	return &copied, nil
}

// ListRuns returns runs newest first
func (m *MockRepository) ListRuns(limit int) ([]FeatureRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}

	limit = normalizeLimit(limit)
	runs := make([]FeatureRun, 0, len(m.runOrder))
	for i := len(m.runOrder) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, *m.runs[m.runOrder[i]])
	}
	return runs, nil
}

// SaveFeatures appends rows for a run
func (m *MockRepository) SaveFeatures(runID string, rows []FeatureRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveFeaturesCalled = true
	m.LastSavedRows = rows
	if m.SaveFeaturesErr != nil {
		return m.SaveFeaturesErr
	}
	if _, ok := m.runs[runID]; !ok {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}

	for _, row := range rows {
		row.ID = m.nextRow
		row.RunID = runID
		m.nextRow++
		m.features[runID] = append(m.features[runID], row)
	}
	return nil
}

// ListFeatures returns a page of rows ordered by transaction ID
func (m *MockRepository) ListFeatures(runID string, limit, offset int) (*FeatureListResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListFeaturesErr != nil {
		return nil, m.ListFeaturesErr
	}

	limit = normalizeLimit(limit)
	if offset < 0 {
		offset = 0
	}

	all := append([]FeatureRow(nil), m.features[runID]...)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].TransactionID < all[j].TransactionID
	})

	result := &FeatureListResult{
		Rows:       make([]FeatureRow, 0),
		TotalCount: len(all),
		Limit:      limit,
		Offset:     offset,
	}
	if offset < len(all) {
		end := offset + limit
		if end > len(all) {
			end = len(all)
		}
		result.Rows = append(result.Rows, all[offset:end]...)
	}
	return result, nil
}

// Reset clears all data and flags
func (m *MockRepository) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs = make(map[string]*FeatureRun)
	m.runOrder = nil
	m.features = make(map[string][]FeatureRow)
	m.nextRow = 1
	m.StartRunCalled = false
	m.SaveFeaturesCalled = false
	m.LastSavedRows = nil
	m.StartRunErr = nil
	m.CompleteRunErr = nil
	m.FailRunErr = nil
	m.SaveFeaturesErr = nil
	m.ListRunsErr = nil
	m.ListFeaturesErr = nil
}
