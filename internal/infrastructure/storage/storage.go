package storage

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Storage provides SQLite database access for feature runs.
// It implements the Repository interface.
type Storage struct {
	db  *sql.DB
	now func() time.Time
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	// _foreign_keys applies the pragma to every pooled connection
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// Enable foreign key constraints (SQLite-specific)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db, now: time.Now}, nil
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// StartRun inserts a new run in the running state
func (s *Storage) StartRun(source string) (*FeatureRun, error) {
	run := &FeatureRun{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    RunStatusRunning,
		StartedAt: s.now().UTC().Truncate(time.Second),
	}

	_, err := s.db.Exec(`
		INSERT INTO feature_runs (id, source, status, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Source, run.Status, run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to start run: %w", err)
	}

	return run, nil
}

// CompleteRun records the completion of a run
func (s *Storage) CompleteRun(runID string, transactionCount int) error {
	return s.finishRun(runID, RunStatusCompleted, transactionCount, "")
}

// FailRun records a failed run
func (s *Storage) FailRun(runID string, message string) error {
	return s.finishRun(runID, RunStatusFailed, 0, message)
}

func (s *Storage) finishRun(runID, status string, count int, message string) error {
	res, err := s.db.Exec(`
		UPDATE feature_runs
		SET status = ?, completed_at = ?, transaction_count = ?, error_message = ?
		WHERE id = ?
	`, status, s.now().UTC().Truncate(time.Second), count, message, runID)
	if err != nil {
		return fmt.Errorf("failed to update run %s: %w", runID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return nil
}

const runColumns = `id, source, status, started_at, completed_at, transaction_count, error_message`

// GetRun retrieves a run by ID
func (s *Storage) GetRun(runID string) (*FeatureRun, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM feature_runs WHERE id = ?`, runID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]FeatureRun, error) {
	rows, err := s.db.Query(`
		SELECT `+runColumns+` FROM feature_runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	runs := make([]FeatureRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*FeatureRun, error) {
	var run FeatureRun
	var completedAt sql.NullTime

	err := sc.Scan(&run.ID, &run.Source, &run.Status, &run.StartedAt,
		&completedAt, &run.TransactionCount, &run.ErrorMessage)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return &run, nil
}

// SaveFeatures stores all rows for a run atomically
func (s *Storage) SaveFeatures(runID string, rows []FeatureRow) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO transaction_features
		(run_id, transaction_id, user_id, name, date, amount, label, features_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, row := range rows {
		featuresJSON, err := json.Marshal(row.Features)
		if err != nil {
			return fmt.Errorf("failed to encode features for transaction %d: %w", row.TransactionID, err)
		}

		var label sql.NullInt64
		if row.Label != nil {
			label = sql.NullInt64{Int64: int64(*row.Label), Valid: true}
		}

		if _, err := stmt.Exec(runID, row.TransactionID, row.UserID, row.Name,
			row.Date, row.Amount, label, string(featuresJSON)); err != nil {
			return fmt.Errorf("failed to save features for transaction %d: %w", row.TransactionID, err)
		}
	}

	return tx.Commit()
}

// ListFeatures returns a page of rows for a run
func (s *Storage) ListFeatures(runID string, limit, offset int) (*FeatureListResult, error) {
	limit = normalizeLimit(limit)
	if offset < 0 {
		offset = 0
	}

	result := &FeatureListResult{
		Rows:   make([]FeatureRow, 0),
		Limit:  limit,
		Offset: offset,
	}

	err := s.db.QueryRow(`SELECT COUNT(*) FROM transaction_features WHERE run_id = ?`, runID).
		Scan(&result.TotalCount)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT id, run_id, transaction_id, user_id, name, date, amount, label, features_json
		FROM transaction_features
		WHERE run_id = ?
		ORDER BY transaction_id, id
		LIMIT ? OFFSET ?
	`, runID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var row FeatureRow
		var label sql.NullInt64
		var featuresJSON string

		if err := rows.Scan(&row.ID, &row.RunID, &row.TransactionID, &row.UserID, &row.Name,
			&row.Date, &row.Amount, &label, &featuresJSON); err != nil {
			return nil, err
		}

		if label.Valid {
			l := int(label.Int64)
			row.Label = &l
		}
		if err := json.Unmarshal([]byte(featuresJSON), &row.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features for row %d: %w", row.ID, err)
		}

		result.Rows = append(result.Rows, row)
	}

	return result, rows.Err()
}
