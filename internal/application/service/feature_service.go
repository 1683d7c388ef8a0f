package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/eshaffer321/recurscan/internal/domain/dates"
	"github.com/eshaffer321/recurscan/internal/domain/features"
	"github.com/eshaffer321/recurscan/internal/domain/recurrence"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/eshaffer321/recurscan/internal/domain/validator"
	"github.com/eshaffer321/recurscan/internal/domain/vendor"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// ErrNoRepository is returned by Run when the service has no storage.
var ErrNoRepository = errors.New("no repository configured")

// RunError reports a run that started but did not complete. The failure
// is recorded on the stored run.
type RunError struct {
	RunID string
	Err   error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s failed: %v", e.RunID, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// NewExtractorFromConfig wires the date cache, detector and vendor lists
// from application config.
func NewExtractorFromConfig(cfg *config.Config) *features.Extractor {
	rc := recurrence.DefaultConfig()
	if cfg.Features.MinOccurrences > 0 {
		rc.MinOccurrences = cfg.Features.MinOccurrences
	}
	if cfg.Features.AmountTolerance > 0 {
		rc.AmountTolerance = cfg.Features.AmountTolerance
	}
	if cfg.Features.NearbyWindowDays > 0 {
		rc.NearbyWindowDays = cfg.Features.NearbyWindowDays
	}

	cache := dates.NewCache(cfg.Features.DateCacheSize)
	detector := recurrence.NewDetector(cache, rc)

	vendors := vendor.New(vendor.Lists{
		AlwaysRecurring: cfg.Vendors.AlwaysRecurring,
		Insurance:       cfg.Vendors.Insurance,
		Utility:         cfg.Vendors.Utility,
		Phone:           cfg.Vendors.Phone,
	})

	return features.NewExtractor(detector, vendors)
}

// FeatureService computes feature vectors in bulk and records runs.
type FeatureService struct {
	extractor *features.Extractor
	storage   storage.Repository
	logger    *slog.Logger
	workers   int
}

// NewFeatureService creates a new feature service. store may be nil when
// runs are never persisted.
func NewFeatureService(cfg *config.Config, store storage.Repository, logger *slog.Logger) *FeatureService {
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Features.Workers
	if workers <= 0 {
		workers = 1
	}
	return &FeatureService{
		extractor: NewExtractorFromConfig(cfg),
		storage:   store,
		logger:    logger.With(slog.String("component", "feature_service")),
		workers:   workers,
	}
}

// ExtractOne computes features for a single transaction against the given
// history.
func (s *FeatureService) ExtractOne(ref transaction.Transaction, history []transaction.Transaction) (features.Features, error) {
	return s.extractor.Extract(ref, history)
}

// Extract computes features for every transaction, using each user's full
// set of transactions as history. Results line up with txs by index.
// Users are processed concurrently.
func (s *FeatureService) Extract(ctx context.Context, txs []transaction.Transaction) ([]features.Features, error) {
	users, groups := transaction.GroupByUser(txs)
	perUser := make(map[string][]features.Features, len(users))
	for _, user := range users {
		perUser[user] = make([]features.Features, len(groups[user]))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, user := range users {
		history := groups[user]
		out := perUser[user]
		g.Go(func() error {
			for j, tx := range history {
				if err := gctx.Err(); err != nil {
					return err
				}
				f, err := s.extractor.Extract(tx, history)
				if err != nil {
					return fmt.Errorf("transaction %d (user %s): %w", tx.ID, user, err)
				}
				out[j] = f
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Buckets keep input order, so the n-th transaction of a user in txs
	// is the n-th entry of that user's results.
	results := make([]features.Features, len(txs))
	next := make(map[string]int, len(users))
	for i, tx := range txs {
		results[i] = perUser[tx.UserID][next[tx.UserID]]
		next[tx.UserID]++
	}

	s.logger.Debug("extracted features", "transactions", len(txs), "users", len(users))
	return results, nil
}

// Run extracts features for txs and persists them as a new run. labels is
// optional; when given it must line up with txs. Invalid batches are
// rejected with a *validator.Error before a run is started. A failed
// extraction or save is recorded on the run and returned as a *RunError.
func (s *FeatureService) Run(
	ctx context.Context,
	source string,
	txs []transaction.Transaction,
	labels []transaction.Label,
) (*storage.FeatureRun, []features.Features, error) {
	if s.storage == nil {
		return nil, nil, ErrNoRepository
	}
	if labels != nil && len(labels) != len(txs) {
		return nil, nil, fmt.Errorf("got %d labels for %d transactions", len(labels), len(txs))
	}
	if err := validator.Validate(txs); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	run, err := s.storage.StartRun(source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start run: %w", err)
	}

	log := s.logger.With("run_id", run.ID, "source", source)
	log.Info("feature run started", "transactions", len(txs))

	feats, err := s.Extract(ctx, txs)
	if err != nil {
		return nil, nil, s.fail(log, run.ID, err)
	}

	rows := make([]storage.FeatureRow, len(txs))
	for i, tx := range txs {
		rows[i] = storage.FeatureRow{
			TransactionID: tx.ID,
			UserID:        tx.UserID,
			Name:          tx.Name,
			Date:          tx.Date,
			Amount:        tx.Amount,
			Features:      feats[i],
		}
		if labels != nil {
			l := int(labels[i])
			rows[i].Label = &l
		}
	}

	if err := s.storage.SaveFeatures(run.ID, rows); err != nil {
		return nil, nil, s.fail(log, run.ID, fmt.Errorf("failed to save features: %w", err))
	}
	if err := s.storage.CompleteRun(run.ID, len(txs)); err != nil {
		return nil, nil, fmt.Errorf("failed to complete run: %w", err)
	}

	completed, err := s.storage.GetRun(run.ID)
	if err != nil {
		return nil, nil, err
	}

	log.Info("feature run completed", "transactions", len(txs), "duration", time.Since(start))
	return completed, feats, nil
}

func (s *FeatureService) fail(log *slog.Logger, runID string, cause error) error {
	log.Error("feature run failed", "error", cause)
	if err := s.storage.FailRun(runID, cause.Error()); err != nil {
		log.Warn("failed to record run failure", "error", err)
	}
	return &RunError{RunID: runID, Err: cause}
}
