package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/eshaffer321/recurscan/internal/adapters/csvfile"
	"github.com/eshaffer321/recurscan/internal/application/service"
	"github.com/eshaffer321/recurscan/internal/domain/features"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/eshaffer321/recurscan/internal/domain/validator"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// jsonRecord is one element of the JSON feature output.
type jsonRecord struct {
	Transaction transaction.Transaction `json:"transaction"`
	Features    features.Features       `json:"features"`
	Recurring   *transaction.Label      `json:"recurring,omitempty"`
}

// RunFeatures extracts features for every transaction in the input file
// and writes them to the output. stdout receives the features when no
// output file is given.
func RunFeatures(ctx context.Context, cfg *config.Config, opts FeaturesOptions, stdout io.Writer) error {
	logger := newLogger(cfg, "features", opts.Verbose)
	start := time.Now()

	format := opts.Format
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatJSON {
		return fmt.Errorf("unknown format %q (want csv or json)", format)
	}

	txs, labels, err := readInput(opts.Input, opts.Labeled, logger)
	if err != nil {
		return err
	}

	var store storage.Repository
	if opts.Store {
		s, err := storage.NewStorage(cfg.Storage.DatabasePath)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()
		store = s
	}

	svc := service.NewFeatureService(cfg, store, logger)

	var feats []features.Features
	var run *storage.FeatureRun
	if store != nil {
		run, feats, err = svc.Run(ctx, filepath.Base(opts.Input), txs, labels)
	} else if err = validator.Validate(txs); err == nil {
		feats, err = svc.Extract(ctx, txs)
	}
	if err != nil {
		return err
	}

	out := stdout
	if opts.Output != "" && opts.Output != "-" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := writeFeatures(out, format, txs, feats, labels); err != nil {
		return fmt.Errorf("failed to write features: %w", err)
	}

	attrs := []any{"transactions", len(txs), "duration", time.Since(start)}
	if run != nil {
		attrs = append(attrs, "run_id", run.ID)
	}
	logger.Info("features written", attrs...)
	return nil
}

func writeFeatures(out io.Writer, format string, txs []transaction.Transaction, feats []features.Features, labels []transaction.Label) error {
	if format == FormatJSON {
		records := make([]jsonRecord, len(txs))
		for i, tx := range txs {
			records[i] = jsonRecord{Transaction: tx, Features: feats[i]}
			if labels != nil {
				records[i].Recurring = &labels[i]
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	records := make([]csvfile.FeatureRecord, len(txs))
	for i, tx := range txs {
		records[i] = csvfile.FeatureRecord{Transaction: tx, Features: feats[i]}
		if labels != nil {
			records[i].Label = &labels[i]
		}
	}
	return csvfile.WriteFeatures(out, records, labels != nil)
}
