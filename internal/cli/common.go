package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/eshaffer321/recurscan/internal/adapters/csvfile"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
	"github.com/eshaffer321/recurscan/internal/infrastructure/logging"
)

// newLogger builds a system logger on stderr, raising the level to debug
// when verbose. stdout stays free for command output.
func newLogger(cfg *config.Config, system string, verbose bool) *slog.Logger {
	loggingCfg := cfg.Observability.Logging
	if verbose {
		loggingCfg.Level = "debug"
	}
	return logging.NewLoggerTo(os.Stderr, loggingCfg).With("system", system)
}

// readInput loads transactions from a CSV file. Labels are nil unless
// labeled is set.
func readInput(path string, labeled bool, logger *slog.Logger) ([]transaction.Transaction, []transaction.Label, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := csvfile.NewReader(logger)
	if !labeled {
		txs, err := reader.ReadUnlabeled(f)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		return txs, nil, nil
	}

	rows, err := reader.ReadLabeled(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	txs := make([]transaction.Transaction, len(rows))
	labels := make([]transaction.Label, len(rows))
	for i, row := range rows {
		txs[i] = row.Transaction
		labels[i] = row.Label
	}
	return txs, labels, nil
}
