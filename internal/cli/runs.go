package cli

import (
	"io"

	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// RunListRuns prints the most recent feature runs.
func RunListRuns(cfg *config.Config, opts RunsOptions, stdout io.Writer) error {
	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.ListRuns(opts.Limit)
	if err != nil {
		return err
	}

	PrintRuns(stdout, runs)
	return nil
}
