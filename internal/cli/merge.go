package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eshaffer321/recurscan/internal/adapters/csvfile"
	"github.com/eshaffer321/recurscan/internal/domain/consensus"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
)

// RunMerge merges labeled files from several labelers into consensus
// labels, prints how well each labeler agreed with the majority, and
// writes the consensus rows.
func RunMerge(cfg *config.Config, opts MergeOptions, stdout io.Writer) (consensus.Result, error) {
	logger := newLogger(cfg, "merge", opts.Verbose)

	if opts.Output == "" {
		return consensus.Result{}, fmt.Errorf("output path is required")
	}
	if opts.TestOutput != "" && (opts.TrainRatio <= 0 || opts.TrainRatio >= 1) {
		return consensus.Result{}, fmt.Errorf("train ratio %g must be between 0 and 1", opts.TrainRatio)
	}

	paths, err := labeledFiles(opts.Inputs)
	if err != nil {
		return consensus.Result{}, err
	}
	if len(paths) == 0 {
		return consensus.Result{}, fmt.Errorf("no labeled csv files found")
	}

	merger := consensus.NewMerger(consensus.Config{MinVotes: opts.MinVotes, MinScore: opts.MinScore})
	reader := csvfile.NewReader(logger)
	total := 0
	for _, path := range paths {
		labeler := labelerName(path)
		rows, err := readLabeledFile(reader, path)
		if err != nil {
			return consensus.Result{}, err
		}
		logger.Info("read labeled file", "path", path, "labeler", labeler, "transactions", len(rows))
		for _, row := range rows {
			merger.Add(labeler, row.Transaction, row.RawLabel)
		}
		total += len(rows)
	}

	result := merger.Resolve()
	logger.Info("merged labels",
		"transactions", total,
		"unique", result.Unique,
		"candidates", result.Candidates,
		"consensus", len(result.Decisions))

	PrintLabelers(stdout, result.Labelers)

	train, test := result.Decisions, []consensus.Decision(nil)
	if opts.TestOutput != "" {
		train, test = splitByUser(result.Decisions, opts.TrainRatio, opts.Seed)
		if err := writeDecisions(opts.TestOutput, test); err != nil {
			return consensus.Result{}, err
		}
	}
	if err := writeDecisions(opts.Output, train); err != nil {
		return consensus.Result{}, err
	}

	logger.Info("consensus written", "train", len(train), "test", len(test))
	return result, nil
}

// labeledFiles expands directories into the .csv files they contain.
func labeledFiles(inputs []string) ([]string, error) {
	var paths []string
	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		if !info.IsDir() {
			paths = append(paths, in)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(in, "*.csv"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		paths = append(paths, matches...)
	}
	return paths, nil
}

// labelerName maps "alice-batch2.csv" to "alice".
func labelerName(path string) string {
	name := filepath.Base(path)
	name, _, _ = strings.Cut(name, ".")
	name, _, _ = strings.Cut(name, "-")
	return name
}

func readLabeledFile(reader *csvfile.Reader, path string) ([]csvfile.LabeledTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := reader.ReadLabeled(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// splitByUser assigns whole users to train or test so no user's history is
// split between them. Order within each side is preserved.
func splitByUser(decisions []consensus.Decision, ratio float64, seed uint64) (train, test []consensus.Decision) {
	seen := make(map[string]bool)
	var users []string
	for _, d := range decisions {
		if !seen[d.Transaction.UserID] {
			seen[d.Transaction.UserID] = true
			users = append(users, d.Transaction.UserID)
		}
	}
	sort.Strings(users)

	rng := rand.New(rand.NewPCG(seed, seed))
	rng.Shuffle(len(users), func(i, j int) { users[i], users[j] = users[j], users[i] })

	trainUsers := make(map[string]bool)
	for _, u := range users[:int(float64(len(users))*ratio)] {
		trainUsers[u] = true
	}

	for _, d := range decisions {
		if trainUsers[d.Transaction.UserID] {
			train = append(train, d)
		} else {
			test = append(test, d)
		}
	}
	return train, test
}

func writeDecisions(path string, decisions []consensus.Decision) error {
	rows := make([]csvfile.LabeledTransaction, len(decisions))
	for i, d := range decisions {
		rows[i] = csvfile.LabeledTransaction{
			Transaction: d.Transaction,
			Label:       d.Label,
			RawLabel:    fmt.Sprint(int(d.Label)),
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := csvfile.WriteLabeled(f, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
