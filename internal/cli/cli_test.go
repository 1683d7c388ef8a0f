package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/recurscan/internal/domain/features"
	"github.com/eshaffer321/recurscan/internal/domain/validator"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

const labeledCSV = `user_id,name,date,amount,recurring
u1,Netflix,2024-01-01,15.99,1
u1,Netflix,2024-01-31,15.99,1
u1,Netflix,2024-03-01,15.99,1
u1,Corner Deli,2024-01-05,8.25,0
u2,Gas Station,2024-02-10,40.12,0
`

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.DatabasePath = filepath.Join(t.TempDir(), "test.db")
	cfg.Observability.Logging.Level = "error"
	return cfg
}

func TestRunFeatures_CSVToStdout(t *testing.T) {
	var out bytes.Buffer
	opts := FeaturesOptions{Input: writeInput(t, labeledCSV), Labeled: true}

	err := RunFeatures(context.Background(), testConfig(t), opts, &out)
	require.NoError(t, err)

	rows, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "recurring", rows[0][len(rows[0])-1])
	assert.Equal(t, "Netflix", rows[1][1])
	assert.Equal(t, "1", rows[1][len(rows[1])-1])
	assert.Equal(t, "0", rows[4][len(rows[4])-1])
}

func TestRunFeatures_JSONFileAndStore(t *testing.T) {
	cfg := testConfig(t)
	output := filepath.Join(t.TempDir(), "features.json")
	opts := FeaturesOptions{Input: writeInput(t, labeledCSV), Output: output, Format: FormatJSON, Store: true}

	require.NoError(t, RunFeatures(context.Background(), cfg, opts, &bytes.Buffer{}))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var records []jsonRecord
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 5)
	assert.Nil(t, records[0].Recurring, "labels are only read with --labeled")
	assert.Equal(t, 1.0, records[2].Features[features.IsSequenceMonthly])

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	require.NoError(t, err)
	defer store.Close()
	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "transactions.csv", runs[0].Source)
	assert.Equal(t, 5, runs[0].TransactionCount)

	var listed bytes.Buffer
	require.NoError(t, RunListRuns(cfg, RunsOptions{Limit: 5}, &listed))
	assert.Contains(t, listed.String(), runs[0].ID)
	assert.Contains(t, listed.String(), storage.RunStatusCompleted)
}

func TestRunFeatures_Errors(t *testing.T) {
	cfg := testConfig(t)

	err := RunFeatures(context.Background(), cfg, FeaturesOptions{Input: writeInput(t, labeledCSV), Format: "xml"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")

	err = RunFeatures(context.Background(), cfg, FeaturesOptions{Input: filepath.Join(t.TempDir(), "missing.csv")}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "failed to open input")

	bad := writeInput(t, "user_id,name,date,amount\nu1,Hulu,Jan 5,7.99\n")
	err = RunFeatures(context.Background(), cfg, FeaturesOptions{Input: bad}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "Jan 5")
}

func TestRunFeatures_NonFiniteAmountSkippedInJSON(t *testing.T) {
	input := writeInput(t, "user_id,name,date,amount\nu1,Hulu,2024-01-05,NaN\nu1,Hulu,2024-02-05,7.99\n")
	var out bytes.Buffer

	err := RunFeatures(context.Background(), testConfig(t), FeaturesOptions{Input: input, Format: FormatJSON}, &out)
	require.NoError(t, err)

	var records []jsonRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, 7.99, records[0].Transaction.Amount)
}

func TestRunFeatures_ValidatesWithoutStore(t *testing.T) {
	input := writeInput(t, "user_id,name,date,amount\nu1,,2024-01-05,7.99\n,Hulu,2024-02-05,7.99\n")

	err := RunFeatures(context.Background(), testConfig(t), FeaturesOptions{Input: input}, &bytes.Buffer{})

	var verr *validator.Error
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Issues, 2)
}

func TestRunEvaluate(t *testing.T) {
	var out bytes.Buffer
	opts := EvaluateOptions{Input: writeInput(t, labeledCSV), Feature: features.IsAlwaysRecurring, Threshold: 1}

	m, err := RunEvaluate(context.Background(), testConfig(t), opts, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, m.TP)
	assert.Equal(t, 0, m.FP)
	assert.Equal(t, 0, m.FN)
	assert.Equal(t, 2, m.TN)
	assert.Equal(t, 1.0, m.F1)
	assert.True(t, strings.HasPrefix(out.String(), "Feature: is_always_recurring"))
}

func TestRunEvaluate_UnknownFeature(t *testing.T) {
	_, err := RunEvaluate(context.Background(), testConfig(t), EvaluateOptions{Feature: "nope"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown feature")
}

func TestRunEvaluate_RatioThresholdOutOfRange(t *testing.T) {
	opts := EvaluateOptions{Input: writeInput(t, labeledCSV), Feature: features.PctTransactionsSameDay, Threshold: 2}

	_, err := RunEvaluate(context.Background(), testConfig(t), opts, &bytes.Buffer{})

	assert.ErrorContains(t, err, "out of range")
}

func writeLabelerFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	rows := "u2,Cafe,2024-02-03,4.5,0\n" +
		"u1,Netflix,2024-01-01,15.99,1\n" +
		"u3,Gym,2024-01-10,30,1\n"
	for _, name := range []string{"alice.csv", "bob-batch1.csv", "carol.csv"} {
		content := "user_id,name,date,amount,recurring\n" + rows
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestRunMerge_WritesConsensus(t *testing.T) {
	dir := writeLabelerFiles(t)
	output := filepath.Join(t.TempDir(), "train.csv")
	var out bytes.Buffer

	result, err := RunMerge(testConfig(t), MergeOptions{Inputs: []string{dir}, Output: output}, &out)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Unique)
	require.Len(t, result.Labelers, 3)
	assert.Equal(t, "bob", result.Labelers[1].Name)
	assert.Contains(t, out.String(), "alice")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t,
		"user_id,name,date,amount,recurring\n"+
			"u1,Netflix,2024-01-01,15.99,1\n"+
			"u2,Cafe,2024-02-03,4.5,0\n"+
			"u3,Gym,2024-01-10,30,1\n",
		string(written))
}

func TestRunMerge_SplitsByUser(t *testing.T) {
	dir := writeLabelerFiles(t)
	tmp := t.TempDir()
	opts := MergeOptions{
		Inputs:     []string{dir},
		Output:     filepath.Join(tmp, "train.csv"),
		TestOutput: filepath.Join(tmp, "test.csv"),
		TrainRatio: 0.65,
		Seed:       7,
	}

	_, err := RunMerge(testConfig(t), opts, &bytes.Buffer{})
	require.NoError(t, err)

	train, err := os.ReadFile(opts.Output)
	require.NoError(t, err)
	test, err := os.ReadFile(opts.TestOutput)
	require.NoError(t, err)

	trainLines := strings.Split(strings.TrimSpace(string(train)), "\n")
	testLines := strings.Split(strings.TrimSpace(string(test)), "\n")
	assert.Len(t, trainLines, 2, "one of three users goes to train")
	assert.Len(t, testLines, 3)
}

func TestRunMerge_Errors(t *testing.T) {
	cfg := testConfig(t)

	_, err := RunMerge(cfg, MergeOptions{Inputs: []string{t.TempDir()}, Output: filepath.Join(t.TempDir(), "x.csv")}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "no labeled csv files")

	_, err = RunMerge(cfg, MergeOptions{Inputs: []string{writeLabelerFiles(t)}, Output: "x.csv", TestOutput: "y.csv", TrainRatio: 1}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "train ratio")
}

func TestLabelerName(t *testing.T) {
	assert.Equal(t, "alice", labelerName("/data/labeled/alice-batch2.csv"))
	assert.Equal(t, "bob", labelerName("bob.v1.csv"))
}

func TestRunServe_ReturnsBindError(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()
	port := ln.Addr().(*net.TCPAddr).Port

	done := make(chan error, 1)
	go func() { done <- RunServe(context.Background(), testConfig(t), ServeOptions{Port: port}) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "server error")
	case <-time.After(5 * time.Second):
		t.Fatal("RunServe did not return after a failed bind")
	}
}

func TestRunServe_StopsOnContextCancel(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunServe(ctx, testConfig(t), ServeOptions{Port: port}) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("RunServe did not stop after cancel")
	}
}

func TestPrintRuns_Empty(t *testing.T) {
	var out bytes.Buffer
	PrintRuns(&out, nil)
	assert.Equal(t, "No runs recorded.\n", out.String())
}
