// Package csvfile reads and writes transaction CSV files.
//
// Input files carry a header row with user_id, name, date and amount
// columns, plus a recurring column when labeled. Column order is free.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// Column names
const (
	ColUserID    = "user_id"
	ColName      = "name"
	ColDate      = "date"
	ColAmount    = "amount"
	ColRecurring = "recurring"
)

var requiredColumns = []string{ColUserID, ColName, ColDate, ColAmount}

// LabeledTransaction is a transaction with its recurring annotation.
type LabeledTransaction struct {
	transaction.Transaction
	Label transaction.Label `json:"recurring"`
	// RawLabel is the cell as written, "0" when empty.
	RawLabel string `json:"-"`
}

// Reader parses transaction CSVs. Rows with an unparseable or non-finite
// amount are skipped with a warning.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a reader. A nil logger discards warnings.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Reader{logger: logger}
}

// ReadUnlabeled reads transactions, ignoring any recurring column.
func (r *Reader) ReadUnlabeled(in io.Reader) ([]transaction.Transaction, error) {
	rows, err := r.read(in, false)
	if err != nil {
		return nil, err
	}

	txs := make([]transaction.Transaction, len(rows))
	for i, row := range rows {
		txs[i] = row.Transaction
	}
	return txs, nil
}

// ReadLabeled reads transactions and their recurring column.
func (r *Reader) ReadLabeled(in io.Reader) ([]LabeledTransaction, error) {
	return r.read(in, true)
}

func (r *Reader) read(in io.Reader, labeled bool) ([]LabeledTransaction, error) {
	cr := csv.NewReader(in)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty csv: missing header")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	labelCol, hasLabel := index[ColRecurring]
	if labeled && !hasLabel {
		return nil, fmt.Errorf("missing column %q", ColRecurring)
	}

	var out []LabeledTransaction
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rawAmount := strings.TrimSpace(record[index[ColAmount]])
		amount, err := strconv.ParseFloat(rawAmount, 64)
		if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
			r.logger.Warn("skipping row with invalid amount", "line", line, "amount", rawAmount)
			continue
		}

		row := LabeledTransaction{
			Transaction: transaction.Transaction{
				ID:     int64(len(out) + 1),
				UserID: strings.TrimSpace(record[index[ColUserID]]),
				Name:   record[index[ColName]],
				Date:   strings.TrimSpace(record[index[ColDate]]),
				Amount: amount,
			},
		}
		if labeled {
			row.RawLabel = transaction.NormalizeRawLabel(record[labelCol])
			row.Label = transaction.ParseLabel(row.RawLabel)
		}
		out = append(out, row)
	}

	return out, nil
}
