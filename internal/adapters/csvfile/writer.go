package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/eshaffer321/recurscan/internal/domain/features"
	"github.com/eshaffer321/recurscan/internal/domain/transaction"
)

// FeatureRecord is one output row of a feature file.
type FeatureRecord struct {
	Transaction transaction.Transaction
	Features    features.Features
	// Label is written as a trailing recurring column when set.
	Label *transaction.Label
}

// WriteLabeled writes transactions with their raw labels.
func WriteLabeled(out io.Writer, rows []LabeledTransaction) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{ColUserID, ColName, ColDate, ColAmount, ColRecurring}); err != nil {
		return err
	}

	for _, row := range rows {
		raw := row.RawLabel
		if raw == "" {
			raw = strconv.Itoa(int(row.Label))
		}
		err := w.Write([]string{
			row.UserID,
			row.Name,
			row.Date,
			formatFloat(row.Amount),
			raw,
		})
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// WriteFeatures writes one row per record: the identifying transaction
// columns followed by every feature in features.Names order. The recurring
// column is included when withLabels is set.
func WriteFeatures(out io.Writer, records []FeatureRecord, withLabels bool) error {
	w := csv.NewWriter(out)

	header := append([]string{ColUserID, ColName, ColDate}, features.Names...)
	if withLabels {
		header = append(header, ColRecurring)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, rec := range records {
		row := make([]string, 0, len(header))
		row = append(row, rec.Transaction.UserID, rec.Transaction.Name, rec.Transaction.Date)
		for _, v := range rec.Features.Vector() {
			row = append(row, formatFloat(v))
		}
		if withLabels {
			if rec.Label == nil {
				return fmt.Errorf("record %d: missing label", i)
			}
			row = append(row, strconv.Itoa(int(*rec.Label)))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
