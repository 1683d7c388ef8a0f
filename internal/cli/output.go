package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/eshaffer321/recurscan/internal/domain/consensus"
	"github.com/eshaffer321/recurscan/internal/domain/evaluation"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// PrintMetrics prints an evaluation summary
func PrintMetrics(w io.Writer, feature string, threshold float64, m evaluation.Metrics) {
	fmt.Fprintf(w, "Feature: %s | Threshold: %g\n", feature, threshold)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "TP=%d FP=%d FN=%d TN=%d\n", m.TP, m.FP, m.FN, m.TN)
	fmt.Fprintf(w, "Precision=%.4f Recall=%.4f F1=%.4f\n", m.Precision, m.Recall, m.F1)
}

// PrintRuns prints one line per run
func PrintRuns(w io.Writer, runs []storage.FeatureRun) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-10s  %-20s  %6s  %s\n", "ID", "STATUS", "STARTED", "TXNS", "SOURCE")
	for _, run := range runs {
		fmt.Fprintf(w, "%-36s  %-10s  %-20s  %6d  %s\n",
			run.ID,
			run.Status,
			run.StartedAt.UTC().Format(time.RFC3339),
			run.TransactionCount,
			run.Source)
		if run.ErrorMessage != "" {
			fmt.Fprintf(w, "    error: %s\n", run.ErrorMessage)
		}
	}
}

// PrintLabelers prints each labeler's agreement with the consensus
func PrintLabelers(w io.Writer, labelers []consensus.Labeler) {
	fmt.Fprintln(w, "Labeler metrics:")
	for _, l := range labelers {
		fmt.Fprintf(w, "  %-16s p:%.2f r:%.2f s:%.2f\n", l.Name, l.Precision, l.Recall, l.F1)
	}
}
