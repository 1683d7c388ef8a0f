// Package evaluation scores binary recurring predictions against labels.
package evaluation

import (
	"fmt"

	"github.com/eshaffer321/recurscan/internal/domain/features"
)

// Metrics is a confusion matrix plus the derived scores.
type Metrics struct {
	TP        int     `json:"tp"`
	FP        int     `json:"fp"`
	FN        int     `json:"fn"`
	TN        int     `json:"tn"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Compute compares predictions to labels. Both hold 0/1 values and must be
// the same length. Scores with a zero denominator are 0.
func Compute(labels, predictions []int) (Metrics, error) {
	if len(labels) != len(predictions) {
		return Metrics{}, fmt.Errorf("length mismatch: %d labels, %d predictions", len(labels), len(predictions))
	}

	var m Metrics
	for i, label := range labels {
		predicted := predictions[i] == 1
		actual := label == 1
		switch {
		case predicted && actual:
			m.TP++
		case predicted && !actual:
			m.FP++
		case !predicted && actual:
			m.FN++
		default:
			m.TN++
		}
	}

	m.Precision = safeDiv(float64(m.TP), float64(m.TP+m.FP))
	m.Recall = safeDiv(float64(m.TP), float64(m.TP+m.FN))
	m.F1 = safeDiv(2*m.Precision*m.Recall, m.Precision+m.Recall)

	return m, nil
}

// PredictFromFeature thresholds one feature: 1 when the value is at least
// threshold.
func PredictFromFeature(rows []features.Features, name string, threshold float64) []int {
	preds := make([]int, len(rows))
	for i, f := range rows {
		if f[name] >= threshold {
			preds[i] = 1
		}
	}
	return preds
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
