package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/eshaffer321/recurscan/internal/application/service"
	"github.com/eshaffer321/recurscan/internal/domain/evaluation"
	"github.com/eshaffer321/recurscan/internal/domain/features"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
)

// RunEvaluate thresholds one feature over a labeled file and prints the
// resulting precision, recall and F1.
func RunEvaluate(ctx context.Context, cfg *config.Config, opts EvaluateOptions, stdout io.Writer) (evaluation.Metrics, error) {
	if !knownFeature(opts.Feature) {
		return evaluation.Metrics{}, fmt.Errorf("unknown feature %q", opts.Feature)
	}
	if features.IsPercent(opts.Feature) && (opts.Threshold < 0 || opts.Threshold > 1) {
		return evaluation.Metrics{}, fmt.Errorf("threshold %g out of range [0, 1] for ratio feature %q", opts.Threshold, opts.Feature)
	}

	logger := newLogger(cfg, "evaluate", opts.Verbose)

	txs, labels, err := readInput(opts.Input, true, logger)
	if err != nil {
		return evaluation.Metrics{}, err
	}

	feats, err := service.NewFeatureService(cfg, nil, logger).Extract(ctx, txs)
	if err != nil {
		return evaluation.Metrics{}, err
	}

	actual := make([]int, len(labels))
	for i, l := range labels {
		actual[i] = int(l)
	}
	predicted := evaluation.PredictFromFeature(feats, opts.Feature, opts.Threshold)

	metrics, err := evaluation.Compute(actual, predicted)
	if err != nil {
		return evaluation.Metrics{}, err
	}

	PrintMetrics(stdout, opts.Feature, opts.Threshold, metrics)
	return metrics, nil
}

func knownFeature(name string) bool {
	for _, n := range features.Names {
		if n == name {
			return true
		}
	}
	return false
}
