package main

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/recurscan/internal/cli"
	"github.com/eshaffer321/recurscan/internal/domain/features"
)

var evaluateOpts cli.EvaluateOptions

var evaluateCmd = &cobra.Command{
	Use:          "evaluate",
	Short:        "Score a single feature as a recurring classifier on labeled data",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		evaluateOpts.Verbose = verbose
		_, err = cli.RunEvaluate(cmd.Context(), cfg, evaluateOpts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVarP(&evaluateOpts.Input, "input", "i", "", "labeled transactions CSV")
	f.StringVar(&evaluateOpts.Feature, "feature", features.RecurringConfidence, "feature to threshold")
	f.Float64Var(&evaluateOpts.Threshold, "threshold", 0.5, "predict recurring when feature >= threshold")
	_ = evaluateCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(evaluateCmd)
}
