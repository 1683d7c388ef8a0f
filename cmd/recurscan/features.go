package main

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/recurscan/internal/cli"
)

var featuresOpts cli.FeaturesOptions

var featuresCmd = &cobra.Command{
	Use:          "features",
	Short:        "Extract features for every transaction in a CSV file",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		featuresOpts.Verbose = verbose
		return cli.RunFeatures(cmd.Context(), cfg, featuresOpts, cmd.OutOrStdout())
	},
}

func init() {
	f := featuresCmd.Flags()
	f.StringVarP(&featuresOpts.Input, "input", "i", "", "transactions CSV")
	f.StringVarP(&featuresOpts.Output, "output", "o", "-", "output file (- for stdout)")
	f.StringVar(&featuresOpts.Format, "format", cli.FormatCSV, "output format: csv or json")
	f.BoolVar(&featuresOpts.Labeled, "labeled", false, "input has a recurring column")
	f.BoolVar(&featuresOpts.Store, "store", false, "persist the run to the database")
	_ = featuresCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(featuresCmd)
}
