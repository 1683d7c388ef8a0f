package main

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/recurscan/internal/cli"
)

var runsOpts cli.RunsOptions

var runsCmd = &cobra.Command{
	Use:          "runs",
	Short:        "List recent stored feature runs",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return cli.RunListRuns(cfg, runsOpts, cmd.OutOrStdout())
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsOpts.Limit, "limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}
