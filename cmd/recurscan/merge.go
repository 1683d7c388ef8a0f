package main

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/recurscan/internal/cli"
	"github.com/eshaffer321/recurscan/internal/domain/consensus"
)

var mergeOpts cli.MergeOptions

var mergeCmd = &cobra.Command{
	Use:   "merge <file-or-dir>...",
	Short: "Merge labels from several labelers into consensus training data",
	Long: `Merge reads labeled CSV files, one or more per labeler, and keeps the
weighted majority label of every transaction that enough labelers voted on.
The labeler is the file name up to the first "." or "-".`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		mergeOpts.Inputs = args
		mergeOpts.Verbose = verbose
		_, err = cli.RunMerge(cfg, mergeOpts, cmd.OutOrStdout())
		return err
	},
}

func init() {
	def := consensus.DefaultConfig()

	f := mergeCmd.Flags()
	f.StringVarP(&mergeOpts.Output, "output", "o", "", "consensus (or train) CSV path")
	f.StringVar(&mergeOpts.TestOutput, "test-output", "", "write a per-user test split here")
	f.Float64Var(&mergeOpts.TrainRatio, "train-ratio", 0.65, "share of users kept in the train split")
	f.Uint64Var(&mergeOpts.Seed, "seed", 1, "seed for the train/test user shuffle")
	f.IntVar(&mergeOpts.MinVotes, "min-votes", def.MinVotes, "0/1 votes needed to consider a transaction")
	f.Float64Var(&mergeOpts.MinScore, "min-score", def.MinScore, "labeler weight the majority must reach")
	_ = mergeCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(mergeCmd)
}
