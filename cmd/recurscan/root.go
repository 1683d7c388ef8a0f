package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "recurscan",
	Short: "Recurring transaction feature extraction",
	Long:  `recurscan computes recurring-billing features for bank transactions and evaluates them against labeled data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; values may come from the real environment.
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrEnvFrom(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
