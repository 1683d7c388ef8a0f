package main

import (
	"github.com/spf13/cobra"

	"github.com/eshaffer321/recurscan/internal/cli"
)

var serveOpts cli.ServeOptions

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Start the HTTP API",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		serveOpts.Verbose = verbose
		return cli.RunServe(cmd.Context(), cfg, serveOpts)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serveOpts.Port, "port", "p", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}
