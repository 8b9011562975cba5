package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "skyjo",
		Short: "CLI tool for the Skyjo score tracker API",
		Long: `skyjo is a CLI tool for tracking Skyjo scores through the JSON API.

Start a game, record round scores, check the standings and export the
results. The active game code is remembered between invocations.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load remembered game code if not provided via flag/env
			if err := cfg.LoadSessionCode(); err != nil {
				return err
			}

			// Create HTTP client
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SKYJO_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionCode, "session", cfg.SessionCode, "Game code (env: SKYJO_SESSION)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Game code file path (env: SKYJO_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newStandingsCmd())
	rootCmd.AddCommand(newChartCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
