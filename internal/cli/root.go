// Package cli defines Cobra command definitions for the datachat CLI.
// This file contains the root command, version flag, and shared wiring.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/datachat-dev/datachat/internal/api"
	"github.com/datachat-dev/datachat/internal/config"
	"github.com/datachat-dev/datachat/internal/log"
	"github.com/datachat-dev/datachat/internal/tui"
	"github.com/datachat-dev/datachat/internal/tui/app"
)

var (
	baseURLFlag string
	version     = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "datachat",
	Short: "Chat with your data in natural language",
	Long: `DataChat is a conversational front-end for data analysis.
Connect a SQL database, a MongoDB collection, or upload documents,
then ask questions in plain English. All query generation happens
on the companion backend service.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When no subcommand is provided, launch the TUI if we have a
		// terminal; otherwise show help.
		if !tui.IsTTY() {
			return cmd.Help()
		}

		cfg, client, logger, err := buildDeps()
		if err != nil {
			return err
		}
		return tui.Run(app.New(cfg, client, logger))
	},
}

// buildDeps loads configuration from the working directory and constructs
// the backend client and event logger. Missing config falls back to
// defaults, so a fresh checkout works without init steps.
func buildDeps() (*config.Config, *api.Client, *log.Logger, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.ReadConfig(workDir)
	if err != nil {
		cfg = config.DefaultConfig()
	}

	baseURL := cfg.API.BaseURL
	if baseURLFlag != "" {
		baseURL = baseURLFlag
	}

	var logger *log.Logger
	if cfg.Log.Enabled {
		logger, err = log.NewLogger(workDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening event log: %w", err)
		}
	}

	client := api.New(baseURL, time.Duration(cfg.Timeout())*time.Second, logger)
	return cfg, client, logger, nil
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Override the backend base URL")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(docsCmd)
}
