// Package main is the entry point for the devradar CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/devradar/devradar/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devradar",
		Short: "Job-market intelligence server",
		Long:  `DevRadar ingests scraped job postings, classifies and embeds them, and serves semantic search and a conversational interface over the corpus.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(pipelineCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
