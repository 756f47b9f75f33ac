// Package main is the entry point for the semdiff CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/semdiff/semdiff/internal/config"
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
		Use:   "semdiff",
		Short: "Semantic dataset comparison tool",
		Long:  `Semdiff compares two datasets by embedding similarity and generates natural-language summaries of the differences between matched entries.`,
	}

	cmd.AddCommand(compareCmd())
	cmd.AddCommand(reportsCmd())
	cmd.AddCommand(serveCmd())
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
