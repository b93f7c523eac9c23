// Package main is the entry point for the rangemap CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helixml/rangemap/internal/config"
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
		Use:   "rangemap",
		Short: "Resolve seed ranges through chains of remapping tables",
		Long: `rangemap reads an almanac (a list of seeds followed by a chain of
piecewise remapping tables) and finds the lowest value any seed maps to.
Seed ranges are split along table boundaries instead of being enumerated.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(solveCmd())
	cmd.AddCommand(traceCmd())
	cmd.AddCommand(historyCmd())
	cmd.AddCommand(serveCmd())
	cmd.AddCommand(stdioCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from the .env file named by --env-file and
// the environment.
func loadConfig(cmd *cobra.Command) (config.AppConfig, error) {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return config.AppConfig{}, err
	}
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
