package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"perfgate/internal/config"
	"perfgate/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// cfg is resolved once per invocation in the persistent pre-run.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "perfgate",
	Short: "Performance feedback for load-test results",
	Long: "Perfgate evaluates load-test result snapshots against thresholds,\n" +
		"tracks trends across archived runs, and turns violations into a\n" +
		"prioritized action plan.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logging.Init(logging.ParseLevel(rootFlags.logLevel), rootFlags.logFormat)
		c, err := config.LoadFromPath(rootFlags.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Path to config file (YAML/JSON)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format (text, json)")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}
