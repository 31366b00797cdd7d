package main

import (
	"fmt"
	"os"

	"github.com/artpar/taxid/config"
	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taxid",
		Short: "Generate and validate 11-digit tax identification numbers",
		Long: `taxid generates large sets of distinct, valid tax identification numbers
and validates existing ones.

Examples:
  taxid generate --count 1000000 --output ids.txt
  taxid validate 86095742719
  cat ids.txt | taxid validate
  taxid random --count 5`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "taxid.yaml", "config file path (optional)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: json or console")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newValidateCmd(),
		newRandomCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig loads the config file (or environment and defaults when it is
// missing) and applies the global flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	cfgFile, _ := flags.GetString("config")

	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format, _ = flags.GetString("log-format")
	}
	return cfg, nil
}
