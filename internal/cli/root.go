// Package cli contains the newsharvest command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/coinpulse/newsharvest/internal/config"
	"github.com/coinpulse/newsharvest/internal/logger"
)

var (
	cfgFile  string
	logLevel string

	cfg config.Config
	log logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "newsharvest",
	Short: "Crypto news harvesting pipeline",
	Long: `newsharvest collects cryptocurrency news from GDELT and CryptoPanic,
cleans the collected records, and verifies the cleaning invariants.

Each subcommand is a one-shot batch job:
  newsharvest fetch gdelt        # chunked, keyword-filtered GDELT fetch
  newsharvest fetch cryptopanic  # paginated, date-bounded CryptoPanic fetch
  newsharvest clean              # normalize the GDELT export
  newsharvest verify             # check the cleaned export`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the command tree with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	log, err = logger.New(cfg.LogLevel)
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}
