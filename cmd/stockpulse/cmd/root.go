package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "stockpulse",
	Short: "Stock dashboards backed by live quotes or deterministic synthetic candles",
	Long: `StockPulse builds a per-symbol dashboard: a summary, headlines, a five-day
and a one-year candle series, and a weekly outlook.

Candles come from the configured live sources (Yahoo Finance, Alpaca) and fall
back to a synthetic series seeded by the symbol, so the same symbol always
renders the same chart when no live source answers.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "path to YAML config file (env CONFIG_PATH)")
}
