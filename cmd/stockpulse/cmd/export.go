package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"StockPulse/internal/export"
)

var (
	exportWindow string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export SYMBOL",
	Short: "Write one candle window to a parquet file",
	Long: `Write the short (5 days of 5-minute bars) or long (1 year of hourly bars)
window for SYMBOL to a parquet file.

Example:
  stockpulse export AAPL --window long --out data/aapl-long.parquet`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportWindow, "window", "w", "short", "window to export (short|long)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output parquet path (default <symbol>-<window>.parquet)")
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	series, err := a.builder.Series(cmd.Context(), args[0], exportWindow)
	if err != nil {
		return err
	}

	path := exportOut
	if path == "" {
		path = fmt.Sprintf("%s-%s.parquet", strings.ToLower(series.Symbol), exportWindow)
	}
	if err := export.WriteParquet(path, series); err != nil {
		return err
	}
	a.logger.Info("candles exported",
		zap.String("symbol", series.Symbol),
		zap.String("window", exportWindow),
		zap.String("source", series.Source),
		zap.Int("candles", len(series.Candles)),
		zap.String("path", path))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d candles to %s\n", len(series.Candles), path)
	return nil
}
