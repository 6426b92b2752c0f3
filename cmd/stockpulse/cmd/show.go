package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"StockPulse/internal/dashboard"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show SYMBOL",
	Short: "Print the dashboard for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the full dashboard as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	d, err := a.builder.Build(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if showJSON {
		raw, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshal dashboard: %w", err)
		}
		_, err = out.Write(pretty.Pretty(raw))
		return err
	}

	fmt.Fprintf(out, "%s  (generated %s)\n\n", d.Symbol, d.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "%s\n\n", d.Summary)
	fmt.Fprintf(out, "Short window: %d candles from %s, last close %.2f (%+.2f%%)\n",
		len(d.Short.Candles), d.Short.Source, d.Short.LastClose(), dashboard.ChangePercent(d.Short))
	fmt.Fprintf(out, "Long window:  %d candles from %s, last close %.2f\n",
		len(d.Long.Candles), d.Long.Source, d.Long.LastClose())
	fmt.Fprintf(out, "SMA20 %.2f | RSI14 %.2f | 1y range %.2f - %.2f (position %.2f)\n\n",
		d.Indicators.SMA20, d.Indicators.RSI14, d.Indicators.RangeLow, d.Indicators.RangeHigh, d.Indicators.RangePosition)
	fmt.Fprintf(out, "Outlook: %s\n\n", d.Outlook)
	fmt.Fprintln(out, "Headlines:")
	for _, h := range d.Headlines {
		fmt.Fprintf(out, "  - %s (%s)\n", h.Title, h.Timestamp)
	}
	return nil
}
