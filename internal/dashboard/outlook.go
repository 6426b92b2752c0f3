package dashboard

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"StockPulse/internal/model"
)

// Summary is the blurb shown above the charts.
func Summary(symbol string) string {
	return fmt.Sprintf("%s is seeing heightened interest from investors as it balances near-term execution "+
		"with long-term growth initiatives. The company is positioned in a competitive sector, with recent "+
		"momentum suggesting steady demand. Upcoming catalysts this week could shift sentiment quickly.", symbol)
}

// Outlook turns the move from the first open to the last close into a weekly call.
// Moves beyond one percent either way lean bullish or bearish.
func Outlook(candles []model.Candle) string {
	if len(candles) == 0 {
		return "No outlook available."
	}
	first := candles[0].Open
	last := candles[len(candles)-1].Close
	diff := (last - first) / first * 100

	switch {
	case diff > 1:
		return fmt.Sprintf("Momentum is leaning bullish with prices up %s%% over the sample window, "+
			"suggesting a higher chance of a steady climb this week.", percent(diff))
	case diff < -1:
		return fmt.Sprintf("Momentum is leaning bearish with prices down %s%% over the sample window, "+
			"pointing to potential softness this week.", percent(math.Abs(diff)))
	default:
		return fmt.Sprintf("Momentum is mostly range-bound with prices within %s%% of the start, "+
			"so a sideways outcome is most likely this week.", percent(math.Abs(diff)))
	}
}

// ChangePercent is the first-open to last-close move in percent, 0 for an empty series.
func ChangePercent(s *model.Series) float64 {
	first := s.FirstOpen()
	if first == 0 {
		return 0
	}
	return (s.LastClose() - first) / first * 100
}

func percent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
