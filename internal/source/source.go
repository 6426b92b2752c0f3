package source

import (
	"context"

	"StockPulse/internal/model"
)

// CandleSource produces a candle series for a symbol.
// Live implementations read market data; the synthetic one never touches the network.
type CandleSource interface {
	FetchCandles(ctx context.Context, symbol string, req model.SeriesRequest) (*model.Series, error)
	Name() string
}

// lastN keeps the newest n candles.
func lastN(candles []model.Candle, n int) []model.Candle {
	if n >= 0 && len(candles) > n {
		return candles[len(candles)-n:]
	}
	return candles
}
