package source

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"StockPulse/internal/model"
)

// barsClient is the slice of the Alpaca market-data client this source needs.
type barsClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// AlpacaSource reads candles from the Alpaca market-data API.
type AlpacaSource struct {
	client barsClient
	feed   string
}

// NewAlpacaSource creates an Alpaca source. dataURL may be empty for the default endpoint.
func NewAlpacaSource(apiKey, apiSecret, dataURL, feed string) *AlpacaSource {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaSource{client: marketdata.NewClient(opts), feed: feed}
}

func (a *AlpacaSource) Name() string { return "alpaca" }

func (a *AlpacaSource) FetchCandles(ctx context.Context, symbol string, req model.SeriesRequest) (*model.Series, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	tf, err := alpacaTimeFrame(req.IntervalMinutes)
	if err != nil {
		return nil, err
	}

	bars, err := a.client.GetBars(strings.ToUpper(symbol), marketdata.GetBarsRequest{
		TimeFrame: tf,
		Start:     time.UnixMilli(req.Start).UTC(),
		End:       time.UnixMilli(req.End()).UTC(),
		Feed:      a.feed,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca GetBars: %w", err)
	}

	candles := make([]model.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, model.Candle{
			Time:  b.Timestamp.Unix(),
			Open:  model.RoundPrice(b.Open),
			High:  model.RoundPrice(b.High),
			Low:   model.RoundPrice(b.Low),
			Close: model.RoundPrice(b.Close),
		})
	}
	return &model.Series{Symbol: symbol, Source: a.Name(), Candles: lastN(candles, req.Intervals)}, nil
}

func alpacaTimeFrame(minutes int) (marketdata.TimeFrame, error) {
	switch {
	case minutes <= 0:
		return marketdata.TimeFrame{}, fmt.Errorf("alpaca: interval must be positive, got %d", minutes)
	case minutes < 60:
		return marketdata.NewTimeFrame(minutes, marketdata.Min), nil
	case minutes == 1440:
		return marketdata.OneDay, nil
	case minutes%60 == 0 && minutes < 1440:
		return marketdata.NewTimeFrame(minutes/60, marketdata.Hour), nil
	default:
		return marketdata.TimeFrame{}, fmt.Errorf("alpaca: unsupported interval of %d minutes", minutes)
	}
}

var _ barsClient = (*marketdata.Client)(nil)
