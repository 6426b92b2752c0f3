package source

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"StockPulse/internal/model"
	"StockPulse/internal/synth"
)

var errEmptySeries = errors.New("empty series")

// Chain tries each source once, in order, and returns the first usable series.
// A failing or empty source is logged and skipped; nothing is retried.
type Chain struct {
	Sources []CandleSource
	Logger  *zap.Logger
}

// NewChain creates a Chain over sources.
func NewChain(logger *zap.Logger, sources ...CandleSource) *Chain {
	return &Chain{Sources: sources, Logger: logger}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) FetchCandles(ctx context.Context, symbol string, req model.SeriesRequest) (*model.Series, error) {
	if err := synth.Validate(req); err != nil {
		return nil, err
	}
	if len(c.Sources) == 0 {
		return nil, errors.New("no candle sources configured")
	}

	var errs []error
	for _, src := range c.Sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		series, err := src.FetchCandles(ctx, symbol, req)
		if err == nil && series != nil && (len(series.Candles) > 0 || req.Intervals == 0) {
			return series, nil
		}
		if err == nil {
			err = errEmptySeries
		}
		c.Logger.Warn("candle source failed, falling back",
			zap.String("source", src.Name()),
			zap.String("symbol", symbol),
			zap.Error(err))
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	return nil, fmt.Errorf("all candle sources failed: %w", errors.Join(errs...))
}
