package source

import (
	"context"

	"StockPulse/internal/model"
	"StockPulse/internal/synth"
)

// SyntheticSource generates candles with the seeded random walk.
type SyntheticSource struct {
	// Deterministic uses the request seed; otherwise every call draws fresh entropy.
	Deterministic bool
}

// NewSyntheticSource creates a SyntheticSource.
func NewSyntheticSource(deterministic bool) *SyntheticSource {
	return &SyntheticSource{Deterministic: deterministic}
}

func (s *SyntheticSource) Name() string { return "synthetic" }

func (s *SyntheticSource) FetchCandles(_ context.Context, symbol string, req model.SeriesRequest) (*model.Series, error) {
	var (
		candles []model.Candle
		err     error
	)
	if s.Deterministic {
		candles, err = synth.GenerateCandles(req)
	} else {
		candles, err = synth.GenerateUnseeded(req)
	}
	if err != nil {
		return nil, err
	}
	return &model.Series{Symbol: symbol, Source: s.Name(), Candles: candles}, nil
}
