package dashboard

import (
	"fmt"
	"time"

	"StockPulse/internal/model"
	"StockPulse/internal/synth"
)

// Window describes one chart range on the dashboard.
type Window struct {
	Name            string
	Lookback        time.Duration
	Intervals       int
	IntervalMinutes int
	BasePrice       float64
	PriceSpread     float64 // start price is BasePrice plus up to PriceSpread
	Volatility      float64
}

var (
	ShortWindow = Window{
		Name:            "short",
		Lookback:        5 * 24 * time.Hour,
		Intervals:       390,
		IntervalMinutes: 5,
		BasePrice:       102,
		PriceSpread:     20,
		Volatility:      1.2,
	}
	LongWindow = Window{
		Name:            "long",
		Lookback:        365 * 24 * time.Hour,
		Intervals:       1700,
		IntervalMinutes: 60,
		BasePrice:       110,
		PriceSpread:     30,
		Volatility:      2.8,
	}
)

// WindowByName resolves "short" or "long".
func WindowByName(name string) (Window, error) {
	switch name {
	case ShortWindow.Name:
		return ShortWindow, nil
	case LongWindow.Name:
		return LongWindow, nil
	}
	return Window{}, fmt.Errorf("%w: unknown window %q", synth.ErrInvalidArgument, name)
}

// Requests builds the short and long series requests for symbol.
// Start prices are drawn from a generator keyed by the symbol hash, so a symbol
// always opens at the same price; the long window is seeded one past the short one.
func Requests(symbol string, now time.Time) (short, long model.SeriesRequest) {
	seed := synth.HashSymbol(symbol)
	rnd := synth.NewSeededRandom(seed)
	short = ShortWindow.request(now, ShortWindow.BasePrice+rnd.Float64()*ShortWindow.PriceSpread, seed)
	long = LongWindow.request(now, LongWindow.BasePrice+rnd.Float64()*LongWindow.PriceSpread, seed+1)
	return short, long
}

func (w Window) request(now time.Time, startPrice float64, seed int64) model.SeriesRequest {
	return model.SeriesRequest{
		Start:           now.Add(-w.Lookback).UnixMilli(),
		Intervals:       w.Intervals,
		IntervalMinutes: w.IntervalMinutes,
		StartPrice:      startPrice,
		Volatility:      w.Volatility,
		Seed:            seed,
	}
}
