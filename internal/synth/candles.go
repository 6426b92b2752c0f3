package synth

import (
	"errors"
	"fmt"
	"math"
	"time"

	"StockPulse/internal/model"
)

// ErrInvalidArgument reports a malformed SeriesRequest.
var ErrInvalidArgument = errors.New("invalid argument")

const (
	// driftThreshold sits below 0.5 so the walk leans slightly downward.
	driftThreshold = 0.45
	wickFactor     = 0.4
	priceFloor     = 1.0

	// MaxIntervals caps one series; the long dashboard window uses 1700.
	MaxIntervals = 1 << 20

	msPerMinute = 60_000
)

// Validate checks that req can be synthesized without producing degenerate output.
func Validate(req model.SeriesRequest) error {
	switch {
	case req.Intervals < 0:
		return fmt.Errorf("%w: intervals must be >= 0, got %d", ErrInvalidArgument, req.Intervals)
	case req.Intervals > MaxIntervals:
		return fmt.Errorf("%w: intervals must be <= %d, got %d", ErrInvalidArgument, MaxIntervals, req.Intervals)
	case req.IntervalMinutes <= 0:
		return fmt.Errorf("%w: interval minutes must be positive, got %d", ErrInvalidArgument, req.IntervalMinutes)
	case int64(req.IntervalMinutes) > math.MaxInt64/msPerMinute:
		return fmt.Errorf("%w: interval minutes too large, got %d", ErrInvalidArgument, req.IntervalMinutes)
	case endOverflows(req):
		return fmt.Errorf("%w: series end overflows epoch milliseconds", ErrInvalidArgument)
	case math.IsNaN(req.StartPrice) || math.IsInf(req.StartPrice, 0):
		return fmt.Errorf("%w: start price must be finite", ErrInvalidArgument)
	case req.StartPrice <= 0:
		return fmt.Errorf("%w: start price must be positive, got %v", ErrInvalidArgument, req.StartPrice)
	case math.IsNaN(req.Volatility) || math.IsInf(req.Volatility, 0):
		return fmt.Errorf("%w: volatility must be finite", ErrInvalidArgument)
	case req.Volatility < 0:
		return fmt.Errorf("%w: volatility must be >= 0, got %v", ErrInvalidArgument, req.Volatility)
	}
	return nil
}

// GenerateCandles synthesizes the series for req using a generator seeded with req.Seed.
// The same request always yields the same candles.
func GenerateCandles(req model.SeriesRequest) ([]model.Candle, error) {
	return GenerateCandlesWith(req, NewSeededRandom(req.Seed))
}

// GenerateUnseeded synthesizes a series from a clock-seeded generator, ignoring req.Seed.
func GenerateUnseeded(req model.SeriesRequest) ([]model.Candle, error) {
	return GenerateCandlesWith(req, NewSeededRandom(time.Now().UnixNano()))
}

// GenerateCandlesWith runs the random walk for req, drawing from rnd.
// Each interval consumes three draws: the close delta, the upper wick, the lower wick.
func GenerateCandlesWith(req model.SeriesRequest, rnd Rand) ([]model.Candle, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	candles := make([]model.Candle, 0, req.Intervals)
	step := int64(req.IntervalMinutes) * msPerMinute
	lastClose := req.StartPrice

	for i := 0; i < req.Intervals; i++ {
		ms := req.Start + int64(i)*step
		open := lastClose
		delta := (rnd.Float64() - driftThreshold) * req.Volatility
		closePrice := math.Max(priceFloor, open+delta)
		high := math.Max(open, closePrice) + rnd.Float64()*req.Volatility*wickFactor
		low := math.Min(open, closePrice) - rnd.Float64()*req.Volatility*wickFactor

		candles = append(candles, model.Candle{
			Time:  floorDiv(ms, 1000),
			Open:  model.RoundPrice(open),
			High:  model.RoundPrice(high),
			Low:   model.RoundPrice(low),
			Close: model.RoundPrice(closePrice),
		})
		lastClose = closePrice
	}
	return candles, nil
}

// endOverflows reports whether Start + Intervals*step leaves the int64 range.
// IntervalMinutes must already be known to fit a millisecond step.
func endOverflows(req model.SeriesRequest) bool {
	if req.Intervals == 0 {
		return false
	}
	step := int64(req.IntervalMinutes) * msPerMinute
	if step > math.MaxInt64/int64(req.Intervals) {
		return true
	}
	span := int64(req.Intervals) * step
	return req.Start > 0 && span > math.MaxInt64-req.Start
}

// floorDiv divides rounding toward negative infinity, matching floor() for pre-epoch starts.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
