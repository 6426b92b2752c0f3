package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// CalculateRange returns the highest high and lowest low across candles.
func CalculateRange(candles []model.Candle) (high, low float64, err error) {
	if len(candles) == 0 {
		return 0, 0, errors.New("no candles provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, c := range candles {
		high = math.Max(high, c.High)
		low = math.Min(low, c.Low)
	}
	return high, low, nil
}

// CalculatePosition returns where current sits within [low, high], clamped to 0.0~1.0.
func CalculatePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	return math.Min(1, math.Max(0, pos)), nil
}
