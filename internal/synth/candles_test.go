package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

// constRand returns the same draw forever.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func shortWindow(seed int64) model.SeriesRequest {
	return model.SeriesRequest{
		Start:           1_700_000_000_000,
		Intervals:       390,
		IntervalMinutes: 5,
		StartPrice:      112.5,
		Volatility:      1.2,
		Seed:            seed,
	}
}

func TestGenerateCandles_ZeroVolatilityScenario(t *testing.T) {
	candles, err := GenerateCandles(model.SeriesRequest{
		Start:           0,
		Intervals:       3,
		IntervalMinutes: 60,
		StartPrice:      100,
		Volatility:      0,
		Seed:            42,
	})
	require.NoError(t, err)
	require.Len(t, candles, 3)

	for i, c := range candles {
		assert.Equal(t, int64(i*3600), c.Time)
		assert.Equal(t, 100.0, c.Open)
		assert.Equal(t, 100.0, c.Close)
		assert.Equal(t, 100.0, c.High)
		assert.Equal(t, 100.0, c.Low)
	}
}

func TestGenerateCandles_ZeroVolatilityAppliesFloor(t *testing.T) {
	candles, err := GenerateCandles(model.SeriesRequest{Intervals: 2, IntervalMinutes: 1, StartPrice: 0.5, Seed: 1})
	require.NoError(t, err)
	require.Len(t, candles, 2)

	assert.Equal(t, 0.5, candles[0].Open)
	assert.Equal(t, 1.0, candles[0].Close)
	assert.Equal(t, 1.0, candles[0].High)
	assert.Equal(t, 0.5, candles[0].Low)
	assert.Equal(t, 1.0, candles[1].Open)
	assert.Equal(t, 1.0, candles[1].Close)
}

func TestGenerateCandlesWith_Formula(t *testing.T) {
	req := model.SeriesRequest{Intervals: 1, IntervalMinutes: 5, StartPrice: 100, Volatility: 10}

	mid, err := GenerateCandlesWith(req, constRand(0.5))
	require.NoError(t, err)
	assert.Equal(t, model.Candle{Time: 0, Open: 100, High: 102.5, Low: 98, Close: 100.5}, mid[0])

	low, err := GenerateCandlesWith(req, constRand(0))
	require.NoError(t, err)
	assert.Equal(t, model.Candle{Time: 0, Open: 100, High: 100, Low: 95.5, Close: 95.5}, low[0])
}

func TestGenerateCandles_Determinism(t *testing.T) {
	a, err := GenerateCandles(shortWindow(2001436))
	require.NoError(t, err)
	b, err := GenerateCandles(shortWindow(2001436))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateCandles_Properties(t *testing.T) {
	requests := []model.SeriesRequest{
		shortWindow(7),
		{Start: 1_670_000_000_000, Intervals: 1700, IntervalMinutes: 60, StartPrice: 125, Volatility: 2.8, Seed: 99},
		{Start: 0, Intervals: 500, IntervalMinutes: 1, StartPrice: 1.5, Volatility: 25, Seed: 3},
		{Start: -1_500, Intervals: 10, IntervalMinutes: 1, StartPrice: 10, Volatility: 1, Seed: -4},
	}

	for _, req := range requests {
		candles, err := GenerateCandles(req)
		require.NoError(t, err)
		require.Len(t, candles, req.Intervals)

		step := int64(req.IntervalMinutes) * 60
		for i, c := range candles {
			assert.LessOrEqual(t, c.Low, math.Min(c.Open, c.Close), "candle %d low", i)
			assert.GreaterOrEqual(t, c.High, math.Max(c.Open, c.Close), "candle %d high", i)
			assert.GreaterOrEqual(t, c.Close, 1.0, "candle %d floor", i)
			if i > 0 {
				assert.Equal(t, step, c.Time-candles[i-1].Time, "candle %d spacing", i)
				assert.Equal(t, candles[i-1].Close, c.Open, "candle %d continuity", i)
			}
		}
		assert.Equal(t, model.RoundPrice(req.StartPrice), candles[0].Open)
	}
}

func TestGenerateCandles_NegativeStartFloors(t *testing.T) {
	candles, err := GenerateCandles(model.SeriesRequest{Start: -1_500, Intervals: 2, IntervalMinutes: 1, StartPrice: 10, Seed: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(-2), candles[0].Time)
	assert.Equal(t, int64(58), candles[1].Time)
}

func TestGenerateCandles_SeedSensitivity(t *testing.T) {
	seeds := []int64{1, 2, 3, 42, 2001436, 987654321}
	series := make([][]model.Candle, len(seeds))
	for i, seed := range seeds {
		c, err := GenerateCandles(shortWindow(seed))
		require.NoError(t, err)
		series[i] = c
	}
	for i := range seeds {
		for j := i + 1; j < len(seeds); j++ {
			assert.NotEqual(t, series[i], series[j], "seeds %d and %d", seeds[i], seeds[j])
		}
	}
}

func TestGenerateCandles_EmptyWhenNoIntervals(t *testing.T) {
	candles, err := GenerateCandles(model.SeriesRequest{Intervals: 0, IntervalMinutes: 5, StartPrice: 100, Volatility: 1})
	require.NoError(t, err)
	assert.Empty(t, candles)
}

func TestGenerateCandles_InvalidArgument(t *testing.T) {
	valid := model.SeriesRequest{Intervals: 3, IntervalMinutes: 5, StartPrice: 100, Volatility: 1, Seed: 1}

	tests := []struct {
		name   string
		mutate func(*model.SeriesRequest)
		want   string
	}{
		{"negative intervals", func(r *model.SeriesRequest) { r.Intervals = -1 }, "intervals"},
		{"zero interval minutes", func(r *model.SeriesRequest) { r.IntervalMinutes = 0 }, "interval minutes"},
		{"negative interval minutes", func(r *model.SeriesRequest) { r.IntervalMinutes = -5 }, "interval minutes"},
		{"zero start price", func(r *model.SeriesRequest) { r.StartPrice = 0 }, "start price"},
		{"negative start price", func(r *model.SeriesRequest) { r.StartPrice = -10 }, "start price"},
		{"NaN start price", func(r *model.SeriesRequest) { r.StartPrice = math.NaN() }, "finite"},
		{"infinite start price", func(r *model.SeriesRequest) { r.StartPrice = math.Inf(1) }, "finite"},
		{"negative volatility", func(r *model.SeriesRequest) { r.Volatility = -0.1 }, "volatility"},
		{"NaN volatility", func(r *model.SeriesRequest) { r.Volatility = math.NaN() }, "finite"},
		{"intervals above cap", func(r *model.SeriesRequest) { r.Intervals = MaxIntervals + 1 }, "intervals must be <="},
		{"huge intervals", func(r *model.SeriesRequest) { r.Intervals = math.MaxInt }, "intervals must be <="},
		{"interval minutes overflow step", func(r *model.SeriesRequest) { r.IntervalMinutes = 1 << 50 }, "interval minutes too large"},
		{"span overflows", func(r *model.SeriesRequest) { r.IntervalMinutes, r.Intervals = 1<<40, 200 }, "overflows"},
		{"start near max", func(r *model.SeriesRequest) { r.Start = math.MaxInt64 - 1000 }, "overflows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			candles, err := GenerateCandles(req)
			require.ErrorIs(t, err, ErrInvalidArgument)
			require.Contains(t, err.Error(), tt.want)
			assert.Nil(t, candles)
		})
	}
}

func TestGenerateCandles_LargeSpacingStaysMonotonic(t *testing.T) {
	req := model.SeriesRequest{Start: -1_000, Intervals: 3, IntervalMinutes: 1 << 30, StartPrice: 100, Volatility: 1, Seed: 1}
	candles, err := GenerateCandles(req)
	require.NoError(t, err)
	step := int64(1<<30) * 60
	for i := 1; i < len(candles); i++ {
		assert.Equal(t, step, candles[i].Time-candles[i-1].Time)
	}
}

func TestValidate_AcceptsCap(t *testing.T) {
	req := model.SeriesRequest{Intervals: MaxIntervals, IntervalMinutes: 1, StartPrice: 1, Seed: 1}
	assert.NoError(t, Validate(req))
}

func TestGenerateUnseeded_KeepsInvariants(t *testing.T) {
	candles, err := GenerateUnseeded(shortWindow(0))
	require.NoError(t, err)
	require.Len(t, candles, 390)
	for i := 1; i < len(candles); i++ {
		require.Equal(t, candles[i-1].Close, candles[i].Open)
	}
}
