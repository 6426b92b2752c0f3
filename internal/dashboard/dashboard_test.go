package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockPulse/internal/model"
	"StockPulse/internal/news"
	"StockPulse/internal/source"
	"StockPulse/internal/synth"
)

var testNow = time.Date(2024, 5, 10, 18, 0, 0, 0, time.UTC)

func newTestBuilder(sources ...source.CandleSource) *Builder {
	sources = append(sources, source.NewSyntheticSource(true))
	b := NewBuilder(source.NewChain(zap.NewNop(), sources...), &news.MockNews{Now: func() time.Time { return testNow }}, zap.NewNop())
	b.Now = func() time.Time { return testNow }
	return b
}

func candles(open, close float64) []model.Candle {
	return []model.Candle{
		{Time: 0, Open: open, High: open, Low: open, Close: open},
		{Time: 60, Open: open, High: close, Low: close, Close: close},
	}
}

func TestOutlook(t *testing.T) {
	assert.Equal(t, "No outlook available.", Outlook(nil))

	assert.Equal(t,
		"Momentum is leaning bullish with prices up 2.50% over the sample window, suggesting a higher chance of a steady climb this week.",
		Outlook(candles(100, 102.5)))
	assert.Equal(t,
		"Momentum is leaning bearish with prices down 3.00% over the sample window, pointing to potential softness this week.",
		Outlook(candles(100, 97)))
	assert.Equal(t,
		"Momentum is mostly range-bound with prices within 0.50% of the start, so a sideways outcome is most likely this week.",
		Outlook(candles(100, 99.5)))
}

func TestSummary(t *testing.T) {
	s := Summary("NVDA")
	assert.Contains(t, s, "NVDA is seeing heightened interest from investors")
	assert.Contains(t, s, "Upcoming catalysts this week could shift sentiment quickly.")
}

func TestChangePercent(t *testing.T) {
	assert.Zero(t, ChangePercent(&model.Series{}))
	assert.InDelta(t, 2.5, ChangePercent(&model.Series{Candles: candles(100, 102.5)}), 1e-9)
}

func TestNormalizeSymbol(t *testing.T) {
	sym, err := NormalizeSymbol("  aapl ")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", sym)

	_, err = NormalizeSymbol("   ")
	assert.ErrorIs(t, err, ErrEmptySymbol)
	assert.ErrorIs(t, err, synth.ErrInvalidArgument)
}

func TestRequests(t *testing.T) {
	short, long := Requests("AAPL", testNow)

	assert.Equal(t, testNow.Add(-5*24*time.Hour).UnixMilli(), short.Start)
	assert.Equal(t, 390, short.Intervals)
	assert.Equal(t, 5, short.IntervalMinutes)
	assert.Equal(t, 1.2, short.Volatility)
	assert.Equal(t, int64(2001436), short.Seed)
	assert.InDelta(t, 115.27954369902568, short.StartPrice, 1e-9)

	assert.Equal(t, testNow.Add(-365*24*time.Hour).UnixMilli(), long.Start)
	assert.Equal(t, 1700, long.Intervals)
	assert.Equal(t, 60, long.IntervalMinutes)
	assert.Equal(t, 2.8, long.Volatility)
	assert.Equal(t, int64(2001437), long.Seed)
	assert.InDelta(t, 123.93650317465561, long.StartPrice, 1e-9)

	again, _ := Requests("AAPL", testNow)
	assert.Equal(t, short, again)
}

func TestWindowByName(t *testing.T) {
	w, err := WindowByName("long")
	require.NoError(t, err)
	assert.Equal(t, LongWindow, w)

	_, err = WindowByName("weekly")
	assert.ErrorIs(t, err, synth.ErrInvalidArgument)
}

func TestBuild_Synthetic(t *testing.T) {
	b := newTestBuilder()
	d, err := b.Build(context.Background(), " aapl")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", d.Symbol)
	assert.Equal(t, testNow, d.GeneratedAt)
	assert.Equal(t, Summary("AAPL"), d.Summary)
	assert.Len(t, d.Headlines, news.MaxHeadlines)
	require.Len(t, d.Short.Candles, 390)
	require.Len(t, d.Long.Candles, 1700)
	assert.Equal(t, "synthetic", d.Short.Source)
	assert.Equal(t, Outlook(d.Short.Candles), d.Outlook)

	assert.Equal(t, model.RoundPrice(115.27954369902568), d.Short.Candles[0].Open)
	assert.Equal(t, testNow.Add(-5*24*time.Hour).Unix(), d.Short.Candles[0].Time)

	ind := d.Indicators
	assert.Greater(t, ind.SMA20, 0.0)
	assert.GreaterOrEqual(t, ind.RSI14, 0.0)
	assert.LessOrEqual(t, ind.RSI14, 100.0)
	assert.GreaterOrEqual(t, ind.RangeHigh, ind.RangeLow)
	assert.GreaterOrEqual(t, ind.RangePosition, 0.0)
	assert.LessOrEqual(t, ind.RangePosition, 1.0)

	again, err := b.Build(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, d.Short.Candles, again.Short.Candles)
	assert.Equal(t, d.Long.Candles, again.Long.Candles)
}

type brokenSource struct{}

func (brokenSource) Name() string { return "broken" }
func (brokenSource) FetchCandles(context.Context, string, model.SeriesRequest) (*model.Series, error) {
	return nil, errors.New("offline")
}

func TestBuild_FallsBackWhenLiveFails(t *testing.T) {
	d, err := newTestBuilder(brokenSource{}).Build(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, "synthetic", d.Short.Source)
	assert.Equal(t, "synthetic", d.Long.Source)
}

func TestBuild_EmptySymbol(t *testing.T) {
	_, err := newTestBuilder().Build(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptySymbol)
}

func TestSeries(t *testing.T) {
	b := newTestBuilder()
	long, err := b.Series(context.Background(), "tsla", "long")
	require.NoError(t, err)
	assert.Equal(t, "TSLA", long.Symbol)
	assert.Len(t, long.Candles, 1700)

	_, err = b.Series(context.Background(), "TSLA", "daily")
	assert.ErrorIs(t, err, synth.ErrInvalidArgument)
}

func TestPercent_RoundsShortestDecimalHalfAway(t *testing.T) {
	tests := map[float64]string{
		1.005: "1.01",
		2.675: "2.68",
		0.125: "0.13",
		3:     "3.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, percent(in), "percent(%v)", in)
	}
}
