package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockPulse/internal/model"
	"StockPulse/internal/synth"
)

type stubSource struct {
	name   string
	series *model.Series
	err    error
	calls  int
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) FetchCandles(_ context.Context, symbol string, _ model.SeriesRequest) (*model.Series, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

var chainRequest = model.SeriesRequest{Start: 0, Intervals: 3, IntervalMinutes: 60, StartPrice: 100, Volatility: 0, Seed: 42}

func TestChain_UsesFirstWorkingSource(t *testing.T) {
	live := &stubSource{name: "live", series: &model.Series{Source: "live", Candles: []model.Candle{{Time: 1}}}}
	backup := NewSyntheticSource(true)

	series, err := NewChain(zap.NewNop(), live, backup).FetchCandles(context.Background(), "AAPL", chainRequest)
	require.NoError(t, err)
	assert.Equal(t, "live", series.Source)
	assert.Equal(t, 1, live.calls)
}

func TestChain_FallsBackToSynthetic(t *testing.T) {
	failing := &stubSource{name: "live", err: errors.New("connection refused")}
	empty := &stubSource{name: "empty", series: &model.Series{Source: "empty"}}

	series, err := NewChain(zap.NewNop(), failing, empty, NewSyntheticSource(true)).
		FetchCandles(context.Background(), "AAPL", chainRequest)
	require.NoError(t, err)
	assert.Equal(t, "synthetic", series.Source)
	assert.Equal(t, 1, failing.calls, "live sources are tried once")
	assert.Equal(t, 1, empty.calls)

	want, err := synth.GenerateCandles(chainRequest)
	require.NoError(t, err)
	assert.Equal(t, want, series.Candles)
}

func TestChain_AllFail(t *testing.T) {
	a := &stubSource{name: "a", err: errors.New("boom")}
	b := &stubSource{name: "b", err: errors.New("bang")}

	_, err := NewChain(zap.NewNop(), a, b).FetchCandles(context.Background(), "AAPL", chainRequest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a: boom")
	assert.Contains(t, err.Error(), "b: bang")
}

func TestChain_RejectsInvalidRequest(t *testing.T) {
	live := &stubSource{name: "live"}
	req := chainRequest
	req.IntervalMinutes = 0

	_, err := NewChain(zap.NewNop(), live).FetchCandles(context.Background(), "AAPL", req)
	require.ErrorIs(t, err, synth.ErrInvalidArgument)
	assert.Zero(t, live.calls)
}

func TestChain_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	live := &stubSource{name: "live"}

	_, err := NewChain(zap.NewNop(), live, NewSyntheticSource(true)).FetchCandles(ctx, "AAPL", chainRequest)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, live.calls)
}

func TestSyntheticSource(t *testing.T) {
	series, err := NewSyntheticSource(true).FetchCandles(context.Background(), "AAPL", chainRequest)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", series.Symbol)
	assert.Len(t, series.Candles, 3)

	_, err = NewSyntheticSource(false).FetchCandles(context.Background(), "AAPL", model.SeriesRequest{Intervals: -1})
	assert.ErrorIs(t, err, synth.ErrInvalidArgument)
}
