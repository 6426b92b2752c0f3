package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockPulse/internal/model"
)

type fakeBars struct {
	gotSymbol string
	gotReq    marketdata.GetBarsRequest
	bars      []marketdata.Bar
	err       error
}

func (f *fakeBars) GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error) {
	f.gotSymbol = symbol
	f.gotReq = req
	return f.bars, f.err
}

func TestAlpacaSource_FetchCandles(t *testing.T) {
	start := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	fake := &fakeBars{bars: []marketdata.Bar{
		{Timestamp: start, Open: 10.001, High: 10.5, Low: 9.9, Close: 10.2},
		{Timestamp: start.Add(time.Hour), Open: 10.2, High: 10.8, Low: 10.1, Close: 10.755},
		{Timestamp: start.Add(2 * time.Hour), Open: 10.75, High: 11, Low: 10.7, Close: 10.9},
	}}
	a := &AlpacaSource{client: fake, feed: "iex"}

	req := model.SeriesRequest{Start: start.UnixMilli(), Intervals: 2, IntervalMinutes: 60, StartPrice: 1}
	series, err := a.FetchCandles(context.Background(), "msft", req)
	require.NoError(t, err)

	assert.Equal(t, "MSFT", fake.gotSymbol)
	assert.Equal(t, "iex", fake.gotReq.Feed)
	assert.Equal(t, start, fake.gotReq.Start)
	assert.Equal(t, start.Add(2*time.Hour), fake.gotReq.End)
	assert.Equal(t, marketdata.NewTimeFrame(1, marketdata.Hour), fake.gotReq.TimeFrame)

	assert.Equal(t, "alpaca", series.Source)
	require.Len(t, series.Candles, 2)
	assert.Equal(t, model.Candle{Time: start.Add(time.Hour).Unix(), Open: 10.2, High: 10.8, Low: 10.1, Close: 10.76}, series.Candles[0])
}

func TestAlpacaSource_Error(t *testing.T) {
	a := &AlpacaSource{client: &fakeBars{err: errors.New("forbidden")}}
	_, err := a.FetchCandles(context.Background(), "AAPL", model.SeriesRequest{Intervals: 1, IntervalMinutes: 5})
	assert.ErrorContains(t, err, "forbidden")
}

func TestAlpacaTimeFrame(t *testing.T) {
	tf, err := alpacaTimeFrame(5)
	require.NoError(t, err)
	assert.Equal(t, marketdata.NewTimeFrame(5, marketdata.Min), tf)

	tf, err = alpacaTimeFrame(240)
	require.NoError(t, err)
	assert.Equal(t, marketdata.NewTimeFrame(4, marketdata.Hour), tf)

	tf, err = alpacaTimeFrame(1440)
	require.NoError(t, err)
	assert.Equal(t, marketdata.OneDay, tf)

	for _, bad := range []int{0, 90, 2880} {
		_, err := alpacaTimeFrame(bad)
		assert.Error(t, err, "minutes %d", bad)
	}
}
