package model

// Candle is one OHLC bar in the shape chart consumers expect.
type Candle struct {
	Time  int64   `json:"time"` // seconds since epoch
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// SeriesRequest configures one candle series.
type SeriesRequest struct {
	Start           int64   `json:"start"` // epoch milliseconds
	Intervals       int     `json:"intervals"`
	IntervalMinutes int     `json:"interval_minutes"`
	StartPrice      float64 `json:"start_price"`
	Volatility      float64 `json:"volatility"`
	Seed            int64   `json:"seed"`
}

// End returns the epoch milliseconds just past the last interval.
func (r SeriesRequest) End() int64 {
	return r.Start + int64(r.Intervals)*int64(r.IntervalMinutes)*60_000
}

// Series is an ordered candle sequence together with the source that produced it.
type Series struct {
	Symbol  string   `json:"symbol"`
	Source  string   `json:"source"`
	Candles []Candle `json:"candles"`
}

// FirstOpen returns the open of the first candle, or 0 for an empty series.
func (s *Series) FirstOpen() float64 {
	if s == nil || len(s.Candles) == 0 {
		return 0
	}
	return s.Candles[0].Open
}

// LastClose returns the close of the last candle, or 0 for an empty series.
func (s *Series) LastClose() float64 {
	if s == nil || len(s.Candles) == 0 {
		return 0
	}
	return s.Candles[len(s.Candles)-1].Close
}
