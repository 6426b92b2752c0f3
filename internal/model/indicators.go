package model

// Indicators holds technical readings derived from a dashboard's series.
type Indicators struct {
	SMA20         float64 `json:"sma20"`
	RSI14         float64 `json:"rsi14"`
	RangeHigh     float64 `json:"range_high"`
	RangeLow      float64 `json:"range_low"`
	RangePosition float64 `json:"range_position"` // 0.0 ~ 1.0
}
