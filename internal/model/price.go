package model

import "github.com/shopspring/decimal"

// RoundPrice rounds v to 2 decimal places, half away from zero.
// Rounding operates on the shortest decimal representation of v, so 1.005 becomes 1.01.
func RoundPrice(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
