package common

import "github.com/shopspring/decimal"

// Round rounds v half away from zero to the given number of decimal places.
// Amounts handled here are non-negative, so this matches half-up rounding.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// RoundWhole rounds a currency amount to a whole unit.
func RoundWhole(v float64) int64 {
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// FloorTenth truncates v down to a multiple of 0.1.
func FloorTenth(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Shift(1).Floor().Shift(-1).Float64()
	return f
}
