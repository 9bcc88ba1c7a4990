package utils

import "math"

// Round2 rounds amount to two decimal places, half away from zero.
// Engine math stays full precision; rounding happens once at the API
// boundary.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CeilToHalfKG rounds weight up to the next 0.5 kg boundary.
func CeilToHalfKG(weightKG float64) float64 {
	return math.Ceil(weightKG*2) / 2
}

// HalfKGUnits counts the 0.5 kg billing units needed to cover excess,
// never negative.
func HalfKGUnits(excessKG float64) int {
	if excessKG <= 0 {
		return 0
	}
	return int(math.Ceil(excessKG / 0.5))
}
