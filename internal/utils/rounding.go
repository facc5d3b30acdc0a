package utils

import "math"

// Round1 rounds to 1 decimal place, half away from zero.
// Scores and percentage rates use this precision.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to 2 decimal places, half away from zero.
// Monetary and ratio values use this precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
