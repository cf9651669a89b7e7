// Package util provides common utility functions for price calculations.
package util

import "math"

// RoundToTick rounds x to the nearest tick increment.
// For example, with tick=0.01, 1.2345 becomes 1.23; with tick=5, 4547 becomes 4545.
// Ties round away from zero. Non-finite x and tick<=0 return x unchanged.
func RoundToTick(x, tick float64) float64 {
	if tick == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	tick = math.Abs(tick)
	return math.Round(x/tick) * tick
}

// Round2 rounds x to two decimal places, the precision used for dollar
// amounts throughout the analysis report.
func Round2(x float64) float64 {
	return RoundToTick(x, 0.01)
}

// Round4 rounds x to four decimal places, the precision used for Greeks.
func Round4(x float64) float64 {
	return RoundToTick(x, 0.0001)
}
