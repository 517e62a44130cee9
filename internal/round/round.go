// Package round provides the fixed-decimal rounding applied to every
// scalar before it enters a report.
package round

import "math"

// To rounds v half-away-from-zero to the given number of decimal places.
func To(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
