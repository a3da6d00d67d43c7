// Package analytics implements the filter and aggregation pipeline behind the dashboard views.
//
// Every function is pure: inputs are never mutated and results are freshly allocated, so the
// same dataset and filters always produce the same output.
package analytics

import (
	"fmt"
	"math"
)

// Blank is the display value for a metric whose denominator is zero.
const Blank = "-"

// RoundPercent returns num/den as a whole percentage, or 0 when den is zero.
// This is the only place percentages are rounded; callers must not round again.
func RoundPercent(num, den float64) int {
	if den == 0 || math.IsNaN(num) || math.IsNaN(den) {
		return 0
	}
	return int(math.Round(num / den * 100))
}

// ScaleCount scales a count-type metric by ratio, rounding half away from zero.
func ScaleCount(n int, ratio float64) int {
	return int(math.Round(float64(n) * ratio))
}

// SafeDiv returns a/b, or 0 when b is zero.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// RoundTo rounds x to the given number of decimal places.
func RoundTo(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// FormatPercent renders num/den as "NN%", or Blank when den is zero.
func FormatPercent(num, den float64) string {
	if den == 0 {
		return Blank
	}
	return fmt.Sprintf("%d%%", RoundPercent(num, den))
}

// averageInts returns the rounded mean of values, or 0 for an empty slice.
func averageInts(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return int(math.Round(float64(sum) / float64(len(values))))
}
