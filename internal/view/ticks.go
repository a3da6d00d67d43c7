// Package view shapes pipeline output into chart- and table-ready structures.
package view

import "math"

// DefaultTickCount is used when a caller asks for zero or fewer ticks.
const DefaultTickCount = 5

// Ticks is a human-friendly value axis starting at zero
type Ticks struct {
	Step   float64   `json:"step"`
	Max    float64   `json:"max"`
	Values []float64 `json:"values"`
}

// niceSteps are the step mantissas, multiplied by a power of ten.
var niceSteps = []float64{1, 2, 5, 10}

// NiceTicks returns an axis whose step is 1, 2, 5 or 10 times a power of ten and whose
// upper bound is at least maxValue. A non-positive maxValue yields the single tick 0.
func NiceTicks(maxValue float64, tickCount int) Ticks {
	if maxValue <= 0 || math.IsNaN(maxValue) || math.IsInf(maxValue, 0) {
		return Ticks{Values: []float64{0}}
	}
	if tickCount <= 0 {
		tickCount = DefaultTickCount
	}

	rough := maxValue / float64(tickCount)
	magnitude := math.Pow(10, math.Floor(math.Log10(rough)))
	step := magnitude * niceSteps[len(niceSteps)-1]
	for _, m := range niceSteps {
		if m*magnitude >= rough {
			step = m * magnitude
			break
		}
	}

	upper := math.Ceil(maxValue/step) * step
	n := int(math.Round(upper / step))
	values := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		values = append(values, float64(i)*step)
	}
	return Ticks{Step: step, Max: upper, Values: values}
}
