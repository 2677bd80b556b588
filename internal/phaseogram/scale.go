package phaseogram

import (
	"fmt"
	"math"
)

// Scale selects the elementwise z-axis transform applied to the display
// matrix.
type Scale string

const (
	ScaleLinear  Scale = "linear"
	ScaleLog     Scale = "log"
	ScaleSqrt    Scale = "sqrt"
	ScaleSquared Scale = "squared"
)

// ParseScale validates a z-axis scale selector.
func ParseScale(s string) (Scale, error) {
	switch Scale(s) {
	case ScaleLinear, ScaleLog, ScaleSqrt, ScaleSquared:
		return Scale(s), nil
	}
	return "", fmt.Errorf("unknown z-axis scale %q: valid choices are 'linear' [default], 'log', 'sqrt', 'squared'", s)
}

// apply transforms one raw bin value. log is applied to raw counts with
// no epsilon guard, so empty bins map to -Inf; the renderer decides how
// to paint non-finite cells.
func (s Scale) apply(v float64) float64 {
	switch s {
	case ScaleLog:
		return math.Log(v)
	case ScaleSqrt:
		return math.Sqrt(v)
	case ScaleSquared:
		return v * v
	}
	return v
}
