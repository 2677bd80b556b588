package phaseogram

import (
	"math"

	"github.com/pulsekit/phaseogram/internal/core/model"
)

// Summary is the cycle-doubled folded profile for the 1D panel.
type Summary struct {
	StepEdges  []float64 // 2B+1 bin edges at i/B
	StepValues []float64 // 2B+1 values; the last repeats bin 0 to close the loop
	Centers    []float64 // 2B bin centers at (i+0.5)/B
	Values     []float64 // 2B doubled bin values
	Errors     []float64 // 2B error bars
}

// Summarize doubles the full-observation profile across two cycles and
// derives the error bars: sqrt of the bin value for raw counts, sqrt of
// the accumulated squared weights when weighting was active.
func Summarize(full *model.Profile) *Summary {
	b := full.Bins()
	s := &Summary{
		StepEdges:  make([]float64, 2*b+1),
		StepValues: make([]float64, 2*b+1),
		Centers:    make([]float64, 2*b),
		Values:     make([]float64, 2*b),
		Errors:     make([]float64, 2*b),
	}

	for i := 0; i <= 2*b; i++ {
		s.StepEdges[i] = float64(i) / float64(b)
	}
	for i := 0; i < 2*b; i++ {
		v := full.Values[i%b]
		s.StepValues[i] = v
		s.Values[i] = v
		s.Centers[i] = (float64(i) + 0.5) / float64(b)
		if full.Weighted() {
			s.Errors[i] = math.Sqrt(full.Variance[i%b])
		} else {
			s.Errors[i] = math.Sqrt(v)
		}
	}
	s.StepValues[2*b] = full.Values[0]

	return s
}

// Max returns the largest doubled bin value.
func (s *Summary) Max() float64 {
	max := math.Inf(-1)
	for _, v := range s.Values {
		if v > max {
			max = v
		}
	}
	return max
}

// Overlay is an externally supplied reference profile rescaled for
// overplotting, duplicated across the two displayed cycles.
type Overlay struct {
	X []float64
	Y []float64
}

// RescaleOverlay scales the reference y values so their peak matches the
// folded profile's peak, then doubles the curve: the second cycle repeats
// x shifted by one. x is assumed already normalized to [0,1) by the
// source file. An all-zero or empty reference is returned unscaled.
func RescaleOverlay(xs, ys []float64, s *Summary) *Overlay {
	var maxY float64
	for _, y := range ys {
		if y > maxY {
			maxY = y
		}
	}
	scale := 1.0
	if maxY > 0 {
		scale = s.Max() / maxY
	}

	n := len(ys)
	ov := &Overlay{
		X: make([]float64, 2*n),
		Y: make([]float64, 2*n),
	}
	for i := 0; i < n; i++ {
		ov.X[i] = xs[i]
		ov.X[i+n] = xs[i] + 1
		ov.Y[i] = ys[i] * scale
		ov.Y[i+n] = ys[i] * scale
	}
	return ov
}
