// Package phaseogram turns per-segment pulse profiles into the display
// products: the cycle-doubled 2D map, the folded 1D summary, and the
// optional rescaled reference overlay.
package phaseogram

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/pulsekit/phaseogram/internal/core/model"
)

// Extents carries the axis metadata the renderer needs. Time bounds
// always reflect the full observation window, even when leading segments
// were dropped by a tmin cut.
type Extents struct {
	PhaseMin, PhaseMax float64 // display phase range, [0,2)
	TimeMin, TimeMax   float64 // MJD
	Aspect             float64 // 2/(TimeMax-TimeMin)
}

// Map is the assembled phaseogram: one row per processed segment, each
// segment's profile duplicated across two phase cycles. Data is nil when
// every segment was dropped.
type Map struct {
	Data    *mat.Dense
	NBins   int
	Extents Extents
}

// Rows returns the number of processed segments in the map.
func (m *Map) Rows() int {
	if m.Data == nil {
		return 0
	}
	r, _ := m.Data.Dims()
	return r
}

// Assemble stacks the per-segment profiles into the display matrix. The
// scale transform is applied to raw bin values before duplication. All
// profiles must share one bin count.
func Assemble(profiles []*model.Profile, window model.ObservationWindow, scale Scale) (*Map, error) {
	if _, err := ParseScale(string(scale)); err != nil {
		return nil, err
	}

	ext := Extents{
		PhaseMin: 0,
		PhaseMax: 2,
		TimeMin:  window.Start,
		TimeMax:  window.Stop,
		Aspect:   2 / window.Duration(),
	}

	if len(profiles) == 0 {
		return &Map{Extents: ext}, nil
	}

	nbins := profiles[0].Bins()
	data := mat.NewDense(len(profiles), 2*nbins, nil)
	for i, p := range profiles {
		if p.Bins() != nbins {
			return nil, fmt.Errorf("profile %d has %d bins, expected %d", i, p.Bins(), nbins)
		}
		for j, v := range p.Values {
			z := scale.apply(v)
			data.Set(i, j, z)
			data.Set(i, j+nbins, z)
		}
	}

	return &Map{Data: data, NBins: nbins, Extents: ext}, nil
}
