package render

import (
	"image/color"
	"math"

	"github.com/pulsekit/phaseogram/internal/phaseogram"
)

// grid adapts the display matrix to the heatmap's grid interface. Cell
// centers map onto the recorded axis extents, so dropped leading segments
// stretch the remaining rows over the full time range rather than
// shrinking it. Non-finite cells (log of empty bins) paint as the finite
// minimum.
type grid struct {
	m   *phaseogram.Map
	min float64
}

func newGrid(m *phaseogram.Map) grid {
	min := math.Inf(1)
	rows, cols := m.Data.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v := m.Data.At(i, j); !math.IsInf(v, 0) && !math.IsNaN(v) && v < min {
				min = v
			}
		}
	}
	if math.IsInf(min, 1) {
		min = 0
	}
	return grid{m: m, min: min}
}

func (g grid) Dims() (c, r int) {
	r, c = g.m.Data.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 {
	v := g.m.Data.At(r, c)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return g.min
	}
	return v
}

func (g grid) X(c int) float64 {
	cols, _ := g.Dims()
	ext := g.m.Extents
	return ext.PhaseMin + (ext.PhaseMax-ext.PhaseMin)*(float64(c)+0.5)/float64(cols)
}

func (g grid) Y(r int) float64 {
	_, rows := g.Dims()
	ext := g.m.Extents
	return ext.TimeMin + (ext.TimeMax-ext.TimeMin)*(float64(r)+0.5)/float64(rows)
}

// grayPalette mimics the binary colormap of the original figure: low
// values white, high values black.
type grayPalette struct {
	n int
}

func (p grayPalette) Colors() []color.Color {
	cs := make([]color.Color, p.n)
	for i := range cs {
		cs[i] = color.Gray{Y: uint8(255 - i*255/(p.n-1))}
	}
	return cs
}
