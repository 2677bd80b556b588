package render

import (
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsekit/phaseogram/internal/core/model"
	"github.com/pulsekit/phaseogram/internal/phaseogram"
)

func testMap(t *testing.T, values [][]float64, scale phaseogram.Scale) *phaseogram.Map {
	t.Helper()
	profiles := make([]*model.Profile, len(values))
	for i, row := range values {
		p := model.NewProfile(len(row), false)
		copy(p.Values, row)
		profiles[i] = p
	}
	window := model.ObservationWindow{Start: 58000.0, Stop: 58001.0}
	m, err := phaseogram.Assemble(profiles, window, scale)
	require.NoError(t, err)
	return m
}

func TestGridMapsExtents(t *testing.T) {
	m := testMap(t, [][]float64{{1, 2}, {3, 4}}, phaseogram.ScaleLinear)
	g := newGrid(m)

	c, r := g.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 2, r)

	// Cell centers span the recorded extents.
	assert.InDelta(t, 0.25, g.X(0), 1e-12)
	assert.InDelta(t, 1.75, g.X(3), 1e-12)
	assert.InDelta(t, 58000.25, g.Y(0), 1e-12)
	assert.InDelta(t, 58000.75, g.Y(1), 1e-12)

	assert.Equal(t, 1.0, g.Z(0, 0))
	assert.Equal(t, 4.0, g.Z(1, 1))
	// Duplicated cycle.
	assert.Equal(t, g.Z(0, 0), g.Z(2, 0))
}

func TestGridNonFiniteCells(t *testing.T) {
	m := testMap(t, [][]float64{{0, math.E}}, phaseogram.ScaleLog)
	g := newGrid(m)

	// log(0) cells paint as the finite minimum (here log(e) = 1).
	assert.InDelta(t, 1.0, g.Z(0, 0), 1e-12)
	assert.InDelta(t, 1.0, g.Z(1, 0), 1e-12)
}

func TestGridAllNonFinite(t *testing.T) {
	m := testMap(t, [][]float64{{0, 0}}, phaseogram.ScaleLog)
	g := newGrid(m)

	for c := 0; c < 4; c++ {
		assert.Equal(t, 0.0, g.Z(c, 0))
	}
}

func TestGrayPalette(t *testing.T) {
	cs := grayPalette{n: 256}.Colors()
	require.Len(t, cs, 256)
	assert.Equal(t, color.Gray{Y: 255}, cs[0], "low end is white")
	assert.Equal(t, color.Gray{Y: 0}, cs[255], "high end is black")
}

func TestFigureWritesFile(t *testing.T) {
	m := testMap(t, [][]float64{{1, 0, 2, 1}, {0, 3, 1, 0}}, phaseogram.ScaleLinear)

	full := model.NewProfile(4, false)
	for _, ph := range []float64{0.1, 0.1, 0.6, 0.9} {
		full.Add(ph, 1)
	}
	sum := phaseogram.Summarize(full)

	out := filepath.Join(t.TempDir(), "phaseogram.png")
	require.NoError(t, Figure(m, sum, nil, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFigureWithOverlayAndEmptyMap(t *testing.T) {
	window := model.ObservationWindow{Start: 58000.0, Stop: 58001.0}
	m, err := phaseogram.Assemble(nil, window, phaseogram.ScaleLinear)
	require.NoError(t, err)

	full := model.NewProfile(4, false)
	sum := phaseogram.Summarize(full)
	ov := phaseogram.RescaleOverlay([]float64{0, 0.5}, []float64{1, 2}, sum)

	out := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, Figure(m, sum, ov, out))
}

func TestFigureRejectsUnknownFormat(t *testing.T) {
	m := testMap(t, [][]float64{{1}}, phaseogram.ScaleLinear)
	sum := phaseogram.Summarize(model.NewProfile(1, false))

	err := Figure(m, sum, nil, filepath.Join(t.TempDir(), "out.bogus"))
	assert.Error(t, err)
}
