// Package render draws the two-panel figure: folded profile on top,
// phaseogram map below.
package render

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/pulsekit/phaseogram/internal/phaseogram"
)

const (
	figWidth  = 6 * vg.Inch
	figHeight = 8 * vg.Inch

	// The profile strip takes the upper share of the figure, the map
	// the rest, mirroring the original layout.
	profileShare = 0.35
)

// Figure renders the phaseogram map, the folded profile, and an optional
// reference overlay to the file at outPath. The output format comes from
// the file extension.
func Figure(m *phaseogram.Map, sum *phaseogram.Summary, ov *phaseogram.Overlay, outPath string) error {
	profPanel, err := profilePlot(sum, ov)
	if err != nil {
		return fmt.Errorf("build profile panel: %w", err)
	}
	mapPanel := mapPlot(m)

	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(outPath), "."))
	if format == "" {
		format = "png"
	}
	canvas, err := draw.NewFormattedCanvas(figWidth, figHeight, format)
	if err != nil {
		return fmt.Errorf("create %s canvas: %w", format, err)
	}

	dc := draw.New(canvas)
	mapPanel.Draw(draw.Crop(dc, 0, 0, 0, -profileShare*figHeight))
	profPanel.Draw(draw.Crop(dc, 0, 0, (1-profileShare)*figHeight, 0))

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()
	if _, err := canvas.WriteTo(f); err != nil {
		return fmt.Errorf("write figure: %w", err)
	}
	return nil
}

// profilePlot builds the 1D folded-profile panel: post-step outline,
// error bars at bin centers, optional reference overlay.
func profilePlot(sum *phaseogram.Summary, ov *phaseogram.Overlay) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = "Photons"

	steps := make(plotter.XYs, len(sum.StepEdges))
	for i := range steps {
		steps[i].X = sum.StepEdges[i]
		steps[i].Y = sum.StepValues[i]
	}
	outline, err := plotter.NewLine(steps)
	if err != nil {
		return nil, err
	}
	outline.StepStyle = plotter.PostStep
	outline.LineStyle.Width = vg.Points(1.5)
	outline.LineStyle.Color = color.Black
	p.Add(outline)

	bars, err := plotter.NewYErrorBars(errPoints{
		centers: sum.Centers,
		values:  sum.Values,
		errs:    sum.Errors,
	})
	if err != nil {
		return nil, err
	}
	bars.CapWidth = 0
	bars.LineStyle.Color = color.Black
	p.Add(bars)

	if ov != nil {
		ref := make(plotter.XYs, len(ov.X))
		for i := range ref {
			ref[i].X = ov.X[i]
			ref[i].Y = ov.Y[i]
		}
		refLine, err := plotter.NewLine(ref)
		if err != nil {
			return nil, err
		}
		refLine.LineStyle.Width = vg.Points(1.5)
		refLine.LineStyle.Color = color.RGBA{R: 0xff, A: 0xff}
		p.Add(refLine)
	}

	p.X.Min, p.X.Max = 0, 2
	p.Y.Min = 0
	if p.Y.Max <= p.Y.Min {
		p.Y.Max = p.Y.Min + 1
	}
	hideTickLabels(&p.X)
	return p, nil
}

// mapPlot builds the 2D phaseogram panel. An empty map (all segments
// dropped) renders as a bare axes box.
func mapPlot(m *phaseogram.Map) *plot.Plot {
	p := plot.New()
	p.X.Label.Text = "Pulse Phase"
	p.Y.Label.Text = "Time (MJD)"

	if m.Rows() > 0 {
		hm := plotter.NewHeatMap(newGrid(m), grayPalette{n: 256})
		if hm.Min == hm.Max {
			// Flat data still needs a non-degenerate color range.
			hm.Max = hm.Min + 1
		}
		p.Add(hm)
	}

	p.X.Min, p.X.Max = m.Extents.PhaseMin, m.Extents.PhaseMax
	p.Y.Min, p.Y.Max = m.Extents.TimeMin, m.Extents.TimeMax
	if p.Y.Max <= p.Y.Min {
		p.Y.Max = p.Y.Min + 1
	}
	return p
}

// errPoints feeds YErrorBars with symmetric errors at bin centers.
type errPoints struct {
	centers []float64
	values  []float64
	errs    []float64
}

func (e errPoints) Len() int                    { return len(e.centers) }
func (e errPoints) XY(i int) (float64, float64) { return e.centers[i], e.values[i] }
func (e errPoints) YError(i int) (float64, float64) {
	return e.errs[i], e.errs[i]
}

// hideTickLabels keeps the tick marks on an axis but drops the labels;
// the shared x axis is labeled on the map panel only.
func hideTickLabels(ax *plot.Axis) {
	ax.Tick.Marker = plot.TickerFunc(func(min, max float64) []plot.Tick {
		ticks := plot.DefaultTicks{}.Ticks(min, max)
		for i := range ticks {
			ticks[i].Label = ""
		}
		return ticks
	})
}
