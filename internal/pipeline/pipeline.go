// Package pipeline wires the components of one phaseogram run: read,
// convert, filter, segment, accumulate, assemble, render.
package pipeline

import (
	"fmt"
	"time"

	"github.com/pulsekit/phaseogram/internal/core/model"
	"github.com/pulsekit/phaseogram/internal/data/radio"
	"github.com/pulsekit/phaseogram/internal/data/reader"
	"github.com/pulsekit/phaseogram/internal/fold"
	"github.com/pulsekit/phaseogram/internal/phaseogram"
	"github.com/pulsekit/phaseogram/internal/render"
	"github.com/pulsekit/phaseogram/internal/timescale"
	"github.com/pulsekit/phaseogram/internal/util"
)

// DefaultOutfile receives the figure when no output path was given.
const DefaultOutfile = "phaseogram.png"

// Config carries every command-line option through the run. No component
// reads ambient state.
type Config struct {
	EventPath string
	OutPath   string // empty means DefaultOutfile
	RadioPath string // optional reference profile
	WeightCol string // optional per-event weight column
	Segments  int
	PhaseBins int
	EMin      float64 // keV, inclusive
	EMax      float64 // keV, inclusive
	TMin      float64 // MJD; 0 means unset
	Scale     phaseogram.Scale
}

// Pipeline executes one phaseogram run end to end. Runs are independent
// and stateless, so one Pipeline may be reused in watch mode.
type Pipeline struct {
	config *Config
}

func New(config *Config) *Pipeline {
	return &Pipeline{config: config}
}

// Run produces the figure. Deterministic: identical inputs and options
// yield identical arrays.
func (p *Pipeline) Run() error {
	cfg := p.config
	start := time.Now()

	data, err := reader.Read(cfg.EventPath, cfg.WeightCol)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	weighted := cfg.WeightCol != ""
	events := make([]model.EventRecord, len(data.Times))
	for i := range data.Times {
		events[i] = model.EventRecord{
			Time:   timescale.TTToUTC(data.Times[i]),
			Phase:  data.Phases[i],
			Energy: data.Energies[i],
			Weight: 1,
		}
		if weighted {
			events[i].Weight = data.Weights[i]
		}
	}

	window := model.ObservationWindow{
		Start: timescale.TTToUTC(data.TStart),
		Stop:  timescale.TTToUTC(data.TStop),
	}
	util.LogInfof("observation window MJD %.6f - %.6f (%s - %s), %d segments of %.6f d",
		window.Start, window.Stop,
		timescale.Civil(window.Start).Format(time.RFC3339),
		timescale.Civil(window.Stop).Format(time.RFC3339),
		cfg.Segments, window.Duration()/float64(cfg.Segments))

	filtered := fold.FilterEnergy(events, cfg.EMin, cfg.EMax)

	segments, err := fold.SegmentWindow(window, cfg.Segments)
	if err != nil {
		return err
	}
	acc, err := fold.NewAccumulator(cfg.PhaseBins, weighted)
	if err != nil {
		return err
	}

	selected := fold.SelectSegments(segments, cfg.TMin)
	if dropped := len(segments) - len(selected); dropped > 0 {
		util.LogInfof("dropped %d sub-integrations starting before MJD %.6f", dropped, cfg.TMin)
	}
	profiles := make([]*model.Profile, 0, len(selected))
	for _, seg := range selected {
		profiles = append(profiles, acc.Segment(seg, filtered))
	}

	m, err := phaseogram.Assemble(profiles, window, cfg.Scale)
	if err != nil {
		return err
	}
	sum := phaseogram.Summarize(acc.Full())

	var overlay *phaseogram.Overlay
	if cfg.RadioPath != "" {
		xs, ys, err := radio.Load(cfg.RadioPath)
		if err != nil {
			return fmt.Errorf("load reference profile: %w", err)
		}
		overlay = phaseogram.RescaleOverlay(xs, ys, sum)
	}

	out := cfg.OutPath
	if out == "" {
		out = DefaultOutfile
		util.LogInfof("no output file given, writing %s", out)
	}
	if err := render.Figure(m, sum, overlay, out); err != nil {
		return fmt.Errorf("render figure: %w", err)
	}

	util.LogInfof("wrote %s (%d rows x %d phase columns) in %v",
		out, m.Rows(), 2*cfg.PhaseBins, time.Since(start).Round(time.Millisecond))
	return nil
}
