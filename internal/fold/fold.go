// Package fold implements the binning core: energy filtering, time
// segmentation, and phase-profile accumulation.
package fold

import (
	"errors"
	"fmt"

	"github.com/pulsekit/phaseogram/internal/core/model"
	"github.com/pulsekit/phaseogram/internal/util"
)

// ErrInvalidArgument marks caller errors (bad segment or bin counts).
var ErrInvalidArgument = errors.New("invalid argument")

// FilterEnergy returns the events whose energy lies in [emin, emax], both
// ends inclusive, preserving relative order. An empty result is valid and
// flows through the rest of the pipeline as all-zero bins.
func FilterEnergy(events []model.EventRecord, emin, emax float64) []model.EventRecord {
	kept := make([]model.EventRecord, 0, len(events))
	for _, ev := range events {
		if ev.Energy >= emin && ev.Energy <= emax {
			kept = append(kept, ev)
		}
	}
	util.LogInfof("Energy cuts left %d out of %d events.", len(kept), len(events))
	return kept
}

// SegmentWindow partitions the observation window into n equal-duration
// half-open segments, contiguous and in increasing time order.
func SegmentWindow(window model.ObservationWindow, n int) ([]model.Segment, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: segment count must be >= 1, got %d", ErrInvalidArgument, n)
	}
	dur := window.Duration() / float64(n)
	segs := make([]model.Segment, n)
	for i := range segs {
		segs[i] = model.Segment{
			Index:  i,
			TStart: window.Start + dur*float64(i),
			TStop:  window.Start + dur*float64(i+1),
		}
	}
	return segs, nil
}

// SelectSegments drops segments starting before tmin; a tmin of zero
// means no cut. Kept segments are not renumbered and the observation
// window is left alone, so the display shrinks by whole rows while the
// axis extents stay put.
func SelectSegments(segments []model.Segment, tmin float64) []model.Segment {
	if tmin == 0 {
		return segments
	}
	var kept []model.Segment
	for _, seg := range segments {
		if seg.TStart < tmin {
			continue
		}
		kept = append(kept, seg)
	}
	return kept
}

// Accumulator bins filtered events into per-segment profiles while
// keeping a running profile over the whole observation.
type Accumulator struct {
	nbins    int
	weighted bool
	full     *model.Profile
}

// NewAccumulator returns an accumulator producing nbins-wide profiles.
func NewAccumulator(nbins int, weighted bool) (*Accumulator, error) {
	if nbins < 1 {
		return nil, fmt.Errorf("%w: phase bin count must be >= 1, got %d", ErrInvalidArgument, nbins)
	}
	return &Accumulator{
		nbins:    nbins,
		weighted: weighted,
		full:     model.NewProfile(nbins, weighted),
	}, nil
}

// Segment bins every event whose arrival time falls in the segment's
// half-open bounds. Each event also feeds the running full profile, so a
// segment must be accumulated exactly once.
func (a *Accumulator) Segment(seg model.Segment, events []model.EventRecord) *model.Profile {
	prof := model.NewProfile(a.nbins, a.weighted)
	for _, ev := range events {
		if !seg.Contains(ev.Time) {
			continue
		}
		w := 1.0
		if a.weighted {
			w = ev.Weight
		}
		prof.Add(ev.Phase, w)
		a.full.Add(ev.Phase, w)
	}
	return prof
}

// Full returns the running full-observation profile.
func (a *Accumulator) Full() *model.Profile {
	return a.full
}
