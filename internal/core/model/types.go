package model

// EventRecord is one photon arrival after the header epoch and the
// time-system correction have been applied.
type EventRecord struct {
	Time   float64 // arrival time, MJD (UTC)
	Phase  float64 // rotational pulse phase in [0,1)
	Energy float64 // keV
	Weight float64 // per-event weight; 1 when weighting is off
}

// ObservationWindow is the [Start,Stop) span covered by the event file,
// MJD. Derived once from the header and never shrunk afterwards, so axis
// extents stay stable even when leading sub-integrations are dropped.
type ObservationWindow struct {
	Start float64
	Stop  float64
}

// Duration returns the window length in days.
func (w ObservationWindow) Duration() float64 {
	return w.Stop - w.Start
}

// Segment is one of the N equal-duration sub-integrations tiling the
// observation window. Bounds are half-open: [TStart, TStop).
type Segment struct {
	Index  int
	TStart float64
	TStop  float64
}

// Contains reports whether an arrival time falls inside the segment.
func (s Segment) Contains(t float64) bool {
	return t >= s.TStart && t < s.TStop
}

// PhaseBin maps a pulse phase to its histogram bin, b = floor(phase*nbins).
// A phase of exactly 1.0 would index one past the end; such values are
// clamped to the last bin rather than rejected. Negative phases clamp to
// bin 0 for the same reason.
func PhaseBin(phase float64, nbins int) int {
	b := int(phase * float64(nbins))
	if b >= nbins {
		return nbins - 1
	}
	if b < 0 {
		return 0
	}
	return b
}

// Profile is a fixed-width pulse-phase histogram. Values holds raw counts
// or summed weights. Variance holds the parallel sum of squared weights
// and is nil for unweighted profiles.
type Profile struct {
	Values   []float64
	Variance []float64
}

// NewProfile returns an all-zero profile with nbins phase bins.
func NewProfile(nbins int, weighted bool) *Profile {
	p := &Profile{Values: make([]float64, nbins)}
	if weighted {
		p.Variance = make([]float64, nbins)
	}
	return p
}

// Bins returns the number of phase bins.
func (p *Profile) Bins() int {
	return len(p.Values)
}

// Weighted reports whether the profile carries a variance accumulator.
func (p *Profile) Weighted() bool {
	return p.Variance != nil
}

// Add accumulates one event into the bin selected by its phase.
func (p *Profile) Add(phase, weight float64) {
	b := PhaseBin(phase, len(p.Values))
	p.Values[b] += weight
	if p.Variance != nil {
		p.Variance[b] += weight * weight
	}
}

// Total returns the sum over all bins.
func (p *Profile) Total() float64 {
	var sum float64
	for _, v := range p.Values {
		sum += v
	}
	return sum
}
