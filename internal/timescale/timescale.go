// Package timescale converts event timestamps from Terrestrial Time to
// UTC. TT runs ahead of UTC by a fixed 32.184 s plus the accumulated
// TAI-UTC leap seconds at the epoch in question.
package timescale

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

const (
	ttMinusTAI = 32.184
	mjdOffset  = 2400000.5
	secsPerDay = 86400.0
)

// leapSteps lists TAI-UTC after each leap second insertion, keyed by the
// MJD at which the step took effect. Covers the epochs of the X-ray
// missions this tool is used with; times before the table floor use the
// earliest entry.
var leapSteps = []struct {
	mjd         float64
	taiMinusUTC float64
}{
	{53736, 33}, // 2006-01-01
	{54832, 34}, // 2009-01-01
	{56109, 35}, // 2012-07-01
	{57204, 36}, // 2015-07-01
	{57754, 37}, // 2017-01-01
}

func taiMinusUTC(mjd float64) float64 {
	off := leapSteps[0].taiMinusUTC
	for _, s := range leapSteps {
		if mjd >= s.mjd {
			off = s.taiMinusUTC
		}
	}
	return off
}

// TTToUTC converts an MJD in Terrestrial Time to an MJD in UTC. The leap
// table is looked up with the TT value directly; the 69 s scale offset is
// far below the table's one-day resolution.
func TTToUTC(mjdTT float64) float64 {
	return mjdTT - (ttMinusTAI+taiMinusUTC(mjdTT))/secsPerDay
}

// Civil returns the civil timestamp of an MJD(UTC) value, for logging.
func Civil(mjdUTC float64) time.Time {
	return julian.JDToTime(mjdUTC + mjdOffset).UTC()
}

// MJD returns the MJD(UTC) of a civil timestamp.
func MJD(t time.Time) float64 {
	return julian.TimeToJD(t) - mjdOffset
}
