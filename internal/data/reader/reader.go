// Package reader loads column-oriented JSON event files. A file carries a
// header of metadata scalars plus parallel per-event columns:
//
//	{"header": {"TIMESYS": "TT", "TSTART": 1.2e8, ...},
//	 "columns": {"TIME": [...], "PULSE_PHASE": [...], "PI": [...]}}
//
// Event times are seconds since the reference epoch encoded by
// MJDREF(+TIMEZERO); the reader resolves them to MJD in the file's own
// time system and leaves scale conversion to the caller.
package reader

import (
	"fmt"
	"os"
	"sort"

	"github.com/bytedance/sonic"

	"github.com/pulsekit/phaseogram/internal/util"
)

// PIToKeV converts PI channel numbers to energies in keV.
const PIToKeV = 0.01

const secsPerDay = 86400.0

type rawFile struct {
	Header  Header               `json:"header"`
	Columns map[string][]float64 `json:"columns"`
}

// EventData is everything the pipeline needs from one event file. Times
// are MJD in the file's native time system (nominally TT).
type EventData struct {
	Header   Header
	TimeSys  string
	MJDRef   float64
	TimeZero float64
	TStart   float64   // observation start, MJD
	TStop    float64   // observation stop, MJD
	Times    []float64 // per-event arrival times, MJD
	Phases   []float64
	Energies []float64 // keV
	Weights  []float64 // nil unless weightColumn named one
}

// Read loads the event file at path. weightColumn optionally names a
// numeric column to use as per-event weights instead of unit counts.
func Read(path, weightColumn string) (*EventData, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}

	var raw rawFile
	if err := sonic.Unmarshal(buf, &raw); err != nil {
		return nil, fmt.Errorf("parse event file %s: %w", path, err)
	}

	hdr := raw.Header
	timeSys := ""
	if v, ok := hdr["TIMESYS"]; ok {
		timeSys = v.Text()
	}
	if timeSys != "TT" {
		util.LogWarnf("TIMESYS is %q, expecting TT times; continuing as if TT", timeSys)
	}

	timeZero, err := hdr.FloatSplit("TIMEZERO", "TIMEZERI", "TIMEZERF")
	if err != nil {
		return nil, fmt.Errorf("resolve TIMEZERO: %w", err)
	}
	util.LogInfof("TIMEZERO = %g", timeZero)

	mjdRef, err := hdr.FloatSplit("MJDREF", "MJDREFI", "MJDREFF")
	if err != nil {
		return nil, fmt.Errorf("resolve MJDREF: %w", err)
	}
	util.LogInfof("MJDREF = %g", mjdRef)

	tstart, err := hdr.Float("TSTART")
	if err != nil {
		return nil, fmt.Errorf("resolve TSTART: %w", err)
	}
	tstop, err := hdr.Float("TSTOP")
	if err != nil {
		return nil, fmt.Errorf("resolve TSTOP: %w", err)
	}

	times, ok := raw.Columns["TIME"]
	if !ok {
		return nil, fmt.Errorf("event file %s has no TIME column", path)
	}
	phases, ok := raw.Columns["PULSE_PHASE"]
	if !ok {
		return nil, fmt.Errorf("event file %s has no PULSE_PHASE column", path)
	}
	pi, ok := raw.Columns["PI"]
	if !ok {
		return nil, fmt.Errorf("event file %s has no PI column", path)
	}
	if len(phases) != len(times) || len(pi) != len(times) {
		return nil, fmt.Errorf("event file %s has mismatched column lengths (TIME=%d, PULSE_PHASE=%d, PI=%d)",
			path, len(times), len(phases), len(pi))
	}

	var weights []float64
	if weightColumn != "" {
		weights, ok = raw.Columns[weightColumn]
		if !ok {
			return nil, fmt.Errorf("event file %s has no %q column; available columns: %v",
				path, weightColumn, columnNames(raw.Columns))
		}
		if len(weights) != len(times) {
			return nil, fmt.Errorf("event file %s: weight column %q has %d entries, expected %d",
				path, weightColumn, len(weights), len(times))
		}
	}

	data := &EventData{
		Header:   hdr,
		TimeSys:  timeSys,
		MJDRef:   mjdRef,
		TimeZero: timeZero,
		TStart:   tstart/secsPerDay + mjdRef + timeZero,
		TStop:    tstop/secsPerDay + mjdRef + timeZero,
		Phases:   phases,
		Weights:  weights,
	}
	data.Times = make([]float64, len(times))
	data.Energies = make([]float64, len(times))
	for i, t := range times {
		data.Times[i] = t/secsPerDay + mjdRef + timeZero
		data.Energies[i] = pi[i] * PIToKeV
	}

	util.LogDebugf("loaded %d events from %s", len(data.Times), path)
	return data, nil
}

func columnNames(columns map[string][]float64) []string {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
