package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEventFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadBasic(t *testing.T) {
	path := writeEventFile(t, `{
		"header": {"TIMESYS": "TT", "TSTART": 86400.0, "TSTOP": 172800.0,
		           "TIMEZERO": 0.0, "MJDREF": 56658.0},
		"columns": {
			"TIME": [86400.0, 129600.0],
			"PULSE_PHASE": [0.25, 0.75],
			"PI": [100, 500]
		}
	}`)

	data, err := Read(path, "")
	require.NoError(t, err)

	assert.Equal(t, "TT", data.TimeSys)
	assert.InDelta(t, 56658.0, data.MJDRef, 1e-12)
	assert.InDelta(t, 56659.0, data.TStart, 1e-9)
	assert.InDelta(t, 56660.0, data.TStop, 1e-9)
	require.Len(t, data.Times, 2)
	assert.InDelta(t, 56659.0, data.Times[0], 1e-9)
	assert.InDelta(t, 56659.5, data.Times[1], 1e-9)
	// PI channels convert to keV through the fixed factor.
	assert.InDelta(t, 1.0, data.Energies[0], 1e-12)
	assert.InDelta(t, 5.0, data.Energies[1], 1e-12)
	assert.Nil(t, data.Weights)
}

func TestReadHeaderFallbacks(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		wantMJDRef   float64
		wantTimeZero float64
	}{
		{
			name: "combined fields",
			header: `{"TSTART": 0, "TSTOP": 86400, "TIMEZERO": -1.0,
			          "MJDREF": 56658.5}`,
			wantMJDRef:   56658.5,
			wantTimeZero: -1.0,
		},
		{
			name: "split integer and fraction",
			header: `{"TSTART": 0, "TSTOP": 86400,
			          "TIMEZERI": 0.0, "TIMEZERF": 0.5,
			          "MJDREFI": 56658, "MJDREFF": 0.25}`,
			wantMJDRef:   56658.25,
			wantTimeZero: 0.5,
		},
		{
			name: "string fraction with D exponent",
			header: `{"TSTART": 0, "TSTOP": 86400, "TIMEZERO": 0,
			          "MJDREFI": 56658, "MJDREFF": "7.775925926D-4"}`,
			wantMJDRef:   56658.0007775925926,
			wantTimeZero: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEventFile(t, `{"header": `+tt.header+`,
				"columns": {"TIME": [0], "PULSE_PHASE": [0.5], "PI": [30]}}`)

			data, err := Read(path, "")
			require.NoError(t, err)
			assert.InDelta(t, tt.wantMJDRef, data.MJDRef, 1e-12)
			assert.InDelta(t, tt.wantTimeZero, data.TimeZero, 1e-12)
		})
	}
}

func TestReadMissingEpochFields(t *testing.T) {
	path := writeEventFile(t, `{
		"header": {"TSTART": 0, "TSTOP": 86400, "TIMEZERO": 0},
		"columns": {"TIME": [0], "PULSE_PHASE": [0.5], "PI": [30]}
	}`)

	_, err := Read(path, "")
	require.Error(t, err)

	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Contains(t, err.Error(), "MJDREF")
}

func TestReadWeights(t *testing.T) {
	path := writeEventFile(t, `{
		"header": {"TSTART": 0, "TSTOP": 86400, "TIMEZERO": 0, "MJDREF": 56658},
		"columns": {"TIME": [0, 1], "PULSE_PHASE": [0.1, 0.9], "PI": [30, 40],
		            "NET_WEIGHT": [0.5, 0.9]}
	}`)

	data, err := Read(path, "NET_WEIGHT")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, 0.9}, data.Weights)

	_, err = Read(path, "NO_SUCH_COLUMN")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NO_SUCH_COLUMN")
	assert.Contains(t, err.Error(), "NET_WEIGHT", "error should list available columns")
}

func TestReadColumnErrors(t *testing.T) {
	tests := []struct {
		name    string
		columns string
		wantErr string
	}{
		{
			name:    "missing phase column",
			columns: `{"TIME": [0], "PI": [30]}`,
			wantErr: "PULSE_PHASE",
		},
		{
			name:    "mismatched lengths",
			columns: `{"TIME": [0, 1], "PULSE_PHASE": [0.5], "PI": [30, 40]}`,
			wantErr: "mismatched column lengths",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeEventFile(t, `{
				"header": {"TSTART": 0, "TSTOP": 86400, "TIMEZERO": 0, "MJDREF": 56658},
				"columns": `+tt.columns+`}`)

			_, err := Read(path, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadUnexpectedTimeSystemIsNonFatal(t *testing.T) {
	path := writeEventFile(t, `{
		"header": {"TIMESYS": "UTC", "TSTART": 0, "TSTOP": 86400,
		           "TIMEZERO": 0, "MJDREF": 56658},
		"columns": {"TIME": [0], "PULSE_PHASE": [0.5], "PI": [30]}
	}`)

	data, err := Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "UTC", data.TimeSys)
}

func TestHeaderValueFloat(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected float64
	}{
		{name: "plain number", json: `1.5`, expected: 1.5},
		{name: "string number", json: `"1.5"`, expected: 1.5},
		{name: "upper D exponent", json: `"1.234D-5"`, expected: 1.234e-5},
		{name: "lower d exponent", json: `"1.234d-5"`, expected: 1.234e-5},
		{name: "padded string", json: `"  2.0 "`, expected: 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v HeaderValue
			require.NoError(t, v.UnmarshalJSON([]byte(tt.json)))
			got, err := v.Float()
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-15)
		})
	}
}

func TestHeaderValueNonNumericString(t *testing.T) {
	var v HeaderValue
	require.NoError(t, v.UnmarshalJSON([]byte(`"not-a-number"`)))
	_, err := v.Float()
	assert.Error(t, err)
}
