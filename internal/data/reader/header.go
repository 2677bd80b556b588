package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// HeaderValue is one header scalar. Well-formed files store numbers, but
// some producers string-encode them, occasionally with the FORTRAN "D"
// exponent marker (e.g. "7.775925926D-4") that strconv does not accept.
type HeaderValue struct {
	num   float64
	str   string
	isStr bool
}

func (v *HeaderValue) UnmarshalJSON(data []byte) error {
	// First try to parse as a number
	var f float64
	if err := sonic.Unmarshal(data, &f); err == nil {
		v.num = f
		v.isStr = false
		return nil
	}

	// If number parsing fails, try to parse as string
	var s string
	if err := sonic.Unmarshal(data, &s); err == nil {
		v.str = s
		v.isStr = true
		return nil
	}

	return fmt.Errorf("header value must be a number or a string")
}

// Float returns the value as a real number, normalizing any "D" exponent
// marker first.
func (v HeaderValue) Float() (float64, error) {
	if !v.isStr {
		return v.num, nil
	}
	s := strings.TrimSpace(v.str)
	s = strings.ReplaceAll(s, "D", "E")
	s = strings.ReplaceAll(s, "d", "e")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("header value %q is not numeric: %w", v.str, err)
	}
	return f, nil
}

// Text returns the value as a string, formatting numbers when needed.
func (v HeaderValue) Text() string {
	if v.isStr {
		return v.str
	}
	return strconv.FormatFloat(v.num, 'g', -1, 64)
}

// MissingFieldError reports that a required header scalar is absent under
// every name it is known by.
type MissingFieldError struct {
	Keys []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("header is missing required field(s): %s", strings.Join(e.Keys, ", "))
}

// Header holds the event file's metadata scalars.
type Header map[string]HeaderValue

// Float returns the named scalar.
func (h Header) Float(key string) (float64, error) {
	v, ok := h[key]
	if !ok {
		return 0, &MissingFieldError{Keys: []string{key}}
	}
	return v.Float()
}

// FloatSplit returns the named scalar, falling back to the sum of a split
// integer+fraction pair used by some producers. Both encodings absent is
// a fatal condition passed up as MissingFieldError.
func (h Header) FloatSplit(key, intKey, fracKey string) (float64, error) {
	if v, ok := h[key]; ok {
		return v.Float()
	}
	iv, iok := h[intKey]
	fv, fok := h[fracKey]
	if !iok || !fok {
		return 0, &MissingFieldError{Keys: []string{key, intKey, fracKey}}
	}
	i, err := iv.Float()
	if err != nil {
		return 0, err
	}
	f, err := fv.Float()
	if err != nil {
		return 0, err
	}
	return i + f, nil
}
