// Package radio loads reference pulse profiles from plain two-column
// text files, x then y, whitespace delimited.
package radio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pulsekit/phaseogram/internal/util"
)

// Load reads a reference profile. Blank lines and '#' comments are
// skipped; anything else must parse as two real columns.
func Load(path string) (xs, ys []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open reference profile: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("%s:%d: expected two columns, got %d", path, line, len(fields))
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: bad x value %q: %w", path, line, fields[0], err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s:%d: bad y value %q: %w", path, line, fields[1], err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("read reference profile: %w", err)
	}

	util.LogDebugf("loaded %d reference profile points from %s", len(xs), path)
	return xs, ys, nil
}
