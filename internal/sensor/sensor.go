// Package sensor provides range-sensor sources for the steering pipeline:
// a serial-attached scanner speaking the one-line-per-revolution CSV
// protocol, and a synthetic scanner for demos and tests.
package sensor

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/banshee-data/swarm.pilot/internal/swarm"
)

// Porter is the minimal interface needed for a sensor transport. The
// abstraction enables unit testing without real serial hardware.
type Porter interface {
	io.ReadWriter
	io.Closer
}

// ParseScanLine parses one CSV line of distance readings into a
// RangeSample. Malformed fields become NaN so the band filters drop them
// without shifting the angular position of the remaining readings. An empty
// line parses to a nil sample (sensor had nothing).
func ParseScanLine(line string) swarm.RangeSample {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	fields := strings.Split(line, ",")
	sample := make(swarm.RangeSample, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			v = math.NaN()
		}
		sample[i] = v
	}
	return sample
}
