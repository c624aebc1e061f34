package swarm

import (
	"math"

	"github.com/banshee-data/swarm.pilot/internal/geom"
)

// RangeSample is one full-revolution scan of distance readings, equally
// spaced in angle. Reading i is taken at bearing i/N*2pi - pi. A nil sample
// means the sensor produced nothing this tick.
type RangeSample []float64

// Bearing returns the bearing angle of reading i, in [-pi, pi).
func (s RangeSample) Bearing(i int) float64 {
	return float64(i)/float64(len(s))*2*math.Pi - math.Pi
}

// Neighbor is one detected nearby agent or obstacle edge, expressed in the
// agent's local frame. Neighbors are rebuilt from scratch every tick and
// never persist.
type Neighbor struct {
	Offset   geom.Vec2
	Distance float64
	Bearing  float64
}

// ExtractNeighbors scans the sample for readings inside the neighbor
// detection band and appends them to dst, converting polar readings to
// Cartesian offsets. It stops once cap(dst) neighbors have been collected,
// so callers pass a capacity-bounded slice (dst[:0]) to keep per-tick cost
// fixed. A nil or empty sample yields dst unchanged.
//
// Readings outside the validity band (p.ValidMin, p.ValidMax) are dropped
// with no interpolation; NaN and Inf readings fail the band check and are
// dropped the same way.
func ExtractNeighbors(scan RangeSample, dst []Neighbor, p Params) []Neighbor {
	if len(scan) == 0 {
		return dst
	}
	for i, r := range scan {
		if len(dst) >= cap(dst) {
			break
		}
		if !(r > p.ValidMin && r < p.ValidMax) {
			continue
		}
		if r > p.NeighborMin && r < p.NeighborMax {
			bearing := scan.Bearing(i)
			dst = append(dst, Neighbor{
				Offset:   geom.Unit(bearing).Scale(r),
				Distance: r,
				Bearing:  bearing,
			})
		}
	}
	return dst
}
