package swarm

import (
	"math/rand"

	"github.com/banshee-data/swarm.pilot/internal/geom"
)

// Forces holds the five behavior outputs for one tick, before weighting.
type Forces struct {
	Separation        geom.Vec2
	Alignment         geom.Vec2
	Cohesion          geom.Vec2
	ObstacleAvoidance geom.Vec2
	Wander            geom.Vec2
}

// Separation pushes away from neighbors closer than p.SeparationRadius.
// Each such neighbor contributes its negated offset weighted by inverse
// distance, so urgency grows continuously as neighbors close in. The sum is
// unit-normalized (a no-op for near-zero sums).
func Separation(neighbors []Neighbor, p Params) geom.Vec2 {
	var force geom.Vec2
	for _, n := range neighbors {
		if n.Distance < p.SeparationRadius {
			w := 1.0 / (n.Distance + p.SeparationSoftening)
			force = force.Add(n.Offset.Scale(-w))
		}
	}
	return force.Normalized()
}

// Alignment nudges toward the direction of the neighbor centroid: the unit
// vector at the bearing of the mean neighbor offset. With no neighbors the
// force is zero.
func Alignment(neighbors []Neighbor) geom.Vec2 {
	if len(neighbors) == 0 {
		return geom.Vec2{}
	}
	var sum geom.Vec2
	for _, n := range neighbors {
		sum = sum.Add(n.Offset)
	}
	mean := sum.Scale(1.0 / float64(len(neighbors)))
	return geom.Unit(mean.Heading())
}

// Cohesion pulls toward the neighbor centroid, but only once the centroid
// has drifted further than p.CohesionTrigger; below that the flock is close
// enough and the force is zero, which damps jitter.
func Cohesion(neighbors []Neighbor, p Params) geom.Vec2 {
	if len(neighbors) == 0 {
		return geom.Vec2{}
	}
	var sum geom.Vec2
	for _, n := range neighbors {
		sum = sum.Add(n.Offset)
	}
	center := sum.Scale(1.0 / float64(len(neighbors)))
	if center.Mag() <= p.CohesionTrigger {
		return geom.Vec2{}
	}
	return center.Normalized()
}

// ObstacleAvoidance re-scans the raw sample for readings inside the tight
// avoidance band (p.AvoidMin, p.AvoidMax) and accumulates repulsion away
// from each, weighted by the sharper inverse 1/(d+p.AvoidSoftening). It
// deliberately bypasses the filtered neighbor list: an imminent obstacle
// must register even when it falls outside the flocking band. A nil sample
// yields zero force.
func ObstacleAvoidance(scan RangeSample, p Params) geom.Vec2 {
	var force geom.Vec2
	for i, r := range scan {
		if r > p.AvoidMin && r < p.AvoidMax {
			w := 1.0 / (r + p.AvoidSoftening)
			force = force.Add(geom.Unit(scan.Bearing(i)).Scale(-w))
		}
	}
	return force.Normalized()
}

// Wander advances the persistent wander phase by a pseudo-random increment
// bounded to [-p.WanderJitter, p.WanderJitter], wraps it into (-pi, pi], and
// returns the unit vector at the new phase together with the new phase. This
// is the only behavior with cross-tick memory; the caller owns the phase.
func Wander(phase float64, rng *rand.Rand, p Params) (geom.Vec2, float64) {
	phase += (rng.Float64() - 0.5) * 2 * p.WanderJitter
	phase = geom.WrapAngle(phase)
	return geom.Unit(phase), phase
}
