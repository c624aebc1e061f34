// Package swarm implements the per-tick decision core of a single mobile
// agent in a decentralized swarm: neighbor extraction from raw range scans,
// the five steering behaviors, weighted force composition, and the
// force-to-differential-drive conversion.
//
// The pipeline is strictly feed-forward within a tick and single-threaded.
// The only state that survives across ticks lives in Agent (behavior weights,
// wander phase, step counter, last composite force).
package swarm

// Params holds the resolved numeric parameters of the steering pipeline.
// Values are in the sensor's length units (meters for the reference robot)
// and radians. Use DefaultParams for the canonical tuning; LoadTuningConfig
// resolves operator overrides from JSON.
type Params struct {
	// Scan validity band for neighbor extraction. Readings outside
	// (ValidMin, ValidMax) yield no neighbors; obstacle avoidance applies
	// only its own band, so returns below ValidMin still repel.
	ValidMin float64
	ValidMax float64

	// Neighbor detection band for the flocking behaviors.
	NeighborMin float64
	NeighborMax float64

	// MaxNeighbors bounds the neighbor list rebuilt each tick.
	MaxNeighbors int

	// SeparationRadius is the distance under which a neighbor contributes a
	// repulsive force; SeparationSoftening is added to the distance in the
	// inverse weighting so contributions stay finite at contact.
	SeparationRadius    float64
	SeparationSoftening float64

	// CohesionTrigger is the minimum centroid-offset magnitude before
	// cohesion produces a pull, which keeps a settled flock from jittering.
	CohesionTrigger float64

	// Obstacle avoidance band and softening. Tighter band and sharper
	// weighting than separation so imminent collision dominates.
	AvoidMin       float64
	AvoidMax       float64
	AvoidSoftening float64

	// WanderJitter is the per-tick bound on the wander phase increment,
	// in radians. The increment is uniform in [-WanderJitter, WanderJitter].
	WanderJitter float64

	// Drive mapping: wheel speeds saturate at MaxSpeed; ForwardGain and
	// TurningGain scale force magnitude and desired bearing respectively.
	MaxSpeed    float64
	ForwardGain float64
	TurningGain float64
}

// DefaultParams returns the canonical steering parameters for the reference
// robot (full-turn lidar, 60 rad/s wheel limit).
func DefaultParams() Params {
	return Params{
		ValidMin:            0.1,
		ValidMax:            2.0,
		NeighborMin:         0.3,
		NeighborMax:         1.5,
		MaxNeighbors:        32,
		SeparationRadius:    0.8,
		SeparationSoftening: 0.1,
		CohesionTrigger:     0.5,
		AvoidMin:            0.05,
		AvoidMax:            0.4,
		AvoidSoftening:      0.05,
		WanderJitter:        0.1,
		MaxSpeed:            60.0,
		ForwardGain:         0.5,
		TurningGain:         0.3,
	}
}
