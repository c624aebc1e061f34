package swarm

import (
	"math/rand"

	"github.com/banshee-data/swarm.pilot/internal/geom"
)

// Agent is the per-robot steering state: identity, behavior weights, wander
// phase, step counter, and the last composite force retained for
// visualization. One Agent instance is owned and mutated by exactly one
// control loop; there is no internal locking.
type Agent struct {
	Name    string
	Weights BehaviorWeights

	params      Params
	wanderPhase float64
	rng         *rand.Rand

	stepCount int
	lastForce geom.Vec2

	// neighbor buffer reused across ticks to keep the tick allocation-free
	neighbors []Neighbor
}

// StepResult is the outcome of one control tick.
type StepResult struct {
	Step      int
	Neighbors []Neighbor // borrowed from the agent, valid until the next Step
	Forces    Forces
	Force     geom.Vec2
	Drive     DriveCommand
}

// NewAgent creates an agent with the given identity and parameters. The
// wander phase starts at zero; seed fixes the wander RNG so runs are
// reproducible.
func NewAgent(name string, p Params, seed int64) *Agent {
	if p.MaxNeighbors <= 0 {
		p.MaxNeighbors = DefaultParams().MaxNeighbors
	}
	return &Agent{
		Name:      name,
		Weights:   DefaultWeights(),
		params:    p,
		rng:       rand.New(rand.NewSource(seed)),
		neighbors: make([]Neighbor, 0, p.MaxNeighbors),
	}
}

// Params returns the agent's steering parameters.
func (a *Agent) Params() Params { return a.params }

// StepCount returns the number of completed ticks.
func (a *Agent) StepCount() int { return a.stepCount }

// LastForce returns the composite force of the most recent tick.
func (a *Agent) LastForce() geom.Vec2 { return a.lastForce }

// WanderPhase returns the current wander phase angle.
func (a *Agent) WanderPhase() float64 { return a.wanderPhase }

// SetWanderPhase overrides the wander phase. Intended for tests and for
// restoring a checkpointed agent; normal operation never resets the phase.
func (a *Agent) SetWanderPhase(phase float64) {
	a.wanderPhase = geom.WrapAngle(phase)
}

// ApplyTuning applies one weight-tuning event to the agent.
func (a *Agent) ApplyTuning(ev TuningEvent) {
	a.Weights = ApplyTuning(a.Weights, ev)
}

// Step runs one control tick against the given scan: extract neighbors,
// compute the five behavior forces, compose them with the current weights,
// and map the composite to a drive command. A nil scan degrades the
// scan-dependent forces to zero; the tick still completes and still
// produces a (possibly zero) drive command. Step never fails.
func (a *Agent) Step(scan RangeSample) StepResult {
	a.stepCount++

	a.neighbors = ExtractNeighbors(scan, a.neighbors[:0], a.params)

	var f Forces
	f.Separation = Separation(a.neighbors, a.params)
	f.Alignment = Alignment(a.neighbors)
	f.Cohesion = Cohesion(a.neighbors, a.params)
	f.ObstacleAvoidance = ObstacleAvoidance(scan, a.params)
	f.Wander, a.wanderPhase = Wander(a.wanderPhase, a.rng, a.params)

	force := a.Weights.Composite(f)
	a.lastForce = force

	return StepResult{
		Step:      a.stepCount,
		Neighbors: a.neighbors,
		Forces:    f,
		Force:     force,
		Drive:     MapToDrive(force, a.params),
	}
}
