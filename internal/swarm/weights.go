package swarm

import "github.com/banshee-data/swarm.pilot/internal/geom"

// BehaviorWeights are the five non-negative multipliers applied when the
// behavior forces are composed. Zero is a valid weight (behavior off);
// there is no upper bound.
type BehaviorWeights struct {
	Separation        float64 `json:"separation"`
	Alignment         float64 `json:"alignment"`
	Cohesion          float64 `json:"cohesion"`
	ObstacleAvoidance float64 `json:"obstacle_avoidance"`
	Wander            float64 `json:"wander"`
}

// DefaultWeights returns the documented default weighting. Obstacle
// avoidance dominates, wander is a light background drift.
func DefaultWeights() BehaviorWeights {
	return BehaviorWeights{
		Separation:        2.0,
		Alignment:         1.0,
		Cohesion:          1.5,
		ObstacleAvoidance: 3.0,
		Wander:            0.5,
	}
}

// Composite returns the weighted componentwise sum of the five behavior
// forces. The result is intentionally not normalized: its magnitude drives
// the forward speed downstream and may exceed 1.
func (w BehaviorWeights) Composite(f Forces) geom.Vec2 {
	return geom.Vec2{
		X: w.Separation*f.Separation.X +
			w.Alignment*f.Alignment.X +
			w.Cohesion*f.Cohesion.X +
			w.ObstacleAvoidance*f.ObstacleAvoidance.X +
			w.Wander*f.Wander.X,
		Y: w.Separation*f.Separation.Y +
			w.Alignment*f.Alignment.Y +
			w.Cohesion*f.Cohesion.Y +
			w.ObstacleAvoidance*f.ObstacleAvoidance.Y +
			w.Wander*f.Wander.Y,
	}
}

// TuningEvent is a discrete operator request to adjust the behavior
// weighting. Events are device-independent; the host layer translates
// whatever input surface it has (HTTP, keyboard, test fixture) into these.
type TuningEvent int

const (
	IncreaseSeparation TuningEvent = iota
	DecreaseSeparation
	IncreaseAlignment
	DecreaseAlignment
	IncreaseCohesion
	DecreaseCohesion
	ResetWeights
)

// tuningStep is the per-event weight delta.
const tuningStep = 0.5

// String returns the wire/log name of the event.
func (e TuningEvent) String() string {
	switch e {
	case IncreaseSeparation:
		return "increase_separation"
	case DecreaseSeparation:
		return "decrease_separation"
	case IncreaseAlignment:
		return "increase_alignment"
	case DecreaseAlignment:
		return "decrease_alignment"
	case IncreaseCohesion:
		return "increase_cohesion"
	case DecreaseCohesion:
		return "decrease_cohesion"
	case ResetWeights:
		return "reset_weights"
	}
	return "unknown"
}

// ParseTuningEvent maps a wire/log name back to its event. The second
// return is false for unrecognized names.
func ParseTuningEvent(name string) (TuningEvent, bool) {
	for ev := IncreaseSeparation; ev <= ResetWeights; ev++ {
		if ev.String() == name {
			return ev, true
		}
	}
	return 0, false
}

// ApplyTuning returns the weights after applying one tuning event.
// Decrease events floor at zero rather than erroring; reset restores
// DefaultWeights regardless of history. The input is not mutated.
func ApplyTuning(w BehaviorWeights, ev TuningEvent) BehaviorWeights {
	switch ev {
	case IncreaseSeparation:
		w.Separation += tuningStep
	case DecreaseSeparation:
		w.Separation = max(0, w.Separation-tuningStep)
	case IncreaseAlignment:
		w.Alignment += tuningStep
	case DecreaseAlignment:
		w.Alignment = max(0, w.Alignment-tuningStep)
	case IncreaseCohesion:
		w.Cohesion += tuningStep
	case DecreaseCohesion:
		w.Cohesion = max(0, w.Cohesion-tuningStep)
	case ResetWeights:
		w = DefaultWeights()
	}
	return w
}
