package telemetry

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/swarm.pilot/internal/swarm"
)

// DefaultHistorySize bounds the number of recent status samples a Rollup
// retains for its summary statistics.
const DefaultHistorySize = 100

// RollupStats summarises recent control activity for one agent.
type RollupStats struct {
	Samples       int     `json:"samples"`
	MeanNeighbors float64 `json:"mean_neighbors"`
	MeanForceMag  float64 `json:"mean_force_mag"`
	P50ForceMag   float64 `json:"p50_force_mag"`
	P95ForceMag   float64 `json:"p95_force_mag"`
	MeanWheel     float64 `json:"mean_wheel"`
	MaxWheel      float64 `json:"max_wheel"`
	TuningEvents  int     `json:"tuning_events"`
}

// Rollup accumulates a bounded window of status samples and computes
// summary statistics on demand. It is safe for concurrent use.
type Rollup struct {
	mu        sync.Mutex
	limit     int
	neighbors []float64
	forceMags []float64
	wheels    []float64
	tunings   int
}

// NewRollup returns a Rollup retaining up to limit recent samples.
// A non-positive limit selects DefaultHistorySize.
func NewRollup(limit int) *Rollup {
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return &Rollup{limit: limit}
}

// RecordStatus appends one control step to the rolling window.
func (r *Rollup) RecordStatus(agent string, res swarm.StepResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.neighbors = push(r.neighbors, float64(len(res.Neighbors)), r.limit)
	r.forceMags = push(r.forceMags, res.Force.Mag(), r.limit)
	wheel := math.Max(math.Abs(res.Drive.Left), math.Abs(res.Drive.Right))
	r.wheels = push(r.wheels, wheel, r.limit)
	return nil
}

// RecordTuning counts tuning events; the weight values themselves are the
// audit store's concern.
func (r *Rollup) RecordTuning(agent string, ev swarm.TuningEvent, w swarm.BehaviorWeights) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tunings++
	return nil
}

// Stats computes summary statistics over the current window.
func (r *Rollup) Stats() RollupStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := RollupStats{
		Samples:      len(r.forceMags),
		TuningEvents: r.tunings,
	}
	if out.Samples == 0 {
		return out
	}

	out.MeanNeighbors = stat.Mean(r.neighbors, nil)
	out.MeanForceMag = stat.Mean(r.forceMags, nil)
	out.MeanWheel = stat.Mean(r.wheels, nil)

	// Quantile requires sorted input; work on a copy so the window order
	// is preserved for future appends.
	sorted := make([]float64, len(r.forceMags))
	copy(sorted, r.forceMags)
	sort.Float64s(sorted)
	out.P50ForceMag = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	out.P95ForceMag = stat.Quantile(0.95, stat.Empirical, sorted, nil)

	for _, w := range r.wheels {
		if w > out.MaxWheel {
			out.MaxWheel = w
		}
	}
	return out
}

// push appends v to s, evicting the oldest entry once the limit is reached.
func push(s []float64, v float64, limit int) []float64 {
	if len(s) >= limit {
		copy(s, s[1:])
		s = s[:len(s)-1]
	}
	return append(s, v)
}
