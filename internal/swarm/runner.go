package swarm

import (
	"context"
	"time"

	"github.com/banshee-data/swarm.pilot/internal/monitoring"
	"github.com/banshee-data/swarm.pilot/internal/timeutil"
)

// RangeScanner is the sensor collaborator: one call returns one full
// revolution of distance readings. A nil sample with a nil error means the
// sensor had nothing this tick; the tick still runs.
type RangeScanner interface {
	Scan() (RangeSample, error)
}

// Actuator is the differential-drive collaborator. Velocities persist until
// the next call.
type Actuator interface {
	SetVelocities(left, right float64) error
}

// TelemetrySink receives periodic status and weight-change notices. Sink
// errors are logged and never interrupt the control loop.
type TelemetrySink interface {
	RecordStatus(agent string, res StepResult) error
	RecordTuning(agent string, ev TuningEvent, w BehaviorWeights) error
}

// StateSink receives the per-tick state for rendering. Purely
// observational; it never feeds back into the pipeline.
type StateSink interface {
	Publish(res StepResult)
}

// DefaultStatusInterval is how many ticks pass between periodic telemetry
// status records.
const DefaultStatusInterval = 100

// Runner drives an Agent at a fixed cadence: it owns the tick loop, the
// sensor and actuator edges, and fan-out to telemetry and visualization.
// All fields are fixed before Run is called; the tuning channel is the only
// input while running.
type Runner struct {
	Agent     *Agent
	Scanner   RangeScanner
	Actuator  Actuator
	Telemetry []TelemetrySink
	Viz       StateSink

	// Tuning delivers operator weight adjustments. Pending events are
	// drained at the top of each tick. May be nil.
	Tuning <-chan TuningEvent

	Clock    timeutil.Clock
	Interval time.Duration

	// StatusInterval is how many ticks between telemetry status records.
	// Zero means DefaultStatusInterval.
	StatusInterval int
}

// Tick executes exactly one control step: drain tuning events, acquire a
// scan, step the agent, command the actuator, and fan out telemetry and
// state. Tick never fails; every degradation is local.
func (r *Runner) Tick() StepResult {
	r.drainTuning()

	var scan RangeSample
	if r.Scanner != nil {
		var err error
		scan, err = r.Scanner.Scan()
		if err != nil {
			// Sensor unavailable this tick: proceed with a nil sample so
			// every scan-dependent force degrades to zero.
			monitoring.Debugf("[%s] scan failed: %v", r.Agent.Name, err)
			scan = nil
		}
	}

	res := r.Agent.Step(scan)

	if r.Actuator != nil {
		if err := r.Actuator.SetVelocities(res.Drive.Left, res.Drive.Right); err != nil {
			monitoring.Logf("[%s] actuator rejected command: %v", r.Agent.Name, err)
		}
	}

	statusEvery := r.StatusInterval
	if statusEvery <= 0 {
		statusEvery = DefaultStatusInterval
	}
	if res.Step%statusEvery == 0 {
		for _, sink := range r.Telemetry {
			if err := sink.RecordStatus(r.Agent.Name, res); err != nil {
				monitoring.Logf("[%s] telemetry status failed: %v", r.Agent.Name, err)
			}
		}
	}

	if r.Viz != nil {
		r.Viz.Publish(res)
	}
	return res
}

// Run ticks the agent at the configured interval until ctx is cancelled.
// On shutdown the wheels are stopped.
func (r *Runner) Run(ctx context.Context) error {
	clock := r.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	interval := r.Interval
	if interval <= 0 {
		interval = 32 * time.Millisecond
	}

	ticker := clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if r.Actuator != nil {
				if err := r.Actuator.SetVelocities(0, 0); err != nil {
					monitoring.Logf("[%s] failed to stop wheels: %v", r.Agent.Name, err)
				}
			}
			return ctx.Err()
		case <-ticker.C():
			r.Tick()
		}
	}
}

// drainTuning applies all pending tuning events and emits one notice per
// event to every telemetry sink.
func (r *Runner) drainTuning() {
	if r.Tuning == nil {
		return
	}
	for {
		select {
		case ev := <-r.Tuning:
			r.Agent.ApplyTuning(ev)
			for _, sink := range r.Telemetry {
				if err := sink.RecordTuning(r.Agent.Name, ev, r.Agent.Weights); err != nil {
					monitoring.Logf("[%s] telemetry tuning notice failed: %v", r.Agent.Name, err)
				}
			}
		default:
			return
		}
	}
}
