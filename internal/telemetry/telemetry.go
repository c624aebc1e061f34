// Package telemetry provides sinks for periodic agent status reporting and
// tuning audit trails. Sinks implement the swarm.TelemetrySink interface so
// the control runner can fan out to any combination of them.
package telemetry

import (
	"github.com/banshee-data/swarm.pilot/internal/monitoring"
	"github.com/banshee-data/swarm.pilot/internal/swarm"
	"github.com/banshee-data/swarm.pilot/internal/units"
)

// LogSink writes status and tuning records through the package logger.
type LogSink struct{}

// RecordStatus logs a one-line summary of a control step.
func (LogSink) RecordStatus(agent string, res swarm.StepResult) error {
	monitoring.Logf("[%s] Step %d: Neighbors=%d Force=(%.2f,%.2f) Motors=(%.1f,%.1f) [%.0f rpm / %.0f rpm]",
		agent, res.Step, len(res.Neighbors),
		res.Force.X, res.Force.Y,
		res.Drive.Left, res.Drive.Right,
		units.ConvertWheelSpeed(res.Drive.Left, units.RPM),
		units.ConvertWheelSpeed(res.Drive.Right, units.RPM))
	return nil
}

// RecordTuning logs a tuning event and the weights that resulted from it.
func (LogSink) RecordTuning(agent string, ev swarm.TuningEvent, w swarm.BehaviorWeights) error {
	monitoring.Logf("[%s] Tuning %s: sep=%.2f align=%.2f coh=%.2f avoid=%.2f wander=%.2f",
		agent, ev, w.Separation, w.Alignment, w.Cohesion, w.ObstacleAvoidance, w.Wander)
	return nil
}
