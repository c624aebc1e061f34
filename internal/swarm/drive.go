package swarm

import "github.com/banshee-data/swarm.pilot/internal/geom"

// DriveCommand is a pair of signed differential-drive wheel velocities,
// each clamped to [-MaxSpeed, MaxSpeed].
type DriveCommand struct {
	Left  float64
	Right float64
}

// MapToDrive converts a composite force into wheel velocities. Forward
// speed scales with force magnitude; the turning term scales with the
// absolute desired bearing (atan2 of the force), not with an error against
// the agent's own heading. The controller carries no odometry, so steering
// is open-loop reactive: a force pointing behind the agent produces a large
// turn command by construction.
func MapToDrive(force geom.Vec2, p Params) DriveCommand {
	forward := force.Mag() * p.MaxSpeed * p.ForwardGain
	turning := force.Heading() * p.MaxSpeed * p.TurningGain
	return DriveCommand{
		Left:  geom.Clamp(forward-turning, -p.MaxSpeed, p.MaxSpeed),
		Right: geom.Clamp(forward+turning, -p.MaxSpeed, p.MaxSpeed),
	}
}
