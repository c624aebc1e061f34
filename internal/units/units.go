// Package units provides shared constants and conversion for wheel speed units
package units

import "math"

// Unit constants
const (
	RadPerSec = "radps"
	RPM       = "rpm"
	DegPerSec = "degps"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{RadPerSec, RPM, DegPerSec}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "radps, rpm, degps"
}

// ConvertWheelSpeed converts a wheel speed from radians per second to the
// target units. The pipeline computes wheel velocities in rad/s.
func ConvertWheelSpeed(speedRadPerSec float64, targetUnits string) float64 {
	switch targetUnits {
	case RPM:
		return speedRadPerSec * 60 / (2 * math.Pi)
	case DegPerSec:
		return speedRadPerSec * 180 / math.Pi
	case RadPerSec:
		return speedRadPerSec
	default:
		return speedRadPerSec
	}
}
