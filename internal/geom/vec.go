// Package geom provides the small 2D vector and angle utilities used by the
// steering pipeline. All operations are pure value math with no state.
package geom

import "math"

// NormalizeEpsilon is the magnitude below which a vector is treated as zero
// for normalization purposes. Normalizing a vector shorter than this is a
// no-op, which keeps near-zero force sums from blowing up into NaN/Inf.
const NormalizeEpsilon = 0.001

// Vec2 is a 2D vector or point in the agent's local frame.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mag returns the Euclidean magnitude of v.
func (v Vec2) Mag() float64 {
	return math.Hypot(v.X, v.Y)
}

// Heading returns the bearing angle of v in radians, in [-pi, pi].
func (v Vec2) Heading() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalized returns the unit vector in the direction of v. Vectors with
// magnitude at or below NormalizeEpsilon are returned unchanged, so a zero
// vector normalizes to a zero vector.
func (v Vec2) Normalized() Vec2 {
	mag := v.Mag()
	if mag <= NormalizeEpsilon {
		return v
	}
	return Vec2{X: v.X / mag, Y: v.Y / mag}
}

// Unit returns the unit vector at the given bearing angle.
func Unit(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// WrapAngle wraps an angle in radians into (-pi, pi].
func WrapAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle < -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}
