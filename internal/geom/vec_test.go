package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalized(t *testing.T) {
	t.Parallel()

	t.Run("unit vector is unchanged within tolerance", func(t *testing.T) {
		t.Parallel()
		v := Vec2{X: 1, Y: 0}
		n := v.Normalized()
		assert.InDelta(t, 1.0, n.X, 1e-12)
		assert.InDelta(t, 0.0, n.Y, 1e-12)

		// Normalization is idempotent.
		again := n.Normalized()
		assert.InDelta(t, n.X, again.X, 1e-12)
		assert.InDelta(t, n.Y, again.Y, 1e-12)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		t.Parallel()
		n := Vec2{}.Normalized()
		assert.Equal(t, Vec2{}, n)
		assert.False(t, math.IsNaN(n.X))
		assert.False(t, math.IsNaN(n.Y))
	})

	t.Run("near-zero vector below epsilon is untouched", func(t *testing.T) {
		t.Parallel()
		v := Vec2{X: 0.0005, Y: 0}
		assert.Equal(t, v, v.Normalized())
	})

	t.Run("arbitrary vector normalizes to unit length", func(t *testing.T) {
		t.Parallel()
		n := Vec2{X: 3, Y: -4}.Normalized()
		assert.InDelta(t, 1.0, n.Mag(), 1e-12)
		assert.InDelta(t, 0.6, n.X, 1e-12)
		assert.InDelta(t, -0.8, n.Y, 1e-12)
	})
}

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5.0, Clamp(10, -5, 5))
	assert.Equal(t, -5.0, Clamp(-10, -5, 5))
	assert.Equal(t, 3.0, Clamp(3, -5, 5))
}

func TestWrapAngle(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, -math.Pi/2, WrapAngle(3*math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi/2, WrapAngle(-3*math.Pi/2), 1e-12)
	assert.InDelta(t, 0.25, WrapAngle(0.25), 1e-12)
	assert.InDelta(t, 0, WrapAngle(4*math.Pi), 1e-12)
}

func TestUnitAndHeading(t *testing.T) {
	t.Parallel()

	for _, angle := range []float64{0, 0.5, -0.5, 2.0, -3.0} {
		v := Unit(angle)
		assert.InDelta(t, 1.0, v.Mag(), 1e-12)
		assert.InDelta(t, angle, v.Heading(), 1e-12)
	}
}
