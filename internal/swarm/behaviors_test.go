package swarm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swarm.pilot/internal/geom"
)

func neighborAt(x, y float64) Neighbor {
	off := geom.Vec2{X: x, Y: y}
	return Neighbor{Offset: off, Distance: off.Mag(), Bearing: off.Heading()}
}

func TestSeparation(t *testing.T) {
	t.Parallel()
	p := DefaultParams()

	t.Run("neighbor at the radius contributes nothing", func(t *testing.T) {
		t.Parallel()
		for _, d := range []float64{0.8, 0.9, 1.4} {
			force := Separation([]Neighbor{neighborAt(d, 0)}, p)
			assert.Equal(t, geom.Vec2{}, force, "distance %f", d)
		}
	})

	t.Run("single close neighbor repels along the opposite bearing", func(t *testing.T) {
		t.Parallel()
		force := Separation([]Neighbor{neighborAt(0.5, 0)}, p)
		assert.InDelta(t, -1.0, force.X, 1e-12)
		assert.InDelta(t, 0, force.Y, 1e-12)

		// With the default weight the composite contribution is (-2, 0).
		contrib := force.Scale(DefaultWeights().Separation)
		assert.InDelta(t, -2.0, contrib.X, 1e-12)
	})

	t.Run("contributions sum with inverse-distance softened weights", func(t *testing.T) {
		t.Parallel()
		// Each neighbor repels by -offset/(d+0.1), so the raw contribution
		// magnitude is d/(d+0.1): (0.2,0) gives 0.2/0.3 on X, (0,0.7) gives
		// 0.7/0.8 on Y, and the sum is normalized.
		force := Separation([]Neighbor{neighborAt(0.2, 0), neighborAt(0, 0.7)}, p)
		want := geom.Vec2{X: -0.2 / 0.3, Y: -0.7 / 0.8}.Normalized()
		assert.InDelta(t, want.X, force.X, 1e-12)
		assert.InDelta(t, want.Y, force.Y, 1e-12)
		assert.InDelta(t, 1.0, force.Mag(), 1e-12)
	})

	t.Run("per-neighbor weight decays with distance", func(t *testing.T) {
		t.Parallel()
		// With equal-magnitude contributions from opposite sides, the closer
		// neighbor's larger 1/(d+0.1) weight decides the sign. Offsets are
		// scaled to unit direction times distance: (0.2,0) vs (-0.6,0).
		near := neighborAt(0.2, 0)
		far := neighborAt(-0.6, 0)
		nearWeight := 1.0 / (near.Distance + p.SeparationSoftening)
		farWeight := 1.0 / (far.Distance + p.SeparationSoftening)
		assert.Greater(t, nearWeight, farWeight)

		// Raw sum: -0.2*nearWeight + 0.6*farWeight = -0.667 + 0.857 > 0,
		// so the normalized force points away from the (stronger-offset)
		// far neighbor.
		force := Separation([]Neighbor{near, far}, p)
		assert.Greater(t, force.X, 0.0)
		assert.InDelta(t, 0.0, force.Y, 1e-12)
	})

	t.Run("empty list yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, geom.Vec2{}, Separation(nil, p))
	})
}

func TestAlignment(t *testing.T) {
	t.Parallel()

	t.Run("empty list yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, geom.Vec2{}, Alignment(nil))
	})

	t.Run("output is the unit vector at the centroid bearing", func(t *testing.T) {
		t.Parallel()
		// Centroid of (1,0) and (0,1) is (0.5,0.5): bearing pi/4, but the
		// force is unit length regardless of the centroid's magnitude.
		force := Alignment([]Neighbor{neighborAt(1, 0), neighborAt(0, 1)})
		assert.InDelta(t, math.Sqrt2/2, force.X, 1e-12)
		assert.InDelta(t, math.Sqrt2/2, force.Y, 1e-12)
		assert.InDelta(t, 1.0, force.Mag(), 1e-12)
	})
}

func TestCohesion(t *testing.T) {
	t.Parallel()
	p := DefaultParams()

	t.Run("empty list yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, geom.Vec2{}, Cohesion(nil, p))
	})

	t.Run("close centroid yields zero", func(t *testing.T) {
		t.Parallel()
		// Centroid magnitude exactly at the trigger is still zero.
		force := Cohesion([]Neighbor{neighborAt(0.5, 0)}, p)
		assert.Equal(t, geom.Vec2{}, force)

		force = Cohesion([]Neighbor{neighborAt(0.4, 0), neighborAt(-0.4, 0)}, p)
		assert.Equal(t, geom.Vec2{}, force)
	})

	t.Run("distant centroid yields unit pull toward it", func(t *testing.T) {
		t.Parallel()
		force := Cohesion([]Neighbor{neighborAt(1.2, 0), neighborAt(1.2, 0.4)}, p)
		require.InDelta(t, 1.0, force.Mag(), 1e-12)
		assert.Greater(t, force.X, 0.0)
		assert.Greater(t, force.Y, 0.0)
	})
}

func TestObstacleAvoidance(t *testing.T) {
	t.Parallel()
	p := DefaultParams()

	t.Run("nil scan yields zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, geom.Vec2{}, ObstacleAvoidance(nil, p))
	})

	t.Run("obstacle dead ahead repels backwards", func(t *testing.T) {
		t.Parallel()
		// Reading 0.2 at bearing 0: repulsion along (-1, 0).
		force := ObstacleAvoidance(scanWithReading(8, 4, 0.2), p)
		assert.InDelta(t, -1.0, force.X, 1e-12)
		assert.InDelta(t, 0, force.Y, 1e-12)
	})

	t.Run("flocking-band readings are ignored", func(t *testing.T) {
		t.Parallel()
		force := ObstacleAvoidance(scanWithReading(8, 4, 0.5), p)
		assert.Equal(t, geom.Vec2{}, force)
	})

	t.Run("band edges are exclusive", func(t *testing.T) {
		t.Parallel()
		for _, d := range []float64{0.05, 0.4} {
			force := ObstacleAvoidance(scanWithReading(8, 4, d), p)
			assert.Equal(t, geom.Vec2{}, force, "distance %f", d)
		}
	})

	t.Run("returns below the neighbor validity floor still repel", func(t *testing.T) {
		t.Parallel()
		// 0.08 is outside the (0.1, 2.0) validity band, so it is not a
		// neighbor, but it sits inside the avoid band and must still push.
		scan := scanWithReading(8, 4, 0.08)
		neighbors := ExtractNeighbors(scan, make([]Neighbor, 0, 8), p)
		assert.Empty(t, neighbors)

		force := ObstacleAvoidance(scan, p)
		assert.InDelta(t, -1.0, force.X, 1e-12)
		assert.InDelta(t, 0, force.Y, 1e-12)
	})
}

func TestWander(t *testing.T) {
	t.Parallel()
	p := DefaultParams()

	t.Run("output is always unit length", func(t *testing.T) {
		t.Parallel()
		rng := rand.New(rand.NewSource(1))
		phase := 0.0
		var force geom.Vec2
		for i := 0; i < 1000; i++ {
			force, phase = Wander(phase, rng, p)
			assert.InDelta(t, 1.0, force.Mag(), 1e-12)
		}
	})

	t.Run("phase increment is bounded and wrapped", func(t *testing.T) {
		t.Parallel()
		rng := rand.New(rand.NewSource(7))
		phase := 3.0
		for i := 0; i < 1000; i++ {
			prev := phase
			_, phase = Wander(phase, rng, p)
			delta := math.Abs(geom.WrapAngle(phase - prev))
			assert.LessOrEqual(t, delta, p.WanderJitter+1e-12)
			assert.LessOrEqual(t, phase, math.Pi)
			assert.Greater(t, phase, -math.Pi)
		}
	})

	t.Run("same seed gives the same walk", func(t *testing.T) {
		t.Parallel()
		a := rand.New(rand.NewSource(42))
		b := rand.New(rand.NewSource(42))
		pa, pb := 0.0, 0.0
		for i := 0; i < 100; i++ {
			_, pa = Wander(pa, a, p)
			_, pb = Wander(pb, b, p)
			assert.Equal(t, pa, pb)
		}
	})
}
