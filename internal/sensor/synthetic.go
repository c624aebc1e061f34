package sensor

import (
	"math"
	"math/rand"

	"github.com/banshee-data/swarm.pilot/internal/swarm"
)

// SyntheticConfig controls the generated environment.
type SyntheticConfig struct {
	// Resolution is the number of readings per revolution.
	Resolution int

	// Agents is the number of simulated flockmates orbiting the sensor.
	Agents int

	// Obstacle places a close return dead ahead every ObstaclePeriod
	// scans; zero disables it.
	ObstaclePeriod int

	// Noise is the relative amplitude of per-reading range noise.
	Noise float64

	// Seed fixes the noise RNG.
	Seed int64
}

// DefaultSyntheticConfig returns a small drifting flock with occasional
// obstacles, matching the reference sensor's 512-beam resolution.
func DefaultSyntheticConfig() SyntheticConfig {
	return SyntheticConfig{
		Resolution:     512,
		Agents:         3,
		ObstaclePeriod: 40,
		Noise:          0.02,
		Seed:           1,
	}
}

// Synthetic generates deterministic scans of a small drifting flock. It
// lets the full pipeline run end to end without hardware.
type Synthetic struct {
	cfg  SyntheticConfig
	rng  *rand.Rand
	tick int
}

// NewSynthetic creates a synthetic scanner.
func NewSynthetic(cfg SyntheticConfig) *Synthetic {
	if cfg.Resolution <= 0 {
		cfg.Resolution = DefaultSyntheticConfig().Resolution
	}
	return &Synthetic{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Scan produces the next synthetic revolution. Simulated flockmates drift
// slowly around the sensor at flocking-band ranges; everything else reads
// as out of range.
func (s *Synthetic) Scan() (swarm.RangeSample, error) {
	s.tick++
	n := s.cfg.Resolution
	sample := make(swarm.RangeSample, n)
	for i := range sample {
		sample[i] = math.Inf(1)
	}

	phase := float64(s.tick) * 0.01
	for a := 0; a < s.cfg.Agents; a++ {
		bearing := phase + float64(a)*2*math.Pi/float64(max(s.cfg.Agents, 1))
		dist := 0.6 + 0.3*math.Sin(phase+float64(a))
		dist *= 1 + s.cfg.Noise*(s.rng.Float64()-0.5)

		i := int((bearing/(2*math.Pi))*float64(n)+float64(n)/2) % n
		if i < 0 {
			i += n
		}
		// A flockmate subtends a few beams at these ranges.
		for di := -2; di <= 2; di++ {
			j := (i + di + n) % n
			sample[j] = dist
		}
	}

	if s.cfg.ObstaclePeriod > 0 && s.tick%s.cfg.ObstaclePeriod == 0 {
		// Close return dead ahead (bearing zero is the middle beam).
		mid := n / 2
		for di := -3; di <= 3; di++ {
			sample[(mid+di+n)%n] = 0.2
		}
	}
	return sample, nil
}
