package swarm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// TuningConfig is the JSON-facing configuration for the steering pipeline.
// All fields are optional pointers: fields omitted from the file keep their
// defaults, so partial configs are safe. The same shape is accepted by the
// runtime tuning endpoint.
type TuningConfig struct {
	// Scan bands
	ValidMin    *float64 `json:"valid_min,omitempty"`
	ValidMax    *float64 `json:"valid_max,omitempty"`
	NeighborMin *float64 `json:"neighbor_min,omitempty"`
	NeighborMax *float64 `json:"neighbor_max,omitempty"`

	// Behavior thresholds
	MaxNeighbors        *int     `json:"max_neighbors,omitempty"`
	SeparationRadius    *float64 `json:"separation_radius,omitempty"`
	SeparationSoftening *float64 `json:"separation_softening,omitempty"`
	CohesionTrigger     *float64 `json:"cohesion_trigger,omitempty"`
	AvoidMin            *float64 `json:"avoid_min,omitempty"`
	AvoidMax            *float64 `json:"avoid_max,omitempty"`
	AvoidSoftening      *float64 `json:"avoid_softening,omitempty"`
	WanderJitter        *float64 `json:"wander_jitter,omitempty"`

	// Drive mapping
	MaxSpeed    *float64 `json:"max_speed,omitempty"`
	ForwardGain *float64 `json:"forward_gain,omitempty"`
	TurningGain *float64 `json:"turning_gain,omitempty"`

	// Initial behavior weights
	Weights *BehaviorWeights `json:"weights,omitempty"`
}

// LoadTuningConfig loads a TuningConfig from a JSON file. The path must
// have a .json extension and the file must be under 1MB.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &TuningConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that configured values are usable. Band bounds must be
// ordered, counts positive, weights non-negative.
func (c *TuningConfig) Validate() error {
	checkBand := func(name string, lo, hi *float64, dlo, dhi float64) error {
		l, h := dlo, dhi
		if lo != nil {
			l = *lo
		}
		if hi != nil {
			h = *hi
		}
		if l < 0 || h <= l {
			return fmt.Errorf("%s band (%f, %f) is not a valid range", name, l, h)
		}
		return nil
	}

	d := DefaultParams()
	if err := checkBand("valid", c.ValidMin, c.ValidMax, d.ValidMin, d.ValidMax); err != nil {
		return err
	}
	if err := checkBand("neighbor", c.NeighborMin, c.NeighborMax, d.NeighborMin, d.NeighborMax); err != nil {
		return err
	}
	if err := checkBand("avoid", c.AvoidMin, c.AvoidMax, d.AvoidMin, d.AvoidMax); err != nil {
		return err
	}

	if c.MaxNeighbors != nil && *c.MaxNeighbors <= 0 {
		return fmt.Errorf("max_neighbors must be positive, got %d", *c.MaxNeighbors)
	}
	if c.MaxSpeed != nil && *c.MaxSpeed <= 0 {
		return fmt.Errorf("max_speed must be positive, got %f", *c.MaxSpeed)
	}
	if c.WanderJitter != nil && *c.WanderJitter < 0 {
		return fmt.Errorf("wander_jitter must be non-negative, got %f", *c.WanderJitter)
	}
	if c.Weights != nil {
		w := *c.Weights
		for name, v := range map[string]float64{
			"separation":         w.Separation,
			"alignment":          w.Alignment,
			"cohesion":           w.Cohesion,
			"obstacle_avoidance": w.ObstacleAvoidance,
			"wander":             w.Wander,
		} {
			if v < 0 {
				return fmt.Errorf("weight %s must be non-negative, got %f", name, v)
			}
		}
	}
	return nil
}

// Params resolves the config into a full parameter set, applying defaults
// for any unset field.
func (c *TuningConfig) Params() Params {
	p := DefaultParams()
	if c == nil {
		return p
	}
	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setF(&p.ValidMin, c.ValidMin)
	setF(&p.ValidMax, c.ValidMax)
	setF(&p.NeighborMin, c.NeighborMin)
	setF(&p.NeighborMax, c.NeighborMax)
	setF(&p.SeparationRadius, c.SeparationRadius)
	setF(&p.SeparationSoftening, c.SeparationSoftening)
	setF(&p.CohesionTrigger, c.CohesionTrigger)
	setF(&p.AvoidMin, c.AvoidMin)
	setF(&p.AvoidMax, c.AvoidMax)
	setF(&p.AvoidSoftening, c.AvoidSoftening)
	setF(&p.WanderJitter, c.WanderJitter)
	setF(&p.MaxSpeed, c.MaxSpeed)
	setF(&p.ForwardGain, c.ForwardGain)
	setF(&p.TurningGain, c.TurningGain)
	if c.MaxNeighbors != nil {
		p.MaxNeighbors = *c.MaxNeighbors
	}
	return p
}

// InitialWeights returns the configured starting weights, or the defaults.
func (c *TuningConfig) InitialWeights() BehaviorWeights {
	if c == nil || c.Weights == nil {
		return DefaultWeights()
	}
	return *c.Weights
}
