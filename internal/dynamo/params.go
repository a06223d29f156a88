package dynamo

import (
	"fmt"
	"math"
)

const (
	DefaultMass       = 10.0
	DefaultHeight     = 200.0
	DefaultDragCoeff  = 0.47
	DefaultAirDensity = 1.225
	DefaultDiameter   = 0.5
	DefaultGravity    = 9.81
	DefaultTimeScale  = 1.0
)

// Params describes one drop. Values are replaced wholesale between ticks and
// never mutated by the simulator.
type Params struct {
	Mass       float64 `yaml:"mass" json:"mass"`
	Height     float64 `yaml:"height" json:"height"`
	DragCoeff  float64 `yaml:"drag_coeff" json:"drag_coeff"`
	AirDensity float64 `yaml:"air_density" json:"air_density"`
	Diameter   float64 `yaml:"diameter" json:"diameter"`
	Gravity    float64 `yaml:"gravity" json:"gravity"`
	TimeScale  float64 `yaml:"time_scale" json:"time_scale"`
}

// DefaultParams returns a 10 kg, 0.5 m sphere dropped from 200 m at sea level.
func DefaultParams() Params {
	return Params{
		Mass:       DefaultMass,
		Height:     DefaultHeight,
		DragCoeff:  DefaultDragCoeff,
		AirDensity: DefaultAirDensity,
		Diameter:   DefaultDiameter,
		Gravity:    DefaultGravity,
		TimeScale:  DefaultTimeScale,
	}
}

// Area is the frontal cross-section of the body.
func (p Params) Area() float64 {
	r := p.Diameter / 2
	return math.Pi * r * r
}

// Validate checks the ranges the integrator assumes. The integrator itself
// never calls it.
func (p Params) Validate() error {
	checks := []struct {
		name     string
		value    float64
		positive bool
	}{
		{"mass", p.Mass, true},
		{"height", p.Height, true},
		{"drag_coeff", p.DragCoeff, false},
		{"air_density", p.AirDensity, false},
		{"diameter", p.Diameter, true},
		{"gravity", p.Gravity, true},
		{"time_scale", p.TimeScale, true},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%s must be finite, got %v: %w", c.name, c.value, ErrParameterBounds)
		}
		if c.positive && c.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v: %w", c.name, c.value, ErrParameterBounds)
		}
		if !c.positive && c.value < 0 {
			return fmt.Errorf("%s must be non-negative, got %v: %w", c.name, c.value, ErrParameterBounds)
		}
	}
	return nil
}

// ParamNames lists the editable parameters in display order.
var ParamNames = []string{"mass", "height", "drag_coeff", "air_density", "diameter", "gravity", "time_scale"}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":        p.Mass,
		"height":      p.Height,
		"drag_coeff":  p.DragCoeff,
		"air_density": p.AirDensity,
		"diameter":    p.Diameter,
		"gravity":     p.Gravity,
		"time_scale":  p.TimeScale,
	}
}

// WithParam returns a copy of p with one named parameter replaced.
func (p Params) WithParam(name string, value float64) (Params, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return p, fmt.Errorf("%s must be finite: %w", name, ErrParameterBounds)
	}
	switch name {
	case "mass":
		p.Mass = value
	case "height":
		p.Height = value
	case "drag_coeff":
		p.DragCoeff = value
	case "air_density":
		p.AirDensity = value
	case "diameter":
		p.Diameter = value
	case "gravity":
		p.Gravity = value
	case "time_scale":
		p.TimeScale = value
	default:
		return p, fmt.Errorf("unknown param: %s", name)
	}
	return p, nil
}
