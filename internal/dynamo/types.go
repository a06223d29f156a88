package dynamo

import "math"

// State is the body's kinematic state. V is signed, negative means falling.
type State struct {
	Time      float64 `json:"time"`
	Y         float64 `json:"y"`
	V         float64 `json:"v"`
	A         float64 `json:"a"`
	HasLanded bool    `json:"has_landed"`
}

// InitialState returns the drop configuration for p: at rest at p.Height.
func InitialState(p Params) State {
	return State{
		Time: 0,
		Y:    p.Height,
		V:    0,
		A:    -p.Gravity,
	}
}

func (s State) IsValid() bool {
	for _, v := range [...]float64{s.Time, s.Y, s.V, s.A} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Diverged reports whether the position or velocity can no longer be
// integrated. Time and acceleration are recomputed every step and are not
// checked.
func (s State) Diverged() bool {
	return math.IsNaN(s.Y) || math.IsNaN(s.V) || math.IsInf(s.V, 0)
}

// Sample converts s to a trajectory point.
func (s State) Sample() DataPoint {
	return DataPoint{
		Time:         s.Time,
		Position:     s.Y,
		Velocity:     s.V,
		Acceleration: s.A,
	}
}

// DataPoint is one decimated trajectory sample.
type DataPoint struct {
	Time         float64 `json:"time"`
	Position     float64 `json:"position"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

type Integrator interface {
	Step(s State, p Params, dt float64) State
}

type Metric interface {
	Name() string
	Observe(s State, p Params)
	Value() float64
	Reset()
}

type Result struct {
	Points     []DataPoint
	Final      State
	Metrics    map[string]float64
	StepsTaken int
	Recoveries int
}

// Landed reports whether the run ended on the ground.
func (r *Result) Landed() bool {
	return r.Final.HasLanded
}
