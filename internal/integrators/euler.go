package integrators

import (
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

// MaxSpeed bounds |v| after every step.
const MaxSpeed = 500.0

// SemiImplicitEuler updates velocity first and moves with the new velocity.
// It carries no state between calls.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() SemiImplicitEuler {
	return SemiImplicitEuler{}
}

func (SemiImplicitEuler) Step(s dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	return step(s, p, dt, true)
}

// Euler is fully explicit forward Euler: position moves with the velocity
// from the start of the step.
type Euler struct{}

func NewEuler() Euler {
	return Euler{}
}

func (Euler) Step(s dynamo.State, p dynamo.Params, dt float64) dynamo.State {
	return step(s, p, dt, false)
}

func step(s dynamo.State, p dynamo.Params, dt float64, semiImplicit bool) dynamo.State {
	if s.HasLanded {
		return s
	}
	if s.Diverged() {
		return dynamo.InitialState(p)
	}
	if dt <= 0 {
		return s
	}

	a := physics.Acceleration(p, s.V)
	v := clampSpeed(s.V + a*dt)

	y := s.Y + s.V*dt
	if semiImplicit {
		y = s.Y + v*dt
	}
	t := s.Time + dt

	if y <= 0 {
		return dynamo.State{Time: t, HasLanded: true}
	}
	return dynamo.State{Time: t, Y: y, V: v, A: a}
}

func clampSpeed(v float64) float64 {
	if v > MaxSpeed {
		return MaxSpeed
	}
	if v < -MaxSpeed {
		return -MaxSpeed
	}
	return v
}
