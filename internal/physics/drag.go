package physics

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
)

// GravityForce is the weight of the body, negative (downward).
func GravityForce(p dynamo.Params) float64 {
	return -p.Mass * p.Gravity
}

// DragForce is the quadratic air drag at velocity v. It opposes the motion
// and is exactly zero at rest.
func DragForce(p dynamo.Params, v float64) float64 {
	if v == 0 {
		return 0
	}
	mag := 0.5 * p.AirDensity * v * v * p.DragCoeff * p.Area()
	if v > 0 {
		return -mag
	}
	return mag
}

// Acceleration is the net acceleration at velocity v.
func Acceleration(p dynamo.Params, v float64) float64 {
	return (GravityForce(p) + DragForce(p, v)) / p.Mass
}

// TerminalVelocity returns the speed at which drag balances weight.
// ok is false when there is no drag to balance against.
func TerminalVelocity(p dynamo.Params) (vt float64, ok bool) {
	k := p.AirDensity * p.Area() * p.DragCoeff
	if k <= 0 {
		return 0, false
	}
	return math.Sqrt(2 * p.Mass * p.Gravity / k), true
}

// Energy is kinetic plus potential energy relative to the ground.
func Energy(p dynamo.Params, s dynamo.State) float64 {
	return 0.5*p.Mass*s.V*s.V + p.Mass*p.Gravity*s.Y
}

// VacuumHeight is the closed-form height after t seconds with no drag.
func VacuumHeight(p dynamo.Params, t float64) float64 {
	return p.Height - 0.5*p.Gravity*t*t
}

// VacuumFallTime is the closed-form time to reach the ground with no drag.
func VacuumFallTime(p dynamo.Params) float64 {
	return math.Sqrt(2 * p.Height / p.Gravity)
}

// VacuumImpactSpeed is the closed-form speed at the ground with no drag.
func VacuumImpactSpeed(p dynamo.Params) float64 {
	return math.Sqrt(2 * p.Gravity * p.Height)
}
