package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixedStep = 0.01

func scenarioParams() dynamo.Params {
	return dynamo.Params{
		Mass:       10,
		Height:     200,
		DragCoeff:  0.47,
		AirDensity: 1.225,
		Diameter:   0.5,
		Gravity:    9.81,
		TimeScale:  1,
	}
}

func vacuumParams() dynamo.Params {
	p := scenarioParams()
	p.DragCoeff = 0
	p.AirDensity = 0
	return p
}

// fallUntilLanded returns the landed state and the last airborne speed.
func fallUntilLanded(t *testing.T, integ dynamo.Integrator, p dynamo.Params) (dynamo.State, float64) {
	t.Helper()
	s := dynamo.InitialState(p)
	impact := 0.0
	for i := 0; i < 100000 && !s.HasLanded; i++ {
		impact = math.Abs(s.V)
		s = integ.Step(s, p, fixedStep)
	}
	require.True(t, s.HasLanded, "body never landed")
	return s, impact
}

func TestZeroDtIsIdentity(t *testing.T) {
	integ := NewSemiImplicitEuler()
	p := scenarioParams()

	s := dynamo.InitialState(p)
	for i := 0; i < 50; i++ {
		s = integ.Step(s, p, fixedStep)
	}
	before := s
	for i := 0; i < 100; i++ {
		s = integ.Step(s, p, 0)
	}
	assert.Equal(t, before, s)
}

func TestScenarioLandsLaterThanVacuum(t *testing.T) {
	p := scenarioParams()
	s, _ := fallUntilLanded(t, NewSemiImplicitEuler(), p)

	assert.Equal(t, 0.0, s.Y)
	assert.Equal(t, 0.0, s.V)
	assert.Equal(t, 0.0, s.A)
	assert.Greater(t, s.Time, math.Sqrt(2*200/9.81))
	assert.Less(t, s.Time, 10.0)
}

func TestVacuumMatchesClosedForm(t *testing.T) {
	integ := NewSemiImplicitEuler()
	p := vacuumParams()

	s := dynamo.InitialState(p)
	for !s.HasLanded {
		next := integ.Step(s, p, fixedStep)
		if next.HasLanded {
			s = next
			break
		}
		s = next
		bound := 0.5*p.Gravity*s.Time*fixedStep + 1e-6
		assert.InDelta(t, physics.VacuumHeight(p, s.Time), s.Y, bound, "t=%.2f", s.Time)
		assert.InDelta(t, -p.Gravity*s.Time, s.V, 1e-6)
	}
	assert.InDelta(t, physics.VacuumFallTime(p), s.Time, 0.02)
}

func TestDragReducesImpactSpeed(t *testing.T) {
	integ := NewSemiImplicitEuler()
	prev := math.Inf(1)
	for _, cd := range []float64{0, 0.1, 0.47, 1.0} {
		p := scenarioParams()
		p.DragCoeff = cd
		_, impact := fallUntilLanded(t, integ, p)
		assert.Less(t, impact, prev, "cd=%.2f", cd)
		prev = impact
	}
}

func TestLandedStateIsAbsorbing(t *testing.T) {
	landed := dynamo.State{Time: 6.5, HasLanded: true}
	for _, integ := range []dynamo.Integrator{NewSemiImplicitEuler(), NewEuler()} {
		for _, dt := range []float64{0, 0.01, 0.1, 5} {
			assert.Equal(t, landed, integ.Step(landed, scenarioParams(), dt))
		}
	}
}

func TestSpeedIsClamped(t *testing.T) {
	tests := []struct {
		name string
		p    dynamo.Params
		s    dynamo.State
	}{
		{"huge gravity", dynamo.Params{Mass: 1, Height: 1e9, Diameter: 0.1, Gravity: 1e6, TimeScale: 1}, dynamo.State{Y: 1e9}},
		{"fast upward", scenarioParams(), dynamo.State{Y: 1e6, V: 1e6}},
		{"fast downward", vacuumParams(), dynamo.State{Y: 1e6, V: -499.99}},
	}

	integ := NewSemiImplicitEuler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.s
			for i := 0; i < 20 && !s.HasLanded; i++ {
				s = integ.Step(s, tt.p, 0.1)
				assert.LessOrEqual(t, math.Abs(s.V), MaxSpeed)
			}
		})
	}
}

func TestDivergenceResetsToDrop(t *testing.T) {
	p := scenarioParams()
	tests := []struct {
		name string
		s    dynamo.State
	}{
		{"nan velocity", dynamo.State{Time: 3, Y: 120, V: math.NaN(), A: -5}},
		{"nan height", dynamo.State{Time: 3, Y: math.NaN(), V: -20}},
		{"inf velocity", dynamo.State{Time: 3, Y: 120, V: math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, integ := range []dynamo.Integrator{NewSemiImplicitEuler(), NewEuler()} {
				assert.Equal(t, dynamo.InitialState(p), integ.Step(tt.s, p, fixedStep))
			}
		})
	}
}

func TestGroundContactZeroesMotion(t *testing.T) {
	p := scenarioParams()
	s := dynamo.State{Time: 1, Y: 0.05, V: -20, A: -9}

	got := NewSemiImplicitEuler().Step(s, p, fixedStep)

	assert.Equal(t, dynamo.State{Time: 1 + fixedStep, HasLanded: true}, got)
}

func TestExplicitLagsSemiImplicit(t *testing.T) {
	p := vacuumParams()
	semi, _ := fallUntilLanded(t, NewSemiImplicitEuler(), p)
	explicit, _ := fallUntilLanded(t, NewEuler(), p)

	// explicit Euler moves with the stale velocity, so it reaches the ground later
	assert.GreaterOrEqual(t, explicit.Time, semi.Time)
	assert.InDelta(t, physics.VacuumFallTime(p), explicit.Time, 0.05)
}
