package physics

import (
	"math"
	"testing"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/stretchr/testify/assert"
)

func TestDragOpposesMotion(t *testing.T) {
	p := dynamo.DefaultParams()

	assert.Equal(t, 0.0, DragForce(p, 0))
	assert.Greater(t, DragForce(p, -10), 0.0)
	assert.Less(t, DragForce(p, 10), 0.0)
	assert.InDelta(t, DragForce(p, -10), -DragForce(p, 10), 1e-12)
}

func TestAccelerationAtRestIsGravity(t *testing.T) {
	p := dynamo.DefaultParams()
	assert.InDelta(t, -p.Gravity, Acceleration(p, 0), 1e-12)
}

func TestTerminalVelocityBalancesWeight(t *testing.T) {
	p := dynamo.DefaultParams()

	vt, ok := TerminalVelocity(p)
	assert.True(t, ok)
	assert.InDelta(t, 41.66, vt, 0.01)
	assert.InDelta(t, 0, Acceleration(p, -vt), 1e-9)
}

func TestTerminalVelocityUndefinedWithoutDrag(t *testing.T) {
	tests := []struct {
		name    string
		cd, rho float64
	}{
		{"no drag coefficient", 0, 1.225},
		{"no air", 0.47, 0},
		{"vacuum", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := dynamo.DefaultParams()
			p.DragCoeff, p.AirDensity = tt.cd, tt.rho
			_, ok := TerminalVelocity(p)
			assert.False(t, ok)
		})
	}
}

func TestVacuumClosedForms(t *testing.T) {
	p := dynamo.DefaultParams()
	tf := VacuumFallTime(p)

	assert.InDelta(t, 6.3855, tf, 1e-3)
	assert.InDelta(t, 0, VacuumHeight(p, tf), 1e-9)
	assert.InDelta(t, p.Gravity*tf, VacuumImpactSpeed(p), 1e-9)
}

func TestEnergyAtDrop(t *testing.T) {
	p := dynamo.DefaultParams()
	s := dynamo.InitialState(p)

	assert.InDelta(t, p.Mass*p.Gravity*p.Height, Energy(p, s), 1e-9)
	s.Y, s.V = 0, -math.Sqrt(2*p.Gravity*p.Height)
	assert.InDelta(t, p.Mass*p.Gravity*p.Height, Energy(p, s), 1e-9)
}
