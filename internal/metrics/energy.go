package metrics

import (
	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

// EnergyLoss is the fraction of the drop's initial mechanical energy that
// drag has dissipated by the last airborne sample.
type EnergyLoss struct {
	name          string
	initialEnergy float64
	lastEnergy    float64
	samples       int
}

func NewEnergyLoss() *EnergyLoss {
	return &EnergyLoss{name: "energy_loss"}
}

func (e *EnergyLoss) Name() string { return e.name }

func (e *EnergyLoss) Observe(s dynamo.State, p dynamo.Params) {
	if s.HasLanded {
		return
	}
	energy := physics.Energy(p, s)
	if e.samples == 0 || s.Time == 0 {
		e.initialEnergy = energy
	}
	e.lastEnergy = energy
	e.samples++
}

func (e *EnergyLoss) Value() float64 {
	if e.samples == 0 || e.initialEnergy == 0 {
		return 0
	}
	return (e.initialEnergy - e.lastEnergy) / e.initialEnergy
}

func (e *EnergyLoss) Reset() {
	e.initialEnergy = 0
	e.lastEnergy = 0
	e.samples = 0
}
