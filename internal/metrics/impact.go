package metrics

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/physics"
)

// ImpactSpeed is the speed of the last airborne sample. The landed state
// itself has zero velocity, so the metric never looks at it.
type ImpactSpeed struct {
	name  string
	speed float64
}

func NewImpactSpeed() *ImpactSpeed {
	return &ImpactSpeed{name: "impact_speed"}
}

func (m *ImpactSpeed) Name() string { return m.name }

func (m *ImpactSpeed) Observe(s dynamo.State, p dynamo.Params) {
	if s.HasLanded {
		return
	}
	m.speed = math.Abs(s.V)
}

func (m *ImpactSpeed) Value() float64 { return m.speed }
func (m *ImpactSpeed) Reset()         { m.speed = 0 }

type MaxSpeed struct {
	name string
	max  float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (m *MaxSpeed) Name() string { return m.name }

func (m *MaxSpeed) Observe(s dynamo.State, p dynamo.Params) {
	m.max = math.Max(m.max, math.Abs(s.V))
}

func (m *MaxSpeed) Value() float64 { return m.max }
func (m *MaxSpeed) Reset()         { m.max = 0 }

// TerminalRatio is the speed of the last airborne sample as a fraction of
// terminal velocity. It stays 0 when the params have no terminal velocity.
type TerminalRatio struct {
	name  string
	ratio float64
}

func NewTerminalRatio() *TerminalRatio {
	return &TerminalRatio{name: "terminal_ratio"}
}

func (m *TerminalRatio) Name() string { return m.name }

func (m *TerminalRatio) Observe(s dynamo.State, p dynamo.Params) {
	if s.HasLanded {
		return
	}
	vt, ok := physics.TerminalVelocity(p)
	if !ok {
		return
	}
	m.ratio = math.Abs(s.V) / vt
}

func (m *TerminalRatio) Value() float64 { return m.ratio }
func (m *TerminalRatio) Reset()         { m.ratio = 0 }
