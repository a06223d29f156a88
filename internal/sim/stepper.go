package sim

import (
	"math"

	"github.com/san-kum/freefall/internal/dynamo"
	"github.com/san-kum/freefall/internal/integrators"
	"github.com/sirupsen/logrus"
)

// stepEpsilon absorbs the rounding left over after subtracting FixedStep
// from a frame budget.
const stepEpsilon = 1e-9

// Stepper turns wall-clock frames into fixed integration steps. It owns the
// live state, the published snapshot, the trajectory history and the play
// phase.
//
// A Stepper must be driven serially; it does no locking.
type Stepper struct {
	params     dynamo.Params
	integrator dynamo.Integrator
	state      dynamo.State
	display    dynamo.State
	history    *History
	phase      Phase
	last       float64
	hasLast    bool
	recoveries int
	log        logrus.FieldLogger
}

type StepperOption func(*Stepper)

func WithIntegrator(i dynamo.Integrator) StepperOption {
	return func(s *Stepper) { s.integrator = i }
}

func WithLogger(l logrus.FieldLogger) StepperOption {
	return func(s *Stepper) { s.log = l }
}

// WithHistory sets the live sampling. The capacity is clamped to
// (0, HistoryCapacity] so a live buffer is always bounded, and a
// non-positive interval selects SampleInterval.
func WithHistory(capacity int, interval float64) StepperOption {
	if capacity <= 0 || capacity > HistoryCapacity {
		capacity = HistoryCapacity
	}
	if interval <= 0 {
		interval = SampleInterval
	}
	return func(s *Stepper) { s.history = NewHistory(capacity, interval) }
}

// NewStepper returns an idle Stepper holding the drop configuration for p.
func NewStepper(p dynamo.Params, opts ...StepperOption) *Stepper {
	s := &Stepper{
		params:     p,
		integrator: integrators.NewSemiImplicitEuler(),
		history:    NewHistory(HistoryCapacity, SampleInterval),
		phase:      Idle,
		log:        discardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetState()
	return s
}

// Advance consumes the wall-clock time elapsed since the previous call.
// now is in seconds and must not decrease between calls. It returns the
// published snapshot and whether a history sample was appended.
//
// The first call after Start only records the baseline. Calls outside the
// Playing phase do nothing. A frame budget left over below stepEpsilon
// after the last full substep is treated as rounding and dropped.
func (s *Stepper) Advance(now float64) (dynamo.State, bool) {
	if s.phase != Playing {
		return s.display, false
	}
	if !s.hasLast {
		s.last, s.hasLast = now, true
		return s.display, false
	}

	dt := now - s.last
	s.last = now
	if dt < 0 {
		dt = 0
	}
	if dt > MaxFrameDt {
		dt = MaxFrameDt
	}

	remaining := dt * s.params.TimeScale
	for remaining > stepEpsilon && !s.state.HasLanded {
		h := math.Min(remaining, FixedStep)
		s.substep(h)
		remaining -= h
	}

	landed := s.state.HasLanded
	if landed {
		s.fire(Land)
	}

	s.display = s.state
	return s.display, s.history.Observe(s.state, landed)
}

func (s *Stepper) substep(dt float64) {
	prev := s.state
	s.state = s.integrator.Step(prev, s.params, dt)
	if prev.Diverged() {
		s.recoveries++
		s.history.Reset(s.state)
		s.log.WithFields(logrus.Fields{
			"time":       prev.Time,
			"y":          prev.Y,
			"v":          prev.V,
			"recoveries": s.recoveries,
		}).Warn("state diverged, restarting drop")
	}
}

// Start begins or resumes playback. Starting a landed simulation resets it
// first, so the next Advance sees the drop configuration.
func (s *Stepper) Start() {
	if s.phase == Landed {
		s.resetState()
	}
	if s.fire(Start) {
		s.hasLast = false
	}
}

func (s *Stepper) Pause() {
	s.fire(Pause)
}

// Suspend pauses on behalf of the driver, e.g. when frames stop arriving.
func (s *Stepper) Suspend() {
	s.fire(Suspend)
}

// Reset returns to the drop configuration and the Idle phase. Params are
// kept.
func (s *Stepper) Reset() {
	s.resetState()
	s.fire(Reset)
	s.hasLast = false
}

// SetParams replaces the parameters. Before the simulation has advanced,
// the resting state is re-derived so a preview reflects the new height and
// gravity.
func (s *Stepper) SetParams(p dynamo.Params) {
	s.params = p
	if s.phase == Playing || s.state.Time != 0 || s.state.HasLanded {
		return
	}
	s.state.Y = p.Height
	s.state.A = -p.Gravity
	s.display = s.state
	s.history.Reset(s.state)
}

func (s *Stepper) resetState() {
	s.state = dynamo.InitialState(s.params)
	s.display = s.state
	s.history.Reset(s.state)
}

func (s *Stepper) fire(e Event) bool {
	next, ok := Transition(s.phase, e)
	if !ok {
		return false
	}
	s.log.WithFields(logrus.Fields{
		"event": e,
		"from":  s.phase,
		"to":    next,
		"time":  s.state.Time,
	}).Debug("phase transition")
	s.phase = next
	return true
}

// Snapshot returns the state published by the last frame.
func (s *Stepper) Snapshot() dynamo.State { return s.display }

func (s *Stepper) Params() dynamo.Params { return s.params }

func (s *Stepper) Phase() Phase { return s.phase }

// History returns a copy of the sampled trajectory, oldest first.
func (s *Stepper) History() []dynamo.DataPoint { return s.history.Points() }

// Recoveries counts divergence resets since the Stepper was created.
func (s *Stepper) Recoveries() int { return s.recoveries }
