package sim

import "fmt"

// Phase is the play state of a Stepper.
type Phase int

const (
	Idle Phase = iota
	Playing
	Paused
	Landed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Landed:
		return "landed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Event drives a Phase transition.
type Event int

const (
	Start Event = iota
	Pause
	// Suspend is a pause requested by the driver rather than the user,
	// e.g. the window losing focus.
	Suspend
	Land
	Reset
)

func (e Event) String() string {
	switch e {
	case Start:
		return "start"
	case Pause:
		return "pause"
	case Suspend:
		return "suspend"
	case Land:
		return "land"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("event(%d)", int(e))
	}
}

// Transition returns the phase reached from p on e. ok is false when e has
// no effect in p, in which case p is returned unchanged.
//
// Start while Landed reaches Playing; the caller is expected to reset the
// simulation state before acting on the new phase.
func Transition(p Phase, e Event) (next Phase, ok bool) {
	switch e {
	case Reset:
		return Idle, true
	case Start:
		switch p {
		case Idle, Paused, Landed:
			return Playing, true
		}
	case Pause, Suspend:
		if p == Playing {
			return Paused, true
		}
	case Land:
		if p == Playing {
			return Landed, true
		}
	}
	return p, false
}
