// Package stepper models the press-and-hold interaction on a quantity
// stepper control: a short press increments by one, a hold opens direct
// numeric entry instead. The machine is independent of any UI event framework
// so embedding clients share one behavior and tests never need real timers.
package stepper

import "time"

// DefaultHoldThreshold is how long a press must be held before the pending
// increment is cancelled in favor of direct entry.
const DefaultHoldThreshold = 600 * time.Millisecond

// State enumerates the machine's positions. Idle waits for a press; Armed is
// a press in flight; TapFired and EditOpened are terminal outcomes reported
// to the caller before the machine resets.
type State int

const (
	Idle State = iota
	Armed
	TapFired
	EditOpened
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Armed:
		return "armed"
	case TapFired:
		return "tap_fired"
	case EditOpened:
		return "edit_opened"
	}
	return "unknown"
}

// Outcome is what a completed interaction asks the caller to do.
type Outcome int

const (
	// OutcomeNone means nothing happened (release without a press, or a
	// release after the hold already opened the editor).
	OutcomeNone Outcome = iota
	// OutcomeTap asks the caller to perform a single increment, subject to
	// the quantity-limit clamp.
	OutcomeTap
	// OutcomeEdit asks the caller to open direct numeric entry pre-filled
	// with the current quantity.
	OutcomeEdit
)

// Machine is the three-state press tracker. It is not safe for concurrent
// use; UI event streams are serial.
type Machine struct {
	threshold time.Duration
	state     State
	pressedAt time.Time
}

// New builds a machine with the given hold threshold; zero or negative
// falls back to DefaultHoldThreshold.
func New(threshold time.Duration) *Machine {
	if threshold <= 0 {
		threshold = DefaultHoldThreshold
	}
	return &Machine{threshold: threshold, state: Idle}
}

// State returns the current position, resolving a pending hold timeout as of
// now: an armed press whose threshold has elapsed reports EditOpened even
// before the release arrives.
func (m *Machine) State(now time.Time) State {
	if m.state == Armed && now.Sub(m.pressedAt) >= m.threshold {
		return EditOpened
	}
	return m.state
}

// Press arms the machine. Pressing while already armed is ignored.
func (m *Machine) Press(now time.Time) {
	if m.state == Armed {
		return
	}
	m.state = Armed
	m.pressedAt = now
}

// Release resolves the interaction. A release before the threshold fires the
// tap; at or past the threshold the pending increment is cancelled and the
// editor opens instead. The machine resets to Idle either way.
func (m *Machine) Release(now time.Time) Outcome {
	if m.state != Armed {
		m.state = Idle
		return OutcomeNone
	}

	held := now.Sub(m.pressedAt)
	m.state = Idle
	if held >= m.threshold {
		return OutcomeEdit
	}
	return OutcomeTap
}

// Cancel aborts an in-flight press without firing either outcome (pointer
// leaves the control, view unmounts).
func (m *Machine) Cancel() {
	m.state = Idle
}
