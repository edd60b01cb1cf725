// Package submission implements the submit-login controller: the admission
// gate, the attempt runner, the error window and the cooldown lockout that
// follows a failed attempt.
package submission

import "fmt"

// State is the view state of a Controller. Only the controller mutates it;
// callers get copies through Controller.State.
type State struct {
	// DisplayedLogin is the last confirmed login, cleared when an attempt starts
	DisplayedLogin string

	// IsLoading is true while an attempt is in flight
	IsLoading bool

	// IsLockedOut is true while the cooldown is running
	IsLockedOut bool

	// IsErrorVisible is true during the error window at the start of a cooldown
	IsErrorVisible bool

	// RemainingCooldown counts down the ticks left in the lockout
	RemainingCooldown int

	// AttemptCounter is the number of attempts issued so far
	AttemptCounter int
}

// Phase is the state of the cooldown timer.
type Phase int

const (
	// Idle - no cooldown, submissions are governed by IsLoading only
	Idle Phase = iota

	// Running - a failed attempt started the lockout countdown
	Running
)

// String returns a human-readable representation of the phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Transition represents a cooldown phase change
type Transition struct {
	From Phase
	To   Phase
	Run  int
}

// String returns a human-readable representation of the transition
func (t Transition) String() string {
	return fmt.Sprintf("%s -> %s (run %d)", t.From, t.To, t.Run)
}

// Decision is the gate's answer to a submit request.
type Decision int

const (
	Allowed Decision = iota
	RejectedLoading
	RejectedLockedOut
	RejectedInvalid
	RejectedDisposed
)

// IsAllowed reports whether the submission went through the gate.
func (d Decision) IsAllowed() bool {
	return d == Allowed
}

// String returns a short name for the decision, used in traces
func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case RejectedLoading:
		return "rejected_loading"
	case RejectedLockedOut:
		return "rejected_locked_out"
	case RejectedInvalid:
		return "rejected_invalid"
	case RejectedDisposed:
		return "rejected_disposed"
	default:
		return fmt.Sprintf("unknown(%d)", int(d))
	}
}
