package submission

import (
	"context"
	"errors"
	"time"
)

// ErrAttemptFailed is the only failure kind of a login attempt. Transport
// errors and negative answers from the server are both reported as it.
var ErrAttemptFailed = errors.New("attempt failed")

// Input is what the form hands over at submit time.
type Input struct {
	Value string
	Valid bool
}

// Request is sent to the Attempter for each allowed submission.
type Request struct {
	Login string

	// Attempt is the value of AttemptCounter after it was incremented
	Attempt int
}

// Attempter performs one login attempt. It runs off the event goroutine and
// must return promptly once ctx is cancelled.
type Attempter interface {
	Attempt(ctx context.Context, req Request) (payload string, err error)
}

// AttempterFunc adapts a function to the Attempter interface
type AttempterFunc func(ctx context.Context, req Request) (string, error)

// Attempt calls f(ctx, req)
func (f AttempterFunc) Attempt(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// Form is the input collaborator the controller drives.
type Form interface {
	ResetValue()
	DisableInput()
	EnableInput()
}

// Tracker receives a record of everything the controller does.
type Tracker interface {
	TrackSubmit(in Input, decision Decision)
	TrackAttempt(req Request, payload string, err error, elapsed time.Duration)
	TrackTransition(t Transition)
	TrackDispose(state State)
}

type noopTracker struct{}

func (noopTracker) TrackSubmit(Input, Decision)                        {}
func (noopTracker) TrackAttempt(Request, string, error, time.Duration) {}
func (noopTracker) TrackTransition(Transition)                         {}
func (noopTracker) TrackDispose(State)                                 {}

// AttemptResultMsg carries the outcome of an attempt back to the controller.
type AttemptResultMsg struct {
	Seq     int
	Payload string
	Err     error
}

// TickMsg is one cooldown tick. Run identifies the cooldown period it
// belongs to and T counts from 0.
type TickMsg struct {
	Run int
	T   int
}

// Config holds the timing parameters of the controller.
type Config struct {
	CooldownTicks int
	ErrorTicks    int
	TickInterval  time.Duration
}

// DefaultConfig returns a 60 tick lockout with a 5 tick error window, one
// tick per second.
func DefaultConfig() Config {
	return Config{
		CooldownTicks: 60,
		ErrorTicks:    5,
		TickInterval:  time.Second,
	}
}

// Validate checks that the error window ends before the lockout does.
func (c Config) Validate() error {
	var errs []error
	if c.CooldownTicks <= 0 {
		errs = append(errs, errors.New("cooldown ticks must be > 0"))
	}
	if c.ErrorTicks <= 0 || c.ErrorTicks >= c.CooldownTicks {
		errs = append(errs, errors.New("error ticks must be > 0 and < cooldown ticks"))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, errors.New("tick interval must be > 0"))
	}
	return errors.Join(errs...)
}
