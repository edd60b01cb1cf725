package submission

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Controller owns the submission state. TrySubmit, Update and Dispose must be
// called from a single goroutine; the commands they return run elsewhere and
// only report back through messages.
type Controller struct {
	cfg       Config
	form      Form
	attempter Attempter
	tracker   Tracker

	state State

	// ctx is cancelled by Dispose and parents every attempt and cooldown
	ctx    context.Context
	cancel context.CancelFunc

	// in-flight attempt; seq is 0 when nothing is pending
	seq       int
	pending   int
	request   Request
	startedAt time.Time

	cooldown cooldown
	disposed bool
}

// Option configures a Controller
type Option func(*Controller)

// WithConfig overrides the default timing parameters. A config that fails
// Validate is ignored and the defaults stay in place.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		if cfg.Validate() == nil {
			c.cfg = cfg
		}
	}
}

// WithTracker records controller activity to t
func WithTracker(t Tracker) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracker = t
		}
	}
}

// WithContext derives the controller's lifetime from parent
func WithContext(parent context.Context) Option {
	return func(c *Controller) {
		c.ctx = parent
	}
}

// New creates a controller at rest: idle, nothing loading, nothing shown.
func New(form Form, attempter Attempter, opts ...Option) *Controller {
	c := &Controller{
		cfg:       DefaultConfig(),
		form:      form,
		attempter: attempter,
		tracker:   noopTracker{},
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(c.ctx)
	return c
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	return c.state
}

// Phase returns the cooldown timer phase
func (c *Controller) Phase() Phase {
	return c.cooldown.phase
}

// Config returns the timing parameters in use
func (c *Controller) Config() Config {
	return c.cfg
}

// Disposed reports whether Dispose has been called
func (c *Controller) Disposed() bool {
	return c.disposed
}

// InFlight returns the request of the pending attempt, if any
func (c *Controller) InFlight() (Request, bool) {
	if c.pending == 0 {
		return Request{}, false
	}
	return c.request, true
}

// TrySubmit is the gate. A rejected submission changes nothing and issues
// nothing. An allowed one starts an attempt and returns the command that
// performs it.
func (c *Controller) TrySubmit(in Input) (Decision, tea.Cmd) {
	decision := c.admit(in)
	c.tracker.TrackSubmit(in, decision)
	if !decision.IsAllowed() {
		return decision, nil
	}
	return decision, c.run(in.Value)
}

func (c *Controller) admit(in Input) Decision {
	switch {
	case c.disposed:
		return RejectedDisposed
	case c.state.IsLoading:
		return RejectedLoading
	case c.state.IsLockedOut:
		return RejectedLockedOut
	case !in.Valid:
		return RejectedInvalid
	}
	return Allowed
}

// run flips the state into loading and builds the attempt command
func (c *Controller) run(login string) tea.Cmd {
	c.state.IsLoading = true
	c.state.DisplayedLogin = ""
	c.state.AttemptCounter++

	c.seq++
	c.pending = c.seq
	c.request = Request{Login: login, Attempt: c.state.AttemptCounter}
	c.startedAt = time.Now()

	return attemptCmd(c.ctx, c.attempter, c.seq, c.request)
}

func attemptCmd(ctx context.Context, attempter Attempter, seq int, req Request) tea.Cmd {
	return func() tea.Msg {
		payload, err := attempter.Attempt(ctx, req)
		if ctx.Err() != nil {
			return nil
		}
		return AttemptResultMsg{Seq: seq, Payload: payload, Err: err}
	}
}

// Update applies an attempt result or a cooldown tick and returns the next
// command to run, if any. Messages that belong to a cancelled attempt or to
// a finished cooldown are dropped.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if c.disposed {
		return nil
	}
	switch msg := msg.(type) {
	case AttemptResultMsg:
		return c.complete(msg)
	case TickMsg:
		return c.tick(msg)
	}
	return nil
}

func (c *Controller) complete(msg AttemptResultMsg) tea.Cmd {
	if c.pending == 0 || msg.Seq != c.pending {
		return nil
	}
	req := c.request
	c.pending = 0
	c.tracker.TrackAttempt(req, msg.Payload, msg.Err, time.Since(c.startedAt))

	if msg.Err == nil {
		c.state.DisplayedLogin = req.Login
		c.state.IsLoading = false
		return nil
	}

	c.form.ResetValue()
	c.state.IsLoading = false
	return c.startCooldown()
}

// Dispose tears the controller down: the cooldown ticks stop, a pending
// attempt result will be discarded and the state is frozen. Calling it again
// does nothing.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.cancel()
	c.cooldown.stop()
	c.pending = 0
	c.tracker.TrackDispose(c.state)
}
