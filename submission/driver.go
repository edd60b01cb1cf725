package submission

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Hooks are called by the Driver on its event goroutine.
type Hooks struct {
	// OnDecision is called after every submission with the gate's answer
	OnDecision func(in Input, d Decision)

	// OnState is called after every event that reached the controller
	OnState func(s State)
}

// Driver runs a Controller without a Bubble Tea program: it is the single
// consumer of submissions, attempt results and ticks.
type Driver struct {
	ctrl  *Controller
	hooks Hooks
	msgs  chan tea.Msg
	done  chan struct{}
}

// NewDriver creates a driver for ctrl
func NewDriver(ctrl *Controller, hooks Hooks) *Driver {
	return &Driver{
		ctrl:  ctrl,
		hooks: hooks,
		msgs:  make(chan tea.Msg, 16),
		done:  make(chan struct{}),
	}
}

// Run processes submissions until ctx is cancelled or submits is closed and
// the controller has nothing left to do. The controller is disposed on
// return.
func (d *Driver) Run(ctx context.Context, submits <-chan Input) error {
	defer close(d.done)
	defer d.ctrl.Dispose()

	for {
		if submits == nil && d.idle() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()

		case in, ok := <-submits:
			if !ok {
				submits = nil
				continue
			}
			decision, cmd := d.ctrl.TrySubmit(in)
			if d.hooks.OnDecision != nil {
				d.hooks.OnDecision(in, decision)
			}
			d.exec(cmd)

		case msg := <-d.msgs:
			d.exec(d.ctrl.Update(msg))
		}

		if d.hooks.OnState != nil {
			d.hooks.OnState(d.ctrl.State())
		}
	}
}

// idle reports whether no attempt and no cooldown are outstanding
func (d *Driver) idle() bool {
	_, inFlight := d.ctrl.InFlight()
	return !inFlight && d.ctrl.Phase() == Idle
}

// exec runs cmd on its own goroutine and feeds its message back
func (d *Driver) exec(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		if msg == nil {
			return
		}
		select {
		case d.msgs <- msg:
		case <-d.done:
		}
	}()
}
