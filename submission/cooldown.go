package submission

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cooldown is the tick source of one lockout period. Every period gets a new
// run number and its own context, so ticks of an old run can never reach the
// state.
type cooldown struct {
	phase     Phase
	run       int
	next      int
	startedAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc
}

func (cd *cooldown) stop() {
	if cd.cancel != nil {
		cd.cancel()
		cd.cancel = nil
	}
}

// startCooldown opens the error window and locks the form. Tick 0 is emitted
// right away.
func (c *Controller) startCooldown() tea.Cmd {
	cd := &c.cooldown
	cd.stop()
	cd.run++
	cd.next = 0
	cd.startedAt = time.Now()
	cd.ctx, cd.cancel = context.WithCancel(c.ctx)
	c.setPhase(Running)

	c.state.IsLockedOut = true
	c.state.IsErrorVisible = true
	c.state.RemainingCooldown = c.cfg.CooldownTicks
	c.form.DisableInput()

	return tickCmd(cd.ctx, cd.run, 0, cd.startedAt)
}

func (c *Controller) tick(msg TickMsg) tea.Cmd {
	cd := &c.cooldown
	if cd.phase != Running || msg.Run != cd.run || msg.T != cd.next {
		return nil
	}
	cd.next++

	c.state.RemainingCooldown = c.cfg.CooldownTicks - msg.T
	if msg.T >= c.cfg.ErrorTicks {
		c.state.IsErrorVisible = false
	}
	if msg.T >= c.cfg.CooldownTicks {
		c.finishCooldown()
		return nil
	}

	at := cd.startedAt.Add(time.Duration(msg.T+1) * c.cfg.TickInterval)
	return tickCmd(cd.ctx, cd.run, msg.T+1, at)
}

func (c *Controller) finishCooldown() {
	c.cooldown.stop()
	c.setPhase(Idle)
	c.state.IsLockedOut = false
	c.state.IsErrorVisible = false
	c.state.RemainingCooldown = 0
	c.form.EnableInput()
}

func (c *Controller) setPhase(to Phase) {
	from := c.cooldown.phase
	c.cooldown.phase = to
	c.tracker.TrackTransition(Transition{From: from, To: to, Run: c.cooldown.run})
}

// tickCmd waits until at and then emits tick t of the given run. Ticks are
// scheduled against the start of the run, so a slow consumer does not make
// the countdown drift.
func tickCmd(ctx context.Context, run, t int, at time.Time) tea.Cmd {
	return func() tea.Msg {
		if wait := time.Until(at); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return nil
			case <-timer.C:
			}
		}
		if ctx.Err() != nil {
			return nil
		}
		return TickMsg{Run: run, T: t}
	}
}
