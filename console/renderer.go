package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"logingate/submission"
	"logingate/tui/styles"
)

// Renderer prints what changed between two states
type Renderer struct {
	mu       sync.Mutex
	w        io.Writer
	interval time.Duration
	last     submission.State
}

// NewRenderer writes to w. interval converts cooldown ticks to wall time.
func NewRenderer(w io.Writer, interval time.Duration) *Renderer {
	return &Renderer{w: w, interval: interval}
}

// Hooks returns the driver hooks that feed this renderer
func (r *Renderer) Hooks() submission.Hooks {
	return submission.Hooks{
		OnDecision: r.Decision,
		OnState:    r.State,
	}
}

// Prompt prints the input prompt
func (r *Renderer) Prompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, styles.HelpStyle.Render("Type a login and press enter. Ctrl+D to finish."))
}

// Decision reports rejected submissions
func (r *Renderer) Decision(in submission.Input, d submission.Decision) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch d {
	case submission.RejectedInvalid:
		fmt.Fprintln(r.w, styles.ErrorStyle.Render("Login is required."))
	case submission.RejectedLoading:
		fmt.Fprintln(r.w, styles.WarningStyle.Render("Still logging in, please wait."))
	case submission.RejectedLockedOut:
		fmt.Fprintln(r.w, styles.WarningStyle.Render(fmt.Sprintf("Locked out, try again in %s.", r.remaining(r.last.RemainingCooldown))))
	}
}

// State prints the differences to the previous state
func (r *Renderer) State(s submission.State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.last
	r.last = s

	if s.IsLoading && !prev.IsLoading {
		fmt.Fprintln(r.w, "Logging in...")
	}
	if s.DisplayedLogin != "" && s.DisplayedLogin != prev.DisplayedLogin {
		fmt.Fprintln(r.w, styles.SuccessStyle.Render("Logged in as "+s.DisplayedLogin))
	}
	if s.IsErrorVisible && !prev.IsErrorVisible {
		fmt.Fprintln(r.w, styles.ErrorStyle.Render("Login failed."))
	}
	if s.IsLockedOut && s.RemainingCooldown != prev.RemainingCooldown {
		fmt.Fprintln(r.w, styles.WarningStyle.Render("Try again in "+r.remaining(s.RemainingCooldown).String()))
	}
	if !s.IsLockedOut && prev.IsLockedOut {
		fmt.Fprintln(r.w, styles.HelpStyle.Render("You can try again."))
	}
}

func (r *Renderer) remaining(ticks int) time.Duration {
	return time.Duration(ticks) * r.interval
}
