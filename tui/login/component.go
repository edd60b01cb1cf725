package login

import (
	"fmt"
	"strings"
	"time"

	"logingate/submission"
	"logingate/tui/keys"
	"logingate/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Component is the login form. It owns the submission controller and is the
// form the controller clears, disables and re-enables.
type Component struct {
	input    textinput.Model
	spinner  spinner.Model
	ctrl     *submission.Controller
	keys     *keys.Handler
	disabled bool
	invalid  error
}

var _ submission.Form = (*Component)(nil)

// New creates the form and its controller. lastLogin pre-fills the input.
func New(attempter submission.Attempter, lastLogin string, opts ...submission.Option) *Component {
	input := textinput.New()
	input.Placeholder = "Login"
	input.CharLimit = 64
	input.Width = 32
	input.SetValue(lastLogin)
	input.Focus()

	c := &Component{
		input: input,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(styles.SpinnerStyle),
		),
		keys: keys.NewHandler(),
	}
	c.ctrl = submission.New(c, attempter, opts...)
	return c
}

// Init initializes the login component
func (c *Component) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, attempt results, cooldown ticks and spinner
// frames
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if c.keys.IsSubmit(msg) {
			return c, c.Submit()
		}
		if c.disabled {
			return c, nil
		}
		c.invalid = nil
		c.input, cmd = c.input.Update(msg)
		return c, cmd

	case submission.AttemptResultMsg, submission.TickMsg:
		return c, c.ctrl.Update(msg)

	case spinner.TickMsg:
		if !c.ctrl.State().IsLoading {
			return c, nil
		}
		c.spinner, cmd = c.spinner.Update(msg)
		return c, cmd
	}

	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// Submit passes the current value through the gate
func (c *Component) Submit() tea.Cmd {
	value := strings.TrimSpace(c.input.Value())
	in := submission.Input{Value: value, Valid: validateLogin(value) == nil}

	decision, cmd := c.ctrl.TrySubmit(in)
	switch decision {
	case submission.RejectedInvalid:
		c.invalid = ErrRequired
	case submission.Allowed:
		c.invalid = nil
	}
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, c.spinner.Tick)
}

// Dispose stops the controller. Pending results and ticks are dropped.
func (c *Component) Dispose() {
	c.ctrl.Dispose()
}

// State returns the controller state
func (c *Component) State() submission.State {
	return c.ctrl.State()
}

// Value returns the current input value
func (c *Component) Value() string {
	return c.input.Value()
}

// Disabled reports whether the input is locked
func (c *Component) Disabled() bool {
	return c.disabled
}

// ResetValue clears the input
func (c *Component) ResetValue() {
	c.input.SetValue("")
}

// DisableInput locks the input for the cooldown
func (c *Component) DisableInput() {
	c.disabled = true
	c.input.Blur()
}

// EnableInput unlocks the input
func (c *Component) EnableInput() {
	c.disabled = false
	c.input.Focus()
}

// View renders the login box
func (c *Component) View() string {
	state := c.ctrl.State()

	lines := []string{
		styles.HeaderStyle.Render("Sign in"),
		"",
		"Login: " + c.input.View(),
		"",
	}

	switch {
	case state.IsLoading:
		lines = append(lines, c.spinner.View()+" Logging in...")
	case state.DisplayedLogin != "":
		lines = append(lines, styles.SuccessStyle.Render("Logged in as "+state.DisplayedLogin))
	}

	if state.IsErrorVisible {
		lines = append(lines, styles.ErrorStyle.Render("Login failed."))
	}
	if state.IsLockedOut {
		lines = append(lines, styles.WarningStyle.Render(
			fmt.Sprintf("Try again in %s", c.remaining(state.RemainingCooldown))))
	}
	if c.invalid != nil {
		lines = append(lines, styles.ErrorStyle.Render(c.invalid.Error()))
	}

	return styles.LoginBoxStyle.Render(strings.Join(lines, "\n"))
}

// remaining converts cooldown ticks into wall time
func (c *Component) remaining(ticks int) time.Duration {
	return time.Duration(ticks) * c.ctrl.Config().TickInterval
}
