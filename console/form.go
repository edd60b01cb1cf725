// Package console runs the login form on a plain terminal: logins are read
// line by line and state changes are printed as they happen.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	"logingate/submission"
)

// Form is the line-oriented form. Lines typed while it is disabled are still
// forwarded; the controller rejects them.
type Form struct {
	mu       sync.Mutex
	disabled bool
	resets   int
}

var _ submission.Form = (*Form)(nil)

// NewForm creates an enabled form
func NewForm() *Form {
	return &Form{}
}

// ResetValue counts a clear request. A typed line is already gone once read.
func (f *Form) ResetValue() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resets++
}

// DisableInput marks the form locked
func (f *Form) DisableInput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = true
}

// EnableInput marks the form unlocked
func (f *Form) EnableInput() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disabled = false
}

// Disabled reports whether the form is locked
func (f *Form) Disabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disabled
}

// Resets returns how many times the value was cleared
func (f *Form) Resets() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

// ReadInputs turns every line of r into a submission. The channel is closed
// at EOF or when ctx is done.
func ReadInputs(ctx context.Context, r io.Reader) <-chan submission.Input {
	out := make(chan submission.Input)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			value := strings.TrimSpace(scanner.Text())
			in := submission.Input{Value: value, Valid: value != ""}
			select {
			case out <- in:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
