package auth

import (
	"context"
	"errors"
	"fmt"

	"logingate/submission"
)

// ErrSimulatedFailure is returned by Alternating for every even attempt
var ErrSimulatedFailure = errors.New("simulated failure")

// Alternating wraps an attempter so that every second attempt fails without
// reaching it. Useful to exercise the cooldown against a backend that always
// accepts.
type Alternating struct {
	next submission.Attempter
}

// NewAlternating wraps next
func NewAlternating(next submission.Attempter) *Alternating {
	return &Alternating{next: next}
}

// Attempt fails even-numbered attempts and forwards the rest
func (a *Alternating) Attempt(ctx context.Context, req submission.Request) (string, error) {
	if req.Attempt%2 == 0 {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("%w: %w (attempt %d)", submission.ErrAttemptFailed, ErrSimulatedFailure, req.Attempt)
	}
	return a.next.Attempt(ctx, req)
}
