package tracing

import (
	"encoding/json"
	"errors"
	"regexp"
	"time"
)

// Event types
const (
	TypeSubmit     = "submit"
	TypeAttempt    = "attempt"
	TypeTransition = "transition"
	TypeDispose    = "dispose"
)

// BaseEvent provides the fields shared by every event type.
type BaseEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// EventType returns the type identifier for this event
func (b BaseEvent) EventType() string {
	return b.Type
}

// Timestamp returns when this event occurred
func (b BaseEvent) Timestamp() time.Time {
	return b.CreatedAt
}

func newBase(sessionID, eventType string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		CreatedAt: time.Now(),
		SessionID: sessionID,
	}
}

// Duration wraps time.Duration to provide human-readable JSON serialization
type Duration time.Duration

// MarshalJSON implements json.Marshaler interface
func (d Duration) MarshalJSON() ([]byte, error) {
	duration := time.Duration(d)
	return json.Marshal(map[string]interface{}{
		"nanoseconds":  int64(duration),
		"readable":     duration.String(),
		"milliseconds": duration.Milliseconds(),
	})
}

// UnmarshalJSON implements json.Unmarshaler interface
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
	case map[string]interface{}:
		if ns, ok := value["nanoseconds"].(float64); ok {
			*d = Duration(time.Duration(ns))
		}
	}

	return nil
}

// SubmitEvent records one pass through the gate
type SubmitEvent struct {
	BaseEvent
	Login    string `json:"login"`
	Valid    bool   `json:"valid"`
	Decision string `json:"decision"`
}

// NewSubmitEvent creates a new submit event
func NewSubmitEvent(sessionID, login string, valid bool, decision string) *SubmitEvent {
	return &SubmitEvent{
		BaseEvent: newBase(sessionID, TypeSubmit),
		Login:     login,
		Valid:     valid,
		Decision:  decision,
	}
}

// Validate ensures the event data is complete and valid
func (s *SubmitEvent) Validate() error {
	if s.Decision == "" {
		return errors.New("decision is required")
	}
	return nil
}

// Sanitize removes or masks any sensitive information
func (s *SubmitEvent) Sanitize() Event {
	sanitized := *s
	return &sanitized
}

// AttemptEvent records the outcome of one login attempt
type AttemptEvent struct {
	BaseEvent
	Login    string   `json:"login"`
	Attempt  int      `json:"attempt"`
	Success  bool     `json:"success"`
	Payload  string   `json:"payload,omitempty"`
	Error    string   `json:"error,omitempty"`
	Duration Duration `json:"duration"`
}

// NewAttemptEvent creates a new attempt event
func NewAttemptEvent(sessionID, login string, attempt int, duration time.Duration) *AttemptEvent {
	return &AttemptEvent{
		BaseEvent: newBase(sessionID, TypeAttempt),
		Login:     login,
		Attempt:   attempt,
		Duration:  Duration(duration),
	}
}

// Validate ensures the event data is complete and valid
func (a *AttemptEvent) Validate() error {
	if a.Attempt <= 0 {
		return errors.New("attempt must be positive")
	}
	if time.Duration(a.Duration) < 0 {
		return errors.New("duration cannot be negative")
	}
	if !a.Success && a.Error == "" {
		return errors.New("failed attempt needs an error")
	}
	return nil
}

// Sanitize removes or masks any sensitive information
func (a *AttemptEvent) Sanitize() Event {
	sanitized := *a
	sanitized.Error = sanitizeErrorMessage(a.Error)
	return &sanitized
}

// TransitionEvent records a cooldown timer phase change
type TransitionEvent struct {
	BaseEvent
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	Run       int    `json:"run"`
}

// NewTransitionEvent creates a new transition event
func NewTransitionEvent(sessionID, fromState, toState string, run int) *TransitionEvent {
	return &TransitionEvent{
		BaseEvent: newBase(sessionID, TypeTransition),
		FromState: fromState,
		ToState:   toState,
		Run:       run,
	}
}

// Validate ensures the event data is complete and valid
func (n *TransitionEvent) Validate() error {
	if n.ToState == "" {
		return errors.New("to_state is required")
	}
	return nil
}

// Sanitize removes or masks any sensitive information
func (n *TransitionEvent) Sanitize() Event {
	sanitized := *n
	return &sanitized
}

// DisposeEvent records the state the controller was frozen in
type DisposeEvent struct {
	BaseEvent
	DisplayedLogin    string `json:"displayed_login,omitempty"`
	IsLoading         bool   `json:"is_loading"`
	IsLockedOut       bool   `json:"is_locked_out"`
	RemainingCooldown int    `json:"remaining_cooldown"`
	AttemptCounter    int    `json:"attempt_counter"`
}

// NewDisposeEvent creates a new dispose event
func NewDisposeEvent(sessionID string) *DisposeEvent {
	return &DisposeEvent{BaseEvent: newBase(sessionID, TypeDispose)}
}

// Validate ensures the event data is complete and valid
func (d *DisposeEvent) Validate() error {
	if d.RemainingCooldown < 0 || d.AttemptCounter < 0 {
		return errors.New("counters cannot be negative")
	}
	return nil
}

// Sanitize removes or masks any sensitive information
func (d *DisposeEvent) Sanitize() Event {
	sanitized := *d
	return &sanitized
}

var secretRe = regexp.MustCompile(`(?i)(token|password|key|secret|auth|apikey)=[^&\s]+`)

// sanitizeErrorMessage masks credential-looking query parameters
func sanitizeErrorMessage(msg string) string {
	return secretRe.ReplaceAllString(msg, "$1=[REDACTED]")
}
