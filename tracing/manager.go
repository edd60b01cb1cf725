package tracing

import (
	"fmt"
	"sync"
	"time"

	"logingate/submission"
)

// Manager records submission controller activity. It implements
// submission.Tracker; tracking errors never reach the controller and are
// available through Err.
type Manager struct {
	tracer    Tracer
	config    TracingConfig
	sessionID string
	dir       string
	mu        sync.Mutex
	closed    bool
	err       error
}

var _ submission.Tracker = (*Manager)(nil)

// NewManager creates a new tracing manager with the given configuration
func NewManager(config TracingConfig, version string) (*Manager, error) {
	if !config.Enabled {
		return &Manager{
			tracer:    NewNoOpTracer(),
			config:    config,
			sessionID: "disabled",
		}, nil
	}

	local, err := NewLocalTracer(config, version)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	return &Manager{
		tracer:    local,
		config:    config,
		sessionID: local.SessionID(),
		dir:       local.Dir(),
	}, nil
}

// TrackSubmit records a gate decision
func (m *Manager) TrackSubmit(in submission.Input, decision submission.Decision) {
	m.track(NewSubmitEvent(m.sessionID, in.Value, in.Valid, decision.String()))
}

// TrackAttempt records the outcome of an attempt
func (m *Manager) TrackAttempt(req submission.Request, payload string, err error, elapsed time.Duration) {
	event := NewAttemptEvent(m.sessionID, req.Login, req.Attempt, elapsed)
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Success = true
		event.Payload = payload
	}
	m.track(event)
}

// TrackTransition records a cooldown phase change
func (m *Manager) TrackTransition(t submission.Transition) {
	m.track(NewTransitionEvent(m.sessionID, t.From.String(), t.To.String(), t.Run))
}

// TrackDispose records the final state and flushes
func (m *Manager) TrackDispose(state submission.State) {
	event := NewDisposeEvent(m.sessionID)
	event.DisplayedLogin = state.DisplayedLogin
	event.IsLoading = state.IsLoading
	event.IsLockedOut = state.IsLockedOut
	event.RemainingCooldown = state.RemainingCooldown
	event.AttemptCounter = state.AttemptCounter
	m.track(event)

	if err := m.Flush(); err != nil {
		m.record(err)
	}
}

func (m *Manager) track(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if err := m.tracer.TrackEvent(event); err != nil && m.err == nil {
		m.err = err
	}
}

func (m *Manager) record(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err == nil {
		m.err = err
	}
}

// Err returns the first error that occurred while tracking, if any
func (m *Manager) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Flush ensures all pending events are persisted
func (m *Manager) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	return m.tracer.Flush()
}

// Close gracefully shuts down the tracing system
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}

	err := m.tracer.Close()
	m.closed = true

	return err
}

// IsEnabled returns whether tracing is currently enabled
func (m *Manager) IsEnabled() bool {
	return m.config.Enabled
}

// SessionID returns the current session ID
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Dir returns the directory session files are written to, or "" when
// tracing is disabled
func (m *Manager) Dir() string {
	return m.dir
}
