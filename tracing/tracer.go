// Package tracing records what the submission controller does to local JSON
// session files, and reads the attempt history back from them.
package tracing

import (
	"time"
)

// Tracer persists events
type Tracer interface {
	// TrackEvent records a structured event
	TrackEvent(event Event) error

	// Flush ensures all pending events are persisted
	Flush() error

	// Close gracefully shuts down the tracer and performs cleanup
	Close() error
}

// Event represents the base interface for all trackable events.
type Event interface {
	// EventType returns the type identifier for this event
	EventType() string

	// Timestamp returns when this event occurred
	Timestamp() time.Time

	// Validate ensures the event data is complete and valid
	Validate() error

	// Sanitize removes or masks any sensitive information
	Sanitize() Event
}

// SessionInfo contains metadata about the current process run
type SessionInfo struct {
	ID        string    `json:"session_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"`
	UserAgent string    `json:"user_agent"`
	Platform  string    `json:"platform"`
	Version   string    `json:"version"`
}

// EventBatch is the content of one session file
type EventBatch struct {
	Session SessionInfo `json:"session"`
	Events  []Event     `json:"events"`
}

// TracingConfig holds configuration for the tracing system
type TracingConfig struct {
	Enabled       bool          `json:"enabled"`
	LocalDir      string        `json:"local_dir"`
	MaxSessions   int           `json:"max_sessions"`
	FlushInterval time.Duration `json:"flush_interval"`
	MaxBufferSize int           `json:"max_buffer_size"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() TracingConfig {
	return TracingConfig{
		Enabled:       true,
		LocalDir:      "~/.logingate/traces",
		MaxSessions:   10,
		FlushInterval: 10 * time.Second,
		MaxBufferSize: 100,
	}
}

// NoOpTracer discards all events. It is used when tracing is disabled.
type NoOpTracer struct{}

func (n *NoOpTracer) TrackEvent(event Event) error { return nil }
func (n *NoOpTracer) Flush() error                 { return nil }
func (n *NoOpTracer) Close() error                 { return nil }

// NewNoOpTracer creates a tracer that discards all events
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}
