package tracing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"logingate/submission"
)

func testConfig(t *testing.T) TracingConfig {
	t.Helper()
	return TracingConfig{
		Enabled:       true,
		LocalDir:      t.TempDir(),
		MaxSessions:   5,
		MaxBufferSize: 100,
	}
}

func readBatches(t *testing.T, dir string) []rawBatch {
	t.Helper()
	files, err := sessionFiles(dir)
	if err != nil {
		t.Fatalf("Failed to list session files: %v", err)
	}
	batches := make([]rawBatch, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.path)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", f.path, err)
		}
		var batch rawBatch
		if err := json.Unmarshal(data, &batch); err != nil {
			t.Fatalf("Failed to decode %s: %v", f.path, err)
		}
		batches = append(batches, batch)
	}
	return batches
}

func eventTypes(batches []rawBatch) []string {
	var types []string
	for _, b := range batches {
		for _, raw := range b.Events {
			var base BaseEvent
			_ = json.Unmarshal(raw, &base)
			types = append(types, base.Type)
		}
	}
	return types
}

func TestManager_RecordsControllerLifecycle(t *testing.T) {
	// Arrange
	config := testConfig(t)
	manager, err := NewManager(config, "test")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	// Act
	manager.TrackSubmit(submission.Input{Value: "bob", Valid: true}, submission.Allowed)
	manager.TrackAttempt(submission.Request{Login: "bob", Attempt: 1}, "", fmt.Errorf("%w: 503", submission.ErrAttemptFailed), 40*time.Millisecond)
	manager.TrackTransition(submission.Transition{From: submission.Idle, To: submission.Running, Run: 1})
	manager.TrackDispose(submission.State{IsLockedOut: true, RemainingCooldown: 42, AttemptCounter: 1})

	// Assert
	if err := manager.Err(); err != nil {
		t.Fatalf("Expected no tracking error, got %v", err)
	}
	batches := readBatches(t, config.LocalDir)
	got := eventTypes(batches)
	want := []string{TypeSubmit, TypeAttempt, TypeTransition, TypeDispose}
	if len(got) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Event %d: expected %s, got %s", i, want[i], got[i])
		}
	}
	if batches[0].Session.ID != manager.SessionID() {
		t.Errorf("Expected session %s, got %s", manager.SessionID(), batches[0].Session.ID)
	}
	if batches[0].Session.UserAgent != "logingate/test" {
		t.Errorf("Unexpected user agent %q", batches[0].Session.UserAgent)
	}
}

func TestManager_Disabled(t *testing.T) {
	// Arrange
	config := testConfig(t)
	config.Enabled = false

	// Act
	manager, err := NewManager(config, "test")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	manager.TrackSubmit(submission.Input{Value: "bob", Valid: true}, submission.Allowed)
	manager.TrackDispose(submission.State{})
	closeErr := manager.Close()

	// Assert
	if closeErr != nil {
		t.Errorf("Expected clean close, got %v", closeErr)
	}
	if manager.IsEnabled() {
		t.Error("Expected tracing to report disabled")
	}
	entries, _ := os.ReadDir(config.LocalDir)
	if len(entries) != 0 {
		t.Errorf("Expected no files when disabled, got %d", len(entries))
	}
}

func TestManager_InvalidEventIsRecordedNotReturned(t *testing.T) {
	// Arrange
	manager, err := NewManager(testConfig(t), "test")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()

	// Act
	manager.TrackAttempt(submission.Request{Login: "bob", Attempt: 0}, "", nil, time.Millisecond)

	// Assert
	if manager.Err() == nil {
		t.Error("Expected the invalid event to be recorded as an error")
	}
}

func TestManager_IgnoresEventsAfterClose(t *testing.T) {
	// Arrange
	config := testConfig(t)
	manager, err := NewManager(config, "test")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}

	// Act
	if err := manager.Close(); err != nil {
		t.Fatalf("Failed to close: %v", err)
	}
	manager.TrackSubmit(submission.Input{Value: "bob", Valid: true}, submission.Allowed)
	secondClose := manager.Close()

	// Assert
	if secondClose != nil {
		t.Errorf("Expected second close to be a no-op, got %v", secondClose)
	}
	if got := eventTypes(readBatches(t, config.LocalDir)); len(got) != 0 {
		t.Errorf("Expected no events written, got %v", got)
	}
}

func TestManager_ThroughController(t *testing.T) {
	// Arrange
	config := testConfig(t)
	manager, err := NewManager(config, "test")
	if err != nil {
		t.Fatalf("Failed to create manager: %v", err)
	}
	defer manager.Close()
	attempter := submission.AttempterFunc(func(ctx context.Context, req submission.Request) (string, error) {
		return "", errors.New("nope")
	})
	ctrl := submission.New(nopForm{}, attempter, submission.WithTracker(manager))

	// Act
	_, cmd := ctrl.TrySubmit(submission.Input{Value: "bob", Valid: true})
	ctrl.Update(cmd())
	ctrl.Dispose()

	// Assert
	got := eventTypes(readBatches(t, config.LocalDir))
	want := []string{TypeSubmit, TypeAttempt, TypeTransition, TypeDispose}
	if len(got) != len(want) {
		t.Fatalf("Expected events %v, got %v", want, got)
	}
	records, err := LoadAttempts(config.LocalDir, 0)
	if err != nil {
		t.Fatalf("Failed to load attempts: %v", err)
	}
	if len(records) != 1 || records[0].Login != "bob" || records[0].Success {
		t.Errorf("Expected one failed attempt for bob, got %+v", records)
	}
}

type nopForm struct{}

func (nopForm) ResetValue()   {}
func (nopForm) DisableInput() {}
func (nopForm) EnableInput()  {}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{name: "absolute", path: "/tmp/traces", want: "/tmp/traces"},
		{name: "tilde", path: "~/.logingate/traces", want: filepath.Join(home, ".logingate", "traces")},
		{name: "empty", path: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
