package tracing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LocalTracer buffers events and writes them to JSON files, one file per
// flush, named after the session.
type LocalTracer struct {
	config      TracingConfig
	dir         string
	session     SessionInfo
	buffer      []Event
	flushes     int
	bufferMutex sync.Mutex
	flushTicker *time.Ticker
	stopChan    chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

// NewLocalTracer creates a new local file tracer with the given configuration
func NewLocalTracer(config TracingConfig, version string) (*LocalTracer, error) {
	dir, err := expandPath(config.LocalDir)
	if err != nil {
		return nil, fmt.Errorf("failed to expand path %s: %w", config.LocalDir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create traces directory %s: %w", dir, err)
	}

	if config.MaxBufferSize <= 0 {
		config.MaxBufferSize = DefaultConfig().MaxBufferSize
	}

	session := SessionInfo{
		ID:        generateSessionID(),
		StartTime: time.Now(),
		UserAgent: fmt.Sprintf("logingate/%s", version),
		Platform:  getPlatform(),
		Version:   version,
	}

	tracer := &LocalTracer{
		config:   config,
		dir:      dir,
		session:  session,
		buffer:   make([]Event, 0, config.MaxBufferSize),
		stopChan: make(chan struct{}),
	}

	if config.FlushInterval > 0 {
		tracer.startBackgroundFlushing()
	}

	return tracer, nil
}

// SessionID returns the identifier of this tracer's session
func (l *LocalTracer) SessionID() string {
	return l.session.ID
}

// Dir returns the directory session files are written to
func (l *LocalTracer) Dir() string {
	return l.dir
}

// TrackEvent records a structured event
func (l *LocalTracer) TrackEvent(event Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid %s event: %w", event.EventType(), err)
	}

	sanitizedEvent := event.Sanitize()

	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()

	l.buffer = append(l.buffer, sanitizedEvent)

	if len(l.buffer) >= l.config.MaxBufferSize {
		return l.flushUnsafe()
	}

	return nil
}

// Flush ensures all pending events are persisted
func (l *LocalTracer) Flush() error {
	l.bufferMutex.Lock()
	defer l.bufferMutex.Unlock()
	return l.flushUnsafe()
}

// Close stops background flushing, writes what is left and prunes old
// session files. Only the first call does anything.
func (l *LocalTracer) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.flushTicker != nil {
			l.flushTicker.Stop()
			close(l.stopChan)
			l.wg.Wait()
		}

		l.bufferMutex.Lock()
		l.session.EndTime = time.Now()
		flushErr := l.flushUnsafe()
		l.bufferMutex.Unlock()
		if flushErr != nil {
			err = fmt.Errorf("failed to flush during close: %w", flushErr)
			return
		}

		err = l.cleanupOldSessions()
	})
	return err
}

func (l *LocalTracer) startBackgroundFlushing() {
	l.flushTicker = time.NewTicker(l.config.FlushInterval)
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-l.flushTicker.C:
				l.bufferMutex.Lock()
				if len(l.buffer) > 0 {
					_ = l.flushUnsafe()
				}
				l.bufferMutex.Unlock()
			case <-l.stopChan:
				return
			}
		}
	}()
}

// flushUnsafe writes the buffer to disk. The caller holds bufferMutex.
func (l *LocalTracer) flushUnsafe() error {
	if len(l.buffer) == 0 {
		return nil
	}

	sessionCopy := l.session
	if sessionCopy.EndTime.IsZero() {
		sessionCopy.EndTime = time.Now()
	}

	batch := EventBatch{
		Session: sessionCopy,
		Events:  make([]Event, len(l.buffer)),
	}
	copy(batch.Events, l.buffer)

	l.flushes++
	filename := fmt.Sprintf("session_%s_%03d.json", l.session.ID, l.flushes)
	path := filepath.Join(l.dir, filename)

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal events: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write events to %s: %w", path, err)
	}

	l.buffer = l.buffer[:0]

	return nil
}

// cleanupOldSessions keeps the files of the newest MaxSessions sessions.
// A MaxSessions of 0 keeps everything.
func (l *LocalTracer) cleanupOldSessions() error {
	if l.config.MaxSessions <= 0 {
		return nil
	}

	files, err := sessionFiles(l.dir)
	if err != nil {
		return err
	}

	// newest modification time per session
	latest := make(map[string]time.Time)
	for _, f := range files {
		if f.modTime.After(latest[f.session]) {
			latest[f.session] = f.modTime
		}
	}
	if len(latest) <= l.config.MaxSessions {
		return nil
	}

	sessions := make([]string, 0, len(latest))
	for id := range latest {
		sessions = append(sessions, id)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return latest[sessions[i]].After(latest[sessions[j]])
	})

	drop := make(map[string]bool)
	for _, id := range sessions[l.config.MaxSessions:] {
		drop[id] = true
	}
	for _, f := range files {
		if drop[f.session] {
			_ = os.Remove(f.path)
		}
	}

	return nil
}

type sessionFile struct {
	path    string
	session string
	modTime time.Time
}

// sessionFiles lists the session_*.json files in dir
func sessionFiles(dir string) ([]sessionFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read traces directory: %w", err)
	}

	files := make([]sessionFile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || !strings.HasPrefix(name, "session_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, "session_"), ".json")
		if i := strings.LastIndex(id, "_"); i > 0 {
			id = id[:i]
		}
		files = append(files, sessionFile{
			path:    filepath.Join(dir, name),
			session: id,
			modTime: info.ModTime(),
		})
	}
	return files, nil
}

// generateSessionID creates a unique session identifier
func generateSessionID() string {
	return uuid.New().String()
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}

func getPlatform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
