package tracing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"
)

// AttemptRecord is one attempt read back from a session file
type AttemptRecord struct {
	SessionID string
	At        time.Time
	Login     string
	Attempt   int
	Success   bool
	Payload   string
	Error     string
	Duration  time.Duration
}

type rawBatch struct {
	Session SessionInfo       `json:"session"`
	Events  []json.RawMessage `json:"events"`
}

// LoadAttempts reads the attempts stored in dir, newest first. A limit of 0
// returns all of them. A missing directory yields no records.
func LoadAttempts(dir string, limit int) ([]AttemptRecord, error) {
	expanded, err := expandPath(dir)
	if err != nil {
		return nil, err
	}

	files, err := sessionFiles(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var records []AttemptRecord
	for _, f := range files {
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
		}

		var batch rawBatch
		if err := json.Unmarshal(data, &batch); err != nil {
			// partially written or foreign file
			continue
		}

		for _, raw := range batch.Events {
			var base BaseEvent
			if err := json.Unmarshal(raw, &base); err != nil || base.Type != TypeAttempt {
				continue
			}
			var event AttemptEvent
			if err := json.Unmarshal(raw, &event); err != nil {
				continue
			}
			records = append(records, AttemptRecord{
				SessionID: batch.Session.ID,
				At:        event.CreatedAt,
				Login:     event.Login,
				Attempt:   event.Attempt,
				Success:   event.Success,
				Payload:   event.Payload,
				Error:     event.Error,
				Duration:  time.Duration(event.Duration),
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].At.After(records[j].At)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}
