package state

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Store persists the snapshot as a single JSON document. One Store is
// used per run: the snapshot is loaded once, mutated in memory by the
// change detectors, and written back once. No inter-process locking is
// provided; at most one run may execute against a given snapshot file
// at a time.
type Store struct {
	path     string
	snapshot *Snapshot
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string {
	return s.path
}

// Load returns the snapshot, reading it from disk on the first call and
// returning the already-loaded instance afterwards. A missing, empty, or
// unparseable file is treated as "start fresh": an empty snapshot is
// returned and a warning logged, never an error.
func (s *Store) Load() *Snapshot {
	if s.snapshot != nil {
		return s.snapshot
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read state file, starting fresh", "path", s.path, "error", err)
		} else {
			slog.Info("No state file found, starting fresh", "path", s.path)
		}
		s.snapshot = NewSnapshot()
		return s.snapshot
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		slog.Warn("Failed to parse state file, starting fresh", "path", s.path, "error", err)
		s.snapshot = NewSnapshot()
		return s.snapshot
	}

	snap.normalize()
	s.snapshot = &snap
	slog.Info("Loaded state", "path", s.path, "tracked", snap.TrackedCount())
	return s.snapshot
}

// Save serializes the in-memory snapshot and replaces the state file,
// creating the containing directory if absent. The whole file is
// rewritten on every call; the in-memory snapshot is the single source
// of truth during a run.
func (s *Store) Save() error {
	if s.snapshot == nil {
		slog.Warn("No state to save", "path", s.path)
		return nil
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	slog.Info("Saved state", "path", s.path, "tracked", s.snapshot.TrackedCount())
	return nil
}

// SetLastRun stamps the snapshot with the given time.
func (s *Store) SetLastRun(t time.Time) {
	snap := s.Load()
	ts := t.Format(time.RFC3339)
	snap.LastRun = &ts
}

// Reset deletes the state file, discarding all tracked entities. It is
// the only operation that ever removes tracked state.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove state file: %w", err)
	}
	s.snapshot = nil
	return nil
}
