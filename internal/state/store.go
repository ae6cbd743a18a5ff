package state

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Source describes the health of one feeder.
type Source struct {
	Name                string
	Path                string
	Lines               int // lines fed into the console so far
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsFailing returns true when the source has failed repeatedly.
func (s Source) IsFailing() bool {
	return s.ConsecutiveFailures >= 2
}

// Snapshot represents the latest feeder state available to the UI.
type Snapshot struct {
	Sources     []Source // sorted by name, then path
	LastSaved   string // path of the most recent saved log
	LastSavedAt time.Time
	LastUpdated time.Time
}

// Failing returns the number of sources that are currently failing.
func (s Snapshot) Failing() int {
	n := 0
	for _, src := range s.Sources {
		if src.IsFailing() {
			n++
		}
	}
	return n
}

// Store coordinates concurrent updates from feeders and the UI.
type Store struct {
	mu        sync.RWMutex
	sources   map[string]Source // by path
	lastSaved string
	savedAt   time.Time
	updated   time.Time
}

// Update records a poll of the source at path; name is its display label.
// Sources are keyed by path so files sharing a base name stay apart. When err
// is non-nil the line count is kept and the failure is recorded.
func (s *Store) Update(name, path string, lines int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sources == nil {
		s.sources = make(map[string]Source)
	}
	src := s.sources[path]
	src.Name = name
	src.Path = path
	src.LastUpdated = time.Now()
	s.updated = src.LastUpdated

	if err != nil {
		src.LastError = err
		src.ConsecutiveFailures++
		s.sources[path] = src
		return
	}

	src.Lines += lines
	src.LastError = nil
	src.ConsecutiveFailures = 0
	s.sources[path] = src
}

// RecordSave remembers the path of the most recent saved log.
func (s *Store) RecordSave(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSaved = path
	s.savedAt = time.Now()
	s.updated = s.savedAt
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{LastSaved: s.lastSaved, LastSavedAt: s.savedAt, LastUpdated: s.updated}
	if len(s.sources) == 0 {
		return snap
	}
	snap.Sources = make([]Source, 0, len(s.sources))
	for _, src := range s.sources {
		if src.LastError != nil {
			src.LastError = fmt.Errorf("%w", src.LastError)
		}
		snap.Sources = append(snap.Sources, src)
	}
	sort.Slice(snap.Sources, func(i, j int) bool {
		a, b := snap.Sources[i], snap.Sources[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.Path < b.Path
	})
	return snap
}
