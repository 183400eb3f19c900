// Package history keeps the calculations of an interactive session in memory.
// Nothing is persisted; a session's history is gone once the session ends.
package history

import (
	"sync"
	"time"

	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/google/uuid"
)

// Tracker is an append-only list of calculations for one session.
type Tracker struct {
	mu         sync.Mutex
	entries    []domain.HistoryEntry
	maxEntries int
	now        func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithMaxEntries caps the tracker. The oldest entries are dropped first.
// Zero or a negative value means unbounded.
func WithMaxEntries(n int) Option {
	return func(t *Tracker) {
		t.maxEntries = n
	}
}

// WithClock overrides the clock used to timestamp entries.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// NewTracker creates an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record appends an entry, assigning an ID and timestamp when missing.
func (t *Tracker) Record(entry domain.HistoryEntry) domain.HistoryEntry {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = t.now()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, entry)
	if t.maxEntries > 0 && len(t.entries) > t.maxEntries {
		drop := len(t.entries) - t.maxEntries
		t.entries = append([]domain.HistoryEntry(nil), t.entries[drop:]...)
	}
	return entry
}

// Clear empties the tracker.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = nil
}

// List returns a copy of the entries, newest first.
func (t *Tracker) List() []domain.HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.HistoryEntry, len(t.entries))
	for i, e := range t.entries {
		out[len(t.entries)-1-i] = e
	}
	return out
}

// Len returns the number of recorded entries.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
