package history

import (
	"context"
	"sync"
	"time"
)

// Sessions maps session IDs to their trackers. It is owned by a presentation
// adapter; idle sessions are dropped by Sweep.
type Sessions struct {
	mu          sync.Mutex
	sessions    map[string]*session
	idleTimeout time.Duration
	trackerOpts []Option
	now         func() time.Time
}

type session struct {
	tracker  *Tracker
	lastSeen time.Time
}

// NewSessions creates a registry. trackerOpts are applied to every tracker it
// creates. An idleTimeout of zero keeps sessions until End is called.
func NewSessions(idleTimeout time.Duration, trackerOpts ...Option) *Sessions {
	return &Sessions{
		sessions:    make(map[string]*session),
		idleTimeout: idleTimeout,
		trackerOpts: trackerOpts,
		now:         time.Now,
	}
}

// Get returns the tracker of a session, creating it on first use.
func (s *Sessions) Get(id string) *Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, now) {
		sess = &session{tracker: NewTracker(s.trackerOpts...)}
		s.sessions[id] = sess
	}
	sess.lastSeen = now
	return sess.tracker
}

// End drops a session and with it its history.
func (s *Sessions) End(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops every idle session and returns how many were removed.
func (s *Sessions) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Sessions) expired(sess *session, now time.Time) bool {
	return s.idleTimeout > 0 && now.Sub(sess.lastSeen) > s.idleTimeout
}
