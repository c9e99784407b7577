// Package session keeps bounded, expiring in-memory chat histories. State
// lives only for the lifetime of the process; nothing is persisted.
package session

import (
	"sync"
	"time"

	"github.com/carewell/appointment-service/internal/domain"
)

const (
	// DefaultTTL is how long an idle session survives before eviction.
	DefaultTTL = 24 * time.Hour
	// MaxMessages caps a session transcript; the oldest entries are
	// dropped first once the cap is exceeded.
	MaxMessages = 20
)

type record struct {
	messages     []domain.ChatTurn
	createdAt    time.Time
	lastActivity time.Time
}

// Store is a concurrency-safe session table keyed by session id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*record
	ttl      time.Duration
	max      int
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		sessions: make(map[string]*record),
		ttl:      ttl,
		max:      MaxMessages,
		now:      time.Now,
	}
}

// Append adds a message to the session, creating the session when absent.
// The transcript is truncated to the most recent MaxMessages entries.
func (s *Store) Append(sessionID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec, ok := s.sessions[sessionID]
	if !ok {
		rec = &record{createdAt: now, lastActivity: now}
		s.sessions[sessionID] = rec
	}
	rec.messages = append(rec.messages, domain.ChatTurn{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	if len(rec.messages) > s.max {
		rec.messages = rec.messages[len(rec.messages)-s.max:]
	}
	rec.lastActivity = now
}

// History returns a copy of the session transcript in order. A lookup for an
// unknown session returns an empty slice and does not create the session.
func (s *Store) History(sessionID string) []domain.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	out := make([]domain.ChatTurn, len(rec.messages))
	copy(out, rec.messages)
	return out
}

// Info reports session metadata and the most recent messages, up to n.
func (s *Store) Info(sessionID string, n int) (created, lastActivity time.Time, recent []domain.ChatTurn, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, found := s.sessions[sessionID]
	if !found {
		return time.Time{}, time.Time{}, nil, false
	}
	start := len(rec.messages) - n
	if n <= 0 || start < 0 {
		start = 0
	}
	recent = make([]domain.ChatTurn, len(rec.messages)-start)
	copy(recent, rec.messages[start:])
	return rec.createdAt, rec.lastActivity, recent, true
}

// Count returns the number of messages held for the session.
func (s *Store) Count(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.sessions[sessionID]
	if !ok {
		return 0
	}
	return len(rec.messages)
}

// Delete removes the session, reporting whether it existed.
func (s *Store) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}

// Sweep evicts sessions whose last activity predates the TTL cutoff and
// returns how many were removed. Callers run it opportunistically before
// each chat interaction.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, rec := range s.sessions {
		if rec.lastActivity.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
