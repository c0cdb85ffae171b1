package storage

import (
	"sync"
	"time"

	"github.com/lehigh-university-libraries/artgrid/internal/view"
)

type entry struct {
	view     *view.View
	lastSeen time.Time
}

// SessionStore keeps one content view per browser session, in memory
type SessionStore struct {
	sessions map[string]*entry
	mu       sync.RWMutex
	newView  func() *view.View
	now      func() time.Time
}

func New(newView func() *view.View) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entry),
		newView:  newView,
		now:      time.Now,
	}
}

func (s *SessionStore) Get(sessionID string) (*view.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.view, true
}

// GetOrCreate returns the session's view, creating a fresh one on first use
func (s *SessionStore) GetOrCreate(sessionID string) *view.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.sessions[sessionID]
	if !exists {
		e = &entry{view: s.newView()}
		s.sessions[sessionID] = e
	}
	e.lastSeen = s.now()
	return e.view
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Expire drops sessions idle for longer than ttl and returns how many were dropped
func (s *SessionStore) Expire(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	dropped := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			dropped++
		}
	}
	return dropped
}
