package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session holds one operator's API key and timezone for the duration of
// the interactive session. Nothing is ever written to disk.
type Session struct {
	Token    string
	APIKey   string
	Timezone *time.Location
	lastSeen time.Time
}

// SessionStore is an in-memory session table with idle expiry. Safe for
// concurrent use by HTTP handlers and the sweep job.
type SessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Open registers a new session and returns it with a fresh token.
func (s *SessionStore) Open(apiKey string, tz *time.Location) *Session {
	sess := &Session{
		Token:    uuid.NewString(),
		APIKey:   apiKey,
		Timezone: tz,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.lastSeen = s.now()
	s.sessions[sess.Token] = sess
	return sess
}

// Get returns the session for token and refreshes its idle timer.
// Expired sessions are treated as absent.
func (s *SessionStore) Get(token string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, false
	}
	if s.now().Sub(sess.lastSeen) > s.ttl {
		delete(s.sessions, token)
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess, true
}

// Close drops the session eagerly.
func (s *SessionStore) Close(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}

// Sweep removes sessions idle past the TTL and returns how many went.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for token, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
