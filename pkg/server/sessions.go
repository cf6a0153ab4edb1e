package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"adprov/pkg/config"
	"adprov/pkg/engine"
)

// Session is one operator's loaded configuration. The Configuration is
// read-only once stored; only the directory index may be replaced.
type Session struct {
	ID        string                 `json:"id"`
	Config    *config.Configuration  `json:"configuration"`
	Directory *engine.DirectoryIndex `json:"-"`
	CreatedAt time.Time              `json:"createdAt"`
}

// SessionStore keeps sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create stores cfg under a new id.
func (s *SessionStore) Create(cfg *config.Configuration) *Session {
	session := &Session{
		ID:        uuid.NewString(),
		Config:    cfg,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// Get returns a copy of the session so callers never race with
// SetDirectory.
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *session, true
}

// SetDirectory attaches a directory index to a session.
func (s *SessionStore) SetDirectory(id string, index *engine.DirectoryIndex) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return false
	}
	session.Directory = index
	return true
}

// Delete removes a session.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
