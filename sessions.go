package odeglue

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/text/language"
)

type session struct {
	mu      sync.Mutex
	catalog *Catalog
}

// Sessions keeps one isolated [Catalog] per session id. Requests for the
// same session are serialized; different sessions never share state and
// never wait on each other beyond the map lookup.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
}

// NewSessions returns an empty session store.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[uuid.UUID]*session)}
}

// Create starts a session with an empty catalog and returns its id.
func (s *Sessions) Create(lang language.Tag) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = make(map[uuid.UUID]*session)
	}
	s.sessions[id] = &session{catalog: NewCatalog(lang)}
	n := len(s.sessions)
	s.mu.Unlock()

	Logger().Info("odeglue: session created", "id", id, "lang", lang, "sessions", n)
	return id
}

func (s *Sessions) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	return sess, nil
}

// Do runs fn with exclusive access to the catalog of session id and returns
// fn's error.
func (s *Sessions) Do(id uuid.UUID, fn func(*Catalog) error) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.catalog)
}

// Snapshot returns the pieces and language of session id.
func (s *Sessions) Snapshot(id uuid.UUID) ([]Piece, language.Tag, error) {
	var (
		pieces []Piece
		lang   language.Tag
	)
	err := s.Do(id, func(c *Catalog) error {
		pieces = c.List()
		lang = c.Language()
		return nil
	})
	return pieces, lang, err
}

// Delete drops session id. Deleting an unknown id reports ErrUnknownSession.
func (s *Sessions) Delete(id uuid.UUID) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	Logger().Info("odeglue: session deleted", "id", id)
	return nil
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
