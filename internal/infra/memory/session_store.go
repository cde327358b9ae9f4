package memory

import (
	"context"
	"sync"
)

// SessionStore is an in-memory implementation of app.SessionStore, used in
// tests and when no Redis is configured.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]string),
	}
}

func (s *SessionStore) Get(_ context.Context, userKey string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	question, ok := s.entries[userKey]
	return question, ok, nil
}

func (s *SessionStore) Set(_ context.Context, userKey, question string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userKey] = question
	return nil
}
