package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory session store for single-instance deployments
// and tests. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if sess.IsExpired() {
		_ = s.Delete(ctx, sessionID)
		return nil, ErrExpired
	}

	// Copy so callers can't mutate the stored record without Set.
	out := *sess
	return &out, nil
}

func (s *MemoryStore) Set(ctx context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *sess
	s.sessions[sess.ID] = &stored
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.IsExpired() {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// Len returns the number of stored sessions, expired included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

var _ Store = (*MemoryStore)(nil)
