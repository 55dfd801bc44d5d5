// Package session tracks per-viewer chart state for the web server.
//
// Every browser session owns one chart instance; the session record stores
// what is needed to rebuild that chart elsewhere: the active search query and
// bookkeeping timestamps. Two backends are provided: [MemoryStore] for
// single-instance deployments and tests, and [RedisStore] so a multi-instance
// deployment can hand sessions between replicas.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// DefaultTTL is the default session duration.
const DefaultTTL = 24 * time.Hour

// Session is one viewer's durable chart state.
type Session struct {
	ID string `json:"id"`

	// Query is the active search query, or "" when the chart is unfiltered.
	Query string `json:"query,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session's lifetime by ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.LastSeenAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op for backends with
	// native expiry).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// New creates a fresh session with a random ID.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastSeenAt: now,
		ExpiresAt:  now.Add(ttl),
	}
}
