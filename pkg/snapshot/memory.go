package snapshot

import (
	"context"
	"sync"
)

// MemoryStore keeps snapshots in memory, newest first. Safe for concurrent
// use.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps []*Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *snap
	s.snaps = append([]*Snapshot{&stored}, s.snaps...)
	return nil
}

func (s *MemoryStore) Latest(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.snaps) == 0 {
		return nil, nil
	}
	out := *s.snaps[0]
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.snaps)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Snapshot, n)
	for i := 0; i < n; i++ {
		snap := *s.snaps[i]
		out[i] = &snap
	}
	return out, nil
}

func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
