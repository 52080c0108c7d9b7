package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.SessionStore in memory. Snapshots are cloned on the
// way in and out, so a caller never shares a step log with the store.
// Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Snapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{snapshots: make(map[string]*domain.Snapshot)}
}

func (s *Store) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("session %s: nil snapshot", sessionID)
	}
	copied := snap.Clone()

	s.mu.Lock()
	s.snapshots[sessionID] = copied
	s.mu.Unlock()
	return nil
}

func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return snap.Clone(), nil
}

// Delete is a no-op for unknown IDs.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.snapshots, sessionID)
	s.mu.Unlock()
	return nil
}

// List returns stored session IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Strings(ids)
	return ids, nil
}
