package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/domain"
)

// Store implements ports.PuzzleStore in memory.
// Safe for concurrent use; the puzzles themselves are not, see session.Manager.
type Store struct {
	data map[string]*strata.Puzzle
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*strata.Puzzle),
	}
}

// Save registers the puzzle.
func (s *Store) Save(ctx context.Context, sessionID string, p *strata.Puzzle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = p
	return nil
}

// Load retrieves the puzzle.
func (s *Store) Load(ctx context.Context, sessionID string) (*strata.Puzzle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return p, nil
}

// Delete removes the puzzle.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions in id order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}
