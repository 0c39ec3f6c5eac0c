package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// MockStore is a minimal map-backed PuzzleStore used to check the contract suite itself.
type MockStore struct {
	data map[string]*strata.Puzzle
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string]*strata.Puzzle)}
}

func (m *MockStore) Save(ctx context.Context, sessionID string, p *strata.Puzzle) error {
	m.data[sessionID] = p
	return nil
}

func (m *MockStore) Load(ctx context.Context, sessionID string) (*strata.Puzzle, error) {
	p, ok := m.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return p, nil
}

func (m *MockStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.data, sessionID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	return ids, nil
}

var _ ports.PuzzleStore = (*MockStore)(nil)

func TestPuzzleStore_Contract(t *testing.T) {
	ports.RunPuzzleStoreContract(t, NewMockStore())
}
