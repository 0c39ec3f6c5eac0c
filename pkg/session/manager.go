package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Factory builds the puzzle for a new session.
type Factory func(sessionID string) (*strata.Puzzle, error)

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store   ports.PuzzleStore
	factory Factory

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	newID  func() string
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDGenerator overrides how session ids are minted (default: random UUIDs).
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// NewManager creates a Session Manager over store. factory builds the puzzle of each new
// session; when nil the embedded puzzle is used.
func NewManager(store ports.PuzzleStore, factory Factory, opts ...Option) *Manager {
	if factory == nil {
		factory = func(id string) (*strata.Puzzle, error) {
			return strata.New(strata.WithID(id))
		}
	}
	m := &Manager{
		store:   store,
		factory: factory,
		locks:   make(map[string]*lockEntry),
		newID:   uuid.NewString,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Create starts a new session with a fresh id using the manager's factory.
func (m *Manager) Create(ctx context.Context) (string, *strata.Puzzle, error) {
	return m.CreateWith(ctx, m.factory)
}

// CreateWith starts a new session whose puzzle is built by factory.
func (m *Manager) CreateWith(ctx context.Context, factory Factory) (string, *strata.Puzzle, error) {
	id := m.newID()
	var p *strata.Puzzle
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, id); err == nil {
			return fmt.Errorf("session %s already exists", id)
		} else if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		var err error
		p, err = factory(id)
		if err != nil {
			return fmt.Errorf("failed to create puzzle: %w", err)
		}
		if err := m.store.Save(ctx, id, p); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	m.logger.Info("session created", "session_id", id)
	return id, p, nil
}

// Load retrieves an existing session from the store.
// The returned puzzle must only be used inside Do.
func (m *Manager) Load(ctx context.Context, sessionID string) (*strata.Puzzle, error) {
	var p *strata.Puzzle
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		p, err = m.store.Load(ctx, sessionID)
		return err
	})
	return p, err
}

// Do runs fn on the session's puzzle while holding the session lock.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, *strata.Puzzle) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		p, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, p)
	})
}

// Delete removes the session. Unknown sessions report domain.ErrSessionNotFound.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, sessionID); err != nil {
			return err
		}
		return m.store.Delete(ctx, sessionID)
	})
	if err == nil {
		m.logger.Info("session deleted", "session_id", sessionID)
	}
	return err
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Count returns the number of live sessions, or 0 if the store cannot list them.
func (m *Manager) Count() int {
	ids, err := m.store.List(context.Background())
	if err != nil {
		m.logger.Warn("failed to count sessions", "err", err)
		return 0
	}
	return len(ids)
}

// Store returns the underlying puzzle store.
func (m *Manager) Store() ports.PuzzleStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
