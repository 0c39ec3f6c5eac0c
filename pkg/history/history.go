// Package history keeps the linear undo/redo log of placement snapshots.
package history

import "github.com/aretw0/strata/pkg/domain"

// Entry is one recorded placement snapshot and the description of how it was reached.
type Entry struct {
	Snapshot    domain.Placement `json:"snapshot"`
	Description string           `json:"description"`
}

func (e Entry) clone() Entry {
	return Entry{Snapshot: e.Snapshot.Clone(), Description: e.Description}
}

// Manager owns the entries and the cursor. The cursor always points at a valid entry.
// Committing from a non-tip cursor discards the redo path.
type Manager struct {
	entries []Entry
	cursor  int
	limit   int
}

// Option configures the Manager.
type Option func(*Manager)

// WithLimit caps the number of retained entries; the oldest are evicted first.
// Values below 2 disable the cap.
func WithLimit(n int) Option {
	return func(m *Manager) {
		if n >= 2 {
			m.limit = n
		}
	}
}

// New creates a Manager seeded with the starting snapshot.
func New(initial domain.Placement, opts ...Option) *Manager {
	m := &Manager{}
	for _, opt := range opts {
		opt(m)
	}
	m.Reset(initial, "")
	return m
}

// Reset discards every entry and seeds a new starting snapshot.
func (m *Manager) Reset(initial domain.Placement, description string) {
	m.entries = []Entry{{Snapshot: initial.Clone(), Description: description}}
	m.cursor = 0
}

// Commit truncates entries after the cursor, appends the snapshot and moves the cursor to it.
func (m *Manager) Commit(snapshot domain.Placement, description string) {
	m.entries = append(m.entries[:m.cursor+1], Entry{Snapshot: snapshot.Clone(), Description: description})
	m.cursor = len(m.entries) - 1

	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append([]Entry(nil), m.entries[drop:]...)
		m.cursor -= drop
	}
}

// Undo steps back one entry and returns the entry now at the cursor.
func (m *Manager) Undo() (Entry, bool) {
	if !m.CanUndo() {
		return Entry{}, false
	}
	m.cursor--
	return m.entries[m.cursor].clone(), true
}

// Redo steps forward one entry and returns the entry now at the cursor.
func (m *Manager) Redo() (Entry, bool) {
	if !m.CanRedo() {
		return Entry{}, false
	}
	m.cursor++
	return m.entries[m.cursor].clone(), true
}

// CanUndo reports whether an earlier entry exists.
func (m *Manager) CanUndo() bool {
	return m.cursor > 0
}

// CanRedo reports whether a later entry exists.
func (m *Manager) CanRedo() bool {
	return m.cursor < len(m.entries)-1
}

// Current returns the entry at the cursor.
func (m *Manager) Current() Entry {
	return m.entries[m.cursor].clone()
}

// Len is the number of retained entries.
func (m *Manager) Len() int {
	return len(m.entries)
}

// Cursor is the index of the current entry.
func (m *Manager) Cursor() int {
	return m.cursor
}

// Entries returns a copy of the log, oldest first.
func (m *Manager) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.clone()
	}
	return out
}
