package domain

import (
	"fmt"
	"strconv"
)

// PieceID uniquely identifies a piece within a registry.
type PieceID string

// Empty marks a slot without a piece.
const Empty PieceID = ""

// Piece is one sortable unit. Pieces are defined at startup and never change.
type Piece struct {
	ID    PieceID `json:"id" yaml:"id"`
	Label string  `json:"label" yaml:"label"`
	Asset string  `json:"asset,omitempty" yaml:"asset"`
}

// Slot is one ordered target position.
type Slot struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Registry is the immutable catalogue of a puzzle: its pieces, its slots and the
// correct bottom-to-top ordering.
type Registry struct {
	pieces   []Piece
	index    map[PieceID]int
	slots    []Slot
	solution []PieceID
}

// NewRegistry validates the catalogue and builds a Registry.
// slotNames fixes the slot count; an empty name falls back to "layer {index}".
func NewRegistry(pieces []Piece, slotNames []string, solution []PieceID) (*Registry, error) {
	if len(slotNames) == 0 {
		return nil, fmt.Errorf("%w: at least one slot is required", ErrInvalidRegistry)
	}
	if len(pieces) < len(slotNames) {
		return nil, fmt.Errorf("%w: %d slots but only %d pieces", ErrInvalidRegistry, len(slotNames), len(pieces))
	}

	r := &Registry{
		pieces: make([]Piece, len(pieces)),
		index:  make(map[PieceID]int, len(pieces)),
		slots:  make([]Slot, len(slotNames)),
	}
	for i, p := range pieces {
		if p.ID == Empty {
			return nil, fmt.Errorf("%w: piece %d has no id", ErrInvalidRegistry, i)
		}
		if _, dup := r.index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate piece id %q", ErrInvalidRegistry, p.ID)
		}
		if p.Label == "" {
			p.Label = string(p.ID)
		}
		r.pieces[i] = p
		r.index[p.ID] = i
	}
	for i, name := range slotNames {
		if name == "" {
			name = "layer " + strconv.Itoa(i)
		}
		r.slots[i] = Slot{Index: i, Name: name}
	}

	if len(solution) != len(slotNames) {
		return nil, fmt.Errorf("%w: solution has %d entries for %d slots", ErrInvalidRegistry, len(solution), len(slotNames))
	}
	seen := make(map[PieceID]bool, len(solution))
	for _, id := range solution {
		if _, ok := r.index[id]; !ok {
			return nil, fmt.Errorf("%w: solution references unknown piece %q", ErrInvalidRegistry, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: solution repeats piece %q", ErrInvalidRegistry, id)
		}
		seen[id] = true
	}
	r.solution = append([]PieceID(nil), solution...)

	return r, nil
}

// Pieces returns the pieces in registry order.
func (r *Registry) Pieces() []Piece {
	return append([]Piece(nil), r.pieces...)
}

// Slots returns the slots in index order.
func (r *Registry) Slots() []Slot {
	return append([]Slot(nil), r.slots...)
}

// SlotCount is N, the number of slots.
func (r *Registry) SlotCount() int {
	return len(r.slots)
}

// Solution returns the correct ordering, one piece per slot.
func (r *Registry) Solution() []PieceID {
	return append([]PieceID(nil), r.solution...)
}

// Piece looks up a piece by id.
func (r *Registry) Piece(id PieceID) (Piece, bool) {
	i, ok := r.index[id]
	if !ok {
		return Piece{}, false
	}
	return r.pieces[i], true
}

// Has reports whether id belongs to the registry.
func (r *Registry) Has(id PieceID) bool {
	_, ok := r.index[id]
	return ok
}

// Label returns the display label of a piece, or the raw id when unknown.
func (r *Registry) Label(id PieceID) string {
	if p, ok := r.Piece(id); ok {
		return p.Label
	}
	return string(id)
}

// SlotName returns the human-readable name of a slot.
func (r *Registry) SlotName(index int) string {
	if index < 0 || index >= len(r.slots) {
		return "layer " + strconv.Itoa(index)
	}
	return r.slots[index].Name
}

// ValidSlot reports whether index addresses a slot.
func (r *Registry) ValidSlot(index int) bool {
	return index >= 0 && index < len(r.slots)
}
