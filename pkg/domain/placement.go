package domain

import "fmt"

// Placement maps each slot index to the piece it holds, or Empty.
// It is a plain container: it does not reject duplicate writes. Keeping every piece in
// at most one slot is the caller's job; IsValidAssignment exposes the check.
type Placement []PieceID

// NewPlacement returns an all-empty placement for n slots.
func NewPlacement(n int) Placement {
	return make(Placement, n)
}

// Get returns the occupant of slot.
func (p Placement) Get(slot int) (PieceID, error) {
	if slot < 0 || slot >= len(p) {
		return Empty, fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	return p[slot], nil
}

// Set writes id (or Empty) into slot.
func (p Placement) Set(slot int, id PieceID) error {
	if slot < 0 || slot >= len(p) {
		return fmt.Errorf("%w: %d", ErrSlotOutOfRange, slot)
	}
	p[slot] = id
	return nil
}

// AllSlotsFilled reports whether no slot is empty.
func (p Placement) AllSlotsFilled() bool {
	for _, id := range p {
		if id == Empty {
			return false
		}
	}
	return true
}

// IsValidAssignment reports whether no non-empty piece id appears in two slots.
func (p Placement) IsValidAssignment() bool {
	seen := make(map[PieceID]struct{}, len(p))
	for _, id := range p {
		if id == Empty {
			continue
		}
		if _, dup := seen[id]; dup {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// Locate returns the slot holding id.
func (p Placement) Locate(id PieceID) (int, bool) {
	if id == Empty {
		return -1, false
	}
	for i, v := range p {
		if v == id {
			return i, true
		}
	}
	return -1, false
}

// Placed returns the non-empty entries in slot order.
func (p Placement) Placed() []PieceID {
	out := make([]PieceID, 0, len(p))
	for _, id := range p {
		if id != Empty {
			out = append(out, id)
		}
	}
	return out
}

// Pool returns the registry pieces that are in no slot, in registry order.
func (p Placement) Pool(r *Registry) []PieceID {
	placed := make(map[PieceID]struct{}, len(p))
	for _, id := range p {
		if id != Empty {
			placed[id] = struct{}{}
		}
	}
	pool := make([]PieceID, 0, len(r.pieces)-len(placed))
	for _, piece := range r.pieces {
		if _, ok := placed[piece.ID]; !ok {
			pool = append(pool, piece.ID)
		}
	}
	return pool
}

// Clone returns an independent copy.
func (p Placement) Clone() Placement {
	return append(Placement(nil), p...)
}

// Equal reports whether both placements hold the same piece in every slot.
func (p Placement) Equal(other Placement) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Changed returns the pieces whose slot differs between p and next: pieces that moved
// between slots, entered a slot, or went back to the pool. Order follows next, then p.
func (p Placement) Changed(next Placement) []PieceID {
	var out []PieceID
	seen := make(map[PieceID]bool)
	add := func(id PieceID) {
		if id != Empty && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for i := 0; i < len(p) || i < len(next); i++ {
		var before, after PieceID
		if i < len(p) {
			before = p[i]
		}
		if i < len(next) {
			after = next[i]
		}
		if before != after {
			add(after)
		}
	}
	for i := range p {
		if i >= len(next) || p[i] != next[i] {
			add(p[i])
		}
	}
	return out
}
