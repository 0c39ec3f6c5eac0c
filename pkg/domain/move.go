package domain

import "fmt"

// Pool is the origin index of a piece that is in no slot.
const Pool = -1

// OpKind names the canonical placement operations.
type OpKind string

const (
	OpNone    OpKind = "none"    // Dropped onto its own slot
	OpPlace   OpKind = "place"   // Into an empty slot
	OpReplace OpKind = "replace" // From the pool into an occupied slot; occupant returns to the pool
	OpSwap    OpKind = "swap"    // Between two slots
	OpReset   OpKind = "reset"   // Every piece back to the pool
)

// Move is a request to put Piece into Target, coming from Origin (a slot index or Pool).
type Move struct {
	Piece  PieceID
	Origin int
	Target int
}

// Outcome describes the effect of a Move.
type Outcome struct {
	Kind OpKind `json:"kind"`
	// Message is the human-readable description; empty for OpNone.
	Message string `json:"message,omitempty"`
	// Moved lists every piece whose position changed.
	Moved []PieceID `json:"moved,omitempty"`
	// Placement is the resulting state (equal to the input for OpNone).
	Placement Placement `json:"placement"`
}

// Changed reports whether the outcome mutated the placement.
func (o Outcome) Changed() bool {
	return o.Kind != OpNone
}

// Resolve computes the result of applying m to p without mutating p.
func Resolve(r *Registry, p Placement, m Move) (Outcome, error) {
	if !r.Has(m.Piece) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrUnknownPiece, m.Piece)
	}
	if m.Target < 0 || m.Target >= len(p) {
		return Outcome{}, fmt.Errorf("%w: target %d", ErrSlotOutOfRange, m.Target)
	}
	if m.Origin != Pool && (m.Origin < 0 || m.Origin >= len(p)) {
		return Outcome{}, fmt.Errorf("%w: origin %d", ErrSlotOutOfRange, m.Origin)
	}

	if at, placed := p.Locate(m.Piece); (m.Origin == Pool && placed) || (m.Origin != Pool && at != m.Origin) {
		return Outcome{}, fmt.Errorf("%w: %q is not at origin %d", ErrStaleOrigin, m.Piece, m.Origin)
	}

	next := p.Clone()
	occupant := p[m.Target]
	piece := r.Label(m.Piece)
	target := r.SlotName(m.Target)

	switch {
	case occupant == m.Piece:
		return Outcome{Kind: OpNone, Placement: next}, nil

	case occupant == Empty:
		if m.Origin != Pool {
			next[m.Origin] = Empty
		}
		next[m.Target] = m.Piece
		return Outcome{
			Kind:      OpPlace,
			Message:   fmt.Sprintf("Placed %s into %s.", piece, target),
			Moved:     []PieceID{m.Piece},
			Placement: next,
		}, nil

	case m.Origin == Pool:
		next[m.Target] = m.Piece
		return Outcome{
			Kind:      OpReplace,
			Message:   fmt.Sprintf("Moved %s back to the pool and placed %s into %s.", r.Label(occupant), piece, target),
			Moved:     []PieceID{m.Piece, occupant},
			Placement: next,
		}, nil

	default:
		next[m.Target] = m.Piece
		next[m.Origin] = occupant
		return Outcome{
			Kind: OpSwap,
			Message: fmt.Sprintf("Swapped %s (to %s) with %s (to %s).",
				piece, target, r.Label(occupant), r.SlotName(m.Origin)),
			Moved:     []PieceID{m.Piece, occupant},
			Placement: next,
		}, nil
	}
}
