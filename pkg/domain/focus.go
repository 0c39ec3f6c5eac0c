package domain

// FocusKind tells what kind of element holds keyboard focus.
type FocusKind string

const (
	FocusNone  FocusKind = ""
	FocusPiece FocusKind = "piece"
	FocusSlot  FocusKind = "slot"
)

// Focus is the element that currently receives select keys.
type Focus struct {
	Kind  FocusKind `json:"kind,omitempty"`
	Piece PieceID   `json:"piece,omitempty"`
	Slot  int       `json:"slot"`
}

// FocusOnPiece focuses a piece wherever it currently is.
func FocusOnPiece(id PieceID) Focus {
	return Focus{Kind: FocusPiece, Piece: id, Slot: Pool}
}

// FocusOnSlot focuses a slot.
func FocusOnSlot(index int) Focus {
	return Focus{Kind: FocusSlot, Slot: index}
}
