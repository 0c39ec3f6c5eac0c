// Package view turns a placement snapshot into a render-ready view model.
//
// Build is pure: the same registry, placement and decorations always produce the same
// Model, with no dependency on what was displayed before. Renderers (terminal, JSON)
// only draw the Model.
package view

import "github.com/aretw0/strata/pkg/domain"

// NoSlot marks the absence of a hovered slot.
const NoSlot = -1

// PieceView is one piece as displayed, in a slot or in the pool.
type PieceView struct {
	ID       domain.PieceID `json:"id"`
	Label    string         `json:"label"`
	Asset    string         `json:"asset,omitempty"`
	Selected bool           `json:"selected,omitempty"`
	Dragging bool           `json:"dragging,omitempty"`
	Recent   bool           `json:"recent,omitempty"`
	Focused  bool           `json:"focused,omitempty"`
}

// SlotView is one slot and its occupant.
type SlotView struct {
	Index   int        `json:"index"`
	Name    string     `json:"name"`
	Piece   *PieceView `json:"piece,omitempty"`
	Hovered bool       `json:"hovered,omitempty"`
	Focused bool       `json:"focused,omitempty"`
}

// Model is the complete displayed layout.
type Model struct {
	Slots      []SlotView  `json:"slots"`
	Pool       []PieceView `json:"pool"`
	Status     string      `json:"status"`
	CanUndo    bool        `json:"can_undo"`
	CanRedo    bool        `json:"can_redo"`
	SlotHeight int         `json:"slot_height"`
	// Layout increases whenever derived sizing must be recomputed (e.g. resize).
	Layout int `json:"layout"`
}

// Decorations is the transient interaction state layered on top of a placement.
type Decorations struct {
	Selected   domain.PieceID
	Dragging   domain.PieceID
	Hovered    int
	Focus      domain.Focus
	Recent     []domain.PieceID
	Status     string
	CanUndo    bool
	CanRedo    bool
	SlotHeight int
	Layout     int
}

// Build reconstructs the slot contents and the pool from p.
// Pool order follows the registry. Entries of p that are not registry pieces are skipped.
func Build(r *domain.Registry, p domain.Placement, d Decorations) Model {
	recent := make(map[domain.PieceID]bool, len(d.Recent))
	for _, id := range d.Recent {
		recent[id] = true
	}

	piece := func(id domain.PieceID) PieceView {
		def, _ := r.Piece(id)
		return PieceView{
			ID:       id,
			Label:    def.Label,
			Asset:    def.Asset,
			Selected: id == d.Selected,
			Dragging: id == d.Dragging,
			Recent:   recent[id],
			Focused:  d.Focus.Kind == domain.FocusPiece && d.Focus.Piece == id,
		}
	}

	m := Model{
		Slots:      make([]SlotView, r.SlotCount()),
		Status:     d.Status,
		CanUndo:    d.CanUndo,
		CanRedo:    d.CanRedo,
		SlotHeight: d.SlotHeight,
		Layout:     d.Layout,
	}

	placed := make(map[domain.PieceID]bool, len(p))
	for i, slot := range r.Slots() {
		sv := SlotView{
			Index:   i,
			Name:    slot.Name,
			Hovered: d.Hovered == i,
			Focused: d.Focus.Kind == domain.FocusSlot && d.Focus.Slot == i,
		}
		if i < len(p) && p[i] != domain.Empty && r.Has(p[i]) && !placed[p[i]] {
			pv := piece(p[i])
			sv.Piece = &pv
			placed[p[i]] = true
		}
		m.Slots[i] = sv
	}

	for _, def := range r.Pieces() {
		if !placed[def.ID] {
			m.Pool = append(m.Pool, piece(def.ID))
		}
	}
	if m.Pool == nil {
		m.Pool = []PieceView{}
	}
	return m
}

// Placement reads the slot contents back out of a model.
func (m Model) Placement() domain.Placement {
	p := domain.NewPlacement(len(m.Slots))
	for i, s := range m.Slots {
		if s.Piece != nil {
			p[i] = s.Piece.ID
		}
	}
	return p
}

// Assets lists the asset of every displayed piece, slots first then pool.
func (m Model) Assets() []string {
	var out []string
	for _, s := range m.Slots {
		if s.Piece != nil && s.Piece.Asset != "" {
			out = append(out, s.Piece.Asset)
		}
	}
	for _, p := range m.Pool {
		if p.Asset != "" {
			out = append(out, p.Asset)
		}
	}
	return out
}
