package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/strata/pkg/domain"
)

// SelectPiece toggles the keyboard selection. Selecting another piece replaces the
// current selection; selecting the selected piece clears it.
func (c *Controller) SelectPiece(piece domain.PieceID) error {
	if !c.registry.Has(piece) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPiece, piece)
	}

	if c.selected == piece {
		c.selected = domain.Empty
		c.status = ""
		c.present()
		return nil
	}

	c.selected = piece
	c.status = MessageSelected
	c.focus = domain.FocusOnSlot(0)
	c.present()
	return nil
}

// Selected returns the keyboard-selected piece.
func (c *Controller) Selected() (domain.PieceID, bool) {
	return c.selected, c.selected != domain.Empty
}

// SelectSlot is the select key on a slot. With a piece selected it drops that piece
// into slot, clears the selection and focuses the moved piece. Without a selection it
// selects the slot's occupant, if any.
func (c *Controller) SelectSlot(ctx context.Context, slot int) (domain.Outcome, bool, error) {
	if !c.registry.ValidSlot(slot) {
		return domain.Outcome{}, false, fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, slot)
	}

	piece := c.selected
	if piece == domain.Empty {
		if occupant := c.placement[slot]; occupant != domain.Empty {
			return domain.Outcome{}, false, c.SelectPiece(occupant)
		}
		return domain.Outcome{}, false, nil
	}

	out, err := c.drop(ctx, piece, slot, SourceKeyboard)
	if err != nil {
		return domain.Outcome{}, false, err
	}
	c.selected = domain.Empty
	c.focus = domain.FocusOnPiece(piece)
	c.present()
	return out, true, nil
}

// Focus returns the element holding keyboard focus.
func (c *Controller) Focus() domain.Focus { return c.focus }

// FocusPiece moves keyboard focus to a piece.
func (c *Controller) FocusPiece(piece domain.PieceID) error {
	if !c.registry.Has(piece) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPiece, piece)
	}
	c.focus = domain.FocusOnPiece(piece)
	c.present()
	return nil
}

// FocusSlot moves keyboard focus to a slot.
func (c *Controller) FocusSlot(slot int) error {
	if !c.registry.ValidSlot(slot) {
		return fmt.Errorf("%w: %d", domain.ErrSlotOutOfRange, slot)
	}
	c.focus = domain.FocusOnSlot(slot)
	c.present()
	return nil
}

// KeyEvent is a raw key press with its modifiers.
type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl,omitempty"`
	Meta  bool   `json:"meta,omitempty"`
	Shift bool   `json:"shift,omitempty"`
}

// Shortcut handles the global undo (modifier+Z) and redo (modifier+shift+Z)
// combinations. Ctrl and Meta both count as the modifier. It reports whether the key
// was a shortcut, even when there was nothing to undo or redo.
func (c *Controller) Shortcut(ctx context.Context, ev KeyEvent) bool {
	if !(ev.Ctrl || ev.Meta) || !strings.EqualFold(ev.Key, "z") {
		return false
	}
	if ev.Shift {
		c.Redo(ctx)
	} else {
		c.Undo(ctx)
	}
	return true
}
