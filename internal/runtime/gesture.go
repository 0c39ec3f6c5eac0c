package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/view"
)

// gesture is one pointer drag from press to release or cancel.
type gesture struct {
	piece   domain.PieceID
	origin  int
	hovered int
	// token identifies the armed dwell timer; 0 when none is armed.
	token uint64
	// resolved is set once a drop (release or dwell) has been performed.
	resolved bool
}

// DwellTicket asks the host to call DwellElapsed(Token) after After has passed.
// A zero Token means no timer needs to be armed.
type DwellTicket struct {
	Token uint64
	After time.Duration
	Slot  int
}

// Armed reports whether the host must schedule the ticket.
func (t DwellTicket) Armed() bool { return t.Token != 0 }

// PointerDown begins a drag of piece. Any gesture in progress is cancelled first.
func (c *Controller) PointerDown(ctx context.Context, piece domain.PieceID) error {
	if !c.registry.Has(piece) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPiece, piece)
	}
	if c.gesture != nil {
		c.PointerCancel(ctx)
	}

	origin := domain.Pool
	if at, ok := c.placement.Locate(piece); ok {
		origin = at
	}
	c.gesture = &gesture{piece: piece, origin: origin, hovered: view.NoSlot}
	c.logger.Debug("gesture started", "piece", piece, "origin", origin)
	c.present()
	return nil
}

// Dragging returns the piece of the active gesture.
func (c *Controller) Dragging() (domain.PieceID, bool) {
	if c.gesture == nil {
		return domain.Empty, false
	}
	return c.gesture.piece, true
}

// PointerMove reports the slot under the pointer (view.NoSlot when over none).
// Entering a slot arms a dwell timer; leaving it invalidates the timer. Moving within
// the same slot keeps the running timer.
func (c *Controller) PointerMove(slot int) DwellTicket {
	g := c.gesture
	if g == nil || g.resolved {
		return DwellTicket{}
	}
	if !c.registry.ValidSlot(slot) {
		slot = view.NoSlot
	}
	if slot == g.hovered {
		return DwellTicket{}
	}

	g.hovered = slot
	g.token = 0
	var ticket DwellTicket
	if slot != view.NoSlot {
		c.tokens++
		g.token = c.tokens
		ticket = DwellTicket{Token: g.token, After: c.dwell, Slot: slot}
	}
	c.present()
	return ticket
}

// DwellElapsed performs the auto-drop for token. Stale tokens (the pointer left the
// slot, the gesture ended, or a drop already happened) are ignored and report false.
// A dwell over the piece's own slot drops nothing and the gesture stays live.
func (c *Controller) DwellElapsed(ctx context.Context, token uint64) (domain.Outcome, bool, error) {
	g := c.gesture
	if g == nil || g.resolved || token == 0 || g.token != token || g.hovered == view.NoSlot {
		return domain.Outcome{}, false, nil
	}
	g.token = 0
	// Resting on the origin slot keeps the drag alive.
	if g.hovered == g.origin {
		return domain.Outcome{Kind: domain.OpNone}, false, nil
	}
	g.resolved = true

	out, err := c.drop(ctx, g.piece, g.hovered, SourceDwell)
	if err != nil {
		return domain.Outcome{}, false, err
	}
	if !out.Changed() {
		c.present()
	}
	return out, true, nil
}

// PointerUp ends the gesture. When released over a slot and no auto-drop already
// happened, the piece is dropped there. Released over nothing, nothing changes.
func (c *Controller) PointerUp(ctx context.Context, slot int) (domain.Outcome, bool, error) {
	g := c.gesture
	if g == nil {
		return domain.Outcome{}, false, domain.ErrNoGesture
	}
	c.gesture = nil

	if g.resolved || !c.registry.ValidSlot(slot) {
		c.present()
		return domain.Outcome{}, false, nil
	}

	out, err := c.drop(ctx, g.piece, slot, SourcePointer)
	if err != nil {
		c.present()
		return domain.Outcome{}, false, err
	}
	if !out.Changed() {
		c.present()
	}
	return out, true, nil
}

// PointerCancel abandons the gesture without touching the placement.
func (c *Controller) PointerCancel(ctx context.Context) {
	g := c.gesture
	if g == nil {
		return
	}
	c.gesture = nil
	c.logger.Debug("gesture cancelled", "piece", g.piece)
	if c.hooks.OnCancel != nil {
		base := c.event(domain.EventCancel)
		c.hooks.OnCancel(ctx, &base)
	}
	c.present()
}
