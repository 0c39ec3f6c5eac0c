package runtime

import (
	"context"

	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/evaluator"
	"github.com/aretw0/strata/pkg/history"
)

// Undo restores the previous history entry. At the earliest entry it does nothing.
func (c *Controller) Undo(ctx context.Context) (history.Entry, bool) {
	entry, ok := c.history.Undo()
	if !ok {
		return history.Entry{}, false
	}
	c.restore(ctx, domain.EventUndo, entry, MessageUndo)
	return entry, true
}

// Redo restores the next history entry. At the latest entry it does nothing.
func (c *Controller) Redo(ctx context.Context) (history.Entry, bool) {
	entry, ok := c.history.Redo()
	if !ok {
		return history.Entry{}, false
	}
	c.restore(ctx, domain.EventRedo, entry, MessageRedo)
	return entry, true
}

// restore replaces the placement with a history snapshot. The placement is derived from
// the snapshot; history itself is not modified.
func (c *Controller) restore(ctx context.Context, t domain.EventType, entry history.Entry, fallback string) {
	prev := c.placement
	c.placement = entry.Snapshot.Clone()
	c.markRecent(prev.Changed(c.placement))

	c.status = entry.Description
	if c.status == "" {
		c.status = fallback
	}

	c.logger.Debug("history restored", "event", t, "cursor", c.history.Cursor())
	if c.hooks.OnHistory != nil {
		c.hooks.OnHistory(ctx, &domain.HistoryEvent{
			EventBase:   c.event(t),
			Cursor:      c.history.Cursor(),
			Description: entry.Description,
		})
	}
	c.present()
}

// Reset returns every piece to the pool, clears the selection and any gesture, and
// records the reset as a new history entry.
func (c *Controller) Reset(ctx context.Context) domain.Outcome {
	c.gesture = nil
	c.selected = domain.Empty

	out := domain.Outcome{
		Kind:      domain.OpReset,
		Message:   MessageReset,
		Moved:     c.placement.Placed(),
		Placement: domain.NewPlacement(c.registry.SlotCount()),
	}
	c.commit(ctx, out, SourceControl)
	return out
}

// Check evaluates the placement and reports the verdict in the status message.
func (c *Controller) Check(ctx context.Context) evaluator.Result {
	res := evaluator.Check(c.placement, c.registry.Solution())
	c.status = res.Message

	c.logger.Debug("placement checked", "verdict", res.Verdict)
	if c.hooks.OnCheck != nil {
		c.hooks.OnCheck(ctx, &domain.CheckEvent{
			EventBase: c.event(domain.EventCheck),
			Verdict:   string(res.Verdict),
		})
	}
	c.present()
	return res
}

// Resize marks derived sizing as stale. The placement is untouched; the returned
// layout generation tells hosts which sizing pass is current.
func (c *Controller) Resize() int {
	c.layout++
	c.present()
	return c.layout
}

// Layout returns the current layout generation.
func (c *Controller) Layout() int { return c.layout }

// SetSlotHeight stores the result of a sizing pass for layout generation gen.
// Results for an outdated generation are dropped.
func (c *Controller) SetSlotHeight(gen, height int) bool {
	if gen != c.layout || height == c.slotHeight {
		return false
	}
	c.slotHeight = height
	c.present()
	return true
}
