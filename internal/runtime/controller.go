package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/history"
	"github.com/aretw0/strata/pkg/view"
)

// DefaultDwell is how long a dragged piece must hover over one slot to drop itself.
const DefaultDwell = 600 * time.Millisecond

// Commit sources reported in domain.CommitEvent.
const (
	SourceAPI      = "api"
	SourcePointer  = "pointer"
	SourceDwell    = "dwell"
	SourceKeyboard = "keyboard"
	SourceControl  = "control"
)

// Status messages that are not produced by a placement operation.
const (
	MessageSelected = "Piece selected. Navigate to a slot and press Enter to place."
	MessageReset    = "Reset all pieces to the pool."
	MessageUndo     = "Undo performed."
	MessageRedo     = "Redo performed."
)

// Presenter receives the view model after every visible change.
type Presenter interface {
	Present(m view.Model)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(m view.Model)

// Present calls f.
func (f PresenterFunc) Present(m view.Model) { f(m) }

// Controller is one puzzle instance: it owns the placement, the history, the keyboard
// selection and the pointer gesture, and turns input into canonical operations.
//
// A Controller is not safe for concurrent use. Hosts deliver events one at a time.
type Controller struct {
	id       string
	registry *domain.Registry
	history  *history.Manager

	placement domain.Placement
	status    string
	recent    []domain.PieceID
	recentGen int
	selected  domain.PieceID
	focus     domain.Focus
	gesture   *gesture
	tokens    uint64

	dwell      time.Duration
	slotHeight int
	layout     int

	hooks     domain.LifecycleHooks
	presenter Presenter
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Controller.
type Option func(*Controller)

// WithID tags emitted events with a puzzle/session id.
func WithID(id string) Option {
	return func(c *Controller) {
		c.id = id
	}
}

// WithDwell sets the hover interval for auto-drop.
func WithDwell(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.dwell = d
		}
	}
}

// WithHistoryLimit caps the undo log.
func WithHistoryLimit(n int) Option {
	return func(c *Controller) {
		c.history = history.New(domain.NewPlacement(c.registry.SlotCount()), history.WithLimit(n))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithPresenter registers the callback that receives view updates.
func WithPresenter(p Presenter) Option {
	return func(c *Controller) {
		c.presenter = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController creates a controller with every piece in the pool and a single
// history entry for that empty start.
func NewController(reg *domain.Registry, opts ...Option) *Controller {
	c := &Controller{
		registry:  reg,
		placement: domain.NewPlacement(reg.SlotCount()),
		history:   history.New(domain.NewPlacement(reg.SlotCount())),
		dwell:     DefaultDwell,
		logger:    logging.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id != "" {
		c.logger = c.logger.With("puzzle", c.id)
	}
	return c
}

// ID returns the puzzle id given by WithID.
func (c *Controller) ID() string { return c.id }

// Registry returns the piece/slot catalogue.
func (c *Controller) Registry() *domain.Registry { return c.registry }

// Placement returns a copy of the current placement.
func (c *Controller) Placement() domain.Placement { return c.placement.Clone() }

// Status returns the current status message.
func (c *Controller) Status() string { return c.status }

// Dwell returns the auto-drop interval.
func (c *Controller) Dwell() time.Duration { return c.dwell }

// CanUndo reports whether undo would change anything.
func (c *Controller) CanUndo() bool { return c.history.CanUndo() }

// CanRedo reports whether redo would change anything.
func (c *Controller) CanRedo() bool { return c.history.CanRedo() }

// History returns a copy of the undo log.
func (c *Controller) History() []history.Entry { return c.history.Entries() }

// View builds the current view model.
func (c *Controller) View() view.Model {
	d := view.Decorations{
		Selected:   c.selected,
		Hovered:    view.NoSlot,
		Focus:      c.focus,
		Recent:     c.recent,
		Status:     c.status,
		CanUndo:    c.history.CanUndo(),
		CanRedo:    c.history.CanRedo(),
		SlotHeight: c.slotHeight,
		Layout:     c.layout,
	}
	if g := c.gesture; g != nil && !g.resolved {
		d.Dragging = g.piece
		d.Hovered = g.hovered
	}
	return view.Build(c.registry, c.placement, d)
}

// Drop places piece into target, choosing place, replace or swap from the current
// placement. Dropping a piece onto its own slot is a no-op.
func (c *Controller) Drop(ctx context.Context, piece domain.PieceID, target int) (domain.Outcome, error) {
	return c.drop(ctx, piece, target, SourceAPI)
}

func (c *Controller) drop(ctx context.Context, piece domain.PieceID, target int, source string) (domain.Outcome, error) {
	origin := domain.Pool
	if at, ok := c.placement.Locate(piece); ok {
		origin = at
	}

	out, err := domain.Resolve(c.registry, c.placement, domain.Move{Piece: piece, Origin: origin, Target: target})
	if err != nil {
		return domain.Outcome{}, err
	}
	if !out.Changed() {
		c.logger.Debug("drop ignored", "piece", piece, "slot", target, "source", source)
		return out, nil
	}

	c.commit(ctx, out, source)
	return out, nil
}

// commit applies an outcome, records it and notifies observers.
func (c *Controller) commit(ctx context.Context, out domain.Outcome, source string) {
	c.placement = out.Placement.Clone()
	c.status = out.Message
	c.markRecent(out.Moved)
	c.history.Commit(c.placement, out.Message)

	c.logger.Debug("placement committed",
		"kind", out.Kind,
		"source", source,
		"cursor", c.history.Cursor(),
	)
	if c.hooks.OnCommit != nil {
		c.hooks.OnCommit(ctx, &domain.CommitEvent{
			EventBase:   c.event(domain.EventCommit),
			Kind:        out.Kind,
			Description: out.Message,
			Placement:   c.placement.Clone(),
			Source:      source,
		})
	}
	c.present()
}

func (c *Controller) markRecent(ids []domain.PieceID) {
	c.recent = append([]domain.PieceID(nil), ids...)
	c.recentGen++
}

// RecentGeneration identifies the current recent-change highlight.
func (c *Controller) RecentGeneration() int { return c.recentGen }

// ClearRecent removes the recent-change highlight if gen is still current.
// Hosts call it when the highlight animation ends.
func (c *Controller) ClearRecent(gen int) bool {
	if gen != c.recentGen || len(c.recent) == 0 {
		return false
	}
	c.recent = nil
	c.present()
	return true
}

func (c *Controller) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: c.now(), Type: t, PuzzleID: c.id}
}

func (c *Controller) present() {
	if c.presenter != nil {
		c.presenter.Present(c.View())
	}
}
