package strata

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/strata/internal/config"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/internal/runtime"
	"github.com/aretw0/strata/pkg/adapters/assets"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/evaluator"
	"github.com/aretw0/strata/pkg/history"
	"github.com/aretw0/strata/pkg/view"
)

// Re-exported runtime types so hosts depend only on this package.
type (
	Presenter     = runtime.Presenter
	PresenterFunc = runtime.PresenterFunc
	DwellTicket   = runtime.DwellTicket
	KeyEvent      = runtime.KeyEvent
)

// Puzzle is the high-level entry point for the Strata library.
// It wraps one interaction controller together with its configuration and sizing.
//
// A Puzzle is not safe for concurrent use; see pkg/session for shared hosting.
type Puzzle struct {
	ctrl   *runtime.Controller
	config *config.Config
	sizer  *view.Sizer
	logger *slog.Logger
	Name   string

	id         string
	configPath string
	measurer   view.Measurer
	hooks      domain.LifecycleHooks
	presenter  Presenter
	clock      func() time.Time
}

// Option defines a functional option for configuring the Puzzle.
type Option func(*Puzzle)

// WithConfig uses an already parsed configuration.
func WithConfig(cfg *config.Config) Option {
	return func(p *Puzzle) {
		p.config = cfg
	}
}

// WithConfigFile loads the configuration from a YAML file.
func WithConfigFile(path string) Option {
	return func(p *Puzzle) {
		p.configPath = path
	}
}

// WithID tags the puzzle's events and log lines with a session id.
func WithID(id string) Option {
	return func(p *Puzzle) {
		p.id = id
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Puzzle) {
		p.hooks = hooks
	}
}

// WithPresenter registers the receiver of view updates.
func WithPresenter(presenter Presenter) Option {
	return func(p *Puzzle) {
		p.presenter = presenter
	}
}

// WithMeasurer overrides how piece assets are measured for slot sizing.
func WithMeasurer(m view.Measurer) Option {
	return func(p *Puzzle) {
		p.measurer = m
	}
}

// WithLogger sets a custom structured logger for the puzzle.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Puzzle) {
		p.logger = logger
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Puzzle) {
		p.clock = now
	}
}

// New initializes a Puzzle.
// Without WithConfig or WithConfigFile the embedded fossil puzzle is used.
func New(opts ...Option) (*Puzzle, error) {
	p := &Puzzle{}
	for _, opt := range opts {
		opt(p)
	}

	if p.config == nil {
		var err error
		if p.configPath != "" {
			p.config, err = config.Load(p.configPath)
		} else {
			p.config, err = config.Default()
		}
		if err != nil {
			return nil, err
		}
	}

	reg, err := p.config.Registry()
	if err != nil {
		return nil, err
	}

	p.Name = p.config.Name
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.Name != "" {
		p.logger = p.logger.With("config", p.Name)
	}

	if p.measurer == nil && p.config.AssetsDir != "" {
		p.measurer = assets.New(os.DirFS(p.config.AssetsDir))
	}
	if p.measurer != nil {
		p.sizer = view.NewSizer(p.measurer,
			view.WithTimeout(p.config.Sizing.Timeout),
			view.WithPadding(p.config.Sizing.Padding),
			view.WithLogger(p.logger),
		)
	}

	p.ctrl = runtime.NewController(reg,
		runtime.WithID(p.id),
		runtime.WithDwell(p.config.Dwell),
		runtime.WithHistoryLimit(p.config.HistoryLimit),
		runtime.WithLifecycleHooks(p.hooks),
		runtime.WithPresenter(p.presenter),
		runtime.WithLogger(p.logger),
		runtime.WithClock(p.clock),
	)
	return p, nil
}

// ID returns the session id given by WithID.
func (p *Puzzle) ID() string { return p.id }

// Config returns the configuration the puzzle was built from.
func (p *Puzzle) Config() *config.Config { return p.config }

// Registry returns the piece and slot catalogue.
func (p *Puzzle) Registry() *domain.Registry { return p.ctrl.Registry() }

// View returns the current view model.
func (p *Puzzle) View() view.Model { return p.ctrl.View() }

// Placement returns a copy of the placement state.
func (p *Puzzle) Placement() domain.Placement { return p.ctrl.Placement() }

// Status returns the current status message.
func (p *Puzzle) Status() string { return p.ctrl.Status() }

// Dwell returns the auto-drop interval.
func (p *Puzzle) Dwell() time.Duration { return p.ctrl.Dwell() }

// History returns a copy of the undo log.
func (p *Puzzle) History() []history.Entry { return p.ctrl.History() }

// Drop moves piece into slot using place, replace or swap semantics.
func (p *Puzzle) Drop(ctx context.Context, piece domain.PieceID, slot int) (domain.Outcome, error) {
	return p.ctrl.Drop(ctx, piece, slot)
}

// PointerDown starts dragging piece.
func (p *Puzzle) PointerDown(ctx context.Context, piece domain.PieceID) error {
	return p.ctrl.PointerDown(ctx, piece)
}

// PointerMove reports the slot under the pointer and returns the dwell timer to arm.
func (p *Puzzle) PointerMove(slot int) DwellTicket { return p.ctrl.PointerMove(slot) }

// PointerUp releases the dragged piece over slot.
func (p *Puzzle) PointerUp(ctx context.Context, slot int) (domain.Outcome, bool, error) {
	return p.ctrl.PointerUp(ctx, slot)
}

// PointerCancel abandons the drag.
func (p *Puzzle) PointerCancel(ctx context.Context) { p.ctrl.PointerCancel(ctx) }

// Dragging returns the piece being dragged, if any.
func (p *Puzzle) Dragging() (domain.PieceID, bool) { return p.ctrl.Dragging() }

// DwellElapsed fires the dwell timer identified by token.
func (p *Puzzle) DwellElapsed(ctx context.Context, token uint64) (domain.Outcome, bool, error) {
	return p.ctrl.DwellElapsed(ctx, token)
}

// SelectPiece toggles the keyboard selection.
func (p *Puzzle) SelectPiece(piece domain.PieceID) error { return p.ctrl.SelectPiece(piece) }

// Selected returns the keyboard-selected piece.
func (p *Puzzle) Selected() (domain.PieceID, bool) { return p.ctrl.Selected() }

// SelectSlot is the select key pressed on slot.
func (p *Puzzle) SelectSlot(ctx context.Context, slot int) (domain.Outcome, bool, error) {
	return p.ctrl.SelectSlot(ctx, slot)
}

// Focus returns the focused element.
func (p *Puzzle) Focus() domain.Focus { return p.ctrl.Focus() }

// FocusPiece moves keyboard focus to piece.
func (p *Puzzle) FocusPiece(piece domain.PieceID) error { return p.ctrl.FocusPiece(piece) }

// FocusSlot moves keyboard focus to slot.
func (p *Puzzle) FocusSlot(slot int) error { return p.ctrl.FocusSlot(slot) }

// Shortcut handles the undo and redo key combinations.
func (p *Puzzle) Shortcut(ctx context.Context, ev KeyEvent) bool { return p.ctrl.Shortcut(ctx, ev) }

// Undo steps back one history entry.
func (p *Puzzle) Undo(ctx context.Context) (history.Entry, bool) { return p.ctrl.Undo(ctx) }

// Redo steps forward one history entry.
func (p *Puzzle) Redo(ctx context.Context) (history.Entry, bool) { return p.ctrl.Redo(ctx) }

// Reset returns every piece to the pool.
func (p *Puzzle) Reset(ctx context.Context) domain.Outcome { return p.ctrl.Reset(ctx) }

// Check evaluates the placement.
func (p *Puzzle) Check(ctx context.Context) evaluator.Result { return p.ctrl.Check(ctx) }

// ClearRecent ends the recent-change highlight for generation gen.
func (p *Puzzle) ClearRecent(gen int) bool { return p.ctrl.ClearRecent(gen) }

// RecentGeneration identifies the current recent-change highlight.
func (p *Puzzle) RecentGeneration() int { return p.ctrl.RecentGeneration() }

// Resize marks sizing as stale and returns the new layout generation.
// Hosts that size asynchronously pass the generation to ApplySlotHeight.
func (p *Puzzle) Resize() int { return p.ctrl.Resize() }

// MeasureSlots measures every piece asset and returns the slot height, and whether all
// assets were measured. Without a measurer it returns 0.
func (p *Puzzle) MeasureSlots(ctx context.Context) (int, bool) {
	if p.sizer == nil {
		return 0, true
	}
	var list []string
	for _, piece := range p.ctrl.Registry().Pieces() {
		if piece.Asset != "" {
			list = append(list, piece.Asset)
		}
	}
	return p.sizer.SlotHeight(ctx, list)
}

// ApplySlotHeight stores a sizing result for layout generation gen.
func (p *Puzzle) ApplySlotHeight(gen, height int) bool { return p.ctrl.SetSlotHeight(gen, height) }

// Relayout resizes and re-measures synchronously, bounded by the sizing timeout.
func (p *Puzzle) Relayout(ctx context.Context) int {
	gen := p.ctrl.Resize()
	height, complete := p.MeasureSlots(ctx)
	if !complete {
		p.logger.Debug("slot sizing incomplete", "height", height, "layout", gen)
	}
	p.ctrl.SetSlotHeight(gen, height)
	return height
}

// String describes the puzzle for logs.
func (p *Puzzle) String() string {
	return fmt.Sprintf("%s (%d pieces, %d slots)", p.Name, len(p.ctrl.Registry().Pieces()), p.ctrl.Registry().SlotCount())
}
