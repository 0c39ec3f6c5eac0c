package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/internal/logging"
	"github.com/aretw0/strata/pkg/domain"
	"github.com/aretw0/strata/pkg/view"
)

// RecentHighlight is how long moved pieces stay highlighted.
const RecentHighlight = 1200 * time.Millisecond

type dwellMsg struct{ token uint64 }

type clearRecentMsg struct{ gen int }

// Model is the bubbletea model of one puzzle.
type Model struct {
	ctx    context.Context
	puzzle *strata.Puzzle
	keys   keyMap
	help   help.Model
	render strata.ContentRenderer
	logger *slog.Logger

	width, height int

	dialog dialog
}

// Option configures the Model.
type Option func(*Model)

// WithContext sets the context passed to puzzle operations.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithRenderer sets the markdown renderer of the help dialog.
func WithRenderer(r strata.ContentRenderer) Option {
	return func(m *Model) { m.render = r }
}

// WithLogger sets the model logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// New creates a Model for p.
func New(p *strata.Puzzle, opts ...Option) Model {
	m := Model{
		ctx:    context.Background(),
		puzzle: p,
		keys:   defaultKeyMap(),
		help:   help.New(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	gen := m.puzzle.RecentGeneration()

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.puzzle.Relayout(m.ctx)

	case tea.KeyMsg:
		if m.dialog.open {
			m, cmd = m.dialogKey(msg)
		} else {
			m, cmd = m.handleKey(msg)
		}

	case tea.MouseMsg:
		if m.dialog.open {
			m = m.dialogMouse(msg)
		} else {
			m, cmd = m.handleMouse(msg)
		}

	case tea.BlurMsg:
		m.puzzle.PointerCancel(m.ctx)

	case dwellMsg:
		if _, _, err := m.puzzle.DwellElapsed(m.ctx, msg.token); err != nil {
			m.logger.Debug("dwell drop failed", "err", err)
		}

	case clearRecentMsg:
		m.puzzle.ClearRecent(msg.gen)
	}

	if m.puzzle.RecentGeneration() != gen {
		cmd = tea.Batch(cmd, clearRecent(m.puzzle.RecentGeneration()))
	}
	return m, cmd
}

func clearRecent(gen int) tea.Cmd {
	return tea.Tick(RecentHighlight, func(time.Time) tea.Msg { return clearRecentMsg{gen: gen} })
}

func dwell(t strata.DwellTicket) tea.Cmd {
	if !t.Armed() {
		return nil
	}
	token := t.Token
	return tea.Tick(t.After, func(time.Time) tea.Msg { return dwellMsg{token: token} })
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if ev, ok := shortcut(msg); ok {
		m.puzzle.Shortcut(m.ctx, ev)
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.puzzle.PointerCancel(m.ctx)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		return m.openDialog(), nil
	case key.Matches(msg, m.keys.Redo):
		m.puzzle.Redo(m.ctx)
	case key.Matches(msg, m.keys.Reset):
		m.puzzle.Reset(m.ctx)
	case key.Matches(msg, m.keys.Check):
		m.puzzle.Check(m.ctx)
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Up):
		m.stepSlot(1)
	case key.Matches(msg, m.keys.Down):
		m.stepSlot(-1)
	case key.Matches(msg, m.keys.Select):
		m.selectFocused()
	case key.Matches(msg, m.keys.Close):
		if _, ok := m.puzzle.Dragging(); ok {
			m.puzzle.PointerCancel(m.ctx)
		} else if piece, ok := m.puzzle.Selected(); ok {
			m.must(m.puzzle.SelectPiece(piece))
		}
	}
	return m, nil
}

func (m Model) must(err error) {
	if err != nil {
		m.logger.Debug("puzzle rejected input", "err", err)
	}
}

type target struct {
	piece domain.PieceID
	slot  int
}

// focusOrder lists the keyboard focus stops: pool pieces, then slots from the top.
func focusOrder(v view.Model) []target {
	order := make([]target, 0, len(v.Pool)+len(v.Slots))
	for _, p := range v.Pool {
		order = append(order, target{piece: p.ID, slot: domain.Pool})
	}
	for i := len(v.Slots) - 1; i >= 0; i-- {
		order = append(order, target{slot: i})
	}
	return order
}

// focusedSlot returns the slot holding focus, directly or through its occupant.
func (m Model) focusedSlot() int {
	f := m.puzzle.Focus()
	switch f.Kind {
	case domain.FocusSlot:
		return f.Slot
	case domain.FocusPiece:
		if at, ok := m.puzzle.Placement().Locate(f.Piece); ok {
			return at
		}
	}
	return domain.Pool
}

func (m Model) cycleFocus(step int) {
	order := focusOrder(m.puzzle.View())
	if len(order) == 0 {
		return
	}

	current := -1
	f := m.puzzle.Focus()
	slot := m.focusedSlot()
	for i, t := range order {
		if (slot != domain.Pool && t.piece == domain.Empty && t.slot == slot) ||
			(slot == domain.Pool && f.Kind == domain.FocusPiece && t.piece == f.Piece) {
			current = i
			break
		}
	}

	next := 0
	switch {
	case current < 0 && step < 0:
		next = len(order) - 1
	case current >= 0:
		next = (current + step + len(order)) % len(order)
	}
	m.focus(order[next])
}

func (m Model) focus(t target) {
	if t.piece != domain.Empty {
		m.must(m.puzzle.FocusPiece(t.piece))
		return
	}
	m.must(m.puzzle.FocusSlot(t.slot))
}

// stepSlot moves focus one slot up (+1) or down (-1). Without a focused slot, up
// starts at the bottom and down at the top.
func (m Model) stepSlot(step int) {
	n := m.puzzle.Registry().SlotCount()
	if n == 0 {
		return
	}
	slot := m.focusedSlot()
	switch {
	case slot == domain.Pool && step > 0:
		slot = 0
	case slot == domain.Pool:
		slot = n - 1
	default:
		slot = min(max(slot+step, 0), n-1)
	}
	m.must(m.puzzle.FocusSlot(slot))
}

func (m Model) selectFocused() {
	if slot := m.focusedSlot(); slot != domain.Pool {
		_, _, err := m.puzzle.SelectSlot(m.ctx, slot)
		m.must(err)
		return
	}
	if f := m.puzzle.Focus(); f.Kind == domain.FocusPiece {
		m.must(m.puzzle.SelectPiece(f.Piece))
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	_, dragging := m.puzzle.Dragging()

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		r := m.rowAt(msg.Y)
		switch r.kind {
		case rowPool:
			m.must(m.puzzle.PointerDown(m.ctx, r.piece))
		case rowSlot:
			if r.piece != domain.Empty {
				m.must(m.puzzle.PointerDown(m.ctx, r.piece))
			}
		case rowControls:
			return m.pressControl(msg.X)
		}

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonRight:
		if dragging {
			m.puzzle.PointerCancel(m.ctx)
		}

	case msg.Action == tea.MouseActionMotion:
		if dragging {
			return m, dwell(m.puzzle.PointerMove(m.slotAt(msg.Y)))
		}

	case msg.Action == tea.MouseActionRelease:
		if dragging {
			_, _, err := m.puzzle.PointerUp(m.ctx, m.slotAt(msg.Y))
			m.must(err)
		}
	}
	return m, nil
}

func (m Model) pressControl(x int) (Model, tea.Cmd) {
	for _, c := range controls() {
		if x < c.x0 || x >= c.x1 {
			continue
		}
		switch c.name {
		case "Undo":
			m.puzzle.Undo(m.ctx)
		case "Redo":
			m.puzzle.Redo(m.ctx)
		case "Reset":
			m.puzzle.Reset(m.ctx)
		case "Check":
			m.puzzle.Check(m.ctx)
		case "Help":
			return m.openDialog(), nil
		}
	}
	return m, nil
}

// -- Layout --

type rowKind int

const (
	rowOther rowKind = iota
	rowSlot
	rowPool
	rowControls
)

type row struct {
	kind  rowKind
	slot  int
	piece domain.PieceID
}

type control struct {
	name   string
	x0, x1 int
}

const controlGap = 2

func controls() []control {
	out := make([]control, 0, 5)
	x := 0
	for _, name := range []string{"Undo", "Redo", "Reset", "Check", "Help"} {
		w := lipgloss.Width(controlLabel(name))
		out = append(out, control{name: name, x0: x, x1: x + w})
		x += w + controlGap
	}
	return out
}

func controlLabel(name string) string {
	return "[ " + name + " ]"
}

// board renders the puzzle screen and tells what each line holds. View and hit
// testing both go through it.
func (m Model) board(v view.Model) ([]string, []row) {
	var (
		lines []string
		rows  []row
	)
	add := func(line string, r row) {
		lines = append(lines, line)
		rows = append(rows, r)
	}

	add(titleStyle.Render("Strata: "+m.puzzle.Name), row{})
	add("", row{})

	nameWidth := 0
	for _, s := range v.Slots {
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}
	for i := len(v.Slots) - 1; i >= 0; i-- {
		s := v.Slots[i]
		content := labelStyle.Render("(empty)")
		r := row{kind: rowSlot, slot: i}
		if s.Piece != nil {
			content = renderPiece(*s.Piece)
			r.piece = s.Piece.ID
		}
		name := fmt.Sprintf("%-*s", nameWidth, s.Name)
		if s.Hovered {
			name = hoverStyle.Render(name)
		} else {
			name = slotStyle.Render(name)
		}
		add(marker(s.Focused)+name+"  "+content, r)
	}

	add("", row{})
	add(labelStyle.Render("Pool"), row{})
	if len(v.Pool) == 0 {
		add("  "+labelStyle.Render("(empty)"), row{})
	}
	for _, p := range v.Pool {
		add(marker(p.Focused)+" "+renderPiece(p), row{kind: rowPool, slot: domain.Pool, piece: p.ID})
	}

	add("", row{})
	add(statusStyle.Render(v.Status), row{})

	buttons := make([]string, 0, 5)
	for _, c := range controls() {
		label := controlLabel(c.name)
		if (c.name == "Undo" && !v.CanUndo) || (c.name == "Redo" && !v.CanRedo) {
			buttons = append(buttons, labelStyle.Render(label))
			continue
		}
		buttons = append(buttons, controlStyle.Render(label))
	}
	add(strings.Join(buttons, strings.Repeat(" ", controlGap)), row{kind: rowControls})

	return lines, rows
}

func marker(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}

func renderPiece(p view.PieceView) string {
	style := pieceStyle
	switch {
	case p.Dragging:
		style = dragStyle
	case p.Selected:
		style = selectStyle
	case p.Recent:
		style = recentStyle
	}
	out := style.Render(p.Label)
	if p.Focused {
		out = focusStyle.Render(out)
	}
	return out
}

func (m Model) rowAt(y int) row {
	_, rows := m.board(m.puzzle.View())
	if y < 0 || y >= len(rows) {
		return row{}
	}
	return rows[y]
}

func (m Model) slotAt(y int) int {
	if r := m.rowAt(y); r.kind == rowSlot {
		return r.slot
	}
	return view.NoSlot
}

func (m Model) View() string {
	if m.dialog.open {
		return m.dialogView()
	}
	lines, _ := m.board(m.puzzle.View())
	return strings.Join(lines, "\n") + "\n" + m.help.View(m.keys)
}
