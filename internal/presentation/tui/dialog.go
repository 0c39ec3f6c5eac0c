package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/strata/pkg/domain"
)

// HelpMarkdown is the content of the help dialog.
const HelpMarkdown = `# How to play

Sort the pieces into the slots, bottom to top, then **check** your answer.

## Mouse

- Press on a piece and drag it over a slot.
- Release to drop it, or hold still over the slot and it drops on its own.
- Right click cancels a drag.

## Keyboard

| Key | Action |
| --- | --- |
| tab / shift+tab | move focus |
| up / down | previous or next slot |
| enter / space | select a piece, then place it in a slot |
| alt+z / ctrl+z | undo |
| alt+Z / ctrl+y | redo |
| ctrl+r | reset |
| c | check |
| ? / esc | close this help |
| q | quit |
`

const closeLabel = "[ Close ]"

// dialog is the help overlay. While open it owns the keyboard: the only focus stop
// is its close control, and puzzle keys are ignored.
type dialog struct {
	open bool
	body string
	// focused is the index of the focused control; the dialog has one.
	focused int
	// restore is the puzzle focus to give back on close.
	restore domain.Focus
}

func (m Model) openDialog() Model {
	body := HelpMarkdown
	if m.render != nil {
		if out, err := m.render(HelpMarkdown); err == nil {
			body = out
		} else {
			m.logger.Debug("help render failed", "err", err)
		}
	}
	m.puzzle.PointerCancel(m.ctx)
	m.dialog = dialog{
		open:    true,
		body:    strings.Trim(body, "\n"),
		restore: m.puzzle.Focus(),
	}
	return m
}

func (m Model) closeDialog() Model {
	switch f := m.dialog.restore; f.Kind {
	case domain.FocusPiece:
		m.must(m.puzzle.FocusPiece(f.Piece))
	case domain.FocusSlot:
		m.must(m.puzzle.FocusSlot(f.Slot))
	}
	m.dialog = dialog{}
	return m
}

func (m Model) dialogKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "?":
		return m.closeDialog(), nil
	case "tab", "shift+tab":
		m.dialog.focused = 0
	case "enter", " ":
		return m.closeDialog(), nil
	}
	return m, nil
}

func (m Model) dialogMouse(msg tea.MouseMsg) Model {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m
	}
	box := m.dialogBox()
	if !box.contains(msg.X, msg.Y) || box.onClose(msg.X, msg.Y) {
		return m.closeDialog()
	}
	return m
}

// box is the placed dialog with its screen bounds.
type box struct {
	lines      []string
	x, y, w, h int
	// closeY, closeX0 and closeX1 locate the close control on screen.
	closeY, closeX0, closeX1 int
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h
}

func (b box) onClose(x, y int) bool {
	return y == b.closeY && x >= b.closeX0 && x < b.closeX1
}

func (m Model) dialogBox() box {
	closeStr := closeStyle.Render(closeLabel)
	if m.dialog.focused == 0 {
		closeStr = closeFocusedStyle.Render(closeLabel)
	}
	content := lipgloss.JoinVertical(lipgloss.Left, m.dialog.body, "", closeStr)
	rendered := dialogStyle.Render(content)

	b := box{
		lines: strings.Split(rendered, "\n"),
		w:     lipgloss.Width(rendered),
	}
	b.h = len(b.lines)
	b.x = max(0, (m.width-b.w)/2)
	b.y = max(0, (m.height-b.h)/2)

	// Border row, body, blank line; border column and padding.
	b.closeY = b.y + 1 + lipgloss.Height(m.dialog.body) + 1
	b.closeX0 = b.x + 2
	b.closeX1 = b.closeX0 + lipgloss.Width(closeLabel)
	return b
}

func (m Model) dialogView() string {
	b := m.dialogBox()
	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", b.y))
	pad := strings.Repeat(" ", b.x)
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(pad)
		sb.WriteString(line)
	}
	return sb.String()
}
