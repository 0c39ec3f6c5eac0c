package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/strata"
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Undo   key.Binding
	Redo   key.Binding
	Reset  key.Binding
	Check  key.Binding
	Help   key.Binding
	Close  key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "slot above")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "slot below")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select/place")),
		Undo:   key.NewBinding(key.WithKeys("alt+z", "ctrl+z"), key.WithHelp("alt+z", "undo")),
		Redo:   key.NewBinding(key.WithKeys("alt+Z", "ctrl+y"), key.WithHelp("alt+Z", "redo")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Check:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Undo, k.Redo, k.Check, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down, k.Select},
		{k.Undo, k.Redo, k.Reset, k.Check},
		{k.Help, k.Close, k.Quit},
	}
}

// shortcut translates the terminal undo/redo keys into the modifier+Z combinations the
// puzzle understands. Terminals report alt but never ctrl+shift, so alt+Z is redo and
// ctrl+y is handled separately.
func shortcut(msg tea.KeyMsg) (strata.KeyEvent, bool) {
	switch msg.String() {
	case "ctrl+z":
		return strata.KeyEvent{Key: "z", Ctrl: true}, true
	case "alt+z":
		return strata.KeyEvent{Key: "z", Meta: true}, true
	case "alt+Z":
		return strata.KeyEvent{Key: "z", Meta: true, Shift: true}, true
	}
	return strata.KeyEvent{}, false
}
