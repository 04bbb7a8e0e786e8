package tutorial

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action is what a key press asks the tutorial to do.
type Action int

const (
	ActionNone Action = iota
	ActionExit
	ActionNext
	ActionPrevious
)

// KeyMap defines the tutorial keybindings.
type KeyMap struct {
	Exit     key.Binding
	Next     key.Binding
	Previous key.Binding
}

// DefaultKeyMap returns the default tutorial keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Exit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "exit tutorial"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "enter"),
			key.WithHelp("→/enter", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back"),
		),
	}
}

// ShortHelp returns bindings for the tooltip footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Exit}
}

// FullHelp returns bindings grouped for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Action maps a key press to a tutorial action.
func (k KeyMap) Action(msg tea.KeyMsg) Action {
	switch {
	case key.Matches(msg, k.Exit):
		return ActionExit
	case key.Matches(msg, k.Next):
		return ActionNext
	case key.Matches(msg, k.Previous):
		return ActionPrevious
	default:
		return ActionNone
	}
}
