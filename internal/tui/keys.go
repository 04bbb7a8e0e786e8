package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	JumpTab key.Binding // 1-6

	// Task management
	New        key.Binding // Create new task
	ToggleDone key.Binding // Mark done / not done
	Delete     key.Binding // Delete task
	Priority   key.Binding // Toggle priority
	Archive    key.Binding // Archive completed tasks
	MoveLeft   key.Binding // Move card to the previous column
	MoveRight  key.Binding // Move card to the next column

	// Calendar
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding

	// Timer
	StartPause key.Binding
	Stop       key.Binding
	Skip       key.Binding
	Reset      key.Binding
	PickTask   key.Binding // Open focus task selector
	ClearTask  key.Binding // Clear focus task (in selector)

	// Settings
	Toggle key.Binding

	// View
	Refresh  key.Binding
	Help     key.Binding
	Tutorial key.Binding

	// Error screen
	Retry  key.Binding
	Reload key.Binding
	Home   key.Binding

	// General
	Quit    key.Binding // Quit application
	Escape  key.Binding // Cancel/back
	Confirm key.Binding // Confirm action (in confirm mode)
	Submit  key.Binding // Submit input
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		JumpTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6"),
			key.WithHelp("1-6", "jump to view"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		ToggleDone: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "done/undone"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Priority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority"),
		),
		Archive: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "archive done"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "move left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "move right"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "today"),
		),
		StartPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start/pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Reset: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "reset"),
		),
		PickTask: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "focus task"),
		),
		ClearTask: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear task"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Tutorial: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "tutorial"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "try again"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Home: key.NewBinding(
			key.WithKeys("h", "home"),
			key.WithHelp("h", "go home"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.JumpTab, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextTab, k.PrevTab, k.JumpTab},
		{k.New, k.ToggleDone, k.Delete, k.Priority, k.Archive, k.MoveLeft, k.MoveRight},
		{k.PrevMonth, k.NextMonth, k.Today},
		{k.StartPause, k.Stop, k.Skip, k.Reset, k.PickTask},
		{k.Refresh, k.Tutorial, k.Help, k.Quit},
	}
}

// TabKeys returns the bindings specific to a tab, for the status line.
func (k KeyMap) TabKeys(tab Tab) []key.Binding {
	switch tab {
	case TabList:
		return []key.Binding{k.Up, k.Down, k.New, k.ToggleDone, k.Priority, k.Delete, k.Archive}
	case TabBoard:
		return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.MoveLeft, k.MoveRight}
	case TabCalendar:
		return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PrevMonth, k.NextMonth, k.Today}
	case TabTimer:
		return []key.Binding{k.StartPause, k.Stop, k.Skip, k.Reset, k.PickTask}
	case TabReview:
		return []key.Binding{k.Refresh}
	case TabSettings:
		return []key.Binding{k.Up, k.Down, k.Toggle}
	}
	return nil
}

// tabForKey returns the tab a number key jumps to.
func tabForKey(s string) (Tab, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '6' {
		return "", false
	}
	return Tabs()[s[0]-'1'], true
}
