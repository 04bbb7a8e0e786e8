// Package tui provides the terminal user interface for taskline.
package tui

import "github.com/runoshun/taskline/internal/tutorial"

// Tab is a top-level view. Tab names double as tutorial routes.
type Tab string

const (
	TabList     Tab = tutorial.RouteList
	TabBoard    Tab = tutorial.RouteBoard
	TabCalendar Tab = tutorial.RouteCalendar
	TabTimer    Tab = "timer"
	TabReview   Tab = "review"
	TabSettings Tab = "settings"
)

// Tabs returns all tabs in display order.
func Tabs() []Tab {
	return []Tab{TabList, TabBoard, TabCalendar, TabTimer, TabReview, TabSettings}
}

// ParseTab returns the tab named s, or false if there is none.
func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// Title returns the label shown in the tab bar.
func (t Tab) Title() string {
	switch t {
	case TabList:
		return "List"
	case TabBoard:
		return "Board"
	case TabCalendar:
		return "Calendar"
	case TabTimer:
		return "Timer"
	case TabReview:
		return "Review"
	case TabSettings:
		return "Settings"
	default:
		return string(t)
	}
}

// Anchor returns the tutorial anchor of the tab's navigation link.
func (t Tab) Anchor() string {
	switch t {
	case TabList:
		return tutorial.AnchorNavList
	case TabBoard:
		return tutorial.AnchorNavBoard
	case TabCalendar:
		return tutorial.AnchorNavCalendar
	default:
		return ""
	}
}

// offset returns the tab delta positions away, wrapping around.
func (t Tab) offset(delta int) Tab {
	tabs := Tabs()
	for i, tab := range tabs {
		if tab == t {
			n := len(tabs)
			return tabs[((i+delta)%n+n)%n]
		}
	}
	return TabList
}

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal     Mode = iota // Default navigation mode
	ModeInputTitle             // New task title input
	ModeConfirm                // Confirmation prompt
	ModeSelector               // Focus task picker
	ModeHelp                   // Help overlay
	ModeAlert                  // Blocking alert, dismissed with enter or esc
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInputTitle:
		return "input_title"
	case ModeConfirm:
		return "confirm"
	case ModeSelector:
		return "selector"
	case ModeHelp:
		return "help"
	case ModeAlert:
		return "alert"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeInputTitle, ModeSelector:
		return true
	case ModeNormal, ModeConfirm, ModeHelp, ModeAlert:
		return false
	}
	return false
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone            ConfirmAction = iota
	ConfirmDelete                        // Delete task
	ConfirmArchiveComplete               // Archive every done task
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDelete:
		return "delete"
	case ConfirmArchiveComplete:
		return "archive completed"
	}
	return ""
}
