package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/taskline/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
	DescSelected  lipgloss.Color

	// Column colors
	Todo       lipgloss.Color
	InProgress lipgloss.Color
	Done       lipgloss.Color

	// Timer
	Work  lipgloss.Color
	Break lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray
	DescSelected:  lipgloss.Color("#B2BEC3"), // Light gray

	Todo:       lipgloss.Color("#74B9FF"), // Light blue
	InProgress: lipgloss.Color("#FDCB6E"), // Yellow
	Done:       lipgloss.Color("#00B894"), // Green

	Work:  lipgloss.Color("#E17055"), // Coral
	Break: lipgloss.Color("#00CEC9"), // Teal
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header and tab bar
	Header      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	TabSep      lipgloss.Style
	SectionHead lipgloss.Style

	// Task list
	TaskTitle         lipgloss.Style
	TaskTitleSelected lipgloss.Style
	TaskTitleDone     lipgloss.Style
	TaskDesc          lipgloss.Style
	TaskDescSelected  lipgloss.Style
	TaskID            lipgloss.Style
	TaskIDSelected    lipgloss.Style
	TaskMeta          lipgloss.Style
	Priority          lipgloss.Style
	Category          lipgloss.Style
	CursorNormal      lipgloss.Style
	CursorSelected    lipgloss.Style

	// Column badges
	ColumnTodo       lipgloss.Style
	ColumnInProgress lipgloss.Style
	ColumnDone       lipgloss.Style

	// Board
	BoardColumn       lipgloss.Style
	BoardColumnActive lipgloss.Style
	Card              lipgloss.Style
	CardSelected      lipgloss.Style

	// Calendar
	CalendarDay      lipgloss.Style
	CalendarToday    lipgloss.Style
	CalendarSelected lipgloss.Style
	CalendarHasTasks lipgloss.Style

	// Timer
	TimerClock lipgloss.Style
	TimerWork  lipgloss.Style
	TimerBreak lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style
	Alert        lipgloss.Style

	// Tutorial tooltip
	Tooltip      lipgloss.Style
	TooltipTitle lipgloss.Style
	TooltipStep  lipgloss.Style

	// Input
	Input       lipgloss.Style
	InputPrompt lipgloss.Style

	// Messages
	ErrorMsg   lipgloss.Style
	SuccessMsg lipgloss.Style

	// Detail view
	DetailLabel lipgloss.Style
	DetailValue lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		Tab: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		TabSep: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		SectionHead: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskTitleSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskTitleDone: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Strikethrough(true),

		TaskDesc: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		TaskDescSelected: lipgloss.NewStyle().
			Foreground(Colors.DescSelected),

		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(5),

		TaskIDSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true).
			Width(5),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Priority: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		Category: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Italic(true),

		CursorNormal: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CursorSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		ColumnTodo: lipgloss.NewStyle().
			Foreground(Colors.Todo),

		ColumnInProgress: lipgloss.NewStyle().
			Foreground(Colors.InProgress),

		ColumnDone: lipgloss.NewStyle().
			Foreground(Colors.Done),

		BoardColumn: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted).
			Padding(0, 1),

		BoardColumnActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		CardSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		CalendarDay: lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Right),

		CalendarToday: lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Right).
			Foreground(Colors.Success).
			Bold(true),

		CalendarSelected: lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Right).
			Foreground(Colors.TitleSelected).
			Reverse(true),

		CalendarHasTasks: lipgloss.NewStyle().
			Width(4).
			Align(lipgloss.Right).
			Foreground(Colors.Todo).
			Underline(true),

		TimerClock: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleNormal),

		TimerWork: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Work),

		TimerBreak: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Break),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle(),

		Alert: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Colors.Error),

		Tooltip: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning),

		TooltipTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		TooltipStep: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Input: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		SuccessMsg: lipgloss.NewStyle().
			Foreground(Colors.Success),

		DetailLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(12),

		DetailValue: lipgloss.NewStyle(),
	}
}

// ColumnStyle returns the style for a kanban column.
func (s Styles) ColumnStyle(c domain.Column) lipgloss.Style {
	switch c {
	case domain.ColumnInProgress:
		return s.ColumnInProgress
	case domain.ColumnDone:
		return s.ColumnDone
	default:
		return s.ColumnTodo
	}
}

// ColumnIcon returns an icon for a kanban column.
func ColumnIcon(c domain.Column) string {
	switch c {
	case domain.ColumnTodo:
		return "○"
	case domain.ColumnInProgress:
		return "●"
	case domain.ColumnDone:
		return "✓"
	default:
		return "?"
	}
}
