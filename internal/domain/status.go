package domain

import "strings"

// Column represents a kanban column.
type Column string

const (
	ColumnTodo       Column = "todo"        // Not started
	ColumnInProgress Column = "in_progress" // Being worked on
	ColumnDone       Column = "done"        // Finished
)

// Default status ids as seeded by the API.
const (
	StatusIDTodo       = 1
	StatusIDInProgress = 2
	StatusIDDone       = 3
)

var statusNames = map[int]string{
	StatusIDTodo:       "To Do",
	StatusIDInProgress: "In Progress",
	StatusIDDone:       "Done",
}

// AllColumns returns all kanban columns in board order.
func AllColumns() []Column {
	return []Column{ColumnTodo, ColumnInProgress, ColumnDone}
}

// ColumnFromStatusName maps an API status name to a kanban column.
// The API keys its kanban groups by the lower-cased name with spaces replaced by underscores.
// Unknown names fall back to todo.
func ColumnFromStatusName(name string) Column {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	switch key {
	case "in_progress", "doing":
		return ColumnInProgress
	case "done", "completed", "closed":
		return ColumnDone
	default:
		return ColumnTodo
	}
}

// StatusID returns the default status id for the column.
func (c Column) StatusID() int {
	switch c {
	case ColumnInProgress:
		return StatusIDInProgress
	case ColumnDone:
		return StatusIDDone
	default:
		return StatusIDTodo
	}
}

// Display returns a human-readable representation of the column.
func (c Column) Display() string {
	switch c {
	case ColumnTodo:
		return "To Do"
	case ColumnInProgress:
		return "In Progress"
	case ColumnDone:
		return "Done"
	default:
		return string(c)
	}
}

// IsValid returns true if the column is a known value.
func (c Column) IsValid() bool {
	switch c {
	case ColumnTodo, ColumnInProgress, ColumnDone:
		return true
	default:
		return false
	}
}
