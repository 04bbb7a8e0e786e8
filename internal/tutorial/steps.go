package tutorial

// Position is the side of the anchor the tooltip is placed on.
type Position string

const (
	PositionTop    Position = "top"
	PositionBottom Position = "bottom"
	PositionLeft   Position = "left"
	PositionRight  Position = "right"
	PositionCenter Position = "center"
)

// Routes the tutorial can require. They match the TUI tab names.
const (
	RouteList     = "list"
	RouteBoard    = "board"
	RouteCalendar = "calendar"
)

// Anchor names registered by views.
const (
	AnchorNavList        = "nav-link-list"
	AnchorNavBoard       = "nav-link-board"
	AnchorNavCalendar    = "nav-link-calendar"
	AnchorAddTask        = "add-task-button"
	AnchorTaskTitleInput = "task-title-input"
	AnchorTaskItem       = "task-item"
	AnchorTaskItemMenu   = "task-item-menu-button"
	AnchorBoardTodo      = "board-column-todo"
	AnchorBoardCard      = "board-card"
	AnchorCalendarGrid   = "calendar-grid"
	AnchorCalendarEvent  = "calendar-event"
)

// Step is one immutable tutorial step.
// Fields are ordered to minimize memory padding.
type Step struct {
	ID            string
	Title         string
	Description   string
	Anchor        string   // Empty for centered steps
	Position      Position // Empty means center
	RequiredRoute string
	AutoNavigate  bool
}

// DefaultSteps returns the built-in walkthrough.
func DefaultSteps() []Step {
	return []Step{
		{
			ID:            "welcome",
			Title:         "Welcome to Your Workspace!",
			Description:   "This tutorial will guide you through creating, managing, and viewing your tasks. We'll start in the List view. Press → to begin!",
			Position:      PositionCenter,
			RequiredRoute: RouteList,
			AutoNavigate:  true,
		},
		{
			ID:            "list-view-nav",
			Title:         "Welcome to the List View",
			Description:   "This is your Task List, the central hub for managing tasks in a simple, linear format. All your tasks appear here.",
			Anchor:        AnchorNavList,
			Position:      PositionBottom,
			RequiredRoute: RouteList,
		},
		{
			ID:            "create-task-start",
			Title:         "Create Your First Task",
			Description:   "Press n to create a new task.",
			Anchor:        AnchorAddTask,
			Position:      PositionBottom,
			RequiredRoute: RouteList,
		},
		{
			ID:            "create-task-form",
			Title:         "Fill in the Task Details",
			Description:   "Give your task a title like \"My first task\". The other fields are optional. Press enter to save.",
			Anchor:        AnchorTaskTitleInput,
			Position:      PositionBottom,
			RequiredRoute: RouteList,
		},
		{
			ID:            "read-task-item",
			Title:         "Your Task Appears Here",
			Description:   "Your task now appears in the list with its title, due date, and other details at a glance.",
			Anchor:        AnchorTaskItem,
			Position:      PositionRight,
			RequiredRoute: RouteList,
		},
		{
			ID:            "update-task-item",
			Title:         "Edit a Task",
			Description:   "Press e on a selected task to edit it anytime.",
			Anchor:        AnchorTaskItemMenu,
			Position:      PositionLeft,
			RequiredRoute: RouteList,
		},
		{
			ID:            "delete-task-item",
			Title:         "Delete a Task",
			Description:   "Press d to delete a task. You'll always be asked to confirm before deleting.",
			Anchor:        AnchorTaskItemMenu,
			Position:      PositionLeft,
			RequiredRoute: RouteList,
		},
		{
			ID:            "board-view-nav",
			Title:         "Switch to Board View",
			Description:   "Now let's see your tasks on a Kanban board. We'll navigate there for you.",
			Anchor:        AnchorNavBoard,
			Position:      PositionBottom,
			RequiredRoute: RouteBoard,
			AutoNavigate:  true,
		},
		{
			ID:            "board-view-intro",
			Title:         "The Kanban Board",
			Description:   "The board organizes tasks by status: To Do, In Progress, and Done.",
			Anchor:        AnchorBoardTodo,
			Position:      PositionTop,
			RequiredRoute: RouteBoard,
		},
		{
			ID:            "board-view-drag",
			Title:         "Move Cards to Update Status",
			Description:   "Press < and > on a card to move it between columns. Try moving a task from \"To Do\" to \"In Progress\"!",
			Anchor:        AnchorBoardCard,
			Position:      PositionTop,
			RequiredRoute: RouteBoard,
		},
		{
			ID:            "calendar-view-nav",
			Title:         "Switch to Calendar View",
			Description:   "Finally, let's see how your tasks look on a calendar. This view is ideal for managing deadlines.",
			Anchor:        AnchorNavCalendar,
			Position:      PositionBottom,
			RequiredRoute: RouteCalendar,
			AutoNavigate:  true,
		},
		{
			ID:            "calendar-view-intro",
			Title:         "The Calendar View",
			Description:   "Tasks with due dates are shown here automatically.",
			Anchor:        AnchorCalendarGrid,
			Position:      PositionTop,
			RequiredRoute: RouteCalendar,
		},
		{
			ID:            "calendar-view-event",
			Title:         "Calendar Events",
			Description:   "Each task appears as an event on its due date. Select one to view or edit it.",
			Anchor:        AnchorCalendarEvent,
			Position:      PositionBottom,
			RequiredRoute: RouteCalendar,
		},
		{
			ID:          "complete",
			Title:       "You're a Pro!",
			Description: "You've mastered the core features. Now you're ready to organize your work across all views.",
			Position:    PositionCenter,
		},
	}
}
