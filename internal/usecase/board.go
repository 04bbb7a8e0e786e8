package usecase

import (
	"context"
	"strings"

	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
)

// ShowBoardInput contains the parameters for the kanban board.
type ShowBoardInput struct {
	Refresh bool
}

// ShowBoardOutput groups tasks by kanban column.
type ShowBoardOutput struct {
	Columns map[domain.Column][]*domain.Task // Every column is present
}

// ShowBoard is the use case for the kanban board.
// Columns are projected from the task store.
type ShowBoard struct {
	list  *ListTasks
	store *taskstore.Store
}

// NewShowBoard creates a new ShowBoard use case.
func NewShowBoard(list *ListTasks, store *taskstore.Store) *ShowBoard {
	return &ShowBoard{list: list, store: store}
}

// Execute loads tasks if needed and returns the board.
func (uc *ShowBoard) Execute(ctx context.Context, in ShowBoardInput) (*ShowBoardOutput, error) {
	if _, err := uc.list.Execute(ctx, ListTasksInput{Refresh: in.Refresh}); err != nil {
		return nil, err
	}
	return &ShowBoardOutput{Columns: uc.store.ByColumn()}, nil
}

// ShowCalendarInput contains the parameters for the calendar.
type ShowCalendarInput struct {
	Month   string // YYYY-MM; empty = all days
	Refresh bool
}

// ShowCalendarOutput groups tasks by due day.
type ShowCalendarOutput struct {
	Days map[string][]*domain.Task // YYYY-MM-DD -> tasks
}

// ShowCalendar is the use case for the calendar view.
type ShowCalendar struct {
	list  *ListTasks
	store *taskstore.Store
}

// NewShowCalendar creates a new ShowCalendar use case.
func NewShowCalendar(list *ListTasks, store *taskstore.Store) *ShowCalendar {
	return &ShowCalendar{list: list, store: store}
}

// Execute loads tasks if needed and returns tasks grouped by due day.
func (uc *ShowCalendar) Execute(ctx context.Context, in ShowCalendarInput) (*ShowCalendarOutput, error) {
	if _, err := uc.list.Execute(ctx, ListTasksInput{Refresh: in.Refresh}); err != nil {
		return nil, err
	}
	all := uc.store.ByDate()
	if in.Month == "" {
		return &ShowCalendarOutput{Days: all}, nil
	}
	days := make(map[string][]*domain.Task)
	for day, tasks := range all {
		if strings.HasPrefix(day, in.Month+"-") {
			days[day] = tasks
		}
	}
	return &ShowCalendarOutput{Days: days}, nil
}
