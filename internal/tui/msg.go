package tui

import (
	"time"

	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the task list has been fetched.
type MsgTasksLoaded struct {
	Tasks []*domain.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskCreated is sent when a new task is created.
type MsgTaskCreated struct {
	TaskID int
}

func (MsgTaskCreated) sealed() {}

// MsgTaskUpdated is sent when an update was confirmed by the API.
type MsgTaskUpdated struct {
	Task *domain.Task
}

func (MsgTaskUpdated) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	TaskID int
}

func (MsgTaskDeleted) sealed() {}

// MsgArchived is sent after completed tasks were archived.
type MsgArchived struct {
	Count int
}

func (MsgArchived) sealed() {}

// MsgReviewLoaded is sent when the review summaries are fetched.
type MsgReviewLoaded struct {
	Review *usecase.ShowReviewOutput
}

func (MsgReviewLoaded) sealed() {}

// MsgSettingsLoaded is sent when settings are fetched or saved.
type MsgSettingsLoaded struct {
	Settings *domain.UserSettings
}

func (MsgSettingsLoaded) sealed() {}

// MsgSettingsFailed is sent when saving settings fails.
// It is shown as a blocking alert.
type MsgSettingsFailed struct {
	Err error
}

func (MsgSettingsFailed) sealed() {}

// MsgTimer carries a pomodoro engine event.
type MsgTimer struct {
	Event pomodoro.Event
}

func (MsgTimer) sealed() {}

// MsgFocusToday is sent with today's recorded focus totals.
type MsgFocusToday struct {
	Total    time.Duration
	Sessions int
}

func (MsgFocusToday) sealed() {}

// MsgTutorialChanged is sent when the tutorial changed state on its own
// (auto-start or end of navigation grace).
type MsgTutorialChanged struct{}

func (MsgTutorialChanged) sealed() {}

// MsgError is sent when a background operation fails.
// It is shown inline and cleared by the next key press.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgFatal is sent when a view cannot be shown at all.
// It replaces the screen with the error boundary.
type MsgFatal struct {
	Err error
}

func (MsgFatal) sealed() {}

// MsgClearError is sent to clear the error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}

// MsgReloaded is sent after every local cache was dropped.
type MsgReloaded struct{}

func (MsgReloaded) sealed() {}
