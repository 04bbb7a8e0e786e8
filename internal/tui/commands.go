package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/usecase"
)

// loadTasks returns a command that loads the task list.
// A failure with nothing to show yet goes to the error boundary.
func (m *Model) loadTasks(refresh bool) tea.Cmd {
	empty := m.container.Store.Len() == 0
	return func() tea.Msg {
		out, err := m.container.ListTasksUseCase().Execute(m.ctx, usecase.ListTasksInput{Refresh: refresh})
		if err != nil {
			if empty {
				return MsgFatal{Err: err}
			}
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Tasks: out.Tasks}
	}
}

// loadReview returns a command that loads the review summaries.
func (m *Model) loadReview() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowReviewUseCase().Execute(m.ctx, usecase.ShowReviewInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgReviewLoaded{Review: out}
	}
}

// loadSettings returns a command that loads the user settings.
func (m *Model) loadSettings() tea.Cmd {
	return func() tea.Msg {
		s, err := m.container.ShowSettingsUseCase().Execute(m.ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgSettingsLoaded{Settings: s}
	}
}

// loadFocusToday returns a command that sums today's recorded focus time.
func (m *Model) loadFocusToday() tea.Cmd {
	return func() tea.Msg {
		uc, err := m.container.FocusHistoryUseCase()
		if err != nil {
			m.container.Log.Warn(0, "timer", err.Error())
			return nil
		}
		out, err := uc.Execute(m.ctx, usecase.FocusHistoryInput{Days: 1})
		if err != nil {
			m.container.Log.Warn(0, "timer", err.Error())
			return nil
		}
		var total time.Duration
		for _, t := range out.Totals {
			total += t.Total
		}
		return MsgFocusToday{Total: total, Sessions: len(out.Sessions)}
	}
}

// recordFocus returns a command that records a finished work session.
func (m *Model) recordFocus(taskID int) tea.Cmd {
	endedAt := m.container.Clock.Now()
	return func() tea.Msg {
		uc, err := m.container.RecordFocusUseCase()
		if err != nil {
			return MsgError{Err: err}
		}
		err = uc.Execute(m.ctx, usecase.RecordFocusInput{
			TaskID:   taskID,
			EndedAt:  endedAt,
			Duration: pomodoro.WorkDuration * time.Second,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return m.loadFocusToday()()
	}
}

// createTask returns a command that creates a new task.
func (m *Model) createTask(title string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.NewTaskUseCase().Execute(m.ctx, usecase.NewTaskInput{Title: title})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskCreated{TaskID: out.TaskID}
	}
}

// setDone returns a command that marks a task done or not done.
func (m *Model) setDone(taskID int, done bool) tea.Cmd {
	return m.mutateTask(func() (*usecase.UpdateTaskOutput, error) {
		return m.container.SetDoneUseCase().Execute(m.ctx, usecase.SetDoneInput{TaskID: taskID, Done: done})
	})
}

// togglePriority returns a command that flips a task's priority flag.
func (m *Model) togglePriority(task *domain.Task) tea.Cmd {
	priority := !task.Priority
	id := task.ID
	return m.mutateTask(func() (*usecase.UpdateTaskOutput, error) {
		return m.container.UpdateTaskUseCase().Execute(m.ctx, usecase.UpdateTaskInput{
			TaskID: id,
			Patch:  domain.TaskPatch{Priority: &priority},
		})
	})
}

// moveTask returns a command that moves a task to another board column.
func (m *Model) moveTask(taskID int, column domain.Column) tea.Cmd {
	return m.mutateTask(func() (*usecase.UpdateTaskOutput, error) {
		return m.container.MoveTaskUseCase().Execute(m.ctx, usecase.MoveTaskInput{TaskID: taskID, Column: column})
	})
}

// mutateTask runs an optimistic task update. The store changes before the
// request completes, so a resync tick is armed until the update settles.
func (m *Model) mutateTask(fn func() (*usecase.UpdateTaskOutput, error)) tea.Cmd {
	m.pending++
	run := func() tea.Msg {
		out, err := fn()
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskUpdated{Task: out.Task}
	}
	return tea.Batch(run, m.scheduleStoreTick())
}

// deleteTask returns a command that deletes a task.
func (m *Model) deleteTask(taskID int) tea.Cmd {
	return func() tea.Msg {
		if err := m.container.DeleteTaskUseCase().Execute(m.ctx, usecase.DeleteTaskInput{TaskID: taskID}); err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{TaskID: taskID}
	}
}

// archiveCompleted returns a command that archives every done task.
func (m *Model) archiveCompleted() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ArchiveCompletedUseCase().Execute(m.ctx)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgArchived{Count: out.Archived}
	}
}

// updateSettings returns a command that saves a settings patch.
func (m *Model) updateSettings(patch domain.SettingsPatch) tea.Cmd {
	return func() tea.Msg {
		s, err := m.container.UpdateSettingsUseCase().Execute(m.ctx, usecase.UpdateSettingsInput{Patch: patch})
		if err != nil {
			return MsgSettingsFailed{Err: err}
		}
		return MsgSettingsLoaded{Settings: s}
	}
}

// reloadAll drops every cached response and local task, then refetches.
func (m *Model) reloadAll() tea.Cmd {
	m.container.Cache.Clear()
	m.container.Store.Clear()
	return func() tea.Msg {
		return MsgReloaded{}
	}
}

// ensureTabData returns a command loading the data a tab shows the first
// time it is visited.
func (m *Model) ensureTabData(tab Tab) tea.Cmd {
	if m.loaded[tab] {
		return nil
	}
	m.loaded[tab] = true
	switch tab {
	case TabReview:
		return m.loadReview()
	case TabSettings:
		return m.loadSettings()
	case TabList, TabBoard, TabCalendar, TabTimer:
		if !m.loaded[TabList] {
			m.loaded[TabList] = true
			return m.loadTasks(false)
		}
	}
	return nil
}

// refreshTab returns a command reloading the active tab's data.
func (m *Model) refreshTab() tea.Cmd {
	switch m.Tab() {
	case TabReview:
		m.container.Cache.Invalidate(usecase.KeySummary, usecase.KeyInsights)
		return m.loadReview()
	case TabSettings:
		m.container.Cache.Invalidate(usecase.KeySettings)
		return m.loadSettings()
	case TabList, TabBoard, TabCalendar, TabTimer:
		return tea.Batch(m.loadTasks(true), m.loadFocusToday())
	}
	return nil
}

// clearMessageAfter returns a command that clears the inline message.
func clearMessageAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return MsgClearError{} })
}

// taskLabel returns "#id title" for messages.
func taskLabel(t *domain.Task) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("#%d %s", t.ID, t.Title)
}
