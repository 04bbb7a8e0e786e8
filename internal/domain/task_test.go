package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_Column(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected Column
	}{
		{"todo status", Task{Status: TaskStatus{Name: "To Do"}}, ColumnTodo},
		{"in progress status", Task{Status: TaskStatus{Name: "In Progress"}}, ColumnInProgress},
		{"done status", Task{Status: TaskStatus{Name: "Done"}}, ColumnDone},
		{"done flag overrides status", Task{Done: true, Status: TaskStatus{Name: "In Progress"}}, ColumnDone},
		{"unknown status falls back to todo", Task{Status: TaskStatus{Name: "Someday"}}, ColumnTodo},
		{"empty status", Task{}, ColumnTodo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.Column())
		})
	}
}

func TestTask_DueDay(t *testing.T) {
	tests := []struct {
		due      string
		expected string
	}{
		{"", ""},
		{"2025-03-04", "2025-03-04"},
		{"2025-03-04T10:00:00", "2025-03-04"},
		{" 2025-03-04T10:00:00Z ", "2025-03-04"},
	}

	for _, tt := range tests {
		t.Run(tt.due, func(t *testing.T) {
			task := Task{DueDate: tt.due}
			assert.Equal(t, tt.expected, task.DueDay())
		})
	}
}

func TestTask_Apply(t *testing.T) {
	// Setup
	estimate := 30
	original := &Task{
		ID:              1,
		Title:           "Write report",
		EstimateMinutes: &estimate,
		Status:          TaskStatus{ID: StatusIDTodo, Name: "To Do"},
	}

	// Execute
	done := true
	title := "Write final report"
	statusID := StatusIDInProgress
	patched := original.Apply(TaskPatch{Done: &done, Title: &title, StatusID: &statusID})

	// Assert
	assert.True(t, patched.Done)
	assert.Equal(t, "Write final report", patched.Title)
	assert.Equal(t, "In Progress", patched.Status.Name)
	require.NotNil(t, patched.StatusID)
	assert.Equal(t, StatusIDInProgress, *patched.StatusID)

	// Original untouched
	assert.False(t, original.Done)
	assert.Equal(t, "Write report", original.Title)
	assert.Nil(t, original.StatusID)
}

func TestTask_CloneIsDeep(t *testing.T) {
	estimate := 10
	task := &Task{ID: 1, EstimateMinutes: &estimate}

	clone := task.Clone()
	*clone.EstimateMinutes = 20

	assert.Equal(t, 10, *task.EstimateMinutes)
	assert.Nil(t, (*Task)(nil).Clone())
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())
	done := false
	assert.False(t, TaskPatch{Done: &done}.IsEmpty())
}

func TestTaskFilter_IsZero(t *testing.T) {
	assert.True(t, TaskFilter{}.IsZero())
	assert.False(t, TaskFilter{Category: "work"}.IsZero())
}
