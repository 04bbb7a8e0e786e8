package cli

import (
	"testing"

	"github.com/runoshun/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard(t *testing.T) {
	urgent := newTask(2, "Dentist", domain.ColumnInProgress)
	urgent.Priority = true
	env := newTestEnv(t,
		newTask(1, "Buy milk", domain.ColumnTodo),
		urgent,
		newTask(3, "File taxes", domain.ColumnDone),
	)

	out, _, err := execute(newBoardCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, "To Do (1)\n    #1 Buy milk")
	assert.Contains(t, out, "In Progress (1)\n  ! #2 Dentist")
	assert.Contains(t, out, "Done (1)\n    #3 File taxes")
}

func TestBoard_EmptyColumnsStillShown(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newBoardCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, "To Do (0)")
	assert.Contains(t, out, "In Progress (0)")
	assert.Contains(t, out, "Done (0)")
}

func TestCalendar_DefaultsToCurrentMonth(t *testing.T) {
	march := newTask(1, "Dentist", domain.ColumnTodo)
	march.DueDate = "2026-03-15"
	april := newTask(2, "File taxes", domain.ColumnTodo)
	april.DueDate = "2026-04-15"
	env := newTestEnv(t, march, april)

	out, _, err := execute(newCalendarCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, "Sun Mar 15\n  [ ] #1 Dentist")
	assert.NotContains(t, out, "File taxes")
}

func TestCalendar_Month(t *testing.T) {
	april := newTask(2, "File taxes", domain.ColumnDone)
	april.DueDate = "2026-04-15"
	env := newTestEnv(t, april)

	out, _, err := execute(newCalendarCommand(env.c), "--month", "2026-04")

	require.NoError(t, err)
	assert.Contains(t, out, "Wed Apr 15\n  [x] #2 File taxes")
}

func TestCalendar_NoTasks(t *testing.T) {
	env := newTestEnv(t, newTask(1, "Undated", domain.ColumnTodo))

	out, _, err := execute(newCalendarCommand(env.c))

	require.NoError(t, err)
	assert.Equal(t, "No tasks due in 2026-03.\n", out)
}

func TestCalendar_InvalidMonth(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(newCalendarCommand(env.c), "--month", "March")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM")
}
