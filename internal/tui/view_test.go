package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/tutorial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededFixture(t *testing.T, opts Options) *fixture {
	t.Helper()
	dentist := newTask(2, "Dentist", domain.ColumnInProgress)
	dentist.DueDate = "2026-03-15"
	dentist.Priority = true
	f := newFixture(t, opts,
		newTask(1, "Buy milk", domain.ColumnTodo),
		dentist,
		newTask(3, "File taxes", domain.ColumnDone),
	)
	f.load(t)
	return f
}

func TestView_LoadingBeforeWindowSize(t *testing.T) {
	f := newFixture(t, Options{})

	assert.Equal(t, "Loading...", f.m.View())
}

func TestView_FitsWindow(t *testing.T) {
	for _, tab := range Tabs() {
		t.Run(string(tab), func(t *testing.T) {
			f := seededFixture(t, Options{InitialTab: tab})
			f.send(f.m.loadSettings()())
			f.send(f.m.loadReview()())

			view := f.m.View()
			lines := strings.Split(view, "\n")
			assert.LessOrEqual(t, len(lines), 40)
			for i, line := range lines {
				assert.LessOrEqual(t, lipgloss.Width(line), 120, "line %d: %q", i, line)
			}
		})
	}
}

func TestView_Header(t *testing.T) {
	f := seededFixture(t, Options{})

	view := f.m.View()

	assert.Contains(t, view, "Task Line")
	for i, tab := range Tabs() {
		assert.Contains(t, view, tab.Title(), "tab %d", i+1)
	}
}

func TestView_List(t *testing.T) {
	f := seededFixture(t, Options{})

	view := f.m.View()

	assert.Contains(t, view, "3 tasks")
	assert.Contains(t, view, "#1")
	assert.Contains(t, view, "Buy milk")
	assert.Contains(t, view, "due 2026-03-15")
}

func TestView_ListEmpty(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)

	assert.Contains(t, f.m.View(), "No tasks yet")
}

func TestView_TitleInput(t *testing.T) {
	f := seededFixture(t, Options{})
	f.press(runeKey("n"), runeKey("Call mom"))

	assert.Contains(t, f.m.View(), "Title: ")
	_, ok := f.m.anchors.Lookup(tutorial.AnchorTaskTitleInput)
	assert.True(t, ok)
}

func TestView_Board(t *testing.T) {
	f := seededFixture(t, Options{InitialTab: TabBoard})

	view := f.m.View()

	assert.Contains(t, view, "To Do (1)")
	assert.Contains(t, view, "In Progress (1)")
	assert.Contains(t, view, "Done (1)")
	assert.Contains(t, view, "#2 Dentist")
}

func TestView_Calendar(t *testing.T) {
	f := seededFixture(t, Options{InitialTab: TabCalendar})

	view := f.m.View()

	assert.Contains(t, view, "March 2026")
	assert.Contains(t, view, "Mo")
	assert.Contains(t, view, "Sun Mar 15")
	assert.Contains(t, view, "#2 Dentist")

	f.press(runeKey("l"))
	assert.Contains(t, f.m.View(), "No tasks due")
}

func TestView_Timer(t *testing.T) {
	f := seededFixture(t, Options{InitialTab: TabTimer})

	view := f.m.View()
	assert.Contains(t, view, "Focus Time")
	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "none (press t to pick a task)")

	f.press(runeKey("t"))
	view = f.m.View()
	assert.Contains(t, view, "Focus on task")
	assert.Contains(t, view, "#1 Buy milk")
	assert.NotContains(t, view, "#3 File taxes")

	f.press(keyEnter)
	assert.Contains(t, f.m.View(), "#1 Buy milk")
}

func TestView_Review(t *testing.T) {
	f := seededFixture(t, Options{InitialTab: TabReview})
	assert.Contains(t, f.m.View(), "Loading review...")

	entry := "Good day"
	f.review.Daily[""] = &domain.DailySummary{Date: "2026-03-15", TasksCompleted: 2, JournalEntry: &entry}
	f.review.Weekly = &domain.WeeklySummary{WeekStart: "2026-03-09", WeekEnd: "2026-03-15", TasksCompleted: 3, TotalTasks: 4, CompletionRate: 75}
	f.review.InsightData = domain.Insights{"streak": 4}
	f.send(f.m.loadReview()())

	view := f.m.View()
	assert.Contains(t, view, "Today 2026-03-15")
	assert.Contains(t, view, "Good day")
	assert.Contains(t, view, "3 of 4")
	assert.Contains(t, view, "75%")
	assert.Contains(t, view, "streak")
}

func TestView_Settings(t *testing.T) {
	f := seededFixture(t, Options{InitialTab: TabSettings})
	assert.Contains(t, f.m.View(), "Loading settings...")

	f.send(f.m.loadSettings()())
	view := f.m.View()

	assert.Contains(t, view, "Focus timer")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "light")
	assert.Contains(t, view, "off")
	assert.Contains(t, view, "restart")
}

func TestView_ConfirmDialog(t *testing.T) {
	f := seededFixture(t, Options{})
	f.press(runeKey("d"))

	view := f.m.View()

	assert.Contains(t, view, "Delete #1 Buy milk?")
	assert.Contains(t, view, "[ y ] Confirm")
	assert.Contains(t, view, "[ n ] Cancel")
}

func TestView_ErrorLine(t *testing.T) {
	f := seededFixture(t, Options{})
	f.send(MsgError{Err: &domain.APIError{Code: 422, Message: "Title is required"}})

	assert.Contains(t, f.m.View(), "Error: Title is required")

	// Any key clears it.
	f.press(keyDown)
	assert.NotContains(t, f.m.View(), "Error:")
}

func TestView_Anchors(t *testing.T) {
	tests := []struct {
		tab     Tab
		anchors []string
	}{
		{TabList, []string{tutorial.AnchorNavList, tutorial.AnchorNavBoard, tutorial.AnchorNavCalendar, tutorial.AnchorAddTask, tutorial.AnchorTaskItem, tutorial.AnchorTaskItemMenu}},
		{TabBoard, []string{tutorial.AnchorBoardTodo, tutorial.AnchorBoardCard}},
		{TabCalendar, []string{tutorial.AnchorCalendarGrid, tutorial.AnchorCalendarEvent}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			f := seededFixture(t, Options{InitialTab: tt.tab})
			f.m.View()

			for _, name := range tt.anchors {
				r, ok := f.m.anchors.Lookup(name)
				require.True(t, ok, name)
				assert.Positive(t, r.W, name)
				assert.Positive(t, r.H, name)
			}
		})
	}
}

func TestView_AnchorPositions(t *testing.T) {
	f := seededFixture(t, Options{})
	f.m.View()

	nav, _ := f.m.anchors.Lookup(tutorial.AnchorNavList)
	assert.Equal(t, 0, nav.Y)

	add, _ := f.m.anchors.Lookup(tutorial.AnchorAddTask)
	assert.Equal(t, tutorial.Rect{X: bodyLeft, Y: bodyTop, W: add.W, H: 1}, add)

	item, _ := f.m.anchors.Lookup(tutorial.AnchorTaskItem)
	assert.Equal(t, bodyTop+2, item.Y)

	f.press(keyDown)
	f.m.View()
	item, _ = f.m.anchors.Lookup(tutorial.AnchorTaskItem)
	assert.Equal(t, bodyTop+4, item.Y)
}

func TestView_FooterHints(t *testing.T) {
	f := seededFixture(t, Options{InitialTab: TabTimer})

	view := f.m.View()

	assert.Contains(t, view, "start/pause")
	assert.Contains(t, view, "help")
}
