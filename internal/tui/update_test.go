package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/testutil"
	"github.com/runoshun/taskline/internal/tutorial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	m        *Model
	c        *app.Container
	api      *testutil.MockTaskAPI
	review   *testutil.MockReviewAPI
	settings *testutil.MockSettingsAPI
	prefs    *testutil.MockPreferenceStore
	sched    *testutil.FakeScheduler
}

// newFixture builds a model over in-memory ports. The clock is fixed at
// 2026-03-15 09:00 UTC and the tutorial does not auto-start.
func newFixture(t *testing.T, opts Options, tasks ...*domain.Task) *fixture {
	t.Helper()
	clock := &testutil.MockClock{NowTime: time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)}
	f := &fixture{
		api:      testutil.NewMockTaskAPI(tasks...),
		review:   testutil.NewMockReviewAPI(),
		settings: &testutil.MockSettingsAPI{Current: domain.UserSettings{Theme: "light", TimerEnabled: true}},
		prefs:    &testutil.MockPreferenceStore{},
		sched:    testutil.NewFakeScheduler(),
	}
	f.c = app.NewWithDeps(app.Config{ConfigDir: t.TempDir()}, app.Deps{
		Tasks:     f.api,
		Review:    f.review,
		Settings:  f.settings,
		Auth:      &testutil.MockAuthAPI{},
		Data:      &testutil.MockDataAPI{},
		Prefs:     f.prefs,
		Focus:     &testutil.MockFocusLog{},
		Clock:     clock,
		Scheduler: f.sched,
		Log:       &testutil.MockLogger{},
		Cache: cache.New(cache.Options{
			Clock: clock,
			Sleep: func(context.Context, time.Duration) error { return nil },
		}),
	})
	f.c.AppConfig.TUI.ShowTutorial = false

	ctx, cancel := context.WithCancel(context.Background())
	f.m = New(ctx, f.c, opts)
	t.Cleanup(func() {
		cancel()
		f.m.Close()
	})
	return f
}

// load fetches the task list and sizes the window.
func (f *fixture) load(t *testing.T) {
	t.Helper()
	f.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	f.send(f.m.loadTasks(false)())
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.m.Update(msg)
	return cmd
}

func (f *fixture) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		cmd = f.send(k)
	}
	return cmd
}

// runCmd executes cmd and any batched commands it returns, collecting the
// resulting messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// findMsg returns the first message of type T.
func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	require.Failf(t, "message not found", "want %T in %v", zero, msgs)
	return zero
}

func newTask(id int, title string, column domain.Column) *domain.Task {
	statusID := column.StatusID()
	return &domain.Task{
		ID:       id,
		Title:    title,
		Order:    id,
		Done:     column == domain.ColumnDone,
		StatusID: &statusID,
		Status:   domain.TaskStatus{ID: statusID, Name: column.Display()},
	}
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
)

func TestModel_LoadTasks(t *testing.T) {
	f := newFixture(t, Options{},
		newTask(1, "Buy milk", domain.ColumnTodo),
		newTask(2, "Write report", domain.ColumnInProgress),
	)

	f.load(t)

	require.Len(t, f.m.tasks, 2)
	require.NotNil(t, f.m.SelectedTask())
	assert.Equal(t, 1, f.m.SelectedTask().ID)
	assert.Equal(t, 2, f.c.Store.Len())
}

func TestModel_InitialTabFromConfig(t *testing.T) {
	f := newFixture(t, Options{})
	assert.Equal(t, TabList, f.m.Tab())

	f = newFixture(t, Options{InitialTab: TabCalendar})
	assert.Equal(t, TabCalendar, f.m.Tab())
}

func TestModel_LoadFailureWithoutDataShowsBoundary(t *testing.T) {
	f := newFixture(t, Options{})
	f.api.ListErr = &domain.APIError{Code: 500, Message: "boom"}
	f.send(tea.WindowSizeMsg{Width: 100, Height: 30})

	f.send(f.m.loadTasks(false)())

	require.NotNil(t, f.m.failure)
	assert.Equal(t, FailureServer, f.m.failure.kind)
	assert.Contains(t, f.m.View(), "Server error")
}

func TestModel_LoadFailureWithDataStaysInline(t *testing.T) {
	f := newFixture(t, Options{}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)
	f.api.ListErr = &domain.APIError{Code: 400, Message: "bad filter"}

	f.send(f.m.loadTasks(true)())

	assert.Nil(t, f.m.failure)
	assert.Error(t, f.m.err)
	assert.Len(t, f.m.tasks, 1)
}

func TestModel_FailureKeys(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabBoard}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)
	f.m.failure = newFailure(&domain.APIError{Code: 500})

	// Ordinary keys are ignored while the boundary is up.
	f.press(runeKey("n"))
	assert.Equal(t, ModeNormal, f.m.Mode())

	cmd := f.press(runeKey("h"))
	assert.Nil(t, f.m.failure)
	assert.Equal(t, TabList, f.m.Tab())
	assert.NotNil(t, cmd)
}

func TestModel_FailureReloadClearsState(t *testing.T) {
	f := newFixture(t, Options{}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)
	f.m.failure = newFailure(&domain.APIError{Code: 500})

	msgs := runCmd(f.press(runeKey("R")))
	assert.Equal(t, 0, f.c.Store.Len())

	f.send(findMsg[MsgReloaded](t, msgs))
	assert.Nil(t, f.m.failure)
	assert.Empty(t, f.m.tasks)
}

func TestModel_ToggleDoneIsOptimistic(t *testing.T) {
	f := newFixture(t, Options{}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)

	var doneDuringRequest bool
	f.api.OnUpdate = func(id int) {
		if got, ok := f.c.Store.Get(id); ok {
			doneDuringRequest = got.Done
		}
	}

	cmd := f.press(keyEnter)
	assert.Equal(t, 1, f.m.pending)

	msgs := runCmd(cmd)
	assert.True(t, doneDuringRequest)

	f.send(findMsg[MsgTaskUpdated](t, msgs))
	assert.Equal(t, 0, f.m.pending)
	require.NotNil(t, f.m.SelectedTask())
	assert.True(t, f.m.SelectedTask().Done)
}

func TestModel_ToggleDoneFailureRollsBack(t *testing.T) {
	f := newFixture(t, Options{}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)
	f.api.UpdateErr = &domain.APIError{Code: 400, Message: "nope"}

	msgs := runCmd(f.press(keyEnter))
	f.send(findMsg[MsgError](t, msgs))

	assert.Error(t, f.m.err)
	assert.Equal(t, 0, f.m.pending)
	got, ok := f.c.Store.Get(1)
	require.True(t, ok)
	assert.False(t, got.Done)
	assert.False(t, f.m.SelectedTask().Done)
}

func TestModel_StoreTickResyncsWhilePending(t *testing.T) {
	f := newFixture(t, Options{}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)
	f.m.pending = 1

	done := true
	_, err := f.c.Store.Optimistic(1, domain.TaskPatch{Done: &done})
	require.NoError(t, err)
	assert.False(t, f.m.SelectedTask().Done)

	cmd := f.send(storeTickMsg{})
	assert.True(t, f.m.SelectedTask().Done)
	assert.NotNil(t, cmd, "tick re-arms while a mutation is pending")

	f.m.pending = 0
	f.m.tickScheduled = false
	assert.Nil(t, f.send(storeTickMsg{}))
}

func TestModel_CreateTask(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)

	f.press(runeKey("n"))
	require.Equal(t, ModeInputTitle, f.m.Mode())

	// Empty titles are not submitted.
	assert.Nil(t, f.press(keyEnter))

	f.press(runeKey("Buy milk"))
	msgs := runCmd(f.press(keyEnter))
	created := findMsg[MsgTaskCreated](t, msgs)
	assert.Equal(t, 1, created.TaskID)

	msgs = runCmd(f.send(created))
	assert.Equal(t, ModeNormal, f.m.Mode())
	f.send(findMsg[MsgTasksLoaded](t, msgs))

	require.Len(t, f.m.tasks, 1)
	assert.Equal(t, "Buy milk", f.m.tasks[0].Title)
}

func TestModel_CreateTaskEscCancels(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)

	f.press(runeKey("n"), runeKey("draft"), keyEsc)

	assert.Equal(t, ModeNormal, f.m.Mode())
	assert.Empty(t, f.m.titleInput.Value())
	assert.Equal(t, 0, f.api.CreateCalls)
}

func TestModel_DeleteTaskConfirm(t *testing.T) {
	f := newFixture(t, Options{},
		newTask(1, "Buy milk", domain.ColumnTodo),
		newTask(2, "Write report", domain.ColumnTodo),
	)
	f.load(t)

	f.press(runeKey("d"))
	require.Equal(t, ModeConfirm, f.m.Mode())
	assert.Equal(t, ConfirmDelete, f.m.confirmAction)
	assert.Equal(t, 1, f.m.confirmTaskID)

	f.press(runeKey("n"))
	assert.Equal(t, ModeNormal, f.m.Mode())
	assert.Equal(t, ConfirmNone, f.m.confirmAction)

	msgs := runCmd(f.press(runeKey("d"), runeKey("y")))
	f.send(findMsg[MsgTaskDeleted](t, msgs))

	assert.Equal(t, ModeNormal, f.m.Mode())
	require.Len(t, f.m.tasks, 1)
	assert.Equal(t, 2, f.m.tasks[0].ID)
}

func TestModel_ArchiveCompleted(t *testing.T) {
	f := newFixture(t, Options{},
		newTask(1, "Buy milk", domain.ColumnDone),
		newTask(2, "Write report", domain.ColumnTodo),
	)
	f.load(t)

	f.press(runeKey("a"))
	require.Equal(t, ConfirmArchiveComplete, f.m.confirmAction)

	msgs := runCmd(f.press(runeKey("y")))
	f.send(findMsg[MsgArchived](t, msgs))

	assert.Equal(t, ModeNormal, f.m.Mode())
	assert.Equal(t, "Archived 1 completed tasks", f.m.message)

	f.send(MsgClearError{})
	assert.Empty(t, f.m.message)
}

func TestModel_TabNavigation(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)

	f.press(keyTab)
	assert.Equal(t, TabBoard, f.m.Tab())

	f.press(keyShiftTab, keyShiftTab)
	assert.Equal(t, TabSettings, f.m.Tab())

	msgs := runCmd(f.press(runeKey("5")))
	assert.Equal(t, TabReview, f.m.Tab())
	f.send(findMsg[MsgReviewLoaded](t, msgs))
	assert.NotNil(t, f.m.review)

	// Second visit does not reload.
	f.press(runeKey("1"))
	assert.Nil(t, f.press(runeKey("5")))
}

func TestModel_BoardMoveCard(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabBoard}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)

	// No column left of To Do.
	assert.Nil(t, f.press(runeKey("<")))

	msgs := runCmd(f.press(runeKey(">")))
	assert.Equal(t, 1, f.m.boardCol)
	f.send(findMsg[MsgTaskUpdated](t, msgs))

	got, ok := f.c.Store.Get(1)
	require.True(t, ok)
	assert.Equal(t, domain.ColumnInProgress, got.Column())
	require.NotNil(t, f.m.selectedCard())
	assert.Equal(t, 1, f.m.selectedCard().ID)
}

func TestModel_BoardCursorClamps(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabBoard},
		newTask(1, "A", domain.ColumnTodo),
		newTask(2, "B", domain.ColumnTodo),
	)
	f.load(t)

	f.press(keyDown, keyDown, keyDown)
	assert.Equal(t, 1, f.m.boardRow)

	f.press(runeKey("l"))
	assert.Equal(t, 1, f.m.boardCol)
	assert.Equal(t, 0, f.m.boardRow)
	assert.Nil(t, f.m.selectedCard())
}

func TestModel_CalendarKeys(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabCalendar})
	f.load(t)

	f.press(runeKey("l"))
	assert.Equal(t, 16, f.m.calDay.Day())

	f.press(runeKey("j"))
	assert.Equal(t, 23, f.m.calDay.Day())

	f.press(runeKey("]"))
	assert.Equal(t, time.April, f.m.calMonth.Month())
	assert.Equal(t, 1, f.m.calDay.Day())

	f.press(runeKey("g"))
	assert.Equal(t, time.March, f.m.calDay.Month())
	assert.Equal(t, 15, f.m.calDay.Day())
	assert.Equal(t, 1, f.m.calMonth.Day())
}

func TestModel_CalendarDayTasks(t *testing.T) {
	due := newTask(1, "Dentist", domain.ColumnTodo)
	due.DueDate = "2026-03-15T10:00:00"
	f := newFixture(t, Options{InitialTab: TabCalendar}, due, newTask(2, "Someday", domain.ColumnTodo))
	f.load(t)

	tasks := f.m.dayTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Dentist", tasks[0].Title)

	f.press(runeKey("l"))
	assert.Empty(t, f.m.dayTasks())
}

func TestModel_TimerKeys(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabTimer})
	f.load(t)

	f.press(runeKey(" "))
	assert.Equal(t, pomodoro.StatusRunning, f.m.timer.Status)

	f.sched.Advance(3 * time.Second)
	f.press(runeKey(" "))
	assert.Equal(t, pomodoro.StatusPaused, f.m.timer.Status)
	assert.Less(t, f.m.timer.TimeLeft, pomodoro.WorkDuration)

	f.press(runeKey("x"))
	assert.Equal(t, pomodoro.StatusIdle, f.m.timer.Status)
	assert.Equal(t, pomodoro.WorkDuration, f.m.timer.TimeLeft)

	f.press(runeKey("s"))
	assert.Equal(t, pomodoro.SessionBreak, f.m.timer.Session)
}

func TestModel_TimerSelector(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabTimer},
		newTask(1, "Buy milk", domain.ColumnTodo),
		newTask(2, "Write report", domain.ColumnTodo),
		newTask(3, "Old report", domain.ColumnDone),
	)
	f.load(t)

	f.press(runeKey("t"))
	require.Equal(t, ModeSelector, f.m.Mode())
	assert.Len(t, f.m.selectorTasks(), 2, "done tasks are not offered")

	f.press(runeKey("report"))
	require.Len(t, f.m.selectorTasks(), 1)

	f.press(keyEnter)
	assert.Equal(t, ModeNormal, f.m.Mode())
	require.NotNil(t, f.m.focusTask())
	assert.Equal(t, 2, f.m.focusTask().ID)
	assert.False(t, f.m.selector.Open)
	assert.Empty(t, f.m.selector.Search)

	f.press(runeKey("t"), tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Nil(t, f.m.focusTask())
	assert.Equal(t, ModeNormal, f.m.Mode())
}

func TestModel_WorkSessionRecordsFocus(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabTimer}, newTask(1, "Buy milk", domain.ColumnTodo))
	f.load(t)
	f.press(runeKey("t"), keyEnter)
	require.NotNil(t, f.m.focusTask())

	ev := pomodoro.Event{
		Type:     pomodoro.EventSessionComplete,
		Finished: pomodoro.SessionWork,
		State:    pomodoro.State{Session: pomodoro.SessionBreak, Status: pomodoro.StatusCompleted},
	}
	_, cmd := f.m.handleTimerEvent(ev)
	require.NotNil(t, cmd)
	assert.Equal(t, pomodoro.StatusCompleted, f.m.timer.Status)

	log, err := f.c.FocusLog()
	require.NoError(t, err)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.Len(t, batch, 2)
	msg := batch[1]()
	today, ok := msg.(MsgFocusToday)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, 1, today.Sessions)

	sessions, err := log.List(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, 1, sessions[0].TaskID)
}

func TestModel_SettingsToggle(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabSettings})
	f.load(t)
	f.send(f.m.loadSettings()())
	require.NotNil(t, f.m.settings)

	msgs := runCmd(f.press(keyEnter))
	f.send(findMsg[MsgSettingsLoaded](t, msgs))
	assert.False(t, f.m.settings.TimerEnabled)

	f.press(keyDown, keyDown)
	msgs = runCmd(f.press(keyEnter))
	f.send(findMsg[MsgSettingsLoaded](t, msgs))
	assert.Equal(t, "dark", f.m.settings.Theme)
}

func TestModel_SettingsFailureShowsAlert(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabSettings})
	f.load(t)
	f.send(f.m.loadSettings()())
	f.settings.UpdateErr = &domain.APIError{Code: 400, Message: "invalid theme"}

	msgs := runCmd(f.press(keyEnter))
	f.send(findMsg[MsgSettingsFailed](t, msgs))

	require.Equal(t, ModeAlert, f.m.Mode())
	assert.Contains(t, f.m.alert, "Failed to save settings")
	assert.Contains(t, f.m.View(), "Failed to save settings")

	f.press(keyEnter)
	assert.Equal(t, ModeNormal, f.m.Mode())
	assert.Empty(t, f.m.alert)
}

func TestModel_SettingsRestartsTutorial(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabSettings})
	f.prefs.Prefs.TutorialCompleted = true
	f.load(t)

	f.press(keyDown, keyDown, keyDown, keyDown)
	require.Equal(t, "tutorial", settingRows[f.m.settingsCursor])
	f.press(keyEnter)

	assert.True(t, f.m.tutorial.Active())
	assert.False(t, f.prefs.Prefs.TutorialCompleted)
	assert.Equal(t, TabList, f.m.Tab(), "first step navigates to the list")
}

func TestModel_HelpMode(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)

	f.press(runeKey("?"))
	assert.Equal(t, ModeHelp, f.m.Mode())
	assert.Contains(t, f.m.View(), "KEYBOARD SHORTCUTS")

	f.press(keyEsc)
	assert.Equal(t, ModeNormal, f.m.Mode())
}

func TestModel_TutorialStartAndExit(t *testing.T) {
	f := newFixture(t, Options{InitialTab: TabBoard, StartTutorial: true})
	f.m.Init()

	require.True(t, f.m.tutorial.Active())
	assert.Equal(t, TabList, f.m.Tab())
	assert.False(t, f.m.tutorial.TooltipVisible(), "hidden while navigating")

	f.sched.Advance(tutorial.NavigationGrace)
	assert.True(t, f.m.tutorial.TooltipVisible())

	f.load(t)
	assert.Contains(t, f.m.View(), "Welcome to Your Workspace!")

	// Tutorial keys take precedence in normal mode.
	f.press(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, f.m.tutorial.Index())

	f.press(keyEsc)
	assert.False(t, f.m.tutorial.Active())
	assert.True(t, f.prefs.Prefs.TutorialCompleted)
}

func TestModel_TutorialAutoStart(t *testing.T) {
	f := newFixture(t, Options{})
	f.m.autoTutorial = true
	f.m.Init()
	assert.False(t, f.m.tutorial.Active())

	f.sched.Advance(tutorial.AutoStartDelay)
	assert.True(t, f.m.tutorial.Active())

	select {
	case <-f.m.tutorCh:
	default:
		t.Fatal("tutorial change was not signalled")
	}
}

func TestModel_TooltipDrag(t *testing.T) {
	f := newFixture(t, Options{StartTutorial: true})
	f.m.Init()
	f.load(t)
	require.True(t, f.m.tutorial.TooltipVisible())

	f.m.View()
	start := f.m.tooltipAt
	require.NotZero(t, start.W)

	press := tea.MouseMsg{X: start.X + 1, Y: start.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	f.send(press)
	require.True(t, f.m.dragging)

	f.send(tea.MouseMsg{X: start.X - 2, Y: start.Y - 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	f.send(tea.MouseMsg{X: start.X - 2, Y: start.Y - 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, f.m.dragging)

	f.m.View()
	assert.Equal(t, start.X-3, f.m.tooltipAt.X)
	assert.Equal(t, start.Y-2, f.m.tooltipAt.Y)
}

func TestModel_PanicInUpdateShowsBoundary(t *testing.T) {
	f := newFixture(t, Options{})
	f.load(t)
	engine := f.m.engine
	f.m.engine = nil
	defer func() { f.m.engine = engine }()

	f.m.switchTab(TabTimer)
	_, cmd := f.m.Update(runeKey(" "))

	assert.Nil(t, cmd)
	require.NotNil(t, f.m.failure)
	assert.Equal(t, FailureGeneric, f.m.failure.kind)
	assert.Contains(t, f.m.View(), "Something went wrong")
}
