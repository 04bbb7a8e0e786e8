package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskline/internal/app"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/selector"
	"github.com/runoshun/taskline/internal/tutorial"
	"github.com/runoshun/taskline/internal/usecase"
)

// Options configures a TUI session.
type Options struct {
	InitialTab    Tab  // Empty uses the configured default view
	StartTutorial bool // Start the tutorial immediately
}

// storeTickInterval is how often the views resync from the task store while
// optimistic mutations are in flight.
const storeTickInterval = 50 * time.Millisecond

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	ctx       context.Context
	nav       *routeNav
	tutorial  *tutorial.Tutorial
	anchors   *tutorial.AnchorRegistry
	engine    *pomodoro.Engine
	timerCh   <-chan pomodoro.Event
	tutorCh   chan struct{}
	failure   *failure
	review    *usecase.ShowReviewOutput
	settings  *domain.UserSettings
	err       error

	// State (slices - contain pointers)
	tasks   []*domain.Task
	loaded  map[Tab]bool
	alert   string
	message string

	// Components (structs with pointers)
	keys        KeyMap
	tutorKeys   tutorial.KeyMap
	styles      Styles
	help        help.Model
	taskList    list.Model
	progress    progress.Model
	titleInput  textinput.Model
	searchInput textinput.Model
	selector    selector.Selector
	timer       pomodoro.State
	calMonth    time.Time
	calDay      time.Time
	tooltipAt   tutorial.Rect
	focusToday  time.Duration

	// Numeric state (smaller types last)
	storeVer       uint64
	mode           Mode
	confirmAction  ConfirmAction
	width          int
	height         int
	confirmTaskID  int
	boardCol       int
	boardRow       int
	selectorCursor int
	settingsCursor int
	focusSessions  int
	pending        int
	dragX          int
	dragY          int
	dragging       bool
	startTutorial  bool
	autoTutorial   bool
	tickScheduled  bool
}

// New creates a new TUI Model with the given container.
func New(ctx context.Context, c *app.Container, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 200

	si := textinput.New()
	si.Placeholder = "Search tasks..."
	si.CharLimit = 100

	styles := DefaultStyles()
	taskList := list.New([]list.Item{}, newTaskDelegate(styles), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	tab := opts.InitialTab
	showTutorial := true
	if c.AppConfig != nil {
		if tab == "" {
			tab, _ = ParseTab(c.AppConfig.TUI.DefaultView)
		}
		showTutorial = c.AppConfig.TUI.ShowTutorial
	}
	if tab == "" {
		tab = TabList
	}

	now := c.Clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	nav := newRouteNav(tab)
	engine := c.NewEngine()
	m := &Model{
		container:     c,
		ctx:           ctx,
		nav:           nav,
		tutorial:      c.NewTutorial(nav),
		anchors:       tutorial.NewAnchorRegistry(),
		engine:        engine,
		timerCh:       engine.Subscribe(16),
		tutorCh:       make(chan struct{}, 1),
		loaded:        make(map[Tab]bool),
		keys:          DefaultKeyMap(),
		tutorKeys:     tutorial.DefaultKeyMap(),
		styles:        styles,
		help:          help.New(),
		taskList:      taskList,
		progress:      progress.New(progress.WithGradient(string(Colors.Work), string(Colors.Warning)), progress.WithoutPercentage()),
		titleInput:    ti,
		searchInput:   si,
		timer:         engine.State(),
		calMonth:      time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		calDay:        today,
		mode:          ModeNormal,
		startTutorial: opts.StartTutorial,
		autoTutorial:  showTutorial,
	}
	m.selector.OnChange = m.focusTaskChanged
	m.tutorial.SetOnChange(m.notifyTutorial)
	return m
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.loadTasks(false),
		m.loadFocusToday(),
		m.waitTimer(),
		m.waitTutorial(),
	}
	m.loaded[TabList] = true
	if cmd := m.ensureTabData(m.nav.Tab()); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch {
	case m.startTutorial:
		m.tutorial.Start()
	case m.autoTutorial:
		if _, err := m.tutorial.MaybeAutoStart(); err != nil {
			m.container.Log.Warn(0, "tutorial", err.Error())
		}
	}
	return tea.Batch(cmds...)
}

// Close stops the background timers owned by the model.
func (m *Model) Close() {
	m.engine.Close()
	m.tutorial.Close()
}

// Tab returns the active tab.
func (m *Model) Tab() Tab {
	return m.nav.Tab()
}

// Mode returns the current UI mode.
func (m *Model) Mode() Mode {
	return m.mode
}

// SelectedTask returns the task under the list cursor, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	if m.taskList.SelectedItem() == nil {
		return nil
	}
	if ti, ok := m.taskList.SelectedItem().(taskItem); ok {
		return ti.task
	}
	return nil
}

// notifyTutorial is the tutorial change callback. It runs on scheduler
// goroutines and must not block.
func (m *Model) notifyTutorial() {
	select {
	case m.tutorCh <- struct{}{}:
	default:
	}
}

// waitTutorial returns a command that delivers the next tutorial change.
func (m *Model) waitTutorial() tea.Cmd {
	ch := m.tutorCh
	ctx := m.ctx
	return func() tea.Msg {
		select {
		case <-ch:
			return MsgTutorialChanged{}
		case <-ctx.Done():
			return nil
		}
	}
}

// waitTimer returns a command that delivers the next engine event.
func (m *Model) waitTimer() tea.Cmd {
	ch := m.timerCh
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return MsgTimer{Event: ev}
	}
}

// storeTickMsg asks the model to resync from the task store.
type storeTickMsg struct{}

// scheduleStoreTick arms a single pending store resync.
func (m *Model) scheduleStoreTick() tea.Cmd {
	if m.tickScheduled {
		return nil
	}
	m.tickScheduled = true
	return tea.Tick(storeTickInterval, func(time.Time) tea.Msg { return storeTickMsg{} })
}

// syncFromStore refreshes the list items when the store changed.
func (m *Model) syncFromStore() {
	store := m.container.Store
	if v := store.Version(); v != m.storeVer || m.tasks == nil {
		m.storeVer = v
		m.tasks = store.List()
		m.updateTaskList()
	}
}

// updateTaskList updates the task list items from tasks, keeping the cursor
// on the same task when it still exists.
func (m *Model) updateTaskList() {
	var selectedID int
	if t := m.SelectedTask(); t != nil {
		selectedID = t.ID
	}
	items := make([]list.Item, 0, len(m.tasks))
	cursor := 0
	for i, task := range m.tasks {
		if task.ID == selectedID {
			cursor = i
		}
		items = append(items, taskItem{task: task})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(min(cursor, len(items)-1))
	}
	m.clampBoardCursor()
}

// boardColumn returns the tasks in the board column at index i.
func (m *Model) boardColumn(i int) []*domain.Task {
	cols := domain.AllColumns()
	if i < 0 || i >= len(cols) {
		return nil
	}
	return m.container.Store.ByColumn()[cols[i]]
}

// selectedCard returns the task under the board cursor, or nil.
func (m *Model) selectedCard() *domain.Task {
	tasks := m.boardColumn(m.boardCol)
	if m.boardRow < 0 || m.boardRow >= len(tasks) {
		return nil
	}
	return tasks[m.boardRow]
}

func (m *Model) clampBoardCursor() {
	n := len(m.boardColumn(m.boardCol))
	if m.boardRow >= n {
		m.boardRow = n - 1
	}
	if m.boardRow < 0 {
		m.boardRow = 0
	}
}

// dayTasks returns the tasks due on the selected calendar day.
func (m *Model) dayTasks() []*domain.Task {
	return m.container.Store.ByDate()[domain.FormatLocalDate(m.calDay)]
}

// focusTask returns the task the timer is attached to, or nil.
func (m *Model) focusTask() *domain.Task {
	return m.selector.Selected(m.tasks)
}

// selectorTasks returns the tasks the selector offers.
func (m *Model) selectorTasks() []*domain.Task {
	return m.selector.Visible(m.tasks)
}

func (m *Model) focusTaskChanged(id *int) {
	if id == nil {
		m.container.Log.Debug(0, "timer", "focus task cleared")
		return
	}
	m.container.Log.Debug(*id, "timer", "focus task selected")
}
