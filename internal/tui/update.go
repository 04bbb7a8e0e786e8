package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/tutorial"
)

// messageTTL is how long inline success messages stay visible.
const messageTTL = 3 * time.Second

// Update handles messages and updates the model.
// A panic while handling a message is caught by the error boundary.
func (m *Model) Update(msg tea.Msg) (model tea.Model, cmd tea.Cmd) {
	defer func() {
		if f := m.recoverFailure(recover(), "update"); f != nil {
			m.failure = f
			model, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case storeTickMsg:
		m.tickScheduled = false
		m.syncFromStore()
		if m.pending > 0 {
			return m, m.scheduleStoreTick()
		}
		return m, nil

	case MsgTasksLoaded:
		m.syncFromStore()
		return m, nil

	case MsgTaskCreated:
		m.mode = ModeNormal
		m.titleInput.Reset()
		return m, m.loadTasks(false)

	case MsgTaskUpdated:
		m.settle()
		m.syncFromStore()
		return m, nil

	case MsgTaskDeleted:
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.syncFromStore()
		return m, nil

	case MsgArchived:
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		m.message = fmt.Sprintf("Archived %d completed tasks", msg.Count)
		return m, tea.Batch(m.loadTasks(false), clearMessageAfter(messageTTL))

	case MsgReviewLoaded:
		m.review = msg.Review
		return m, nil

	case MsgSettingsLoaded:
		m.settings = msg.Settings
		return m, nil

	case MsgSettingsFailed:
		m.mode = ModeAlert
		m.alert = "Failed to save settings: " + domain.UserMessage(msg.Err)
		return m, nil

	case MsgTimer:
		return m.handleTimerEvent(msg.Event)

	case MsgFocusToday:
		m.focusToday = msg.Total
		m.focusSessions = msg.Sessions
		return m, nil

	case MsgTutorialChanged:
		return m, tea.Batch(m.waitTutorial(), m.ensureTabData(m.Tab()))

	case MsgError:
		m.settle()
		m.syncFromStore()
		m.err = msg.Err
		if m.mode == ModeConfirm {
			m.mode = ModeNormal
			m.confirmAction = ConfirmNone
		}
		return m, nil

	case MsgFatal:
		m.failure = newFailure(msg.Err)
		return m, nil

	case MsgClearError:
		m.err = nil
		m.message = ""
		return m, nil

	case MsgReloaded:
		m.failure = nil
		m.review = nil
		m.settings = nil
		m.tasks = nil
		m.syncFromStore()
		m.loaded = map[Tab]bool{TabList: true}
		return m, tea.Batch(m.loadTasks(false), m.loadFocusToday(), m.ensureTabData(m.Tab()))
	}

	return m, nil
}

// settle records that one optimistic mutation finished.
func (m *Model) settle() {
	if m.pending > 0 {
		m.pending--
	}
}

// updateLayoutSizes resizes components to the window.
func (m *Model) updateLayoutSizes() {
	w := max(m.width-2, 20)
	m.taskList.SetSize(w, max(m.bodyHeight()-2, 2))
	m.progress.Width = min(w, 60)
	m.titleInput.Width = min(w-10, 60)
	m.searchInput.Width = min(w-10, 40)
}

// bodyHeight returns the rows available between the tab bar and the footer.
func (m *Model) bodyHeight() int {
	return max(m.height-bodyTop-2, 4)
}

func (m *Model) handleTimerEvent(ev pomodoro.Event) (tea.Model, tea.Cmd) {
	m.timer = ev.State
	cmds := []tea.Cmd{m.waitTimer()}
	if ev.Type == pomodoro.EventSessionComplete && ev.Finished == pomodoro.SessionWork {
		if t := m.focusTask(); t != nil {
			cmds = append(cmds, m.recordFocus(t.ID))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear error on any key press
	if m.err != nil {
		m.err = nil
	}

	if m.failure != nil {
		return m.handleFailureKeys(msg)
	}

	if m.tutorial.Active() && m.mode == ModeNormal {
		if model, cmd, ok := m.handleTutorialKeys(msg); ok {
			return model, cmd
		}
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeInputTitle:
		return m.handleInputTitleMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeSelector:
		return m.handleSelectorMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeAlert:
		return m.handleAlertMode(msg)
	}

	return m, nil
}

// handleTutorialKeys applies tutorial navigation keys. It reports whether
// the key was consumed.
func (m *Model) handleTutorialKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	action := m.tutorKeys.Action(msg)
	if action == tutorial.ActionNone {
		return m, nil, false
	}
	if err := m.tutorial.Apply(action); err != nil {
		m.err = err
	}
	return m, m.ensureTabData(m.Tab()), true
}

// handleFailureKeys handles the error boundary recovery keys.
func (m *Model) handleFailureKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Retry):
		m.failure = nil
		return m, m.refreshTab()

	case key.Matches(msg, m.keys.Reload):
		return m, m.reloadAll()

	case key.Matches(msg, m.keys.Home):
		m.failure = nil
		m.mode = ModeNormal
		m.nav.SetTab(TabList)
		return m, m.loadTasks(false)
	}
	return m, nil
}

// handleNormalMode handles global keys, then per-tab keys.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab(m.Tab().offset(1))

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTab(m.Tab().offset(-1))

	case key.Matches(msg, m.keys.JumpTab):
		if tab, ok := tabForKey(msg.String()); ok {
			return m.switchTab(tab)
		}
		return m, nil

	case key.Matches(msg, m.keys.Tutorial):
		m.tutorial.Start()
		return m, m.ensureTabData(m.Tab())
	}

	switch m.Tab() {
	case TabList:
		return m.handleListKeys(msg)
	case TabBoard:
		return m.handleBoardKeys(msg)
	case TabCalendar:
		return m.handleCalendarKeys(msg)
	case TabTimer:
		return m.handleTimerKeys(msg)
	case TabReview:
		if key.Matches(msg, m.keys.Refresh) {
			return m, m.refreshTab()
		}
	case TabSettings:
		return m.handleSettingsKeys(msg)
	}
	return m, nil
}

// switchTab activates tab and loads its data on first visit.
func (m *Model) switchTab(tab Tab) (tea.Model, tea.Cmd) {
	m.nav.SetTab(tab)
	return m, m.ensureTabData(tab)
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInputTitle
		m.titleInput.Reset()
		return m, m.titleInput.Focus()

	case key.Matches(msg, m.keys.ToggleDone):
		if t := m.SelectedTask(); t != nil {
			return m, m.setDone(t.ID, !t.Done)
		}

	case key.Matches(msg, m.keys.Priority):
		if t := m.SelectedTask(); t != nil {
			return m, m.togglePriority(t)
		}

	case key.Matches(msg, m.keys.Delete):
		if t := m.SelectedTask(); t != nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDelete
			m.confirmTaskID = t.ID
		}

	case key.Matches(msg, m.keys.Archive):
		m.mode = ModeConfirm
		m.confirmAction = ConfirmArchiveComplete

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshTab()
	}
	return m, nil
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := domain.AllColumns()
	switch {
	case key.Matches(msg, m.keys.Left):
		m.boardCol = max(m.boardCol-1, 0)
		m.clampBoardCursor()

	case key.Matches(msg, m.keys.Right):
		m.boardCol = min(m.boardCol+1, len(cols)-1)
		m.clampBoardCursor()

	case key.Matches(msg, m.keys.Up):
		m.boardRow = max(m.boardRow-1, 0)

	case key.Matches(msg, m.keys.Down):
		m.boardRow++
		m.clampBoardCursor()

	case key.Matches(msg, m.keys.MoveLeft), key.Matches(msg, m.keys.MoveRight):
		card := m.selectedCard()
		if card == nil {
			return m, nil
		}
		target := m.boardCol - 1
		if key.Matches(msg, m.keys.MoveRight) {
			target = m.boardCol + 1
		}
		if target < 0 || target >= len(cols) {
			return m, nil
		}
		m.boardCol = target
		m.boardRow = 0
		return m, m.moveTask(card.ID, cols[target])

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshTab()
	}
	return m, nil
}

func (m *Model) handleCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveCalendarDay(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCalendarDay(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCalendarDay(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveCalendarDay(7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.moveCalendarMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.moveCalendarMonth(1)
	case key.Matches(msg, m.keys.Today):
		now := m.container.Clock.Now()
		m.calDay = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		m.calMonth = firstOfMonth(m.calDay)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshTab()
	}
	return m, nil
}

func (m *Model) moveCalendarDay(days int) {
	m.calDay = m.calDay.AddDate(0, 0, days)
	m.calMonth = firstOfMonth(m.calDay)
}

func (m *Model) moveCalendarMonth(months int) {
	m.calMonth = m.calMonth.AddDate(0, months, 0)
	m.calDay = m.calMonth
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (m *Model) handleTimerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.StartPause):
		if m.timer.Status == pomodoro.StatusRunning {
			m.engine.Pause()
		} else {
			m.engine.Start()
		}
	case key.Matches(msg, m.keys.Stop):
		m.engine.Stop()
	case key.Matches(msg, m.keys.Skip):
		m.engine.Skip()
	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
	case key.Matches(msg, m.keys.PickTask):
		m.selector.Toggle()
		if m.selector.Open {
			m.mode = ModeSelector
			m.selectorCursor = 0
			m.searchInput.Reset()
			return m, m.searchInput.Focus()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshTab()
	}
	m.timer = m.engine.State()
	return m, nil
}

// settingRows lists the editable settings in display order.
var settingRows = []string{"timer_enabled", "notes_enabled", "theme", "auto_lock_minutes", "tutorial"}

// autoLockChoices are the auto-lock values cycled through by the settings tab.
var autoLockChoices = []int{0, 5, 15, 30, 60}

func (m *Model) handleSettingsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.settingsCursor = max(m.settingsCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.settingsCursor = min(m.settingsCursor+1, len(settingRows)-1)
	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSetting(settingRows[m.settingsCursor])
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshTab()
	}
	return m, nil
}

// toggleSetting advances the setting under the cursor to its next value.
func (m *Model) toggleSetting(name string) (tea.Model, tea.Cmd) {
	if name == "tutorial" {
		if err := m.tutorial.Reset(); err != nil {
			m.err = err
			return m, nil
		}
		m.tutorial.Start()
		return m, m.ensureTabData(m.Tab())
	}
	if m.settings == nil {
		return m, nil
	}

	s := m.settings
	var patch domain.SettingsPatch
	var err error
	switch name {
	case "timer_enabled":
		err = patch.ParseSetting(name, fmt.Sprint(!s.TimerEnabled))
	case "notes_enabled":
		err = patch.ParseSetting(name, fmt.Sprint(!s.NotesEnabled))
	case "theme":
		err = patch.ParseSetting(name, nextOf(domain.Themes, s.Theme))
	case "auto_lock_minutes":
		err = patch.ParseSetting(name, fmt.Sprint(nextOf(autoLockChoices, s.AutoLockMinutes)))
	}
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, m.updateSettings(patch)
}

// nextOf returns the element after cur in values, wrapping around.
// Values not in the list map to the first element.
func nextOf[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		switch m.confirmAction {
		case ConfirmNone:
			m.mode = ModeNormal
		case ConfirmDelete:
			return m, m.deleteTask(m.confirmTaskID)
		case ConfirmArchiveComplete:
			return m, m.archiveCompleted()
		}
	}

	return m, nil
}

func (m *Model) handleInputTitleMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.titleInput.Reset()
		m.titleInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		title := m.titleInput.Value()
		if title == "" {
			return m, nil
		}
		m.titleInput.Blur()
		return m, m.createTask(title)
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m *Model) handleSelectorMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.selectorTasks()
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.selector.Close()
		m.closeSelector()
		return m, nil

	case key.Matches(msg, m.keys.ClearTask):
		m.selector.Clear()
		m.closeSelector()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.selectorCursor < len(visible) {
			m.selector.Select(visible[m.selectorCursor].ID)
		}
		m.closeSelector()
		return m, nil

	case msg.Type == tea.KeyUp:
		m.selectorCursor = max(m.selectorCursor-1, 0)
		return m, nil

	case msg.Type == tea.KeyDown:
		m.selectorCursor = min(m.selectorCursor+1, max(len(visible)-1, 0))
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.selector.SetSearch(m.searchInput.Value())
	m.selectorCursor = 0
	return m, cmd
}

func (m *Model) closeSelector() {
	m.mode = ModeNormal
	m.searchInput.Blur()
	m.searchInput.Reset()
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Quit) {
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *Model) handleAlertMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) || key.Matches(msg, m.keys.Submit) {
		m.mode = ModeNormal
		m.alert = ""
	}
	return m, nil
}

// handleMouseMsg drags the tutorial tooltip.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.tutorial.TooltipVisible() {
		m.dragging = false
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && m.tooltipAt.Contains(msg.X, msg.Y) {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.tutorial.Drag(msg.X-m.dragX, msg.Y-m.dragY)
			m.dragX, m.dragY = msg.X, msg.Y
		}
	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}
