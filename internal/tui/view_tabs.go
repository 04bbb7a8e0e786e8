package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/tutorial"
)

// hintsFor converts bindings to status line hints.
func hintsFor(bindings []key.Binding) []KeyHint {
	hints := make([]KeyHint, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, KeyHint{Key: h.Key, Desc: h.Desc})
	}
	return hints
}

// errorText returns the user-facing text for an error.
func errorText(err error) string {
	if err == nil {
		return ""
	}
	return domain.UserMessage(err)
}

// contentWidth returns the usable body width.
func (m *Model) contentWidth() int {
	return max(m.width-2, 20)
}

func (m *Model) viewList() string {
	w := m.contentWidth()
	var b strings.Builder

	add := m.styles.HelpKey.Render("[+]") + " New task " + m.styles.Footer.Render("(n)")
	m.register(tutorial.AnchorAddTask, 0, 0, lipgloss.Width(add), 1)
	b.WriteString(add)
	b.WriteString(m.styles.Footer.Render(fmt.Sprintf("   %d tasks", len(m.tasks))))
	b.WriteString("\n")

	if m.mode == ModeInputTitle {
		line := m.styles.InputPrompt.Render("Title: ") + m.titleInput.View()
		m.register(tutorial.AnchorTaskTitleInput, 0, 1, w, 1)
		b.WriteString(line)
	}
	b.WriteString("\n")

	if len(m.tasks) == 0 {
		b.WriteString(m.styles.TaskDesc.Render("No tasks yet. Press n to create one."))
		return b.String()
	}

	// Items are two rows high; the selected one gets the item anchors.
	per := max(m.taskList.Paginator.PerPage, 1)
	row := 2 + (m.taskList.Index()%per)*2
	m.register(tutorial.AnchorTaskItem, 0, row, w, 2)
	m.register(tutorial.AnchorTaskItemMenu, max(w-8, 0), row, 8, 1)
	b.WriteString(m.taskList.View())
	return b.String()
}

func (m *Model) viewBoard() string {
	const gap = 1
	cols := domain.AllColumns()
	colW := max((m.contentWidth()-gap*(len(cols)-1))/len(cols), 14)
	innerW := colW - 4 // border + padding
	colH := max(m.bodyHeight()-2, 3)
	maxCards := max(colH-2, 1)
	byColumn := m.container.Store.ByColumn()

	rendered := make([]string, 0, len(cols))
	for i, c := range cols {
		tasks := byColumn[c]
		active := i == m.boardCol

		header := m.styles.ColumnStyle(c).Bold(true).Render(truncate(fmt.Sprintf("%s %s (%d)", ColumnIcon(c), c.Display(), len(tasks)), innerW))
		lines := []string{header, ""}

		start := 0
		if active && m.boardRow >= maxCards {
			start = m.boardRow - maxCards + 1
		}
		for j := start; j < len(tasks) && j-start < maxCards; j++ {
			t := tasks[j]
			label := truncate(fmt.Sprintf("#%d %s", t.ID, escapeNewlines(t.Title)), innerW-3)
			style := m.styles.Card
			prefix := "  "
			if active && j == m.boardRow {
				style = m.styles.CardSelected
				prefix = "> "
				m.register(tutorial.AnchorBoardCard, i*(colW+gap)+2, 3+j-start, innerW, 1)
			}
			flag := " "
			if t.Priority {
				flag = m.styles.Priority.Render("!")
			}
			lines = append(lines, prefix+flag+style.Render(label))
		}
		if len(tasks) == 0 {
			lines = append(lines, m.styles.TaskDesc.Render("(empty)"))
		}

		style := m.styles.BoardColumn
		if active {
			style = m.styles.BoardColumnActive
		}
		box := style.Width(colW - 2).Height(colH).Render(strings.Join(lines, "\n"))
		if c == domain.ColumnTodo {
			m.register(tutorial.AnchorBoardTodo, i*(colW+gap), 0, colW, lipgloss.Height(box))
			if !active && len(tasks) > 0 {
				m.register(tutorial.AnchorBoardCard, i*(colW+gap)+2, 3, innerW, 1)
			}
		}
		rendered = append(rendered, box)
		if i < len(cols)-1 {
			rendered = append(rendered, strings.Repeat(" ", gap))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// calendarCellWidth is the width of one day in the month grid.
const calendarCellWidth = 4

func (m *Model) viewCalendar() string {
	byDate := m.container.Store.ByDate()
	now := m.container.Clock.Now()
	today := domain.FormatLocalDate(now)
	first := m.calMonth
	offset := (int(first.Weekday()) + 6) % 7 // Monday first
	days := first.AddDate(0, 1, -1).Day()

	var grid strings.Builder
	grid.WriteString(m.styles.SectionHead.Render(first.Format("January 2006")))
	grid.WriteString("\n")
	for _, d := range []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"} {
		grid.WriteString(m.styles.CalendarDay.Foreground(Colors.Muted).Render(d))
	}
	grid.WriteString("\n")

	eventAnchored := false
	grid.WriteString(strings.Repeat(" ", offset*calendarCellWidth))
	for d := 1; d <= days; d++ {
		date := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, first.Location())
		day := domain.FormatLocalDate(date)
		idx := offset + d - 1
		style := m.styles.CalendarDay
		switch {
		case date.Equal(m.calDay):
			style = m.styles.CalendarSelected
		case len(byDate[day]) > 0:
			style = m.styles.CalendarHasTasks
		case day == today:
			style = m.styles.CalendarToday
		}
		if len(byDate[day]) > 0 && !eventAnchored {
			m.register(tutorial.AnchorCalendarEvent, (idx%7)*calendarCellWidth, 2+idx/7, calendarCellWidth, 1)
			eventAnchored = true
		}
		grid.WriteString(style.Render(fmt.Sprint(d)))
		if idx%7 == 6 && d < days {
			grid.WriteString("\n")
		}
	}
	weeks := (offset + days + 6) / 7
	gridW := 7 * calendarCellWidth
	m.register(tutorial.AnchorCalendarGrid, 0, 0, gridW, weeks+2)

	// Tasks due on the selected day
	var agenda strings.Builder
	agenda.WriteString(m.styles.SectionHead.Render(m.calDay.Format("Mon Jan 2")))
	agenda.WriteString("\n")
	tasks := m.dayTasks()
	if len(tasks) == 0 {
		agenda.WriteString(m.styles.TaskDesc.Render("No tasks due"))
	}
	listW := max(m.contentWidth()-gridW-4, 10)
	for _, t := range tasks {
		c := t.Column()
		agenda.WriteString("\n")
		agenda.WriteString(m.styles.ColumnStyle(c).Render(ColumnIcon(c)) + " " +
			m.styles.TaskTitle.Render(truncate(fmt.Sprintf("#%d %s", t.ID, t.Title), listW)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, grid.String(), "    ", agenda.String())
}

func (m *Model) viewTimer() string {
	s := m.timer
	sessionStyle := m.styles.TimerWork
	if s.Session == pomodoro.SessionBreak {
		sessionStyle = m.styles.TimerBreak
	}

	focus := m.styles.TaskDesc.Render("none (press t to pick a task)")
	if t := m.focusTask(); t != nil {
		focus = m.styles.TaskTitle.Render(taskLabel(t))
	}

	lines := []string{
		sessionStyle.Render(s.Session.Display()) + "  " + m.styles.Footer.Render(string(s.Status)),
		"",
		m.styles.TimerClock.Render(s.Clock()),
		m.progress.ViewAs(s.Progress()),
		"",
		m.styles.DetailLabel.Render("Focus task") + focus,
		m.styles.DetailLabel.Render("Completed") + fmt.Sprintf("%d sessions", s.CompletedSessions),
		m.styles.DetailLabel.Render("Today") + fmt.Sprintf("%s in %d sessions", m.focusToday.Round(time.Minute), m.focusSessions),
	}
	return strings.Join(lines, "\n")
}

// viewSelector renders the focus task picker.
func (m *Model) viewSelector() string {
	const maxRows = 10
	visible := m.selectorTasks()

	lines := []string{
		m.styles.DialogTitle.Render("Focus on task"),
		"",
		m.searchInput.View(),
		"",
	}
	if len(visible) == 0 {
		lines = append(lines, m.styles.TaskDesc.Render("No matching tasks"))
	}
	start := max(m.selectorCursor-maxRows+1, 0)
	for i := start; i < len(visible) && i-start < maxRows; i++ {
		t := visible[i]
		label := truncate(taskLabel(t), 40)
		if i == m.selectorCursor {
			lines = append(lines, m.styles.CursorSelected.Render("> ")+m.styles.TaskTitleSelected.Render(label))
			continue
		}
		lines = append(lines, "  "+m.styles.TaskTitle.Render(label))
	}
	if cur := m.focusTask(); cur != nil {
		lines = append(lines, "", m.styles.Footer.Render("Current: "+truncate(taskLabel(cur), 40)))
	}
	return m.styles.Dialog.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewReview() string {
	r := m.review
	if r == nil {
		return m.styles.TaskDesc.Render("Loading review...")
	}
	label := m.styles.DetailLabel
	var lines []string

	if d := r.Daily; d != nil {
		journal := "(no entry)"
		if d.JournalEntry != nil && *d.JournalEntry != "" {
			journal = escapeNewlines(*d.JournalEntry)
		}
		lines = append(lines,
			m.styles.SectionHead.Render("Today "+d.Date),
			label.Render("Completed")+fmt.Sprint(d.TasksCompleted),
			label.Render("Journal")+truncate(journal, max(m.contentWidth()-14, 10)),
			"",
		)
	}
	if wk := r.Weekly; wk != nil {
		lines = append(lines,
			m.styles.SectionHead.Render(fmt.Sprintf("Week %s to %s", wk.WeekStart, wk.WeekEnd)),
			label.Render("Completed")+fmt.Sprintf("%d of %d", wk.TasksCompleted, wk.TotalTasks),
			label.Render("Rate")+fmt.Sprintf("%.0f%%", wk.CompletionRate),
			"",
		)
	}
	if len(r.Insights) > 0 {
		lines = append(lines, m.styles.SectionHead.Render("Insights"))
		keys := make([]string, 0, len(r.Insights))
		for k := range r.Insights {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, label.Render(k)+fmt.Sprint(r.Insights[k]))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewSettings() string {
	s := m.settings
	var lines []string
	for i, name := range settingRows {
		var value string
		switch name {
		case "timer_enabled":
			value = checkbox(s != nil && s.TimerEnabled)
		case "notes_enabled":
			value = checkbox(s != nil && s.NotesEnabled)
		case "theme":
			if s != nil {
				value = s.Theme
			}
		case "auto_lock_minutes":
			if s != nil {
				value = "off"
				if s.AutoLockMinutes > 0 {
					value = fmt.Sprintf("%d min", s.AutoLockMinutes)
				}
			}
		case "tutorial":
			value = "restart"
		}

		cursor := "  "
		style := m.styles.TaskTitle
		if i == m.settingsCursor {
			cursor = m.styles.CursorSelected.Render("> ")
			style = m.styles.TaskTitleSelected
		}
		lines = append(lines, cursor+style.Width(20).Render(settingLabel(name))+m.styles.DetailValue.Render(value))
	}
	if s == nil {
		lines = append(lines, "", m.styles.TaskDesc.Render("Loading settings..."))
	}
	if cfg := m.container.AppConfig; cfg != nil {
		lines = append(lines, "", m.styles.DetailLabel.Render("Server")+m.styles.Footer.Render(cfg.API.BaseURL))
	}
	return strings.Join(lines, "\n")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func settingLabel(name string) string {
	switch name {
	case "timer_enabled":
		return "Focus timer"
	case "notes_enabled":
		return "Completion notes"
	case "theme":
		return "Theme"
	case "auto_lock_minutes":
		return "Auto-lock"
	case "tutorial":
		return "Tutorial"
	default:
		return name
	}
}
