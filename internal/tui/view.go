package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/tutorial"
)

// Screen layout in cells. The body starts below the tab bar and message line;
// App padding shifts everything one column right.
const (
	bodyTop      = 2
	bodyLeft     = 1
	tooltipWidth = 44
)

// View renders the TUI.
// A panic while rendering is caught by the error boundary.
func (m *Model) View() (out string) {
	defer func() {
		if f := m.recoverFailure(recover(), "view"); f != nil {
			m.failure = f
			out = m.viewFailure()
		}
	}()

	if m.width == 0 {
		return "Loading..."
	}
	if m.failure != nil {
		return m.viewFailure()
	}

	m.anchors.Reset()
	screen := m.viewMain()

	switch m.mode {
	case ModeNormal, ModeInputTitle:
		// Drawn inline
	case ModeHelp:
		screen = placeCenter(m.width, m.height, m.viewHelp(), screen)
	case ModeConfirm:
		screen = placeCenter(m.width, m.height, m.viewConfirmDialog(), screen)
	case ModeSelector:
		screen = placeCenter(m.width, m.height, m.viewSelector(), screen)
	case ModeAlert:
		screen = placeCenter(m.width, m.height, m.viewAlert(), screen)
	}

	if m.tutorial.TooltipVisible() {
		screen = m.overlayTooltip(screen)
	}
	return screen
}

// viewMain renders the tab bar, message line, active tab and footer.
func (m *Model) viewMain() string {
	body := m.viewBody()
	lines := strings.Split(body, "\n")
	h := m.bodyHeight()
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewMessageLine())
	b.WriteString("\n")
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return m.styles.App.Render(b.String())
}

func (m *Model) viewBody() string {
	switch m.Tab() {
	case TabList:
		return m.viewList()
	case TabBoard:
		return m.viewBoard()
	case TabCalendar:
		return m.viewCalendar()
	case TabTimer:
		return m.viewTimer()
	case TabReview:
		return m.viewReview()
	case TabSettings:
		return m.viewSettings()
	}
	return ""
}

// register records an anchor at body-relative coordinates.
func (m *Model) register(name string, x, y, w, h int) {
	m.anchors.Register(name, tutorial.Rect{X: bodyLeft + x, Y: bodyTop + y, W: w, H: h})
}

// viewHeader renders the app title and the tab bar. Tab links register
// their tutorial anchors.
func (m *Model) viewHeader() string {
	title := m.styles.Header.Render("Task Line")
	x := lipgloss.Width(title) + 1
	parts := []string{title, " "}
	active := m.Tab()
	for i, tab := range Tabs() {
		label := fmt.Sprintf("%d %s", i+1, tab.Title())
		style := m.styles.Tab
		if tab == active {
			style = m.styles.TabActive
		}
		rendered := style.Render(label)
		w := lipgloss.Width(rendered)
		if a := tab.Anchor(); a != "" {
			m.anchors.Register(a, tutorial.Rect{X: bodyLeft + x, Y: 0, W: w, H: 1})
		}
		parts = append(parts, rendered)
		x += w
	}
	return strings.Join(parts, "")
}

// viewMessageLine renders the inline error or message.
func (m *Model) viewMessageLine() string {
	switch {
	case m.err != nil:
		return m.styles.ErrorMsg.Render("Error: " + errorText(m.err))
	case m.message != "":
		return m.styles.SuccessMsg.Render(m.message)
	}
	return ""
}

// viewFooter renders the status line with key hints and the timer.
func (m *Model) viewFooter() string {
	sl := NewStatusLine(max(m.width-2, 20), &m.styles)
	return sl.Render(m.GetStatusInfo())
}

// viewConfirmDialog renders the confirmation dialog.
func (m *Model) viewConfirmDialog() string {
	var title, prompt string
	color := Colors.Error

	switch m.confirmAction {
	case ConfirmNone:
		return ""
	case ConfirmDelete:
		title = "Delete task?"
		if t, ok := m.container.Store.Get(m.confirmTaskID); ok {
			title = fmt.Sprintf("Delete %s?", taskLabel(t))
		}
		prompt = "This action cannot be undone."
	case ConfirmArchiveComplete:
		title = "Archive completed tasks?"
		prompt = "Every done task moves to the archive."
		color = Colors.Warning
	}

	titleStyle := m.styles.DialogTitle.Foreground(color)
	yesBtn := m.styles.HelpKey.Render("[ y ] Confirm")
	noBtn := m.styles.Footer.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		"",
		m.styles.DialogPrompt.Render(prompt),
		"",
		buttons,
	)
	return m.styles.Dialog.BorderForeground(color).Render(content)
}

// viewAlert renders the blocking alert.
func (m *Model) viewAlert() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.ErrorMsg.Render(m.alert),
		"",
		m.styles.FooterKey.Render("enter")+m.styles.Footer.Render(" dismiss"),
	)
	return m.styles.Alert.Render(content)
}

// viewHelp renders the help dialog.
func (m *Model) viewHelp() string {
	title := m.styles.DialogTitle.Render("KEYBOARD SHORTCUTS")
	body := m.help.FullHelpView(m.keys.FullHelp())
	tutor := m.help.ShortHelpView(m.tutorKeys.ShortHelp())
	content := lipgloss.JoinVertical(lipgloss.Left,
		title, "", body, "",
		m.styles.SectionHead.Render("Tutorial"), tutor,
	)
	return m.styles.Dialog.Render(content)
}

// viewFailure renders the error boundary screen.
func (m *Model) viewFailure() string {
	f := m.failure
	if f == nil {
		return ""
	}
	hints := []key.Binding{m.keys.Retry, m.keys.Reload, m.keys.Home, m.keys.Quit}
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.DialogTitle.Foreground(Colors.Error).Render(f.Title()),
		"",
		lipgloss.NewStyle().Width(50).Render(f.Message()),
		"",
		m.styles.Footer.Render(truncate(errorText(f.err), 50)),
		"",
		m.help.ShortHelpView(hints),
	)
	box := m.styles.Alert.Render(content)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// overlayTooltip draws the tutorial tooltip for the current step.
func (m *Model) overlayTooltip(screen string) string {
	step, ok := m.tutorial.CurrentStep()
	if !ok {
		return screen
	}
	counter := m.styles.TooltipStep.Render(fmt.Sprintf("Step %d of %d", m.tutorial.Index()+1, m.tutorial.Total()))
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.TooltipTitle.Render(step.Title),
		"",
		lipgloss.NewStyle().Width(tooltipWidth).Render(step.Description),
		"",
		counter,
		m.help.ShortHelpView(m.tutorKeys.ShortHelp()),
	)
	box := m.styles.Tooltip.Render(content)
	w, h := blockSize(box)

	p := m.tutorial.Layout(m.anchors,
		tutorial.Size{W: w, H: h},
		tutorial.Size{W: m.width, H: m.height},
	)
	m.tooltipAt = tutorial.Rect{X: p.X, Y: p.Y, W: w, H: h}
	return placeOverlay(p.X, p.Y, box, screen)
}

// timerBadge returns the short timer state shown in the footer.
func (m *Model) timerBadge() string {
	switch m.timer.Status {
	case pomodoro.StatusRunning:
		return "▶ " + m.timer.Clock()
	case pomodoro.StatusPaused:
		return "⏸ " + m.timer.Clock()
	case pomodoro.StatusCompleted:
		return "✓ " + m.timer.Session.Display()
	case pomodoro.StatusIdle:
		return ""
	}
	return ""
}
