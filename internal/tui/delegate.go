package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/taskline/internal/domain"
)

type taskItem struct {
	task *domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Title
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// truncate shortens s to at most width cells, ending with "...".
func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "...")
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// taskMeta returns the plain-text badges shown after a title.
func taskMeta(t *domain.Task) string {
	var parts []string
	if t.Priority {
		parts = append(parts, "!")
	}
	if t.Category != "" {
		parts = append(parts, "#"+t.Category)
	}
	if d := t.DueDay(); d != "" {
		parts = append(parts, "due "+d)
	}
	if t.EstimateMinutes != nil {
		parts = append(parts, fmt.Sprintf("~%dm", *t.EstimateMinutes))
	}
	return strings.Join(parts, " ")
}

type taskDelegate struct {
	styles Styles
}

func newTaskDelegate(styles Styles) taskDelegate {
	return taskDelegate{styles: styles}
}

func (d taskDelegate) Height() int {
	return 2
}

func (d taskDelegate) Spacing() int {
	return 0
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	task := ti.task
	selected := index == m.Index()
	column := task.Column()

	cursor := d.styles.CursorNormal.Render(" ")
	idStyle := d.styles.TaskID
	titleStyle := d.styles.TaskTitle
	descStyle := d.styles.TaskDesc
	if selected {
		cursor = d.styles.CursorSelected.Render(">")
		idStyle = d.styles.TaskIDSelected
		titleStyle = d.styles.TaskTitleSelected
		descStyle = d.styles.TaskDescSelected
	}
	if task.Done {
		titleStyle = d.styles.TaskTitleDone
	}

	// cursor(1) + space + id(5) + icon(1) + space
	const prefixWidth = 9
	listWidth := m.Width()
	meta := taskMeta(task)
	metaWidth := 0
	if meta != "" {
		metaWidth = runewidth.StringWidth(meta) + 2
	}
	title := truncate(escapeNewlines(task.Title), listWidth-prefixWidth-metaWidth)

	line := cursor + " " +
		idStyle.Render(fmt.Sprintf("#%d", task.ID)) +
		d.styles.ColumnStyle(column).Render(ColumnIcon(column)) + " " +
		titleStyle.Render(title)
	if meta != "" {
		line += "  " + d.renderMeta(task)
	}
	_, _ = fmt.Fprintln(w, line)

	desc := ""
	if task.Description != "" {
		desc = truncate(escapeNewlines(task.Description), listWidth-prefixWidth)
	}
	_, _ = fmt.Fprint(w, strings.Repeat(" ", prefixWidth)+descStyle.Render(padRight(desc, listWidth-prefixWidth)))
}

func (d taskDelegate) renderMeta(t *domain.Task) string {
	var parts []string
	if t.Priority {
		parts = append(parts, d.styles.Priority.Render("!"))
	}
	if t.Category != "" {
		parts = append(parts, d.styles.Category.Render("#"+t.Category))
	}
	rest := taskMeta(&domain.Task{DueDate: t.DueDate, EstimateMinutes: t.EstimateMinutes})
	if rest != "" {
		parts = append(parts, d.styles.TaskMeta.Render(rest))
	}
	return strings.Join(parts, " ")
}
