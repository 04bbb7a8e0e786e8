package tui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestEscapeNewlines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no newlines", input: "simple text", want: "simple text"},
		{name: "single LF", input: "line1\nline2", want: "line1 line2"},
		{name: "CRLF", input: "line1\r\nline2", want: "line1 line2"},
		{name: "single CR", input: "line1\rline2", want: "line1 line2"},
		{name: "mixed newlines", input: "line1\nline2\r\nline3\rline4", want: "line1 line2 line3 line4"},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, escapeNewlines(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a long...", truncate("a long title here", 9))
	// Wide runes count as two cells
	assert.Equal(t, "日本...", truncate("日本語のタスク", 7))
}

func TestTaskMeta(t *testing.T) {
	est := 30
	task := &domain.Task{Priority: true, Category: "work", DueDate: "2025-05-01T00:00:00Z", EstimateMinutes: &est}

	assert.Equal(t, "! #work due 2025-05-01 ~30m", taskMeta(task))
	assert.Empty(t, taskMeta(&domain.Task{}))
}

func TestTaskDelegate_Render(t *testing.T) {
	styles := DefaultStyles()
	d := newTaskDelegate(styles)
	items := []list.Item{
		taskItem{task: &domain.Task{ID: 1, Title: "Write report", Description: "quarterly\nnumbers", Category: "work"}},
		taskItem{task: &domain.Task{ID: 2, Title: "Done thing", Done: true}},
	}
	l := list.New(items, d, 60, 10)

	var buf bytes.Buffer
	d.Render(&buf, l, 0, items[0])
	out := buf.String()

	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "#work")
	assert.Contains(t, out, "quarterly numbers")
	assert.Contains(t, out, ">")
}

func TestTaskDelegate_RenderIgnoresForeignItems(t *testing.T) {
	d := newTaskDelegate(DefaultStyles())
	l := list.New(nil, d, 40, 10)

	var buf bytes.Buffer
	d.Render(&buf, l, 0, nil)

	assert.Empty(t, buf.String())
}
