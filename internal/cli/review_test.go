package cli

import (
	"strings"
	"testing"

	"github.com/runoshun/taskline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalAdd_DefaultsToToday(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newJournalAddCommand(env.c), "Shipped", "the", "importer")

	require.NoError(t, err)
	assert.Contains(t, out, "Added journal entry #1 for 2026-03-15")
	require.Len(t, env.review.Entries, 1)
	assert.Equal(t, "Shipped the importer", env.review.Entries[0].Content)
}

func TestJournalAdd_FromStdin(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := executeWithInput(newJournalAddCommand(env.c), "line one\nline two\n", "--date", "2026-03-14", "-")

	require.NoError(t, err)
	require.Len(t, env.review.Entries, 1)
	assert.Equal(t, "2026-03-14", env.review.Entries[0].EntryDate)
	assert.Equal(t, "line one\nline two", env.review.Entries[0].Content)
}

func TestJournalAdd_InvalidDate(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(newJournalAddCommand(env.c), "--date", "yesterday", "note")

	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestJournalEdit(t *testing.T) {
	env := newTestEnv(t)
	env.review.Entries = []domain.JournalEntry{{ID: 4, EntryDate: "2026-03-10", Content: "old"}}

	out, _, err := execute(newJournalEditCommand(env.c), "4", "new", "text")

	require.NoError(t, err)
	assert.Contains(t, out, "Updated journal entry #4")
	assert.Equal(t, "new text", env.review.Entries[0].Content)
}

func TestJournalEdit_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := execute(newJournalEditCommand(env.c), "7", "text")

	assert.ErrorIs(t, err, domain.ErrEntryNotFound)
}

func TestJournalList(t *testing.T) {
	env := newTestEnv(t)
	env.review.Entries = []domain.JournalEntry{
		{ID: 1, EntryDate: "2026-03-14", Content: "First line\nsecond line"},
	}

	out, _, err := execute(newJournalListCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, "2026-03-14")
	assert.Contains(t, out, "First line...")
	assert.NotContains(t, out, "second line")
}

func TestJournalList_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := execute(newJournalListCommand(env.c))

	require.NoError(t, err)
	assert.Equal(t, "No journal entries.\n", out)
}

func TestReview(t *testing.T) {
	env := newTestEnv(t)
	note := "Good day"
	env.review.Daily[""] = &domain.DailySummary{Date: "2026-03-15", TasksCompleted: 3, JournalEntry: &note}
	env.review.Weekly = &domain.WeeklySummary{
		WeekStart: "2026-03-09", WeekEnd: "2026-03-15",
		TasksCompleted: 5, TotalTasks: 8, CompletionRate: 62.4,
	}
	env.review.InsightData = domain.Insights{"most_productive_day": "Tuesday", "streak": 4}

	out, _, err := execute(newReviewCommand(env.c))

	require.NoError(t, err)
	assert.Contains(t, out, "Day 2026-03-15")
	assert.Contains(t, out, "Completed: 3")
	assert.Contains(t, out, "Journal: Good day")
	assert.Contains(t, out, "Week 2026-03-09 to 2026-03-15")
	assert.Contains(t, out, "Completed: 5 of 8 (62%)")
	assert.Contains(t, out, "most productive day: Tuesday")
	assert.Less(t, strings.Index(out, "most productive day"), strings.Index(out, "streak"))
}

func TestReview_Error(t *testing.T) {
	env := newTestEnv(t)
	env.review.Err = &domain.APIError{Code: 401, Message: "Unauthorized"}

	_, _, err := execute(newReviewCommand(env.c))

	require.Error(t, err)
	assert.Equal(t, "Error: You need to log in to access this resource. (run 'taskline auth login')", FormatError(err))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "abc", firstLine("  abc  ", 10))
	assert.Equal(t, "a...", firstLine("a\nb", 10))
	assert.Equal(t, "abcdefg...", firstLine("abcdefghijklmnop", 10))
}
