package domain

import "time"

// JournalEntry is a dated journal note.
type JournalEntry struct {
	EntryDate string `json:"entry_date"` // YYYY-MM-DD
	Content   string `json:"content"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedOn string `json:"updated_on,omitempty"`
	ID        int    `json:"id"`
}

// DailySummary is the review summary for a single day.
type DailySummary struct {
	JournalEntry   *string `json:"journal_entry"`
	Date           string  `json:"date"`
	TasksCompleted int     `json:"tasks_completed"`
}

// WeeklySummary is the review summary for the current week.
type WeeklySummary struct {
	WeekStart      string  `json:"week_start"`
	WeekEnd        string  `json:"week_end"`
	CompletionRate float64 `json:"completion_rate"`
	TasksCompleted int     `json:"tasks_completed"`
	TotalTasks     int     `json:"total_tasks"`
}

// Insights holds free-form analytics returned by the API.
type Insights map[string]any

// DateFormat is the layout used for calendar days and journal dates.
const DateFormat = "2006-01-02"

// FormatLocalDate formats t as YYYY-MM-DD in its own location.
func FormatLocalDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ValidateDate returns ErrInvalidDate if s is not a YYYY-MM-DD date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateFormat, s); err != nil {
		return ErrInvalidDate
	}
	return nil
}
