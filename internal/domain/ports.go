package domain

import (
	"context"
	"io"
	"time"
)

// TaskAPI reads and writes tasks through the remote API.
type TaskAPI interface {
	// ListTasks retrieves tasks matching the filter.
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, id int) (*Task, error)

	// CreateTask creates a task and returns its ID.
	CreateTask(ctx context.Context, in NewTask) (int, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id int, patch TaskPatch) (*Task, error)

	// DeleteTask removes a task by ID.
	DeleteTask(ctx context.Context, id int) error

	// Categories returns the category names in use.
	Categories(ctx context.Context) ([]string, error)

	// ArchiveCompleted archives all done tasks and returns how many were archived.
	ArchiveCompleted(ctx context.Context) (int, error)

	// ListArchived retrieves archived tasks.
	ListArchived(ctx context.Context) ([]*Task, error)
}

// ReviewAPI reads and writes journal entries and review summaries.
type ReviewAPI interface {
	Journal(ctx context.Context) ([]JournalEntry, error)
	CreateJournalEntry(ctx context.Context, date, content string) (*JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, id int, content string) (*JournalEntry, error)
	DailySummary(ctx context.Context, date string) (*DailySummary, error)
	WeeklySummary(ctx context.Context) (*WeeklySummary, error)
	Insights(ctx context.Context) (Insights, error)
}

// SettingsAPI reads and writes user settings.
type SettingsAPI interface {
	Settings(ctx context.Context) (*UserSettings, error)
	UpdateSettings(ctx context.Context, patch SettingsPatch) (*UserSettings, error)
}

// AuthAPI manages the login session.
type AuthAPI interface {
	Setup(ctx context.Context, in SetupInput) (*User, error)
	Login(ctx context.Context, username, pin string) (*User, error)
	Logout(ctx context.Context) error
	ChangePIN(ctx context.Context, currentPIN, newPIN string) error
}

// DataAPI covers export, import and health.
type DataAPI interface {
	Export(ctx context.Context) (*ExportDocument, error)
	Import(ctx context.Context, doc *ExportDocument) (*ImportResult, error)
	Health(ctx context.Context) (*Health, error)
}

// DocumentCodec decodes import files and encodes export files.
type DocumentCodec interface {
	// Decode parses and validates an import document.
	Decode(data []byte) (*ExportDocument, error)

	// Encode writes an export document.
	Encode(w io.Writer, doc *ExportDocument) error
}

// User is the authenticated account.
type User struct {
	Username string `json:"username"`
	ID       int    `json:"id"`
}

// SetupInput holds the fields for first-time account setup.
type SetupInput struct {
	PIN      string `json:"pin"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Health is the API health check response.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// CancelFunc cancels a scheduled callback. Calling it more than once is safe.
type CancelFunc func()

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	// Schedule runs fn after delay and returns a function that cancels it.
	Schedule(delay time.Duration, fn func()) CancelFunc
}

// Preferences holds durable client-side preferences.
type Preferences struct {
	TutorialCompleted bool `yaml:"tutorial_completed"`
}

// PreferenceStore loads and saves durable preferences.
type PreferenceStore interface {
	Load() (Preferences, error)
	Save(Preferences) error
}

// SessionFlags holds flags scoped to a single client session.
type SessionFlags interface {
	TutorialActive() bool
	SetTutorialActive(active bool)
}

// FocusSession is a completed work session recorded locally.
type FocusSession struct {
	StartedAt time.Time
	Duration  time.Duration
	TaskID    int
	ID        int64
}

// FocusLog records completed work sessions.
type FocusLog interface {
	// Record stores a completed session.
	Record(ctx context.Context, s FocusSession) error

	// List returns sessions started at or after since, newest first.
	List(ctx context.Context, since time.Time) ([]FocusSession, error)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (default <- global <- override).
	Load() (*Config, error)
}

// ConfigManager inspects and creates config files.
type ConfigManager interface {
	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitGlobalConfig writes the config template to the global config path.
	// Returns ErrConfigExists if the file is already there.
	InitGlobalConfig() error
}

// Logger provides file-based logging.
type Logger interface {
	// Info logs an info message. taskID 0 means not task specific.
	Info(taskID int, category, msg string)

	// Debug logs a debug message.
	Debug(taskID int, category, msg string)

	// Warn logs a warning message.
	Warn(taskID int, category, msg string)

	// Error logs an error message.
	Error(taskID int, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// RealScheduler implements Scheduler with time.AfterFunc.
// Callbacks run on their own goroutine.
type RealScheduler struct{}

// Schedule runs fn after delay.
func (RealScheduler) Schedule(delay time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(delay, fn)
	return func() { t.Stop() }
}
