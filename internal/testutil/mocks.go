// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/runoshun/taskline/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// FakeScheduler is a manually advanced domain.Scheduler.
// Callbacks run on the goroutine calling Advance, in due-time order.
type FakeScheduler struct {
	pending []*scheduledCall
	mu      sync.Mutex
	now     time.Duration
	seq     int
}

type scheduledCall struct {
	fn        func()
	at        time.Duration
	seq       int
	cancelled bool
}

// NewFakeScheduler creates a scheduler at virtual time zero.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{}
}

// Schedule registers fn to run once delay has elapsed in virtual time.
func (s *FakeScheduler) Schedule(delay time.Duration, fn func()) domain.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	call := &scheduledCall{fn: fn, at: s.now + delay, seq: s.seq}
	s.pending = append(s.pending, call)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		call.cancelled = true
	}
}

// Advance moves virtual time forward by d, running every callback that
// becomes due, including callbacks scheduled by other callbacks.
func (s *FakeScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.popDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.at
		s.mu.Unlock()

		next.fn()
	}
}

// popDue removes and returns the earliest live call due at or before target.
// Caller must hold s.mu.
func (s *FakeScheduler) popDue(target time.Duration) *scheduledCall {
	live := s.pending[:0]
	for _, c := range s.pending {
		if !c.cancelled {
			live = append(live, c)
		}
	}
	s.pending = live
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].at != s.pending[j].at {
			return s.pending[i].at < s.pending[j].at
		}
		return s.pending[i].seq < s.pending[j].seq
	})
	if len(s.pending) == 0 || s.pending[0].at > target {
		return nil
	}
	next := s.pending[0]
	s.pending = s.pending[1:]
	return next
}

// Pending returns the number of live scheduled callbacks.
func (s *FakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.pending {
		if !c.cancelled {
			n++
		}
	}
	return n
}

// Elapsed returns the current virtual time.
func (s *FakeScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// MockTaskAPI is an in-memory test double for domain.TaskAPI.
// Fields are ordered to minimize memory padding.
type MockTaskAPI struct {
	Tasks         map[int]*domain.Task
	OnUpdate      func(id int) // Called before an update settles
	OnList        func()       // Called after a list is read, before it is returned
	CategoryNames []string
	ListErr       error
	GetErr        error
	CreateErr     error
	UpdateErr     error
	DeleteErr     error
	ArchiveErr    error
	mu            sync.Mutex
	NextIDN       int
	ListCalls     int
	CreateCalls   int
	UpdateCalls   int
}

// NewMockTaskAPI creates a MockTaskAPI seeded with the given tasks.
func NewMockTaskAPI(tasks ...*domain.Task) *MockTaskAPI {
	m := &MockTaskAPI{
		Tasks:   make(map[int]*domain.Task),
		NextIDN: 1,
	}
	for _, t := range tasks {
		m.Tasks[t.ID] = t.Clone()
		if t.ID >= m.NextIDN {
			m.NextIDN = t.ID + 1
		}
	}
	return m
}

func (m *MockTaskAPI) sorted(keep func(*domain.Task) bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *domain.Task) int { return a.ID - b.ID })
	return out
}

// ListTasks returns non-archived tasks matching the filter.
func (m *MockTaskAPI) ListTasks(_ context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	if m.ListErr != nil {
		err := m.ListErr
		m.mu.Unlock()
		return nil, err
	}
	tasks := m.sorted(func(t *domain.Task) bool {
		if t.Archived {
			return false
		}
		if filter.Category != "" && t.Category != filter.Category {
			return false
		}
		if filter.Status != "" && t.Status.Name != filter.Status {
			return false
		}
		return true
	})
	onList := m.OnList
	m.mu.Unlock()

	if onList != nil {
		onList()
	}
	return tasks, nil
}

// GetTask returns a task by ID.
func (m *MockTaskAPI) GetTask(_ context.Context, id int) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, &domain.APIError{Code: 404, Message: "Task not found"}
	}
	return t.Clone(), nil
}

// CreateTask stores a new task and returns its ID.
func (m *MockTaskAPI) CreateTask(_ context.Context, in domain.NewTask) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	id := m.NextIDN
	m.NextIDN++
	statusID := domain.StatusIDTodo
	m.Tasks[id] = &domain.Task{
		ID:              id,
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		DueDate:         in.DueDate,
		Priority:        in.Priority,
		EstimateMinutes: in.EstimateMinutes,
		StatusID:        &statusID,
		Status:          domain.TaskStatus{ID: statusID, Name: domain.ColumnTodo.Display()},
	}
	return id, nil
}

// UpdateTask applies a patch to a stored task.
func (m *MockTaskAPI) UpdateTask(_ context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++
	if m.OnUpdate != nil {
		m.OnUpdate(id)
	}
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	t, ok := m.Tasks[id]
	if !ok {
		return nil, &domain.APIError{Code: 404, Message: "Task not found"}
	}
	updated := t.Apply(patch)
	m.Tasks[id] = updated
	return updated.Clone(), nil
}

// DeleteTask removes a task.
func (m *MockTaskAPI) DeleteTask(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.Tasks[id]; !ok {
		return &domain.APIError{Code: 404, Message: "Task not found"}
	}
	delete(m.Tasks, id)
	return nil
}

// Categories returns the configured category names.
func (m *MockTaskAPI) Categories(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.CategoryNames), nil
}

// ArchiveCompleted archives done tasks.
func (m *MockTaskAPI) ArchiveCompleted(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ArchiveErr != nil {
		return 0, m.ArchiveErr
	}
	n := 0
	for _, t := range m.Tasks {
		if t.Done && !t.Archived {
			t.Archived = true
			n++
		}
	}
	return n, nil
}

// ListArchived returns archived tasks.
func (m *MockTaskAPI) ListArchived(_ context.Context) ([]*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(t *domain.Task) bool { return t.Archived }), nil
}

// MockReviewAPI is a test double for domain.ReviewAPI.
type MockReviewAPI struct {
	Weekly      *domain.WeeklySummary
	InsightData domain.Insights
	Err         error
	Entries     []domain.JournalEntry
	Daily       map[string]*domain.DailySummary
	NextIDN     int
}

// NewMockReviewAPI creates a MockReviewAPI with initialized maps.
func NewMockReviewAPI() *MockReviewAPI {
	return &MockReviewAPI{
		Daily:   make(map[string]*domain.DailySummary),
		NextIDN: 1,
	}
}

// Journal returns all journal entries.
func (m *MockReviewAPI) Journal(_ context.Context) ([]domain.JournalEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return slices.Clone(m.Entries), nil
}

// CreateJournalEntry appends a journal entry.
func (m *MockReviewAPI) CreateJournalEntry(_ context.Context, date, content string) (*domain.JournalEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e := domain.JournalEntry{ID: m.NextIDN, EntryDate: date, Content: content}
	m.NextIDN++
	m.Entries = append(m.Entries, e)
	return &e, nil
}

// UpdateJournalEntry replaces the content of an entry.
func (m *MockReviewAPI) UpdateJournalEntry(_ context.Context, id int, content string) (*domain.JournalEntry, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for i := range m.Entries {
		if m.Entries[i].ID == id {
			m.Entries[i].Content = content
			e := m.Entries[i]
			return &e, nil
		}
	}
	return nil, &domain.APIError{Code: 404, Message: "Journal entry not found"}
}

// DailySummary returns the configured summary for date.
func (m *MockReviewAPI) DailySummary(_ context.Context, date string) (*domain.DailySummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Daily[date]; ok {
		return s, nil
	}
	return &domain.DailySummary{Date: date}, nil
}

// WeeklySummary returns the configured weekly summary.
func (m *MockReviewAPI) WeeklySummary(_ context.Context) (*domain.WeeklySummary, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Weekly == nil {
		return &domain.WeeklySummary{}, nil
	}
	return m.Weekly, nil
}

// Insights returns the configured insights.
func (m *MockReviewAPI) Insights(_ context.Context) (domain.Insights, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.InsightData, nil
}

// MockSettingsAPI is a test double for domain.SettingsAPI.
type MockSettingsAPI struct {
	Current   domain.UserSettings
	UpdateErr error
	GetErr    error
	Updates   int
}

// Settings returns the current settings.
func (m *MockSettingsAPI) Settings(_ context.Context) (*domain.UserSettings, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	s := m.Current
	return &s, nil
}

// UpdateSettings applies a patch.
func (m *MockSettingsAPI) UpdateSettings(_ context.Context, p domain.SettingsPatch) (*domain.UserSettings, error) {
	m.Updates++
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if p.Theme != nil {
		m.Current.Theme = *p.Theme
	}
	if p.NotesEnabled != nil {
		m.Current.NotesEnabled = *p.NotesEnabled
	}
	if p.TimerEnabled != nil {
		m.Current.TimerEnabled = *p.TimerEnabled
	}
	if p.AutoLockMinutes != nil {
		m.Current.AutoLockMinutes = *p.AutoLockMinutes
	}
	if p.AIAPIURL != nil {
		m.Current.AIAPIURL = *p.AIAPIURL
	}
	if p.AIModel != nil {
		m.Current.AIModel = *p.AIModel
	}
	s := m.Current
	return &s, nil
}

// MockAuthAPI is a test double for domain.AuthAPI.
type MockAuthAPI struct {
	Err        error
	Username   string
	PIN        string
	LoggedIn   bool
	LogoutCall int
}

// Setup creates the account.
func (m *MockAuthAPI) Setup(_ context.Context, in domain.SetupInput) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.Username = in.Username
	if m.Username == "" {
		m.Username = "user"
	}
	m.PIN = in.PIN
	m.LoggedIn = true
	return &domain.User{ID: 1, Username: m.Username}, nil
}

// Login checks credentials.
func (m *MockAuthAPI) Login(_ context.Context, username, pin string) (*domain.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if username != m.Username || pin != m.PIN {
		return nil, &domain.APIError{Code: 401, Message: "Invalid credentials"}
	}
	m.LoggedIn = true
	return &domain.User{ID: 1, Username: username}, nil
}

// Logout ends the session.
func (m *MockAuthAPI) Logout(_ context.Context) error {
	m.LogoutCall++
	m.LoggedIn = false
	return m.Err
}

// ChangePIN replaces the PIN.
func (m *MockAuthAPI) ChangePIN(_ context.Context, currentPIN, newPIN string) error {
	if m.Err != nil {
		return m.Err
	}
	if currentPIN != m.PIN {
		return &domain.APIError{Code: 400, Message: "Current PIN is incorrect"}
	}
	m.PIN = newPIN
	return nil
}

// MockDataAPI is a test double for domain.DataAPI.
type MockDataAPI struct {
	Document  *domain.ExportDocument
	Imported  *domain.ExportDocument
	HealthErr error
	ImportErr error
	ExportErr error
}

// Export returns the configured document.
func (m *MockDataAPI) Export(_ context.Context) (*domain.ExportDocument, error) {
	if m.ExportErr != nil {
		return nil, m.ExportErr
	}
	if m.Document == nil {
		return &domain.ExportDocument{Version: domain.ExportVersion}, nil
	}
	return m.Document, nil
}

// Import records the imported document.
func (m *MockDataAPI) Import(_ context.Context, doc *domain.ExportDocument) (*domain.ImportResult, error) {
	if m.ImportErr != nil {
		return nil, m.ImportErr
	}
	m.Imported = doc
	s := doc.Summary()
	return &domain.ImportResult{
		Message: "Data imported successfully",
		ImportedCount: map[string]int{
			"tasks":           s.Tasks,
			"journal_entries": s.JournalEntries,
		},
	}, nil
}

// Health reports a healthy API.
func (m *MockDataAPI) Health(_ context.Context) (*domain.Health, error) {
	if m.HealthErr != nil {
		return nil, m.HealthErr
	}
	return &domain.Health{Status: "healthy", Database: "connected", Timestamp: "2025-01-01T00:00:00Z"}, nil
}

// MockPreferenceStore is an in-memory domain.PreferenceStore.
type MockPreferenceStore struct {
	LoadErr error
	SaveErr error
	Prefs   domain.Preferences
	Saves   int
}

// Load returns the stored preferences.
func (m *MockPreferenceStore) Load() (domain.Preferences, error) {
	if m.LoadErr != nil {
		return domain.Preferences{}, m.LoadErr
	}
	return m.Prefs, nil
}

// Save stores the preferences.
func (m *MockPreferenceStore) Save(p domain.Preferences) error {
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Prefs = p
	return nil
}

// MockSessionFlags is an in-memory domain.SessionFlags.
type MockSessionFlags struct {
	Active bool
}

// TutorialActive reports the session flag.
func (m *MockSessionFlags) TutorialActive() bool { return m.Active }

// SetTutorialActive sets the session flag.
func (m *MockSessionFlags) SetTutorialActive(active bool) { m.Active = active }

// MockNavigator records route changes.
type MockNavigator struct {
	Current string
	History []string
}

// Route returns the current route.
func (m *MockNavigator) Route() string { return m.Current }

// Navigate switches to route.
func (m *MockNavigator) Navigate(route string) {
	m.Current = route
	m.History = append(m.History, route)
}

// MockFocusLog is an in-memory domain.FocusLog.
type MockFocusLog struct {
	Err      error
	Sessions []domain.FocusSession
}

// Record appends a session.
func (m *MockFocusLog) Record(_ context.Context, s domain.FocusSession) error {
	if m.Err != nil {
		return m.Err
	}
	s.ID = int64(len(m.Sessions) + 1)
	m.Sessions = append(m.Sessions, s)
	return nil
}

// List returns sessions started at or after since, newest first.
func (m *MockFocusLog) List(_ context.Context, since time.Time) ([]domain.FocusSession, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []domain.FocusSession
	for _, s := range m.Sessions {
		if !s.StartedAt.Before(since) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b domain.FocusSession) int { return b.StartedAt.Compare(a.StartedAt) })
	return out, nil
}

// MockLogger records log lines.
type MockLogger struct {
	Lines []string
	mu    sync.Mutex
}

func (m *MockLogger) add(level string, taskID int, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, fmt.Sprintf("%s task-%d %s %s", level, taskID, category, msg))
}

// Info records an info line.
func (m *MockLogger) Info(taskID int, category, msg string) { m.add("INFO", taskID, category, msg) }

// Debug records a debug line.
func (m *MockLogger) Debug(taskID int, category, msg string) { m.add("DEBUG", taskID, category, msg) }

// Warn records a warning line.
func (m *MockLogger) Warn(taskID int, category, msg string) { m.add("WARN", taskID, category, msg) }

// Error records an error line.
func (m *MockLogger) Error(taskID int, category, msg string) { m.add("ERROR", taskID, category, msg) }

// Snapshot returns a copy of the recorded lines.
func (m *MockLogger) Snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Lines)
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitGlobalErr    error
	GlobalConfigInfo domain.ConfigInfo
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetGlobalConfigInfo returns the configured info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig() error {
	m.InitGlobalCalled = true
	return m.InitGlobalErr
}
