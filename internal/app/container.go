// Package app provides the dependency injection container for the application.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/infra/api"
	"github.com/runoshun/taskline/internal/infra/config"
	"github.com/runoshun/taskline/internal/infra/exchange"
	"github.com/runoshun/taskline/internal/infra/focuslog"
	"github.com/runoshun/taskline/internal/infra/logging"
	"github.com/runoshun/taskline/internal/infra/prefs"
	"github.com/runoshun/taskline/internal/pomodoro"
	"github.com/runoshun/taskline/internal/taskstore"
	"github.com/runoshun/taskline/internal/tutorial"
	"github.com/runoshun/taskline/internal/usecase"
)

// Options holds values given on the command line.
type Options struct {
	ConfigPath string // Explicit config file (--config)
	BaseURL    string // API origin override (--api-url)
}

// Config holds the resolved application paths.
type Config struct {
	ConfigDir      string // Global config directory
	StateDir       string // State directory (logs, cookies, focus log)
	PreferencePath string
	CookiePath     string
	FocusLogPath   string
}

// newConfig resolves paths from the config and state directories.
func newConfig(configDir, stateDir string) Config {
	return Config{
		ConfigDir:      configDir,
		StateDir:       stateDir,
		PreferencePath: filepath.Join(configDir, domain.PreferenceFileName),
		CookiePath:     domain.CookiePath(stateDir),
		FocusLogPath:   domain.FocusLogPath(stateDir),
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks         domain.TaskAPI
	Review        domain.ReviewAPI
	Settings      domain.SettingsAPI
	Auth          domain.AuthAPI
	Data          domain.DataAPI
	Codec         domain.DocumentCodec
	Clock         domain.Clock
	Scheduler     domain.Scheduler
	Prefs         domain.PreferenceStore
	Session       domain.SessionFlags
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager
	Log           domain.Logger

	// Pointer fields
	Logger    *slog.Logger
	Cache     *cache.Client
	Store     *taskstore.Store
	AppConfig *domain.Config

	focus     domain.FocusLog
	focusErr  error
	closeFile func() error
	focusOnce sync.Once

	// Configuration
	Config Config
}

// New creates a new Container from the configuration files and options.
func New(opts Options) (*Container, error) {
	configLoader := config.NewLoader(opts.ConfigPath)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}
	if opts.BaseURL != "" {
		appConfig.API.BaseURL = opts.BaseURL
	}

	cfg := newConfig(configLoader.GlobalConfigDir(), config.DefaultStateDir())

	fileLog := logging.New(cfg.StateDir, logging.ParseLevel(appConfig.Log.Level))
	logger := fileLog.Slog()
	for _, w := range appConfig.Warnings {
		logger.Warn("config", "warning", w)
	}

	client, err := api.New(api.Options{
		BaseURL:    appConfig.API.BaseURL,
		Timeout:    appConfig.API.Timeout,
		CookiePath: cfg.CookiePath,
		Logger:     logger,
	})
	if err != nil {
		_ = fileLog.Close()
		return nil, err
	}

	c := &Container{
		Tasks:         client,
		Review:        client,
		Settings:      client,
		Auth:          client,
		Data:          client,
		Codec:         exchange.Codec{},
		Clock:         domain.RealClock{},
		Scheduler:     domain.RealScheduler{},
		Prefs:         prefs.New(cfg.PreferencePath),
		Session:       prefs.NewSession(),
		ConfigLoader:  configLoader,
		ConfigManager: config.NewManager(),
		Log:           fileLog,
		Logger:        logger,
		Cache:         cache.New(cache.Options{Logger: logger}),
		Store:         taskstore.New(),
		AppConfig:     appConfig,
		closeFile:     fileLog.Close,
		Config:        cfg,
	}
	return c, nil
}

// Deps holds the dependencies accepted by NewWithDeps.
type Deps struct {
	Tasks     domain.TaskAPI
	Review    domain.ReviewAPI
	Settings  domain.SettingsAPI
	Auth      domain.AuthAPI
	Data      domain.DataAPI
	Prefs     domain.PreferenceStore
	Focus     domain.FocusLog
	Clock     domain.Clock
	Scheduler domain.Scheduler
	Log       domain.Logger
	Cache     *cache.Client
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, deps Deps) *Container {
	c := &Container{
		Tasks:         deps.Tasks,
		Review:        deps.Review,
		Settings:      deps.Settings,
		Auth:          deps.Auth,
		Data:          deps.Data,
		Codec:         exchange.Codec{},
		Clock:         deps.Clock,
		Scheduler:     deps.Scheduler,
		Prefs:         deps.Prefs,
		Session:       prefs.NewSession(),
		ConfigLoader:  config.NewLoaderWithGlobalDir(cfg.ConfigDir, "", nil),
		ConfigManager: config.NewManagerWithGlobalDir(cfg.ConfigDir),
		Log:           deps.Log,
		Logger:        slog.New(slog.DiscardHandler),
		Cache:         deps.Cache,
		Store:         taskstore.New(),
		AppConfig:     domain.NewDefaultConfig(),
		focus:         deps.Focus,
		Config:        cfg,
	}
	c.focusOnce.Do(func() {}) // Injected focus log; never open the database.
	if c.Clock == nil {
		c.Clock = domain.RealClock{}
	}
	if c.Scheduler == nil {
		c.Scheduler = domain.RealScheduler{}
	}
	if c.Cache == nil {
		c.Cache = cache.New(cache.Options{Clock: c.Clock})
	}
	return c
}

// FocusLog opens the focus session database on first use.
func (c *Container) FocusLog() (domain.FocusLog, error) {
	c.focusOnce.Do(func() {
		l, err := focuslog.Open(c.Config.FocusLogPath)
		if err != nil {
			c.focusErr = fmt.Errorf("open focus log: %w", err)
			return
		}
		c.focus = l
	})
	return c.focus, c.focusErr
}

// Close releases the log file and the focus log database.
func (c *Container) Close() error {
	var firstErr error
	if l, ok := c.focus.(*focuslog.Log); ok {
		firstErr = l.Close()
	}
	if c.closeFile != nil {
		if err := c.closeFile(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewEngine returns a pomodoro engine driven by the container's scheduler.
func (c *Container) NewEngine() *pomodoro.Engine {
	return pomodoro.New(c.Scheduler)
}

// NewTutorial returns the first-run tutorial bound to nav.
func (c *Container) NewTutorial(nav tutorial.Navigator) *tutorial.Tutorial {
	return tutorial.New(tutorial.DefaultSteps(), c.Prefs, c.Session, c.Scheduler, nav)
}

// UseCase factory methods

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.Cache, c.Store)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Tasks, c.Cache, c.Store)
}

// ShowBoardUseCase returns a new ShowBoard use case.
func (c *Container) ShowBoardUseCase() *usecase.ShowBoard {
	return usecase.NewShowBoard(c.ListTasksUseCase(), c.Store)
}

// ShowCalendarUseCase returns a new ShowCalendar use case.
func (c *Container) ShowCalendarUseCase() *usecase.ShowCalendar {
	return usecase.NewShowCalendar(c.ListTasksUseCase(), c.Store)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks, c.Cache, c.Log)
}

// UpdateTaskUseCase returns a new UpdateTask use case.
func (c *Container) UpdateTaskUseCase() *usecase.UpdateTask {
	return usecase.NewUpdateTask(c.Tasks, c.Cache, c.Store, c.Log)
}

// SetDoneUseCase returns a new SetDone use case.
func (c *Container) SetDoneUseCase() *usecase.SetDone {
	return usecase.NewSetDone(c.UpdateTaskUseCase())
}

// MoveTaskUseCase returns a new MoveTask use case.
func (c *Container) MoveTaskUseCase() *usecase.MoveTask {
	return usecase.NewMoveTask(c.UpdateTaskUseCase())
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Tasks, c.Cache, c.Store, c.Log)
}

// ArchiveCompletedUseCase returns a new ArchiveCompleted use case.
func (c *Container) ArchiveCompletedUseCase() *usecase.ArchiveCompleted {
	return usecase.NewArchiveCompleted(c.Tasks, c.Cache, c.Log)
}

// ListArchivedUseCase returns a new ListArchived use case.
func (c *Container) ListArchivedUseCase() *usecase.ListArchived {
	return usecase.NewListArchived(c.Tasks, c.Cache)
}

// ListCategoriesUseCase returns a new ListCategories use case.
func (c *Container) ListCategoriesUseCase() *usecase.ListCategories {
	return usecase.NewListCategories(c.Tasks, c.Cache)
}

// ListJournalUseCase returns a new ListJournal use case.
func (c *Container) ListJournalUseCase() *usecase.ListJournal {
	return usecase.NewListJournal(c.Review, c.Cache)
}

// WriteJournalUseCase returns a new WriteJournal use case.
func (c *Container) WriteJournalUseCase() *usecase.WriteJournal {
	return usecase.NewWriteJournal(c.Review, c.Cache, c.Clock)
}

// ShowReviewUseCase returns a new ShowReview use case.
func (c *Container) ShowReviewUseCase() *usecase.ShowReview {
	return usecase.NewShowReview(c.Review, c.Cache)
}

// ShowSettingsUseCase returns a new ShowSettings use case.
func (c *Container) ShowSettingsUseCase() *usecase.ShowSettings {
	return usecase.NewShowSettings(c.Settings, c.Cache)
}

// UpdateSettingsUseCase returns a new UpdateSettings use case.
func (c *Container) UpdateSettingsUseCase() *usecase.UpdateSettings {
	return usecase.NewUpdateSettings(c.Settings, c.Cache, c.Log)
}

// LoginUseCase returns a new Login use case.
func (c *Container) LoginUseCase() *usecase.Login {
	return usecase.NewLogin(c.Auth, c.Cache, c.Store, c.Log)
}

// SetupUseCase returns a new Setup use case.
func (c *Container) SetupUseCase() *usecase.Setup {
	return usecase.NewSetup(c.Auth, c.Cache)
}

// LogoutUseCase returns a new Logout use case.
func (c *Container) LogoutUseCase() *usecase.Logout {
	return usecase.NewLogout(c.Auth, c.Cache, c.Store, c.Log)
}

// ChangePINUseCase returns a new ChangePIN use case.
func (c *Container) ChangePINUseCase() *usecase.ChangePIN {
	return usecase.NewChangePIN(c.Auth, c.Cache)
}

// CheckHealthUseCase returns a new CheckHealth use case.
func (c *Container) CheckHealthUseCase() *usecase.CheckHealth {
	return usecase.NewCheckHealth(c.Data, c.Cache, c.AppConfig.API.BaseURL)
}

// ExportDataUseCase returns a new ExportData use case.
func (c *Container) ExportDataUseCase() *usecase.ExportData {
	return usecase.NewExportData(c.Data, c.Codec, c.Cache, c.Log)
}

// PreviewImportUseCase returns a new PreviewImport use case.
func (c *Container) PreviewImportUseCase() *usecase.PreviewImport {
	return usecase.NewPreviewImport(c.Codec)
}

// ImportDataUseCase returns a new ImportData use case.
func (c *Container) ImportDataUseCase() *usecase.ImportData {
	return usecase.NewImportData(c.Data, c.Cache, c.Store, c.Log)
}

// RecordFocusUseCase returns a new RecordFocus use case.
func (c *Container) RecordFocusUseCase() (*usecase.RecordFocus, error) {
	l, err := c.FocusLog()
	if err != nil {
		return nil, err
	}
	return usecase.NewRecordFocus(l, c.Log), nil
}

// FocusHistoryUseCase returns a new FocusHistory use case.
func (c *Container) FocusHistoryUseCase() (*usecase.FocusHistory, error) {
	l, err := c.FocusLog()
	if err != nil {
		return nil, err
	}
	return usecase.NewFocusHistory(l, c.Clock), nil
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}

// ResetTutorialUseCase returns a new ResetTutorial use case.
func (c *Container) ResetTutorialUseCase() *usecase.ResetTutorial {
	return usecase.NewResetTutorial(c.Prefs)
}
