package domain

import (
	_ "embed"
	"path/filepath"
	"time"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string  `toml:"-"`
	API      APIConfig `toml:"api"`
	TUI      TUIConfig `toml:"tui"`
	Log      LogConfig `toml:"log"`
}

// APIConfig holds settings from the [api] section.
type APIConfig struct {
	BaseURL string        `toml:"base_url,omitempty"` // API origin, e.g. http://localhost:5000
	Timeout time.Duration `toml:"timeout,omitempty"`  // Per-request timeout
}

// TUIConfig holds settings from the [tui] section.
type TUIConfig struct {
	DefaultView     string `toml:"default_view,omitempty"` // Initial tab: list, board, calendar, timer, review, settings
	ShowTutorial    bool   `toml:"show_tutorial"`          // Allow the first-run tutorial to auto-start
	ShowTutorialSet bool   `toml:"-"`                      // show_tutorial was present in a loaded file
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Default configuration values.
const (
	DefaultBaseURL     = "http://localhost:5000"
	DefaultTimeout     = 30 * time.Second
	DefaultView        = "list"
	DefaultLogLevel    = "info"
	EnvAPIURL          = "TASKLINE_API_URL"
	EnvConfigHome      = "XDG_CONFIG_HOME"
	EnvStateHome       = "XDG_STATE_HOME"
	AppDirName         = "taskline"    // Directory name under config/state homes
	ConfigFileName     = "config.toml" // Config file name
	PreferenceFileName = "prefs.yaml"  // Durable preferences file name
	CookieFileName     = "cookies.json"
	FocusLogFileName   = "focus.db"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		TUI: TUIConfig{
			DefaultView:  DefaultView,
			ShowTutorial: true,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// RenderConfigTemplate returns the commented config template.
func RenderConfigTemplate() string {
	return configTemplateContent
}

// GlobalConfigDir returns the global config directory path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// GlobalConfigPath returns the global config path.
func GlobalConfigPath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), ConfigFileName)
}

// PreferencePath returns the durable preferences path.
func PreferencePath(configHome string) string {
	return filepath.Join(GlobalConfigDir(configHome), PreferenceFileName)
}

// StateDir returns the state directory path.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func StateDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName)
}

// CookiePath returns the persisted cookie jar path.
func CookiePath(stateDir string) string {
	return filepath.Join(stateDir, CookieFileName)
}

// FocusLogPath returns the focus session database path.
func FocusLogPath(stateDir string) string {
	return filepath.Join(stateDir, FocusLogFileName)
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(stateDir string) string {
	return filepath.Join(stateDir, "logs", "taskline.log")
}

// ConfigInfo describes a config file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
