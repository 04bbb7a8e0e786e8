// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/taskline/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	getenv        func(string) string
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskline)
	overridePath  string // Explicit --config file, loaded after the global one
}

// NewLoader creates a new Loader. overridePath may be empty.
func NewLoader(overridePath string) *Loader {
	return &Loader{
		getenv:        os.Getenv,
		globalConfDir: DefaultGlobalConfigDir(),
		overridePath:  overridePath,
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory and environment lookup.
// This is useful for testing.
func NewLoaderWithGlobalDir(globalConfDir, overridePath string, getenv func(string) string) *Loader {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &Loader{
		getenv:        getenv,
		globalConfDir: globalConfDir,
		overridePath:  overridePath,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv(domain.EnvConfigHome)
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// DefaultStateDir returns the default state directory.
func DefaultStateDir() string {
	stateHome := os.Getenv(domain.EnvStateHome)
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), domain.AppDirName)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return domain.StateDir(stateHome)
}

// GlobalConfigDir returns the directory the loader reads the global config from.
func (l *Loader) GlobalConfigDir() string {
	return l.globalConfDir
}

// Load returns the merged configuration: default <- global <- override <- env.
// A missing global file is not an error; a missing override file is.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	global, err := l.LoadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if global != nil {
		base = mergeConfigs(base, global)
	}

	if l.overridePath != "" {
		override, err := l.loadFile(l.overridePath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", l.overridePath, err)
		}
		base = mergeConfigs(base, override)
	}

	if url := strings.TrimSpace(l.getenv(domain.EnvAPIURL)); url != "" {
		base.API.BaseURL = url
	}
	base.API.BaseURL = strings.TrimRight(base.API.BaseURL, "/")

	return base, nil
}

// LoadGlobal returns only the global configuration.
func (l *Loader) LoadGlobal() (*domain.Config, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	globalPath := filepath.Join(l.globalConfDir, domain.ConfigFileName)
	return l.loadFile(globalPath)
}

// loadFile loads a configuration from a file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToDomainConfig(raw), nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
// Only fields present in the file are set.
func convertRawToDomainConfig(raw map[string]any) *domain.Config {
	res := &domain.Config{}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown key: %s", section))
			continue
		}
		switch section {
		case "api":
			for k, v := range m {
				switch k {
				case "base_url":
					if s, ok := v.(string); ok {
						res.API.BaseURL = s
					}
				case "timeout":
					d, err := parseDuration(v)
					if err != nil {
						warnings = append(warnings, fmt.Sprintf("invalid [api].timeout: %v", err))
						continue
					}
					res.API.Timeout = d
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [api]: %s", k))
				}
			}
		case "tui":
			for k, v := range m {
				switch k {
				case "default_view":
					if s, ok := v.(string); ok {
						res.TUI.DefaultView = s
					}
				case "show_tutorial":
					if b, ok := v.(bool); ok {
						res.TUI.ShowTutorial = b
						res.TUI.ShowTutorialSet = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [tui]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.Log.Level = s
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// parseDuration accepts a Go duration string ("30s") or a number of seconds.
func parseDuration(v any) (time.Duration, error) {
	switch t := v.(type) {
	case string:
		return time.ParseDuration(t)
	case int64:
		return time.Duration(t) * time.Second, nil
	case float64:
		return time.Duration(t * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("unsupported value %v", v)
	}
}

// mergeConfigs merges two configs, with override taking precedence.
func mergeConfigs(base, override *domain.Config) *domain.Config {
	result := &domain.Config{
		API:      base.API,
		TUI:      base.TUI,
		Log:      base.Log,
		Warnings: append([]string{}, base.Warnings...),
	}

	// Add override warnings
	result.Warnings = append(result.Warnings, override.Warnings...)

	if override.API.BaseURL != "" {
		result.API.BaseURL = override.API.BaseURL
	}
	if override.API.Timeout > 0 {
		result.API.Timeout = override.API.Timeout
	}
	if override.TUI.DefaultView != "" {
		result.TUI.DefaultView = override.TUI.DefaultView
	}
	if override.TUI.ShowTutorialSet {
		result.TUI.ShowTutorial = override.TUI.ShowTutorial
	}
	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}

	return result
}
