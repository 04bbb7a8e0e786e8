// Package prefs persists client preferences to a YAML file and keeps
// session-scoped flags in memory.
package prefs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/runoshun/taskline/internal/domain"
	"gopkg.in/yaml.v3"
)

// Ensure Store implements domain.PreferenceStore.
var _ domain.PreferenceStore = (*Store)(nil)

// Store implements domain.PreferenceStore using a YAML file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first save.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Path returns the preferences file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads preferences. A missing file yields zero preferences.
func (s *Store) Load() (domain.Preferences, error) {
	var prefs domain.Preferences
	err := s.withLock(syscall.LOCK_SH, func() error {
		p, err := s.read()
		prefs = p
		return err
	})
	return prefs, err
}

// Save writes preferences atomically.
func (s *Store) Save(prefs domain.Preferences) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		return s.write(prefs)
	})
}

func (s *Store) withLock(lockType int, fn func() error) error {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() { _ = lock.Close() }()

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN) }()

	return fn()
}

func (s *Store) read() (domain.Preferences, error) {
	var prefs domain.Preferences
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return prefs, nil
		}
		return prefs, fmt.Errorf("read preferences: %w", err)
	}
	if err := yaml.Unmarshal(content, &prefs); err != nil {
		return prefs, fmt.Errorf("parse preferences: %w", err)
	}
	return prefs, nil
}

func (s *Store) write(prefs domain.Preferences) error {
	content, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Session holds flags that last for one client process.
type Session struct {
	mu             sync.Mutex
	tutorialActive bool
}

// Ensure Session implements domain.SessionFlags.
var _ domain.SessionFlags = (*Session)(nil)

// NewSession returns empty session flags.
func NewSession() *Session {
	return &Session{}
}

// TutorialActive reports whether the tutorial ran in this session.
func (s *Session) TutorialActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tutorialActive
}

// SetTutorialActive sets the session tutorial flag.
func (s *Session) SetTutorialActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tutorialActive = active
}
