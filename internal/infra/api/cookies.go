package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// Jar is a cookie jar for the API origin whose cookies survive restarts.
// Fields are ordered to minimize memory padding.
type Jar struct {
	inner  *cookiejar.Jar
	base   *url.URL
	logger *slog.Logger
	path   string
	mu     sync.Mutex
}

type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewJar creates a jar for base, loading cookies from path if it exists.
// An empty path keeps cookies in memory only.
func NewJar(path string, base *url.URL, logger *slog.Logger) (*Jar, error) {
	inner, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	j := &Jar{inner: inner, base: base, logger: logger, path: path}
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

// SetCookies implements http.CookieJar and persists the jar.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	if err := j.saveLocked(); err != nil {
		j.logger.Warn("persist cookies failed", "path", j.path, "error", err)
	}
}

// Cookies implements http.CookieJar.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// HasSession reports whether any cookie is held for the API origin.
func (j *Jar) HasSession() bool {
	return len(j.Cookies(j.base)) > 0
}

// Clear drops every cookie and removes the persisted file.
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := cookiejar.New(nil)
	if err != nil {
		return fmt.Errorf("create cookie jar: %w", err)
	}
	j.inner = inner
	if j.path == "" {
		return nil
	}
	if err := os.Remove(j.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cookie file: %w", err)
	}
	return nil
}

func (j *Jar) load() error {
	if j.path == "" {
		return nil
	}
	content, err := os.ReadFile(j.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read cookie file: %w", err)
	}

	var stored []storedCookie
	if err := json.Unmarshal(content, &stored); err != nil {
		// Unreadable file: start with an empty jar.
		j.logger.Warn("ignoring unreadable cookie file", "path", j.path, "error", err)
		return nil
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Path: "/"})
	}
	j.inner.SetCookies(j.base, cookies)
	return nil
}

func (j *Jar) saveLocked() error {
	if j.path == "" {
		return nil
	}

	current := j.inner.Cookies(j.base)
	stored := make([]storedCookie, 0, len(current))
	for _, c := range current {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value})
	}

	content, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cookies: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("create cookie directory: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := j.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, j.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
