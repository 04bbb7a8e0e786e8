package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// UserSettings holds the server-side user preferences.
type UserSettings struct {
	AIAPIURL        string `json:"ai_api_url,omitempty"`
	AIModel         string `json:"ai_model,omitempty"`
	Theme           string `json:"theme"`
	UpdatedOn       string `json:"updated_on,omitempty"`
	AutoLockMinutes int    `json:"auto_lock_minutes"`
	NotesEnabled    bool   `json:"notes_enabled"`
	TimerEnabled    bool   `json:"timer_enabled"`
}

// SettingsPatch is a partial settings update. Nil fields are left unchanged.
type SettingsPatch struct {
	NotesEnabled    *bool   `json:"notes_enabled,omitempty"`
	TimerEnabled    *bool   `json:"timer_enabled,omitempty"`
	AIAPIURL        *string `json:"ai_api_url,omitempty"`
	AIModel         *string `json:"ai_model,omitempty"`
	AutoLockMinutes *int    `json:"auto_lock_minutes,omitempty"`
	Theme           *string `json:"theme,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p SettingsPatch) IsEmpty() bool {
	return p.NotesEnabled == nil && p.TimerEnabled == nil && p.AIAPIURL == nil &&
		p.AIModel == nil && p.AutoLockMinutes == nil && p.Theme == nil
}

// Themes lists the accepted theme values.
var Themes = []string{"light", "dark", "system"}

// SettingKeys lists the keys accepted by ParseSetting.
var SettingKeys = []string{"notes_enabled", "timer_enabled", "ai_api_url", "ai_model", "auto_lock_minutes", "theme"}

// ParseSetting sets a single key=value pair on the patch.
func (p *SettingsPatch) ParseSetting(key, value string) error {
	switch key {
	case "notes_enabled", "timer_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidSetting, key)
		}
		if key == "notes_enabled" {
			p.NotesEnabled = &b
		} else {
			p.TimerEnabled = &b
		}
	case "ai_api_url":
		p.AIAPIURL = &value
	case "ai_model":
		p.AIModel = &value
	case "auto_lock_minutes":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: auto_lock_minutes must be a non-negative integer", ErrInvalidSetting)
		}
		p.AutoLockMinutes = &n
	case "theme":
		v := strings.ToLower(value)
		if !slices.Contains(Themes, v) {
			return fmt.Errorf("%w: theme must be one of %s", ErrInvalidSetting, strings.Join(Themes, ", "))
		}
		p.Theme = &v
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidSetting, key)
	}
	return nil
}
