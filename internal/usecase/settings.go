package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
)

// ShowSettings is the use case for reading user settings.
type ShowSettings struct {
	api   domain.SettingsAPI
	cache *cache.Client
}

// NewShowSettings creates a new ShowSettings use case.
func NewShowSettings(api domain.SettingsAPI, c *cache.Client) *ShowSettings {
	return &ShowSettings{api: api, cache: c}
}

// Execute returns the settings.
func (uc *ShowSettings) Execute(ctx context.Context) (*domain.UserSettings, error) {
	s, err := cache.Query(ctx, uc.cache, KeySettings, uc.api.Settings)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

// UpdateSettingsInput contains the settings changes.
type UpdateSettingsInput struct {
	Patch domain.SettingsPatch
}

// UpdateSettings is the use case for a partial settings update.
type UpdateSettings struct {
	api    domain.SettingsAPI
	cache  *cache.Client
	logger domain.Logger
}

// NewUpdateSettings creates a new UpdateSettings use case.
func NewUpdateSettings(api domain.SettingsAPI, c *cache.Client, logger domain.Logger) *UpdateSettings {
	return &UpdateSettings{api: api, cache: c, logger: logger}
}

// Execute applies the patch and caches the returned settings.
func (uc *UpdateSettings) Execute(ctx context.Context, in UpdateSettingsInput) (*domain.UserSettings, error) {
	if in.Patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}

	s, err := cache.Mutate(ctx, uc.cache, "update settings", func(ctx context.Context) (*domain.UserSettings, error) {
		return uc.api.UpdateSettings(ctx, in.Patch)
	})
	if err != nil {
		uc.logger.Warn(0, "settings", fmt.Sprintf("update failed: %v", err))
		return nil, fmt.Errorf("update settings: %w", err)
	}

	uc.cache.SetData(KeySettings, s)
	return s, nil
}
