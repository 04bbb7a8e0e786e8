package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
)

// CheckHealthOutput contains the health response and the URL checked.
type CheckHealthOutput struct {
	Health  *domain.Health
	BaseURL string
}

// CheckHealth is the use case for probing the API.
type CheckHealth struct {
	api     domain.DataAPI
	cache   *cache.Client
	baseURL string
}

// NewCheckHealth creates a new CheckHealth use case.
func NewCheckHealth(api domain.DataAPI, c *cache.Client, baseURL string) *CheckHealth {
	return &CheckHealth{api: api, cache: c, baseURL: baseURL}
}

// Execute always asks the server; a cached result is never reported.
func (uc *CheckHealth) Execute(ctx context.Context) (*CheckHealthOutput, error) {
	uc.cache.Invalidate(KeyHealth)
	h, err := cache.Query(ctx, uc.cache, KeyHealth, uc.api.Health)
	if err != nil {
		return nil, fmt.Errorf("health check %s: %w", uc.baseURL, err)
	}
	return &CheckHealthOutput{Health: h, BaseURL: uc.baseURL}, nil
}
