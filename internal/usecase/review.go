package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
)

// ShowReviewInput contains the parameters for the review page.
type ShowReviewInput struct {
	Date string // Daily summary date (empty = today)
}

// ShowReviewOutput holds the daily and weekly summaries and insights.
type ShowReviewOutput struct {
	Daily    *domain.DailySummary
	Weekly   *domain.WeeklySummary
	Insights domain.Insights
}

// ShowReview is the use case for the review page.
type ShowReview struct {
	api   domain.ReviewAPI
	cache *cache.Client
}

// NewShowReview creates a new ShowReview use case.
func NewShowReview(api domain.ReviewAPI, c *cache.Client) *ShowReview {
	return &ShowReview{api: api, cache: c}
}

// Execute fetches the summaries.
func (uc *ShowReview) Execute(ctx context.Context, in ShowReviewInput) (*ShowReviewOutput, error) {
	if in.Date != "" {
		if err := domain.ValidateDate(in.Date); err != nil {
			return nil, err
		}
	}

	daily, err := cache.Query(ctx, uc.cache, KeyDailySummary.Append(in.Date), func(ctx context.Context) (*domain.DailySummary, error) {
		return uc.api.DailySummary(ctx, in.Date)
	})
	if err != nil {
		return nil, fmt.Errorf("daily summary: %w", err)
	}

	weekly, err := cache.Query(ctx, uc.cache, KeyWeeklySummary, uc.api.WeeklySummary)
	if err != nil {
		return nil, fmt.Errorf("weekly summary: %w", err)
	}

	insights, err := cache.Query(ctx, uc.cache, KeyInsights, uc.api.Insights)
	if err != nil {
		return nil, fmt.Errorf("insights: %w", err)
	}

	return &ShowReviewOutput{Daily: daily, Weekly: weekly, Insights: insights}, nil
}
