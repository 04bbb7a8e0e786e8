package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
)

// ArchiveCompletedOutput contains the result of archiving completed tasks.
type ArchiveCompletedOutput struct {
	Archived int
}

// ArchiveCompleted is the use case for archiving every done task.
type ArchiveCompleted struct {
	api    domain.TaskAPI
	cache  *cache.Client
	logger domain.Logger
}

// NewArchiveCompleted creates a new ArchiveCompleted use case.
func NewArchiveCompleted(api domain.TaskAPI, c *cache.Client, logger domain.Logger) *ArchiveCompleted {
	return &ArchiveCompleted{api: api, cache: c, logger: logger}
}

// Execute archives completed tasks.
func (uc *ArchiveCompleted) Execute(ctx context.Context) (*ArchiveCompletedOutput, error) {
	n, err := cache.Mutate(ctx, uc.cache, "archive completed", uc.api.ArchiveCompleted)
	if err != nil {
		return nil, fmt.Errorf("archive completed: %w", err)
	}
	invalidateTaskData(uc.cache)
	uc.logger.Info(0, "task", fmt.Sprintf("archived %d completed tasks", n))
	return &ArchiveCompletedOutput{Archived: n}, nil
}

// ListArchived is the use case for listing archived tasks.
type ListArchived struct {
	api   domain.TaskAPI
	cache *cache.Client
}

// NewListArchived creates a new ListArchived use case.
func NewListArchived(api domain.TaskAPI, c *cache.Client) *ListArchived {
	return &ListArchived{api: api, cache: c}
}

// Execute lists archived tasks.
func (uc *ListArchived) Execute(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := cache.Query(ctx, uc.cache, KeyArchived, uc.api.ListArchived)
	if err != nil {
		return nil, fmt.Errorf("list archived: %w", err)
	}
	return tasks, nil
}

// ListCategories is the use case for listing category names.
type ListCategories struct {
	api   domain.TaskAPI
	cache *cache.Client
}

// NewListCategories creates a new ListCategories use case.
func NewListCategories(api domain.TaskAPI, c *cache.Client) *ListCategories {
	return &ListCategories{api: api, cache: c}
}

// Execute lists categories.
func (uc *ListCategories) Execute(ctx context.Context) ([]string, error) {
	names, err := cache.Query(ctx, uc.cache, KeyCategories, uc.api.Categories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return names, nil
}
