package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct {
	Filter  domain.TaskFilter // Server-side filter (zero = all tasks)
	Refresh bool              // Bypass fresh cache entries
}

// ListTasksOutput contains the result of listing tasks.
type ListTasksOutput struct {
	Tasks []*domain.Task
}

// ListTasks is the use case for listing tasks.
// An unfiltered list replaces the contents of the task store.
type ListTasks struct {
	api   domain.TaskAPI
	cache *cache.Client
	store *taskstore.Store
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(api domain.TaskAPI, c *cache.Client, store *taskstore.Store) *ListTasks {
	return &ListTasks{api: api, cache: c, store: store}
}

// Execute lists tasks.
func (uc *ListTasks) Execute(ctx context.Context, in ListTasksInput) (*ListTasksOutput, error) {
	key := taskListKey(in.Filter)
	if in.Refresh {
		uc.cache.Invalidate(key)
	}

	// Only network results replace the store; a cached list must not undo
	// an optimistic patch, and neither may a list invalidated by a mutation
	// that settled while it was loading.
	fetched := false
	tasks, err := cache.Query(ctx, uc.cache, key, func(ctx context.Context) ([]*domain.Task, error) {
		fetched = true
		return uc.api.ListTasks(ctx, in.Filter)
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if !in.Filter.IsZero() {
		return &ListTasksOutput{Tasks: tasks}, nil
	}
	superseded := fetched && !uc.cache.IsFresh(key)
	if (fetched && !superseded) || uc.store.Len() == 0 {
		uc.store.ReplaceAll(tasks)
	}
	return &ListTasksOutput{Tasks: uc.store.List()}, nil
}
