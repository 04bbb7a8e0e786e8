package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
)

// ShowTaskInput contains the parameters for showing a task.
type ShowTaskInput struct {
	TaskID int
}

// ShowTaskOutput contains the result of showing a task.
type ShowTaskOutput struct {
	Task *domain.Task
}

// ShowTask is the use case for fetching a single task.
type ShowTask struct {
	api   domain.TaskAPI
	cache *cache.Client
	store *taskstore.Store
}

// NewShowTask creates a new ShowTask use case.
func NewShowTask(api domain.TaskAPI, c *cache.Client, store *taskstore.Store) *ShowTask {
	return &ShowTask{api: api, cache: c, store: store}
}

// Execute fetches the task and records it in the store.
func (uc *ShowTask) Execute(ctx context.Context, in ShowTaskInput) (*ShowTaskOutput, error) {
	task, err := cache.Query(ctx, uc.cache, taskKey(in.TaskID), func(ctx context.Context) (*domain.Task, error) {
		t, err := uc.api.GetTask(ctx, in.TaskID)
		if err != nil {
			return nil, err
		}
		uc.store.Upsert(t)
		return t, nil
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("task #%d: %w", in.TaskID, domain.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	if current, ok := uc.store.Get(in.TaskID); ok {
		return &ShowTaskOutput{Task: current}, nil
	}
	return &ShowTaskOutput{Task: task.Clone()}, nil
}

// isNotFound returns true for an API 404.
func isNotFound(err error) bool {
	var apiErr *domain.APIError
	return errors.As(err, &apiErr) && apiErr.IsStatus(404)
}
