package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
)

// DeleteTaskInput contains the parameters for deleting a task.
type DeleteTaskInput struct {
	TaskID int
}

// DeleteTask is the use case for deleting a task.
type DeleteTask struct {
	api    domain.TaskAPI
	cache  *cache.Client
	store  *taskstore.Store
	logger domain.Logger
}

// NewDeleteTask creates a new DeleteTask use case.
func NewDeleteTask(api domain.TaskAPI, c *cache.Client, store *taskstore.Store, logger domain.Logger) *DeleteTask {
	return &DeleteTask{api: api, cache: c, store: store, logger: logger}
}

// Execute deletes the task.
func (uc *DeleteTask) Execute(ctx context.Context, in DeleteTaskInput) error {
	_, err := cache.Mutate(ctx, uc.cache, "delete task", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, uc.api.DeleteTask(ctx, in.TaskID)
	})
	if err != nil {
		if isNotFound(err) {
			return fmt.Errorf("task #%d: %w", in.TaskID, domain.ErrTaskNotFound)
		}
		return fmt.Errorf("delete task: %w", err)
	}

	uc.store.Remove(in.TaskID)
	invalidateTaskData(uc.cache)
	uc.logger.Info(in.TaskID, "task", "task deleted")
	return nil
}
