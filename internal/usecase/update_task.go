package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
)

// UpdateTaskInput contains the parameters for updating a task.
type UpdateTaskInput struct {
	Patch  domain.TaskPatch
	TaskID int
}

// UpdateTaskOutput contains the result of updating a task.
type UpdateTaskOutput struct {
	Task *domain.Task // As returned by the API
}

// UpdateTask is the use case for a partial task update.
//
// The patch is applied to the task store before the request is sent, so
// every projection shows it at once. A failed request restores the previous
// task and logs a diagnostic.
type UpdateTask struct {
	api    domain.TaskAPI
	cache  *cache.Client
	store  *taskstore.Store
	logger domain.Logger
}

// NewUpdateTask creates a new UpdateTask use case.
func NewUpdateTask(api domain.TaskAPI, c *cache.Client, store *taskstore.Store, logger domain.Logger) *UpdateTask {
	return &UpdateTask{api: api, cache: c, store: store, logger: logger}
}

// Execute applies the patch optimistically and sends it.
func (uc *UpdateTask) Execute(ctx context.Context, in UpdateTaskInput) (*UpdateTaskOutput, error) {
	if in.Patch.IsEmpty() {
		return nil, domain.ErrNoFieldsToUpdate
	}
	if in.Patch.Title != nil {
		title := strings.TrimSpace(*in.Patch.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
		in.Patch.Title = &title
	}
	if in.Patch.DueDate != nil && *in.Patch.DueDate != "" {
		if err := domain.ValidateDate(*in.Patch.DueDate); err != nil {
			return nil, err
		}
	}

	rollback, err := uc.store.Optimistic(in.TaskID, in.Patch)
	if err != nil {
		// Not loaded yet: nothing to show optimistically.
		rollback = func() {}
	}

	task, err := cache.Mutate(ctx, uc.cache, "update task", func(ctx context.Context) (*domain.Task, error) {
		return uc.api.UpdateTask(ctx, in.TaskID, in.Patch)
	})
	if err != nil {
		rollback()
		uc.logger.Warn(in.TaskID, "task", fmt.Sprintf("update failed, rolled back: %v", err))
		if isNotFound(err) {
			return nil, fmt.Errorf("task #%d: %w", in.TaskID, domain.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	if task != nil && task.ID != 0 {
		uc.store.Upsert(task)
	}
	invalidateTaskData(uc.cache)
	uc.logger.Debug(in.TaskID, "task", "task updated")
	return &UpdateTaskOutput{Task: task}, nil
}

// SetDoneInput contains the parameters for completing or reopening a task.
type SetDoneInput struct {
	Notes  *string // Completion notes (optional)
	TaskID int
	Done   bool
}

// SetDone is the use case for toggling task completion.
type SetDone struct {
	update *UpdateTask
}

// NewSetDone creates a new SetDone use case.
func NewSetDone(update *UpdateTask) *SetDone {
	return &SetDone{update: update}
}

// Execute marks the task done or not done.
func (uc *SetDone) Execute(ctx context.Context, in SetDoneInput) (*UpdateTaskOutput, error) {
	done := in.Done
	return uc.update.Execute(ctx, UpdateTaskInput{
		TaskID: in.TaskID,
		Patch:  domain.TaskPatch{Done: &done, Notes: in.Notes},
	})
}

// MoveTaskInput contains the parameters for moving a task between columns.
type MoveTaskInput struct {
	Column domain.Column
	TaskID int
}

// MoveTask is the use case for moving a card on the kanban board.
type MoveTask struct {
	update *UpdateTask
}

// NewMoveTask creates a new MoveTask use case.
func NewMoveTask(update *UpdateTask) *MoveTask {
	return &MoveTask{update: update}
}

// Execute sets the status of the target column. Entering or leaving the
// done column also sets the done flag.
func (uc *MoveTask) Execute(ctx context.Context, in MoveTaskInput) (*UpdateTaskOutput, error) {
	if !in.Column.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidColumn, in.Column)
	}
	statusID := in.Column.StatusID()
	done := in.Column == domain.ColumnDone
	return uc.update.Execute(ctx, UpdateTaskInput{
		TaskID: in.TaskID,
		Patch:  domain.TaskPatch{StatusID: &statusID, Done: &done},
	})
}
