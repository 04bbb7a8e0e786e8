package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
)

// NewTaskInput contains the parameters for creating a task.
type NewTaskInput struct {
	EstimateMinutes *int
	Title           string // Required
	Description     string
	Category        string
	DueDate         string // YYYY-MM-DD (optional)
	Priority        bool
}

// NewTaskOutput contains the result of creating a task.
type NewTaskOutput struct {
	TaskID int
}

// NewTask is the use case for creating a task.
type NewTask struct {
	api    domain.TaskAPI
	cache  *cache.Client
	logger domain.Logger
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(api domain.TaskAPI, c *cache.Client, logger domain.Logger) *NewTask {
	return &NewTask{api: api, cache: c, logger: logger}
}

// Execute creates a task.
func (uc *NewTask) Execute(ctx context.Context, in NewTaskInput) (*NewTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if in.DueDate != "" {
		if err := domain.ValidateDate(in.DueDate); err != nil {
			return nil, err
		}
	}

	id, err := cache.Mutate(ctx, uc.cache, "create task", func(ctx context.Context) (int, error) {
		return uc.api.CreateTask(ctx, domain.NewTask{
			Title:           title,
			Description:     in.Description,
			Category:        in.Category,
			DueDate:         in.DueDate,
			Priority:        in.Priority,
			EstimateMinutes: in.EstimateMinutes,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	invalidateTaskData(uc.cache)
	uc.logger.Info(id, "task", fmt.Sprintf("task created: %q", title))
	return &NewTaskOutput{TaskID: id}, nil
}
