package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/runoshun/taskline/internal/domain"
)

// ListTasks retrieves tasks matching the filter.
// The API answers with either a bare array or {tasks, pagination}.
func (c *Client) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]*domain.Task, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/tasks/", query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeTaskList(raw)
}

func decodeTaskList(raw json.RawMessage) ([]*domain.Task, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []*domain.Task{}, nil
	}
	var tasks []*domain.Task
	if err := json.Unmarshal(raw, &tasks); err == nil {
		return tasks, nil
	}
	var page struct {
		Tasks []*domain.Task `json:"tasks"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("decode task list: %w", errNotJSON)
	}
	if page.Tasks == nil {
		page.Tasks = []*domain.Task{}
	}
	return page.Tasks, nil
}

// GetTask retrieves a task by ID.
func (c *Client) GetTask(ctx context.Context, id int) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task and returns its ID.
func (c *Client) CreateTask(ctx context.Context, in domain.NewTask) (int, error) {
	var resp struct {
		Message string `json:"message"`
		TaskID  int    `json:"task_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/", nil, in, &resp); err != nil {
		return 0, err
	}
	return resp.TaskID, nil
}

// UpdateTask applies a partial update and returns the updated task.
func (c *Client) UpdateTask(ctx context.Context, id int, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), nil, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil, nil)
}

// Categories returns the category names in use.
// The API answers with either a bare array or {categories}.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/tasks/categories", nil, nil, &raw); err != nil {
		return nil, err
	}

	names := []string{}
	if len(raw) == 0 || string(raw) == "null" {
		return names, nil
	}
	if err := json.Unmarshal(raw, &names); err == nil {
		return names, nil
	}
	var wrapped struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("decode categories: %w", errNotJSON)
	}
	if wrapped.Categories == nil {
		return names, nil
	}
	return wrapped.Categories, nil
}

// ArchiveCompleted archives all done tasks and returns how many were archived.
func (c *Client) ArchiveCompleted(ctx context.Context) (int, error) {
	var resp struct {
		Message       string `json:"message"`
		ArchivedCount int    `json:"archived_count"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/archive-completed", nil, nil, &resp); err != nil {
		return 0, err
	}
	return resp.ArchivedCount, nil
}

// ListArchived retrieves archived tasks.
func (c *Client) ListArchived(ctx context.Context) ([]*domain.Task, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/tasks/archived", nil, nil, &raw); err != nil {
		return nil, err
	}
	return decodeTaskList(raw)
}

func taskPath(id int) string {
	return "/api/tasks/" + strconv.Itoa(id)
}
