package usecase_test

import (
	"context"
	"time"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
	"github.com/runoshun/taskline/internal/taskstore"
	"github.com/runoshun/taskline/internal/testutil"
)

// newTestCache returns a cache that never waits between retries.
func newTestCache() *cache.Client {
	return cache.New(cache.Options{
		Sleep: func(context.Context, time.Duration) error { return nil },
	})
}

type taskFixture struct {
	api    *testutil.MockTaskAPI
	cache  *cache.Client
	store  *taskstore.Store
	logger *testutil.MockLogger
}

func newTaskFixture(tasks ...*domain.Task) *taskFixture {
	return &taskFixture{
		api:    testutil.NewMockTaskAPI(tasks...),
		cache:  newTestCache(),
		store:  taskstore.New(),
		logger: &testutil.MockLogger{},
	}
}

func todo(id int, title string) *domain.Task {
	statusID := domain.StatusIDTodo
	return &domain.Task{
		ID:       id,
		Title:    title,
		Order:    id,
		StatusID: &statusID,
		Status:   domain.TaskStatus{ID: statusID, Name: "To Do"},
	}
}

func ptr[T any](v T) *T { return &v }
