// Package usecase contains application use cases.
package usecase

import (
	"strconv"

	"github.com/runoshun/taskline/internal/cache"
	"github.com/runoshun/taskline/internal/domain"
)

// Cache keys. Task keys all live under KeyTasks so one prefix invalidates them.
var (
	KeyTasks          = cache.K("tasks")
	KeyCategories     = cache.K("tasks", "categories")
	KeyArchived       = cache.K("tasks", "archived")
	KeyJournal        = cache.K("review", "journal")
	KeySummary        = cache.K("review", "summary")
	KeyDailySummary   = cache.K("review", "summary", "daily")
	KeyWeeklySummary  = cache.K("review", "summary", "weekly")
	KeyInsights       = cache.K("review", "insights")
	KeySettings       = cache.K("settings")
	KeyHealth         = cache.K("health")
	keyTaskListPrefix = cache.K("tasks", "list")
)

// taskKey returns the key of a single task.
func taskKey(id int) cache.Key {
	return KeyTasks.Append(strconv.Itoa(id))
}

// taskListKey returns the key of a task list for filter.
func taskListKey(filter domain.TaskFilter) cache.Key {
	if filter.IsZero() {
		return keyTaskListPrefix
	}
	return keyTaskListPrefix.Append("status="+filter.Status, "category="+filter.Category, "page="+strconv.Itoa(filter.Page))
}

// invalidateTaskData marks every task view and the review summaries stale.
func invalidateTaskData(c *cache.Client) {
	c.Invalidate(KeyTasks, KeySummary, KeyInsights)
}
