// Package taskstore holds the normalized client-side task collection.
//
// Tasks are stored once, keyed by id. The list, kanban and calendar views are
// projections computed from that map and memoized per store version, so a
// single write is visible in every view and a rollback restores all of them.
package taskstore

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/runoshun/taskline/internal/domain"
)

// Store is a concurrency-safe normalized task store.
// Projections returned by the store are shared and must not be modified.
type Store struct {
	tasks    map[int]*domain.Task
	list     []*domain.Task
	byColumn map[domain.Column][]*domain.Task
	byDate   map[string][]*domain.Task
	mu       sync.RWMutex
	version  uint64
	listVer  uint64
	colVer   uint64
	dateVer  uint64
}

// New creates an empty store.
func New() *Store {
	return &Store{tasks: make(map[int]*domain.Task)}
}

// Version returns a counter that changes on every write.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// ReplaceAll replaces the whole collection.
func (s *Store) ReplaceAll(tasks []*domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = make(map[int]*domain.Task, len(tasks))
	for _, t := range tasks {
		if t != nil {
			s.tasks[t.ID] = t.Clone()
		}
	}
	s.version++
}

// Upsert inserts or replaces a task.
func (s *Store) Upsert(t *domain.Task) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID] = t.Clone()
	s.version++
}

// Remove deletes a task. Removing a missing id is a no-op.
func (s *Store) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[id]; !ok {
		return
	}
	delete(s.tasks, id)
	s.version++
}

// Clear empties the store.
func (s *Store) Clear() {
	s.ReplaceAll(nil)
}

// Get returns a copy of the task with the given id.
func (s *Store) Get(id int) (*domain.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Len returns the number of stored tasks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

// Optimistic applies patch to the stored task and returns a function that
// restores the task as it was before the patch.
func (s *Store) Optimistic(id int, patch domain.TaskPatch) (rollback func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("optimistic update %d: %w", id, domain.ErrTaskNotFound)
	}
	s.tasks[id] = prev.Apply(patch)
	s.version++

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.tasks[id] = prev
			s.version++
		})
	}, nil
}

// List returns all non-archived tasks ordered by Order, then ID.
func (s *Store) List() []*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.list != nil && s.listVer == s.version {
		return s.list
	}
	s.list = s.sortedLocked(func(t *domain.Task) bool { return !t.Archived })
	s.listVer = s.version
	return s.list
}

// ByColumn groups non-archived tasks by kanban column.
// Every column is present in the result, possibly empty.
func (s *Store) ByColumn() map[domain.Column][]*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byColumn != nil && s.colVer == s.version {
		return s.byColumn
	}
	groups := make(map[domain.Column][]*domain.Task, 3)
	for _, c := range domain.AllColumns() {
		groups[c] = []*domain.Task{}
	}
	for _, t := range s.sortedLocked(func(t *domain.Task) bool { return !t.Archived }) {
		c := t.Column()
		groups[c] = append(groups[c], t)
	}
	s.byColumn = groups
	s.colVer = s.version
	return groups
}

// ByDate groups non-archived tasks with a due date by YYYY-MM-DD.
func (s *Store) ByDate() map[string][]*domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.byDate != nil && s.dateVer == s.version {
		return s.byDate
	}
	groups := make(map[string][]*domain.Task)
	for _, t := range s.sortedLocked(func(t *domain.Task) bool { return !t.Archived && t.DueDay() != "" }) {
		day := t.DueDay()
		groups[day] = append(groups[day], t)
	}
	s.byDate = groups
	s.dateVer = s.version
	return groups
}

// sortedLocked returns the matching tasks ordered by Order, then ID.
// Caller must hold s.mu.
func (s *Store) sortedLocked(keep func(*domain.Task) bool) []*domain.Task {
	out := make([]*domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *domain.Task) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}
