// Package selector picks the task a focus session is attached to.
package selector

import (
	"strings"

	"github.com/runoshun/taskline/internal/domain"
)

// Available returns the tasks that can be selected: not done, not archived,
// and, when search is non-empty, containing search in the title or
// description (case-insensitive). Input order is preserved.
func Available(tasks []*domain.Task, search string) []*domain.Task {
	query := strings.ToLower(strings.TrimSpace(search))
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil || !t.IsActive() {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Selector holds the state of the task picker.
// Fields are ordered to minimize memory padding.
type Selector struct {
	OnChange   func(id *int) // Called with the selected id, or nil when cleared
	SelectedID *int
	Search     string
	Open       bool
}

// Toggle opens or closes the picker.
func (s *Selector) Toggle() {
	if s.Open {
		s.Close()
		return
	}
	s.Open = true
}

// SetSearch updates the search text.
func (s *Selector) SetSearch(q string) {
	s.Search = q
}

// Select reports id as the selection, then closes the picker.
func (s *Selector) Select(id int) {
	s.SelectedID = &id
	s.notify(&id)
	s.Close()
}

// Clear removes the selection, then closes the picker.
func (s *Selector) Clear() {
	s.SelectedID = nil
	s.notify(nil)
	s.Close()
}

// Close hides the picker and clears the search text.
func (s *Selector) Close() {
	s.Open = false
	s.Search = ""
}

// Selected returns the selected task from tasks, or nil.
func (s *Selector) Selected(tasks []*domain.Task) *domain.Task {
	if s.SelectedID == nil {
		return nil
	}
	for _, t := range tasks {
		if t != nil && t.ID == *s.SelectedID {
			return t
		}
	}
	return nil
}

// Visible returns the tasks matching the current search.
func (s *Selector) Visible(tasks []*domain.Task) []*domain.Task {
	return Available(tasks, s.Search)
}

func (s *Selector) notify(id *int) {
	if s.OnChange != nil {
		s.OnChange(id)
	}
}
