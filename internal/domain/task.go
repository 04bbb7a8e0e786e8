// Package domain contains core business entities and interfaces.
package domain

import (
	"strings"
)

// Task represents a task record owned by the Task Line API.
// Fields are ordered to minimize memory padding.
type Task struct {
	Status          TaskStatus `json:"status"`                     // Workflow status (kanban column)
	StatusID        *int       `json:"status_id,omitempty"`        // Status id for updates
	EstimateMinutes *int       `json:"estimate_minutes,omitempty"` // Time estimate (optional)
	Title           string     `json:"title"`                      // Title (required)
	Description     string     `json:"description,omitempty"`      // Description (optional)
	Notes           string     `json:"notes,omitempty"`            // Completion notes
	Category        string     `json:"category,omitempty"`         // Category name
	DueDate         string     `json:"due_date,omitempty"`         // YYYY-MM-DD or ISO timestamp
	CreatedAt       string     `json:"created_at,omitempty"`
	UpdatedOn       string     `json:"updated_on,omitempty"`
	ClosedOn        string     `json:"closed_on,omitempty"`
	ID              int        `json:"id"`
	Order           int        `json:"order"`
	CreatedBy       int        `json:"created_by,omitempty"`
	Done            bool       `json:"done"`
	Archived        bool       `json:"archived"`
	Priority        bool       `json:"priority"`
}

// TaskStatus is the workflow status embedded in a task.
type TaskStatus struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.StatusID != nil {
		v := *t.StatusID
		c.StatusID = &v
	}
	if t.EstimateMinutes != nil {
		v := *t.EstimateMinutes
		c.EstimateMinutes = &v
	}
	return &c
}

// Column returns the kanban column the task belongs to.
// A done task is always in the done column.
func (t *Task) Column() Column {
	if t.Done {
		return ColumnDone
	}
	return ColumnFromStatusName(t.Status.Name)
}

// DueDay returns the YYYY-MM-DD part of the due date, or "" if unset.
func (t *Task) DueDay() string {
	d := strings.TrimSpace(t.DueDate)
	if len(d) >= 10 {
		return d[:10]
	}
	return d
}

// IsActive returns true if the task is neither done nor archived.
func (t *Task) IsActive() bool {
	return !t.Done && !t.Archived
}

// TaskPatch describes a partial task update. Nil fields are left unchanged.
type TaskPatch struct {
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Done            *bool   `json:"done,omitempty"`
	Archived        *bool   `json:"archived,omitempty"`
	Category        *string `json:"category,omitempty"`
	Priority        *bool   `json:"priority,omitempty"`
	DueDate         *string `json:"due_date,omitempty"`
	EstimateMinutes *int    `json:"estimate_minutes,omitempty"`
	Order           *int    `json:"order,omitempty"`
	StatusID        *int    `json:"status_id,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Notes == nil && p.Done == nil &&
		p.Archived == nil && p.Category == nil && p.Priority == nil && p.DueDate == nil &&
		p.EstimateMinutes == nil && p.Order == nil && p.StatusID == nil
}

// Apply returns a copy of the task with the patch applied.
func (t *Task) Apply(p TaskPatch) *Task {
	c := t.Clone()
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Done != nil {
		c.Done = *p.Done
	}
	if p.Archived != nil {
		c.Archived = *p.Archived
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
	if p.DueDate != nil {
		c.DueDate = *p.DueDate
	}
	if p.EstimateMinutes != nil {
		v := *p.EstimateMinutes
		c.EstimateMinutes = &v
	}
	if p.Order != nil {
		c.Order = *p.Order
	}
	if p.StatusID != nil {
		v := *p.StatusID
		c.StatusID = &v
		c.Status.ID = v
		if name, ok := statusNames[v]; ok {
			c.Status.Name = name
		}
	}
	return c
}

// NewTask holds the fields accepted when creating a task.
type NewTask struct {
	EstimateMinutes *int   `json:"estimate_minutes,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category,omitempty"`
	DueDate         string `json:"due_date,omitempty"`
	Priority        bool   `json:"priority,omitempty"`
}

// Category is a user-defined task category.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ColorHex    string `json:"color_hex"`
	ID          int    `json:"id"`
}

// TaskFilter specifies criteria for listing tasks.
type TaskFilter struct {
	Status   string // Status name (empty = all)
	Category string // Category name (empty = all)
	Page     int    // Page number (0 = server default)
}

// IsZero returns true if no filter criteria are set.
func (f TaskFilter) IsZero() bool {
	return f.Status == "" && f.Category == "" && f.Page == 0
}
