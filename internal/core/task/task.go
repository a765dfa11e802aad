// Package task defines the normalized task domain model shared by the
// filter and duplication logic.
package task

import "time"

// Priority levels as used by the TickTick API.
const (
	PriorityNone   = 0
	PriorityLow    = 1
	PriorityMedium = 3
	PriorityHigh   = 5
)

// ChecklistItem is a single subtask entry on a task.
type ChecklistItem struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a read-only projection of a remote to-do item. Instances are
// rebuilt from the API on every fetch and never mutated in place.
type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Content     string          `json:"content,omitempty"`
	Desc        string          `json:"desc,omitempty"`
	ProjectID   string          `json:"project_id"`
	ProjectName string          `json:"project_name,omitempty"`
	Priority    int             `json:"priority"`
	Tags        []string        `json:"tags,omitempty"`
	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	DueDate     *time.Time      `json:"due_date,omitempty"`
}

// Completed reports whether the task carries a completion timestamp.
func (t Task) Completed() bool {
	return t.CompletedAt != nil && !t.CompletedAt.IsZero()
}

// HasTag reports whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if have == tag {
			return true
		}
	}
	return false
}
