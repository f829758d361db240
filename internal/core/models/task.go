package models

import "errors"

// TaskStatus is a kanban lane. Statuses are mutually exclusive and carry
// no implied ordering.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusBlocked    TaskStatus = "blocked"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists every lane in display order
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusBlocked, StatusDone}

// Valid reports whether s is a known status
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// TaskPriority ranks task urgency
type TaskPriority string

const (
	PriorityCritical TaskPriority = "critical"
	PriorityHigh     TaskPriority = "high"
	PriorityMedium   TaskPriority = "medium"
	PriorityLow      TaskPriority = "low"
)

// Valid reports whether p is a known priority
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is a unit of work owned by a project. The backend owns the task
// lifecycle; the client only holds ids issued by the server, except
// transiently during an optimistic status change.
type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
}

// Validate checks if the task has required fields
func (t *Task) Validate() error {
	if t.Title == "" {
		return errors.New("title is required")
	}
	if t.ProjectID == "" {
		return errors.New("project_id is required")
	}
	return nil
}

// Project groups tasks. GithubRepo is an optional repository reference.
type Project struct {
	ID          string
	Name        string
	Description string
	GithubRepo  string
	Status      string
}
