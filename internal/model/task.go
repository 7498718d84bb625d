package model

import "fmt"

// TaskStatus is the workflow state of a task as the remote service encodes it.
type TaskStatus int

const (
	TaskStatusNew TaskStatus = iota
	TaskStatusInProgress
	TaskStatusCompleted
	TaskStatusDraft
)

// String returns a human-readable label for the status.
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusNew:
		return "new"
	case TaskStatusInProgress:
		return "in progress"
	case TaskStatusCompleted:
		return "completed"
	case TaskStatusDraft:
		return "draft"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// TaskPriority is the priority of a task. Higher values are more urgent,
// except Later which parks the task.
type TaskPriority int

const (
	TaskPriorityLow TaskPriority = iota
	TaskPriorityMiddle
	TaskPriorityHi
	TaskPriorityUrgently
	TaskPriorityLater
)

// String returns a human-readable label for the priority.
func (p TaskPriority) String() string {
	switch p {
	case TaskPriorityLow:
		return "low"
	case TaskPriorityMiddle:
		return "middle"
	case TaskPriorityHi:
		return "high"
	case TaskPriorityUrgently:
		return "urgent"
	case TaskPriorityLater:
		return "later"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Task is a single item inside a todo-list, owned by the remote service.
type Task struct {
	ID          string       `json:"id" db:"id"`
	TodoListID  string       `json:"todoListId" db:"todolist_id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Status      TaskStatus   `json:"status" db:"status"`
	Priority    TaskPriority `json:"priority" db:"priority"`
	StartDate   string       `json:"startDate" db:"start_date"`
	Deadline    string       `json:"deadline" db:"deadline"`
	Order       int          `json:"order" db:"sort_order"`
	AddedDate   string       `json:"addedDate" db:"added_date"`
}

// UpdateTaskModel is the complete field set accepted by the task update
// endpoint. The endpoint does not support partial updates.
type UpdateTaskModel struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	StartDate   string       `json:"startDate"`
	Deadline    string       `json:"deadline"`
}

// UpdateModel extracts the updatable fields of t.
func (t Task) UpdateModel() UpdateTaskModel {
	return UpdateTaskModel{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		StartDate:   t.StartDate,
		Deadline:    t.Deadline,
	}
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *TaskStatus
	Priority    *TaskPriority
	StartDate   *string
	Deadline    *string
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.StartDate == nil && p.Deadline == nil
}

// ApplyModel merges the patch over m and returns the result.
func (p TaskPatch) ApplyModel(m UpdateTaskModel) UpdateTaskModel {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Priority != nil {
		m.Priority = *p.Priority
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.Deadline != nil {
		m.Deadline = *p.Deadline
	}
	return m
}

// ApplyTask merges the patch over t and returns the result. Identity,
// ordering and timestamps are never changed.
func (p TaskPatch) ApplyTask(t Task) Task {
	m := p.ApplyModel(t.UpdateModel())
	t.Title = m.Title
	t.Description = m.Description
	t.Status = m.Status
	t.Priority = m.Priority
	t.StartDate = m.StartDate
	t.Deadline = m.Deadline
	return t
}

// PatchTitle returns a patch that only changes the title.
func PatchTitle(title string) TaskPatch {
	return TaskPatch{Title: &title}
}

// PatchStatus returns a patch that only changes the status.
func PatchStatus(status TaskStatus) TaskPatch {
	return TaskPatch{Status: &status}
}
