package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusInReview   TaskStatus = "in_review"
	TaskStatusCompleted  TaskStatus = "completed"
)

// ParseTaskStatus maps a raw status string to the closed status set. Legacy
// aliases from older records are folded in: backlog -> todo, done ->
// completed, blocked -> in_progress. Anything else defaults to todo.
func ParseTaskStatus(s string) TaskStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "backlog":
		return TaskStatusTodo
	case "in_progress", "blocked":
		return TaskStatusInProgress
	case "in_review":
		return TaskStatusInReview
	case "completed", "done":
		return TaskStatusCompleted
	default:
		return TaskStatusTodo
	}
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityUrgent TaskPriority = "urgent"

	// TaskPriorityNone marks a record that carried no priority at all. It is
	// preserved through normalization so sorting can rank it after low.
	TaskPriorityNone TaskPriority = ""
)

// ParseTaskPriority maps a raw priority string to the closed priority set.
// An empty string stays empty (no priority); any other unknown value
// defaults to medium.
func ParseTaskPriority(s string) TaskPriority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return TaskPriorityNone
	case "low":
		return TaskPriorityLow
	case "medium":
		return TaskPriorityMedium
	case "high":
		return TaskPriorityHigh
	case "urgent":
		return TaskPriorityUrgent
	default:
		return TaskPriorityMedium
	}
}

// Task is a unit of work. Both the single AssigneeID and the AssigneeIDs
// list are populated by older and newer records respectively; both shapes
// are kept and every assignee check consults both.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	Progress    int // 0..100
	AssigneeID  *uuid.UUID
	AssigneeIDs []uuid.UUID
	CreatedBy   uuid.UUID
	ProjectID   *uuid.UUID
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize enforces the ingestion invariants in place: progress clamped to
// [0,100], status and priority folded to the closed enum sets, tags trimmed
// with empties dropped. Records from the external provider pass through here
// before reaching any evaluator; downstream code assumes normalized input.
func (t *Task) Normalize() {
	if t.Progress < 0 {
		t.Progress = 0
	}
	if t.Progress > 100 {
		t.Progress = 100
	}
	t.Status = ParseTaskStatus(string(t.Status))
	t.Priority = ParseTaskPriority(string(t.Priority))

	tags := t.Tags[:0]
	for _, tag := range t.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	t.Tags = tags
}

// Unassigned reports whether the task has neither a single assignee nor any
// entry in the assignee list.
func (t *Task) Unassigned() bool {
	return t.AssigneeID == nil && len(t.AssigneeIDs) == 0
}

// HasAssignee reports whether the given user appears as the single assignee
// or anywhere in the assignee list.
func (t *Task) HasAssignee(id uuid.UUID) bool {
	if t.AssigneeID != nil && *t.AssigneeID == id {
		return true
	}
	for _, a := range t.AssigneeIDs {
		if a == id {
			return true
		}
	}
	return false
}

// PrimaryAssignee returns the task's assignee identity: the single assignee
// when set, otherwise the first entry of the assignee list.
func (t *Task) PrimaryAssignee() (uuid.UUID, bool) {
	if t.AssigneeID != nil {
		return *t.AssigneeID, true
	}
	if len(t.AssigneeIDs) > 0 {
		return t.AssigneeIDs[0], true
	}
	return uuid.Nil, false
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*Task, error)
	List(ctx context.Context) ([]*Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Task, error)
	Update(ctx context.Context, t *Task) error
	UpdateAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
