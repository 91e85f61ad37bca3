package query

import "github.com/gosuda/crew/internal/domain"

// SortField selects the task attribute used for ordering.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByStatus    SortField = "status"
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
	SortByCreatedAt SortField = "createdAt"
	SortByAssignee  SortField = "assignee"
	SortByProject   SortField = "project"
)

// SortConfig is a (field, direction) pair. Reselecting the current field
// toggles the direction; selecting a new field resets to ascending.
type SortConfig struct {
	Field     SortField
	Ascending bool
}

// DefaultSort orders by due date ascending.
func DefaultSort() SortConfig {
	return SortConfig{Field: SortByDueDate, Ascending: true}
}

// Toggle applies the reselection rule in place.
func (s *SortConfig) Toggle(field SortField) {
	if s.Field == field {
		s.Ascending = !s.Ascending
		return
	}
	s.Field = field
	s.Ascending = true
}

// statusRank is the fixed ordinal ranking for status sorting.
var statusRank = map[domain.TaskStatus]int{
	domain.TaskStatusTodo:       0,
	domain.TaskStatusInProgress: 1,
	domain.TaskStatusInReview:   2,
	domain.TaskStatusCompleted:  3,
}

// priorityRank is the fixed ordinal ranking for priority sorting. Ascending
// order deliberately places the most urgent first, the inverse of the
// alphabetical order other fields use, and a task with no priority ranks
// after low.
var priorityRank = map[domain.TaskPriority]int{
	domain.TaskPriorityUrgent: 0,
	domain.TaskPriorityHigh:   1,
	domain.TaskPriorityMedium: 2,
	domain.TaskPriorityLow:    3,
	domain.TaskPriorityNone:   4,
}
