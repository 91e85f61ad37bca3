// Package query implements the task list's filter/sort engine: a mutable
// filter and sort configuration applied as a pure function over a task
// collection, plus the derived counts the task list displays.
package query

import (
	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
)

// FilterAll is the sentinel for status/priority filters meaning "no
// constraint".
const FilterAll = "all"

type assigneeKind int

const (
	assigneeAll assigneeKind = iota
	assigneeMe
	assigneeUnassigned
	assigneeSpecific
)

// AssigneeSelector is a tagged variant (All | Me | Unassigned |
// Specific(id)) rather than a string overloaded with sentinel literals, so
// a real user id can never collide with "all" or "unassigned".
type AssigneeSelector struct {
	kind assigneeKind
	id   uuid.UUID
}

func AssigneeAll() AssigneeSelector        { return AssigneeSelector{kind: assigneeAll} }
func AssigneeMe() AssigneeSelector         { return AssigneeSelector{kind: assigneeMe} }
func AssigneeUnassigned() AssigneeSelector { return AssigneeSelector{kind: assigneeUnassigned} }
func AssigneeSpecific(id uuid.UUID) AssigneeSelector {
	return AssigneeSelector{kind: assigneeSpecific, id: id}
}

// ParseAssigneeSelector maps the wire-level selector string to the variant:
// "all", "me", "unassigned", or anything else as a specific user id. An
// unparseable id falls back to All.
func ParseAssigneeSelector(s string) AssigneeSelector {
	switch s {
	case "", "all":
		return AssigneeAll()
	case "me":
		return AssigneeMe()
	case "unassigned":
		return AssigneeUnassigned()
	default:
		id, err := uuid.Parse(s)
		if err != nil {
			return AssigneeAll()
		}
		return AssigneeSpecific(id)
	}
}

func (s AssigneeSelector) IsAll() bool { return s.kind == assigneeAll }

// Matches reports whether the task passes this selector for the given
// current user. Me and Specific match against both the single assignee and
// the multi-assignee list.
func (s AssigneeSelector) Matches(t *domain.Task, currentUser uuid.UUID) bool {
	switch s.kind {
	case assigneeAll:
		return true
	case assigneeMe:
		return t.HasAssignee(currentUser)
	case assigneeUnassigned:
		return t.Unassigned()
	default:
		return t.HasAssignee(s.id)
	}
}

// DueBucket selects a calendar bucket for the due-date filter.
type DueBucket string

const (
	DueAll      DueBucket = "all"
	DueToday    DueBucket = "today"
	DueTomorrow DueBucket = "tomorrow"
	DueOverdue  DueBucket = "overdue"
	DueThisWeek DueBucket = "this_week"
)

// ParseDueBucket maps a raw bucket string to the closed set; unknown values
// fall back to the unconstrained bucket.
func ParseDueBucket(s string) DueBucket {
	switch DueBucket(s) {
	case DueToday, DueTomorrow, DueOverdue, DueThisWeek:
		return DueBucket(s)
	default:
		return DueAll
	}
}

// FilterConfig is the full set of active task-list filter selections. Each
// setter on the Engine replaces exactly one field, so the configuration is
// never partially invalid.
type FilterConfig struct {
	Search        string
	Status        string // task status or FilterAll
	Priority      string // task priority or FilterAll
	Assignee      AssigneeSelector
	Due           DueBucket
	Project       uuid.UUID // uuid.Nil means no project constraint
	Tags          []string
	ShowCompleted bool
}

// DefaultFilters returns the unconstrained configuration: everything "all",
// no search, no tags, completed tasks shown.
func DefaultFilters() FilterConfig {
	return FilterConfig{
		Status:        FilterAll,
		Priority:      FilterAll,
		Assignee:      AssigneeAll(),
		Due:           DueAll,
		ShowCompleted: true,
	}
}

// ActiveCount counts the filter fields that differ from their defaults.
// Each field contributes at most one regardless of how far it differs.
func (f FilterConfig) ActiveCount() int {
	n := 0
	if f.Search != "" {
		n++
	}
	if f.Status != FilterAll {
		n++
	}
	if f.Priority != FilterAll {
		n++
	}
	if !f.Assignee.IsAll() {
		n++
	}
	if f.Due != DueAll {
		n++
	}
	if f.Project != uuid.Nil {
		n++
	}
	if len(f.Tags) > 0 {
		n++
	}
	if !f.ShowCompleted {
		n++
	}
	return n
}
