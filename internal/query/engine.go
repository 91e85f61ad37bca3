package query

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
)

// Engine owns one filter configuration and one sort configuration for a
// single task-list view, and recomputes the filtered, sorted slice of a
// task collection on demand. It holds no other state: two open views get
// two engines. The clock is injectable for the calendar-bucket predicates.
type Engine struct {
	filters FilterConfig
	sort    SortConfig
	now     func() time.Time
}

// NewEngine creates an Engine with default filters and sort. A nil clock
// defaults to time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		filters: DefaultFilters(),
		sort:    DefaultSort(),
		now:     now,
	}
}

func (e *Engine) Filters() FilterConfig { return e.filters }
func (e *Engine) Sort() SortConfig      { return e.sort }

// ResetFilters restores the default configuration. Sort is untouched.
func (e *Engine) ResetFilters() { e.filters = DefaultFilters() }

// ActiveFilterCount counts filter fields that differ from their defaults.
func (e *Engine) ActiveFilterCount() int { return e.filters.ActiveCount() }

// Each setter replaces exactly one filter field, leaving the rest intact.

func (e *Engine) SetSearch(q string) { e.filters.Search = q }

// SetStatus accepts a status value or the "all" sentinel. Unknown statuses
// are folded to the todo baseline like everywhere else at the boundary.
func (e *Engine) SetStatus(s string) {
	if s == "" || s == FilterAll {
		e.filters.Status = FilterAll
		return
	}
	e.filters.Status = string(domain.ParseTaskStatus(s))
}

// SetPriority accepts a priority value or the "all" sentinel.
func (e *Engine) SetPriority(p string) {
	if p == "" || p == FilterAll {
		e.filters.Priority = FilterAll
		return
	}
	e.filters.Priority = string(domain.ParseTaskPriority(p))
}

func (e *Engine) SetAssignee(sel AssigneeSelector) { e.filters.Assignee = sel }
func (e *Engine) SetDueBucket(b DueBucket)         { e.filters.Due = ParseDueBucket(string(b)) }
func (e *Engine) SetProject(id uuid.UUID)          { e.filters.Project = id }
func (e *Engine) SetTags(tags []string)            { e.filters.Tags = tags }
func (e *Engine) SetShowCompleted(show bool)       { e.filters.ShowCompleted = show }

// ToggleSort selects the sort field, flipping direction on reselection.
func (e *Engine) ToggleSort(field SortField) { e.sort.Toggle(field) }

// SetSort restores a full sort configuration, for callers rebuilding a view
// from persisted or wire-level state.
func (e *Engine) SetSort(cfg SortConfig) { e.sort = cfg }

// FilteredTasks applies the current filters to the collection as an AND
// conjunction, then sorts by the current sort configuration. The current
// user is an explicit parameter; it drives the "me" assignee predicate.
// Input tasks are assumed normalized; the collection is never mutated.
func (e *Engine) FilteredTasks(tasks []*domain.Task, currentUser uuid.UUID) []*domain.Task {
	now := e.now()

	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t == nil || !e.matches(t, currentUser, now) {
			continue
		}
		out = append(out, t)
	}

	cfg := e.sort
	sort.SliceStable(out, func(i, j int) bool {
		return taskLess(out[i], out[j], cfg)
	})
	return out
}

func (e *Engine) matches(t *domain.Task, currentUser uuid.UUID, now time.Time) bool {
	f := e.filters

	if !matchesSearch(t, f.Search) {
		return false
	}
	if f.Status != FilterAll && string(t.Status) != f.Status {
		return false
	}
	// Show-completed is independent of the status filter: with it off, a
	// status filter of "completed" documents itself into an empty result.
	if !f.ShowCompleted && t.Status == domain.TaskStatusCompleted {
		return false
	}
	if f.Priority != FilterAll && string(t.Priority) != f.Priority {
		return false
	}
	if !f.Assignee.Matches(t, currentUser) {
		return false
	}
	if !matchesDue(f.Due, t.DueDate, now) {
		return false
	}
	if f.Project != uuid.Nil && (t.ProjectID == nil || *t.ProjectID != f.Project) {
		return false
	}
	if !matchesTags(t, f.Tags) {
		return false
	}
	return true
}

func matchesSearch(t *domain.Task, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// matchesTags is set containment, not intersection: every requested tag must
// be present (case-insensitively) among the task's tags.
func matchesTags(t *domain.Task, want []string) bool {
	if len(want) == 0 {
		return true
	}
	have := make(map[string]struct{}, len(t.Tags))
	for _, tag := range t.Tags {
		have[strings.ToLower(tag)] = struct{}{}
	}
	for _, w := range want {
		if _, ok := have[strings.ToLower(w)]; !ok {
			return false
		}
	}
	return true
}

func matchesDue(bucket DueBucket, due *time.Time, now time.Time) bool {
	if bucket == DueAll {
		return true
	}
	if due == nil {
		return false
	}
	d := due.In(now.Location())
	switch bucket {
	case DueToday:
		return sameDay(d, now)
	case DueTomorrow:
		return sameDay(d, now.AddDate(0, 0, 1))
	case DueOverdue:
		// A task due earlier today is not overdue; only strictly past days
		// count.
		return d.Before(now) && !sameDay(d, now)
	case DueThisWeek:
		start := startOfDay(now)
		end := start.AddDate(0, 0, 8) // through the end of today+7
		return !d.Before(start) && d.Before(end)
	default:
		return false
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// absentLast is the comparison sentinel for missing assignee/project keys;
// it collates after any real id or name in ascending order.
const absentLast = "￿"

// taskLess is the direction-aware three-way comparison behind the sorted
// view. The direction flips the comparison of two present values only; a
// missing due date always sorts last regardless of direction.
func taskLess(a, b *domain.Task, cfg SortConfig) bool {
	if cfg.Field == SortByDueDate {
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			return false
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		}
		if cfg.Ascending {
			return a.DueDate.Before(*b.DueDate)
		}
		return b.DueDate.Before(*a.DueDate)
	}

	var cmp int
	switch cfg.Field {
	case SortByStatus:
		cmp = statusRank[a.Status] - statusRank[b.Status]
	case SortByPriority:
		cmp = priorityRank[a.Priority] - priorityRank[b.Priority]
	case SortByCreatedAt:
		cmp = a.CreatedAt.Compare(b.CreatedAt)
	case SortByAssignee:
		cmp = strings.Compare(assigneeKey(a), assigneeKey(b))
	case SortByProject:
		cmp = strings.Compare(projectKey(a), projectKey(b))
	default: // SortByTitle
		cmp = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	}

	if cfg.Ascending {
		return cmp < 0
	}
	return cmp > 0
}

func assigneeKey(t *domain.Task) string {
	if id, ok := t.PrimaryAssignee(); ok {
		return id.String()
	}
	return absentLast
}

func projectKey(t *domain.Task) string {
	if t.ProjectID != nil {
		return t.ProjectID.String()
	}
	return absentLast
}

// AvailableTags returns the sorted, deduplicated union of tags across the
// unfiltered collection, trimmed of whitespace with empties dropped. It
// feeds the tag-filter picker, so it operates on the full collection, not
// the filtered view.
func AvailableTags(tasks []*domain.Task) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range tasks {
		if t == nil {
			continue
		}
		for _, tag := range t.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out
}
