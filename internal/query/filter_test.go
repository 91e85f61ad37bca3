package query_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/query"
)

func TestParseAssigneeSelector(t *testing.T) {
	t.Parallel()

	me := uuid.New()
	other := uuid.New()

	mine := task("mine", withAssignee(me))
	free := task("free")

	tests := []struct {
		name      string
		raw       string
		matchMine bool
		matchFree bool
	}{
		{"empty is all", "", true, true},
		{"all", "all", true, true},
		{"me", "me", true, false},
		{"unassigned", "unassigned", false, true},
		{"specific id", me.String(), true, false},
		{"other id", other.String(), false, false},
		// A user id that fails to parse must not silently become a
		// never-matching filter.
		{"garbage falls back to all", "not-a-uuid", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sel := query.ParseAssigneeSelector(tt.raw)
			assert.Equal(t, tt.matchMine, sel.Matches(mine, me))
			assert.Equal(t, tt.matchFree, sel.Matches(free, me))
		})
	}
}

func TestParseDueBucket(t *testing.T) {
	t.Parallel()

	assert.Equal(t, query.DueToday, query.ParseDueBucket("today"))
	assert.Equal(t, query.DueThisWeek, query.ParseDueBucket("this_week"))
	assert.Equal(t, query.DueAll, query.ParseDueBucket(""))
	assert.Equal(t, query.DueAll, query.ParseDueBucket("next_month"))
}

func TestFilterConfig_ActiveCount(t *testing.T) {
	t.Parallel()

	f := query.DefaultFilters()
	assert.Equal(t, 0, f.ActiveCount())

	f.Search = "x"
	assert.Equal(t, 1, f.ActiveCount())

	// Each field contributes at most one.
	f.Tags = []string{"a", "b", "c"}
	assert.Equal(t, 2, f.ActiveCount())

	f.Status = string(domain.TaskStatusTodo)
	f.Priority = string(domain.TaskPriorityHigh)
	f.Assignee = query.AssigneeUnassigned()
	f.Due = query.DueOverdue
	f.Project = uuid.New()
	f.ShowCompleted = false
	assert.Equal(t, 8, f.ActiveCount())
}

func TestDefaultFilters(t *testing.T) {
	t.Parallel()

	f := query.DefaultFilters()
	assert.Equal(t, query.FilterAll, f.Status)
	assert.Equal(t, query.FilterAll, f.Priority)
	assert.True(t, f.Assignee.IsAll())
	assert.Equal(t, query.DueAll, f.Due)
	assert.Equal(t, uuid.Nil, f.Project)
	assert.Empty(t, f.Tags)
	assert.True(t, f.ShowCompleted)
}
