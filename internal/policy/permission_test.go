package policy_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/policy"
)

func userWith(dept string, roles ...domain.Role) *domain.User {
	return &domain.User{
		ID:         uuid.New(),
		Roles:      domain.NewRoleSet(roles...),
		Department: dept,
	}
}

var allActions = []policy.Action{
	policy.ActionCreateTask,
	policy.ActionDeleteTask,
	policy.ActionDeleteComments,
	policy.ActionViewReports,
	policy.ActionManageUsers,
	policy.ActionAssignTasksAll,
	policy.ActionAssignTasksDept,
	policy.ActionAddTeamMembers,
	policy.ActionAddDepartment,
	policy.ActionEditDepartment,
}

// TestHasPermission_AdminBypass verifies the admin role is allowed every
// action in the vocabulary, regardless of its table entry.
func TestHasPermission_AdminBypass(t *testing.T) {
	t.Parallel()

	admin := userWith("", domain.RoleAdmin)
	for _, action := range allActions {
		t.Run(string(action), func(t *testing.T) {
			t.Parallel()

			assert.True(t, policy.HasPermission(admin, action))
		})
	}
}

// TestHasPermission_AdminAmongOtherRoles verifies the bypass applies when
// admin is one role among several.
func TestHasPermission_AdminAmongOtherRoles(t *testing.T) {
	t.Parallel()

	u := userWith("eng", domain.RoleMember, domain.RoleAdmin)
	for _, action := range allActions {
		assert.True(t, policy.HasPermission(u, action), "action %s", action)
	}
}

func TestHasPermission_RoleTable(t *testing.T) {
	t.Parallel()

	manager := userWith("eng", domain.RoleManager)
	head := userWith("eng", domain.RoleHead)
	member := userWith("eng", domain.RoleMember)

	tests := []struct {
		action  policy.Action
		manager bool
		head    bool
		member  bool
	}{
		{policy.ActionCreateTask, true, true, true},
		{policy.ActionDeleteTask, true, true, false},
		{policy.ActionDeleteComments, true, false, false},
		{policy.ActionViewReports, true, true, false},
		{policy.ActionManageUsers, false, false, false},
		{policy.ActionAssignTasksAll, true, false, false},
		{policy.ActionAssignTasksDept, true, true, false},
		{policy.ActionAddTeamMembers, false, true, false},
		{policy.ActionAddDepartment, false, false, false},
		{policy.ActionEditDepartment, false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.manager, policy.HasPermission(manager, tt.action), "manager")
			assert.Equal(t, tt.head, policy.HasPermission(head, tt.action), "head")
			assert.Equal(t, tt.member, policy.HasPermission(member, tt.action), "member")
		})
	}
}

// TestHasPermission_FailClosed covers the two fail-closed paths: no user and
// an action outside the vocabulary.
func TestHasPermission_FailClosed(t *testing.T) {
	t.Parallel()

	t.Run("nil user denied everything", func(t *testing.T) {
		t.Parallel()

		for _, action := range allActions {
			assert.False(t, policy.HasPermission(nil, action), "action %s", action)
		}
	})

	t.Run("unknown action denied for every role", func(t *testing.T) {
		t.Parallel()

		unknown := policy.Action("launch_rockets")
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleHead, domain.RoleMember} {
			assert.False(t, policy.HasPermission(userWith("eng", role), unknown), "role %s", role)
		}
	})
}
