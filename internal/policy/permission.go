// Package policy holds the authorization rules: which actions a user may
// perform, which departments they can see or manage, who they may assign
// tasks to, and which members are visible to them. Everything here is a pure
// function of its inputs and safe for concurrent use.
package policy

import "github.com/gosuda/crew/internal/domain"

// Action is one of the fixed permission vocabulary. Unknown actions are
// denied, never an error.
type Action string

const (
	ActionCreateTask      Action = "create_task"
	ActionDeleteTask      Action = "delete_task"
	ActionDeleteComments  Action = "delete_comments"
	ActionViewReports     Action = "view_reports"
	ActionManageUsers     Action = "manage_users"
	ActionAssignTasksAll  Action = "assign_tasks_all"
	ActionAssignTasksDept Action = "assign_tasks_department"
	ActionAddTeamMembers  Action = "add_team_members"
	ActionAddDepartment   Action = "add_department"
	ActionEditDepartment  Action = "edit_department"
)

// actionRoles maps each action to the non-admin roles allowed to perform it.
// Admin is handled as an unconditional bypass in HasPermission and is left
// out of the table.
var actionRoles = map[Action][]domain.Role{
	ActionCreateTask:      {domain.RoleManager, domain.RoleHead, domain.RoleMember},
	ActionDeleteTask:      {domain.RoleManager, domain.RoleHead},
	ActionDeleteComments:  {domain.RoleManager},
	ActionViewReports:     {domain.RoleManager, domain.RoleHead},
	ActionManageUsers:     {},
	ActionAssignTasksAll:  {domain.RoleManager},
	ActionAssignTasksDept: {domain.RoleManager, domain.RoleHead},
	ActionAddTeamMembers:  {domain.RoleHead},
	ActionAddDepartment:   {},
	ActionEditDepartment:  {},
}

// HasPermission reports whether the user may perform the action. A nil
// (unauthenticated) user and an unknown action both fail closed. Any user
// holding the admin role is allowed unconditionally.
func HasPermission(user *domain.User, action Action) bool {
	if user == nil {
		return false
	}
	roles, ok := actionRoles[action]
	if !ok {
		// Outside the vocabulary: deny even for admins.
		return false
	}
	if user.IsAdmin() {
		return true
	}
	for _, r := range roles {
		if user.HasRole(r) {
			return true
		}
	}
	return false
}
