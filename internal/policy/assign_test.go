package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/policy"
)

func TestPermissionLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user *domain.User
		want policy.Level
	}{
		{"nil user", nil, policy.LevelNone},
		{"admin", userWith("", domain.RoleAdmin), policy.LevelAdmin},
		{"head", userWith("eng", domain.RoleHead), policy.LevelHead},
		{"member", userWith("eng", domain.RoleMember), policy.LevelMember},
		{"manager resolves to member level", userWith("eng", domain.RoleManager), policy.LevelMember},

		// Priority order admin > head > member.
		{"admin and head resolves to admin", userWith("eng", domain.RoleAdmin, domain.RoleHead), policy.LevelAdmin},
		{"head and member resolves to head", userWith("eng", domain.RoleHead, domain.RoleMember), policy.LevelHead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, policy.PermissionLevel(tt.user))
		})
	}
}

func TestCanAssignTo(t *testing.T) {
	t.Parallel()

	admin := userWith("", domain.RoleAdmin)
	engHead := userWith("eng", domain.RoleHead)
	engMember := userWith("eng", domain.RoleMember)
	hrMember := userWith("hr", domain.RoleMember)
	driftingHead := userWith("", domain.RoleHead)

	t.Run("admin assigns to anyone", func(t *testing.T) {
		t.Parallel()

		for _, candidate := range []*domain.User{engHead, engMember, hrMember, admin} {
			assert.True(t, policy.CanAssignTo(admin, candidate))
		}
	})

	t.Run("head assigns within own department", func(t *testing.T) {
		t.Parallel()

		assert.True(t, policy.CanAssignTo(engHead, engMember))
		assert.False(t, policy.CanAssignTo(engHead, hrMember))
	})

	t.Run("head without department assigns only to self", func(t *testing.T) {
		t.Parallel()

		assert.True(t, policy.CanAssignTo(driftingHead, driftingHead))
		// Both departments empty must not count as "same department".
		other := userWith("", domain.RoleMember)
		assert.False(t, policy.CanAssignTo(driftingHead, other))
	})

	t.Run("member assigns only to self", func(t *testing.T) {
		t.Parallel()

		assert.True(t, policy.CanAssignTo(engMember, engMember))
		assert.False(t, policy.CanAssignTo(engMember, engHead))
		assert.False(t, policy.CanAssignTo(engMember, hrMember))
	})

	t.Run("nil actor or candidate fails closed", func(t *testing.T) {
		t.Parallel()

		assert.False(t, policy.CanAssignTo(nil, engMember))
		assert.False(t, policy.CanAssignTo(engMember, nil))
	})
}

// TestCanAssignTo_Reflexive verifies every authenticated user can assign to
// themselves, whatever their level.
func TestCanAssignTo_Reflexive(t *testing.T) {
	t.Parallel()

	users := []*domain.User{
		userWith("", domain.RoleAdmin),
		userWith("eng", domain.RoleHead),
		userWith("eng", domain.RoleMember),
		userWith("", domain.RoleMember),
		userWith("eng", domain.RoleManager),
	}

	for _, u := range users {
		assert.True(t, policy.CanAssignTo(u, u), "roles %v", u.Roles.List())
	}
}

func TestAssignableScope(t *testing.T) {
	t.Parallel()

	t.Run("admin requests the full roster", func(t *testing.T) {
		t.Parallel()

		scope := policy.AssignableScope(userWith("", domain.RoleAdmin))
		assert.Equal(t, policy.RosterAll, scope.Kind)
	})

	t.Run("head with department requests the department roster", func(t *testing.T) {
		t.Parallel()

		head := userWith("Engineering", domain.RoleHead)
		scope := policy.AssignableScope(head)
		require.Equal(t, policy.RosterDepartment, scope.Kind)
		assert.Equal(t, "Engineering", scope.Department)
	})

	t.Run("head without department falls back to self", func(t *testing.T) {
		t.Parallel()

		head := userWith("", domain.RoleHead)
		scope := policy.AssignableScope(head)
		require.Equal(t, policy.RosterSelf, scope.Kind)
		assert.Equal(t, head.ID, scope.UserID)
	})

	t.Run("member requests a singleton roster", func(t *testing.T) {
		t.Parallel()

		member := userWith("Engineering", domain.RoleMember)
		scope := policy.AssignableScope(member)
		require.Equal(t, policy.RosterSelf, scope.Kind)
		assert.Equal(t, member.ID, scope.UserID)
	})

	t.Run("nil actor yields an empty self scope", func(t *testing.T) {
		t.Parallel()

		scope := policy.AssignableScope(nil)
		assert.Equal(t, policy.RosterSelf, scope.Kind)
	})
}
