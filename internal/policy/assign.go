package policy

import (
	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
)

// Level is the assignment permission level derived from a user's role set.
type Level int

const (
	LevelNone Level = iota
	LevelMember
	LevelHead
	LevelAdmin
)

func (l Level) String() string {
	switch l {
	case LevelAdmin:
		return "admin"
	case LevelHead:
		return "head"
	case LevelMember:
		return "member"
	default:
		return "none"
	}
}

// PermissionLevel resolves the acting user's assignment level from their
// role set, in priority order admin > head > member. A user holding both
// admin and head resolves to admin. Nil users resolve to none; any
// normalized role set (which always contains at least member) resolves to
// member or above.
func PermissionLevel(user *domain.User) Level {
	switch {
	case user == nil:
		return LevelNone
	case user.Roles.Has(domain.RoleAdmin):
		return LevelAdmin
	case user.Roles.Has(domain.RoleHead):
		return LevelHead
	case len(user.Roles) > 0:
		return LevelMember
	default:
		return LevelNone
	}
}

// CanAssignTo reports whether the acting user may set the candidate as a
// task's assignee. Admins may assign to anyone; heads to themselves or
// anyone in their own department; members only to themselves.
func CanAssignTo(actor, candidate *domain.User) bool {
	if actor == nil || candidate == nil {
		return false
	}
	switch PermissionLevel(actor) {
	case LevelAdmin:
		return true
	case LevelHead:
		if actor.ID == candidate.ID {
			return true
		}
		return actor.Department != "" && actor.Department == candidate.Department
	case LevelMember:
		return actor.ID == candidate.ID
	default:
		return false
	}
}

// RosterScopeKind selects how broad an assignable-roster fetch should be.
type RosterScopeKind int

const (
	RosterAll RosterScopeKind = iota
	RosterDepartment
	RosterSelf
)

// RosterScope is the selection criteria handed to the user-record provider
// when fetching assignment candidates. It describes what to fetch, not how.
type RosterScope struct {
	Kind       RosterScopeKind
	Department string    // set when Kind is RosterDepartment
	UserID     uuid.UUID // set when Kind is RosterSelf
}

// AssignableScope computes the roster selection criteria for the acting
// user: admins get the full roster, heads with a department get their
// department's roster, everyone else (including heads without a department)
// gets a singleton roster of themselves.
func AssignableScope(actor *domain.User) RosterScope {
	if actor == nil {
		return RosterScope{Kind: RosterSelf}
	}
	switch PermissionLevel(actor) {
	case LevelAdmin:
		return RosterScope{Kind: RosterAll}
	case LevelHead:
		if actor.Department != "" {
			return RosterScope{Kind: RosterDepartment, Department: actor.Department}
		}
		return RosterScope{Kind: RosterSelf, UserID: actor.ID}
	default:
		return RosterScope{Kind: RosterSelf, UserID: actor.ID}
	}
}
