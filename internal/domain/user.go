package domain

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleHead    Role = "head"
	RoleMember  Role = "member"
)

// ParseRole maps a raw role string to a known Role. Unknown strings are
// rejected; callers decide the fallback.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleManager:
		return RoleManager, true
	case RoleHead:
		return RoleHead, true
	case RoleMember:
		return RoleMember, true
	default:
		return "", false
	}
}

// RoleSet is a non-empty set of roles. Build one with NewRoleSet or
// NormalizeRoles; both guarantee at least the member role.
type RoleSet map[Role]struct{}

func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		s[r] = struct{}{}
	}
	if len(s) == 0 {
		s[RoleMember] = struct{}{}
	}
	return s
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

// List returns the roles in a deterministic order.
func (s RoleSet) List() []Role {
	out := make([]Role, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings returns the role names, for storage and token claims.
func (s RoleSet) Strings() []string {
	roles := s.List()
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

// NormalizeRoles collapses the two legacy record shapes, a singular role
// string and/or a plural roles list, into one canonical RoleSet. Unknown
// role strings are dropped; if nothing survives the user defaults to member.
func NormalizeRoles(single string, plural []string) RoleSet {
	s := make(RoleSet, len(plural)+1)
	if r, ok := ParseRole(single); ok {
		s[r] = struct{}{}
	}
	for _, raw := range plural {
		if r, ok := ParseRole(raw); ok {
			s[r] = struct{}{}
		}
	}
	if len(s) == 0 {
		s[RoleMember] = struct{}{}
	}
	return s
}

// User is a member of the workspace. Department holds the identifier of the
// department the user belongs to; it is empty for unassigned users and
// optional for admins. Department identifiers are opaque, case-sensitive
// strings and are never normalized.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string // argon2id, empty for externally-authenticated users
	Name         string
	Roles        RoleSet
	Department   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role. A nil user is never
// an admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Roles.Has(RoleAdmin)
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Roles.Has(r)
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context) ([]*User, error)
	ListByDepartment(ctx context.Context, department string) ([]*User, error)
	// ClearDepartment detaches every user from the given department.
	// Used when a department is deleted; users are kept as unassigned.
	ClearDepartment(ctx context.Context, department string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
