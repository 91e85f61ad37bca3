package policy

import (
	"strings"

	"github.com/gosuda/crew/internal/domain"
)

// DepartmentAll is the dropdown sentinel meaning "no department filter".
const DepartmentAll = "all"

// VisibleMembers narrows a full member roster to what the acting user may
// see. Members and heads see only their own department (a head does not
// automatically see other departments). Admins, and roles with no captured
// department constraint such as manager, see the full roster, narrowed by
// the department dropdown when it is not "all". A free-text search is then
// applied across name, email, department, and roles with OR semantics.
func VisibleMembers(actor *domain.User, roster []*domain.User, department, search string) []*domain.User {
	if actor == nil {
		return nil
	}

	out := make([]*domain.User, 0, len(roster))
	scoped := !actor.IsAdmin() && (actor.HasRole(domain.RoleHead) || actor.HasRole(domain.RoleMember))

	for _, m := range roster {
		if m == nil {
			continue
		}
		if scoped {
			if m.Department != actor.Department {
				continue
			}
		} else if department != "" && department != DepartmentAll && m.Department != department {
			continue
		}
		if !matchesMemberSearch(m, search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesMemberSearch(m *domain.User, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Name), q) ||
		strings.Contains(strings.ToLower(m.Email), q) ||
		strings.Contains(strings.ToLower(m.Department), q) {
		return true
	}
	for _, r := range m.Roles.List() {
		if strings.Contains(string(r), q) {
			return true
		}
	}
	return false
}
