package policy

import "github.com/gosuda/crew/internal/domain"

// CanViewDepartment reports whether the user may see the given department.
// Admins see everything; everyone else sees exactly their own department.
// Department identifiers are opaque strings; the comparison is exact and
// case-sensitive, mismatched casing is a mismatch.
func CanViewDepartment(user *domain.User, department string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return user.Department == department
}

// CanManageDepartment reports whether the user may manage the given
// department. Unlike viewing, managing additionally requires the head role:
// a head manages only their own department, an ordinary member manages none.
func CanManageDepartment(user *domain.User, department string) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return user.HasRole(domain.RoleHead) && user.Department == department
}
