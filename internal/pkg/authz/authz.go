// Package authz holds the pure role/ownership predicate every gated
// operation consults. It performs no I/O and trusts its inputs as already
// authenticated.
package authz

import "lms-backend/internal/core/domain"

// Allowed reports whether the principal may perform an operation.
//
// Admin principals may do anything. When requiredRole is RoleAdmin the
// operation is admin-only and every other principal is refused. Otherwise a
// non-zero resourceOwnerID grants access to the owning student
// (self-or-admin operations such as a student's own report or history).
func Allowed(p domain.Principal, requiredRole domain.Role, resourceOwnerID uint) bool {
	if p.IsAdmin() {
		return true
	}
	if requiredRole == domain.RoleAdmin {
		return false
	}
	return resourceOwnerID != 0 && p.StudentID == resourceOwnerID
}

// CanAccessStudent reports whether the principal may read data owned by the
// given student
func CanAccessStudent(p domain.Principal, studentID uint) bool {
	return Allowed(p, domain.RoleStudent, studentID)
}
