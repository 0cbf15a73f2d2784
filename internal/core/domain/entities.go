package domain

// Role represents a student's role in the system
type Role string

const (
	RoleStudent Role = "Student"
	RoleAdmin   Role = "Admin"
)

// Valid reports whether the role is one of the known roles
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Principal is the authenticated identity extracted from a verified session
// token. Core operations receive it as an explicit value; nothing reads it
// from ambient request state.
type Principal struct {
	StudentID uint
	Email     string
	FullName  string
	Role      Role
}

// IsAdmin reports whether the principal carries the admin role
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
