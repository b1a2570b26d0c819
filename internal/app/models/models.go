package models

// Role identifies which account table a user lives in and what they may do
type Role string

const (
	RoleStudent Role = "student"
	RoleFaculty Role = "faculty"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role is stored in the staff table.
func (r Role) IsStaff() bool {
	return r == RoleFaculty || r == RoleAdmin
}
