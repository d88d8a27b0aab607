package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can manage employees, schedules, and approvals
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID           string
	Username     *string // NIK doubles as username for employees
	Email        *string
	PasswordHash string
	FullName     string
	Role         Role
	NIK          *string
	Branch       *string
	Position     *string
	PhoneNumber  *string
	PhotoURL     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
