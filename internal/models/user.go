package models

import "time"

// UserRole represents the portal roles for the RBAC system.
type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
	RoleFinance UserRole = "FINANCE"
)

// DashboardPath returns the role-specific landing route used after login.
func (r UserRole) DashboardPath() string {
	switch r {
	case RoleStudent:
		return "/dashboard/student"
	case RoleTeacher:
		return "/dashboard/teacher"
	case RoleFinance:
		return "/dashboard/finance"
	default:
		return "/"
	}
}

// User represents a seeded portal account.
type User struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	FullName   string     `json:"full_name"`
	FullNameEn string     `json:"full_name_en"`
	Role       UserRole   `json:"role"`
	Active     bool       `json:"active"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
