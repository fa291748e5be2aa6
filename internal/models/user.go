package models

import "time"

const (
	RoleMember      = "member"
	RoleCoach       = "coach"
	RoleAdmin       = "admin"
	RoleMasterAdmin = "master_admin"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleMasterAdmin
}

func ValidRole(role string) bool {
	switch role {
	case RoleMember, RoleCoach, RoleAdmin, RoleMasterAdmin:
		return true
	default:
		return false
	}
}
