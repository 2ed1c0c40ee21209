package models

import "relief/pkg/roles"

type User struct {
	ID          int        `json:"user_id" db:"user_id"`
	Username    string     `json:"username" db:"username"`
	FullName    string     `json:"full_name" db:"full_name"`
	Role        roles.Role `json:"role" db:"role"`
	VolunteerID *int       `json:"volunteer_id" db:"volunteer_id"`
	IsActive    bool       `json:"is_active" db:"is_active"`
}

func (u *User) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   u.ID,
		ResourceType: "user",
	}
}
