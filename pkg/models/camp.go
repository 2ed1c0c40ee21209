package models

import "time"

type Camp struct {
	ID               int        `json:"camp_id" db:"camp_id"`
	AreaID           int        `json:"area_id" db:"area_id"`
	ManagerID        *int       `json:"manager_id" db:"manager_id"`
	Name             string     `json:"name" db:"name"`
	Capacity         int        `json:"capacity" db:"capacity"`
	CurrentOccupancy int        `json:"current_occupancy" db:"current_occupancy"`
	Location         string     `json:"location" db:"location"`
	DateEstablished  *time.Time `json:"date_established" db:"date_established"`
	Status           string     `json:"status" db:"status"`
	Latitude         *float64   `json:"latitude" db:"latitude"`
	Longitude        *float64   `json:"longitude" db:"longitude"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
}

func (c *Camp) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "camp",
	}
}
