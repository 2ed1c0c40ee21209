package models

import (
	"time"

	"relief/pkg/metadata"
)

type Request struct {
	ID             int                    `json:"request_id" db:"request_id"`
	VictimID       int                    `json:"victim_id" db:"victim_id"`
	CampID         int                    `json:"camp_id" db:"camp_id"`
	ItemRequested  string                 `json:"item_requested" db:"item_requested"`
	QuantityNeeded int                    `json:"quantity_needed" db:"quantity_needed"`
	Priority       metadata.Priority      `json:"priority" db:"priority"`
	Status         metadata.RequestStatus `json:"status" db:"status"`
	RequestDate    time.Time              `json:"request_date" db:"request_date"`
	FulfilledDate  *time.Time             `json:"fulfilled_date" db:"fulfilled_date"`
	CreatedAt      time.Time              `json:"created_at" db:"created_at"`
}

func (r *Request) IsPending() bool {
	return r.Status == metadata.StatusPending
}

func (r *Request) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   r.ID,
		ResourceType: "request",
	}
}

type RequestStats struct {
	TotalRequests     int `json:"total_requests" db:"total_requests"`
	PendingRequests   int `json:"pending_requests" db:"pending_requests"`
	FulfilledRequests int `json:"fulfilled_requests" db:"fulfilled_requests"`
	RejectedRequests  int `json:"rejected_requests" db:"rejected_requests"`
	HighPriority      int `json:"high_priority" db:"high_priority"`
	MediumPriority    int `json:"medium_priority" db:"medium_priority"`
	LowPriority       int `json:"low_priority" db:"low_priority"`
	UniqueVictims     int `json:"unique_victims" db:"unique_victims"`
	CampsWithRequests int `json:"camps_with_requests" db:"camps_with_requests"`
}
