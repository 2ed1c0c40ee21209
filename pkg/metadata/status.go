package metadata

import (
	"fmt"
	"strings"

	custom_error "relief/pkg/errors"
)

type RequestStatus string

const (
	StatusPending   RequestStatus = "Pending"
	StatusFulfilled RequestStatus = "Fulfilled"
	StatusRejected  RequestStatus = "Rejected"
)

func NewRequestStatus(value string) (RequestStatus, error) {
	status := RequestStatus(strings.TrimSpace(value))
	if !status.isValid() {
		return "", fmt.Errorf("invalid status: %s", value)
	}
	return status, nil
}

func (s RequestStatus) isValid() bool {
	switch s {
	case StatusPending, StatusFulfilled, StatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusFulfilled || s == StatusRejected
}

func (s RequestStatus) String() string {
	return string(s)
}

// Transition is the single place a request changes status. Only
// Pending -> Fulfilled and Pending -> Rejected are allowed.
func (s RequestStatus) Transition(next RequestStatus) (RequestStatus, error) {
	if !next.isValid() {
		return s, custom_error.NewValidationError("status", fmt.Sprintf("unknown status %q", next))
	}
	if !s.isValid() || s.IsTerminal() || next == StatusPending {
		return s, custom_error.NewConflictError("request cannot move from %s to %s", s, next)
	}
	return next, nil
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// NewPriority parses a priority; an empty value defaults to Medium.
func NewPriority(value string) (Priority, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return PriorityMedium, nil
	}

	for _, p := range []Priority{PriorityHigh, PriorityMedium, PriorityLow} {
		if strings.EqualFold(trimmed, string(p)) {
			return p, nil
		}
	}

	return "", fmt.Errorf(
		"value not valid, only valid values are: %s, %s, %s",
		PriorityHigh, PriorityMedium, PriorityLow,
	)
}

// Rank orders priorities for queues, highest first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) String() string {
	return string(p)
}
