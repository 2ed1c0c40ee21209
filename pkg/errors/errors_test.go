package custom_error

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", NewValidationError("quantity_distributed", "exceeds stock"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("fulfil: %w", NewValidationError("supply_id", "required")), http.StatusBadRequest},
		{"not found", NewNotFoundError("request", 4), http.StatusNotFound},
		{"conflict", NewConflictError("request %d is %s", 1, "Fulfilled"), http.StatusConflict},
		{"unique violation", WrapDBError("distribution", "23505"), http.StatusConflict},
		{"foreign key violation", WrapDBError("victim_id", "23503"), http.StatusBadRequest},
		{"check violation", WrapDBError("supplies", "23514"), http.StatusBadRequest},
		{"transaction", &TransactionError{Op: "distribution", Err: errors.New("connection reset")}, http.StatusInternalServerError},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	txErr := &TransactionError{Op: "distribution", Err: errors.New("pq: deadlock detected")}

	assert.Equal(t, "could not complete distribution", PublicMessage(txErr, "internal error"))
	assert.Equal(t, "internal error", PublicMessage(errors.New("pq: relation missing"), "internal error"))
	assert.Equal(t, "request 3 not found", PublicMessage(NewNotFoundError("request", 3), "internal error"))
}

func TestPublicMessageDropsDatabaseCodes(t *testing.T) {
	unique := fmt.Errorf("insert distribution: %w", WrapDBError("distribution for request 5", "23505"))
	foreignKey := WrapDBError("camp_id", "23503")

	assert.Equal(t, "distribution for request 5", PublicMessage(unique, "internal error"))
	assert.Equal(t, "Referenced resource does not exist: camp_id", PublicMessage(foreignKey, "internal error"))
	assert.NotContains(t, PublicMessage(unique, "internal error"), "23505")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(NewConflictError("already fulfilled")))
	assert.True(t, IsClientError(WrapDBError("distribution", "23505")))
	assert.False(t, IsClientError(errors.New("connection reset")))
	assert.False(t, IsClientError(nil))
}
