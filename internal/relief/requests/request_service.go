package requests

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/metadata"
	"relief/pkg/models"
)

type RequestRepositoryInterface interface {
	PersistRequest(ctx context.Context, req models.Request) (*models.Request, error)
	GetRequest(ctx context.Context, id int) (*models.Request, error)
	GetRequestsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Request, error)
	GetUrgentRequests(ctx context.Context) ([]models.Request, error)
	GetRequestsByCamp(ctx context.Context, campID int) ([]models.Request, error)
	GetRequestsByVictim(ctx context.Context, victimID int) ([]models.Request, error)
	UpdateStatus(ctx context.Context, id int, from, to metadata.RequestStatus) error
	GetStats(ctx context.Context) (*models.RequestStats, error)
}

type RequestService struct {
	r      RequestRepositoryInterface
	logger *zap.Logger
}

func NewRequestService(r RequestRepositoryInterface, logger *zap.Logger) *RequestService {
	return &RequestService{r: r, logger: logger}
}

var dateLayouts = []string{time.DateOnly, time.RFC3339}

func parseDate(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *RequestService) CreateRequest(ctx context.Context, input CreateRequestInput) (*models.Request, error) {
	switch {
	case input.VictimID <= 0:
		return nil, custom_error.NewValidationError("victim_id", "is required")
	case input.CampID <= 0:
		return nil, custom_error.NewValidationError("camp_id", "is required")
	case strings.TrimSpace(input.ItemRequested) == "":
		return nil, custom_error.NewValidationError("item_requested", "is required")
	case input.QuantityNeeded <= 0:
		return nil, custom_error.NewValidationError("quantity_needed", "must be a positive number")
	case strings.TrimSpace(input.RequestDate) == "":
		return nil, custom_error.NewValidationError("request_date", "is required")
	}

	requestDate, ok := parseDate(strings.TrimSpace(input.RequestDate))
	if !ok {
		return nil, custom_error.NewValidationError("request_date", "must be a date in YYYY-MM-DD format")
	}

	priority, err := metadata.NewPriority(input.Priority)
	if err != nil {
		return nil, custom_error.NewValidationError("priority", err.Error())
	}

	req, err := s.r.PersistRequest(ctx, models.Request{
		VictimID:       input.VictimID,
		CampID:         input.CampID,
		ItemRequested:  strings.TrimSpace(input.ItemRequested),
		QuantityNeeded: input.QuantityNeeded,
		Priority:       priority,
		Status:         metadata.StatusPending,
		RequestDate:    requestDate,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("request created",
		zap.Int("request_id", req.ID),
		zap.Int("victim_id", req.VictimID),
		zap.Int("camp_id", req.CampID),
		zap.String("priority", req.Priority.String()),
	)

	return req, nil
}

// GetRequest returns a NotFoundError when the request is missing.
func (s *RequestService) GetRequest(ctx context.Context, id int) (*models.Request, error) {
	req, err := s.r.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, custom_error.NewNotFoundError("request", id)
	}
	return req, nil
}

func (s *RequestService) ListRequests(ctx context.Context, filter RequestFilter) ([]models.Request, error) {
	qb := repository.NewQueryBuilder()

	if filter.Status != "" {
		status, err := metadata.NewRequestStatus(filter.Status)
		if err != nil {
			return nil, custom_error.NewValidationError("status", err.Error())
		}
		qb.AddCondition("status", status.String())
	}
	if filter.Priority != "" {
		priority, err := metadata.NewPriority(filter.Priority)
		if err != nil {
			return nil, custom_error.NewValidationError("priority", err.Error())
		}
		qb.AddCondition("priority", priority.String())
	}
	qb.AddCondition("camp_id", filter.CampID)
	qb.AddCondition("victim_id", filter.VictimID)

	return s.r.GetRequestsBy(ctx, qb)
}

func (s *RequestService) ListUrgent(ctx context.Context) ([]models.Request, error) {
	return s.r.GetUrgentRequests(ctx)
}

func (s *RequestService) ListByCamp(ctx context.Context, campID int) ([]models.Request, error) {
	return s.r.GetRequestsByCamp(ctx, campID)
}

func (s *RequestService) ListByVictim(ctx context.Context, victimID int) ([]models.Request, error) {
	return s.r.GetRequestsByVictim(ctx, victimID)
}

func (s *RequestService) Stats(ctx context.Context) (*models.RequestStats, error) {
	return s.r.GetStats(ctx)
}

// Reject closes a pending request without a distribution.
func (s *RequestService) Reject(ctx context.Context, id int) (*models.Request, error) {
	req, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := req.Status.Transition(metadata.StatusRejected)
	if err != nil {
		return nil, err
	}

	if err := s.r.UpdateStatus(ctx, id, req.Status, next); err != nil {
		return nil, err
	}

	req.Status = next
	s.logger.Info("request rejected", zap.Int("request_id", id))

	return req, nil
}
