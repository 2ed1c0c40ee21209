package camps

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/models"
)

const defaultCampStatus = "Active"

type CampRepositoryInterface interface {
	GetCamp(ctx context.Context, id int) (*models.Camp, error)
	GetCampsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Camp, error)
	PersistCamp(ctx context.Context, camp models.Camp) (*models.Camp, error)
	UpdateCamp(ctx context.Context, id int, camp models.Camp) (bool, error)
	DeleteCamp(ctx context.Context, id int) (bool, error)
}

// ManagerPolicy is notified after every successful camp mutation.
type ManagerPolicy interface {
	OnCampCreated(ctx context.Context, managerID *int, actorID *int)
	OnCampUpdated(ctx context.Context, oldManagerID, newManagerID *int, actorID *int)
	OnCampDeleted(ctx context.Context, oldManagerID *int, actorID *int)
}

type CampService struct {
	r      CampRepositoryInterface
	policy ManagerPolicy
	logger *zap.Logger
}

func NewCampService(r CampRepositoryInterface, policy ManagerPolicy, logger *zap.Logger) *CampService {
	return &CampService{r: r, policy: policy, logger: logger}
}

func (s *CampService) GetCamp(ctx context.Context, id int) (*models.Camp, error) {
	camp, err := s.r.GetCamp(ctx, id)
	if err != nil {
		return nil, err
	}
	if camp == nil {
		return nil, custom_error.NewNotFoundError("camp", id)
	}
	return camp, nil
}

func (s *CampService) ListCamps(ctx context.Context, filter CampFilter) ([]models.Camp, error) {
	qb := repository.NewQueryBuilder()
	qb.AddCondition("area_id", filter.AreaID)
	qb.AddCondition("manager_id", filter.ManagerID)
	qb.AddCondition("status", strings.TrimSpace(filter.Status))

	return s.r.GetCampsBy(ctx, qb)
}

func (s *CampService) CreateCamp(ctx context.Context, input CampInput, actorID *int) (*models.Camp, error) {
	camp, err := campFromInput(input)
	if err != nil {
		return nil, err
	}

	created, err := s.r.PersistCamp(ctx, camp)
	if err != nil {
		return nil, err
	}

	s.logger.Info("camp created", zap.Int("camp_id", created.ID))
	s.policy.OnCampCreated(ctx, created.ManagerID, actorID)

	return created, nil
}

func (s *CampService) UpdateCamp(ctx context.Context, id int, input CampInput, actorID *int) (*models.Camp, error) {
	camp, err := campFromInput(input)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetCamp(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.r.UpdateCamp(ctx, id, camp)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, custom_error.NewNotFoundError("camp", id)
	}

	camp.ID = id
	camp.CreatedAt = existing.CreatedAt

	s.logger.Info("camp updated", zap.Int("camp_id", id))
	s.policy.OnCampUpdated(ctx, existing.ManagerID, camp.ManagerID, actorID)

	return &camp, nil
}

func (s *CampService) DeleteCamp(ctx context.Context, id int, actorID *int) error {
	existing, err := s.GetCamp(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.r.DeleteCamp(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return custom_error.NewNotFoundError("camp", id)
	}

	s.logger.Info("camp deleted", zap.Int("camp_id", id))
	s.policy.OnCampDeleted(ctx, existing.ManagerID, actorID)

	return nil
}

func campFromInput(input CampInput) (models.Camp, error) {
	switch {
	case input.AreaID <= 0:
		return models.Camp{}, custom_error.NewValidationError("area_id", "is required")
	case strings.TrimSpace(input.Name) == "":
		return models.Camp{}, custom_error.NewValidationError("name", "is required")
	case input.Capacity == nil:
		return models.Camp{}, custom_error.NewValidationError("capacity", "is required")
	case *input.Capacity < 0:
		return models.Camp{}, custom_error.NewValidationError("capacity", "cannot be negative")
	case strings.TrimSpace(input.Location) == "":
		return models.Camp{}, custom_error.NewValidationError("location", "is required")
	case input.CurrentOccupancy < 0:
		return models.Camp{}, custom_error.NewValidationError("current_occupancy", "cannot be negative")
	case input.ManagerID != nil && *input.ManagerID <= 0:
		return models.Camp{}, custom_error.NewValidationError("manager_id", "must be a volunteer id")
	}

	camp := models.Camp{
		AreaID:           input.AreaID,
		ManagerID:        input.ManagerID,
		Name:             strings.TrimSpace(input.Name),
		Capacity:         *input.Capacity,
		CurrentOccupancy: input.CurrentOccupancy,
		Location:         strings.TrimSpace(input.Location),
		Status:           strings.TrimSpace(input.Status),
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
	}
	if camp.Status == "" {
		camp.Status = defaultCampStatus
	}

	if input.DateEstablished != "" {
		established, err := time.Parse(time.DateOnly, input.DateEstablished)
		if err != nil {
			return models.Camp{}, custom_error.NewValidationError("date_established", "must be a date in YYYY-MM-DD format")
		}
		camp.DateEstablished = &established
	}

	return camp, nil
}
