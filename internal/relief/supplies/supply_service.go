package supplies

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/metadata"
	"relief/pkg/models"
)

type SupplyRepositoryInterface interface {
	GetSupply(ctx context.Context, id int) (*models.SupplyLot, error)
	GetSuppliesBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.SupplyLot, error)
	GetLowStockSupplies(ctx context.Context, ratio float64) ([]models.SupplyLot, error)
	PersistSupply(ctx context.Context, lot models.SupplyLot) (*models.SupplyLot, error)
	HasDistributions(ctx context.Context, id int) (bool, error)
	DeleteSupply(ctx context.Context, id int) (bool, error)
}

type SupplyService struct {
	r                SupplyRepositoryInterface
	logger           *zap.Logger
	expiringSoonDays int
	now              func() time.Time
}

func NewSupplyService(r SupplyRepositoryInterface, expiringSoonDays int, logger *zap.Logger) *SupplyService {
	return &SupplyService{
		r:                r,
		logger:           logger,
		expiringSoonDays: expiringSoonDays,
		now:              time.Now,
	}
}

func (s *SupplyService) statusOf(lot *models.SupplyLot, now time.Time) metadata.SupplyStatus {
	return metadata.SupplyStatusFor(lot.CurrentQuantity, lot.Quantity, lot.ExpiryDate, now, s.expiringSoonDays)
}

func (s *SupplyService) label(lots []models.SupplyLot) []models.SupplyLot {
	now := s.now()
	for i := range lots {
		lots[i].Status = s.statusOf(&lots[i], now)
	}
	return lots
}

func (s *SupplyService) GetSupply(ctx context.Context, id int) (*models.SupplyLot, error) {
	lot, err := s.r.GetSupply(ctx, id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, custom_error.NewNotFoundError("supply", id)
	}

	lot.Status = s.statusOf(lot, s.now())
	return lot, nil
}

func (s *SupplyService) ListSupplies(ctx context.Context, filter SupplyFilter) ([]models.SupplyLot, error) {
	qb := repository.NewQueryBuilder()
	qb.AddCondition("camp_id", filter.CampID)
	qb.AddCondition("category", strings.TrimSpace(filter.Category))

	lots, err := s.r.GetSuppliesBy(ctx, qb)
	if err != nil {
		return nil, err
	}

	return s.label(lots), nil
}

// ListLowStock returns lots under 20% of their original quantity, the
// emptiest first.
func (s *SupplyService) ListLowStock(ctx context.Context) ([]models.LowStockAlert, error) {
	lots, err := s.r.GetLowStockSupplies(ctx, metadata.LowStockRatio)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.LowStockAlert, 0, len(lots))
	for _, lot := range s.label(lots) {
		alerts = append(alerts, models.LowStockAlert{
			SupplyLot:       lot,
			StockPercentage: lot.RemainingPercentage(),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].StockPercentage.LessThan(alerts[j].StockPercentage)
	})

	return alerts, nil
}

func (s *SupplyService) Stats(ctx context.Context) (*models.SupplyStats, error) {
	lots, err := s.r.GetSuppliesBy(ctx, repository.NewQueryBuilder())
	if err != nil {
		return nil, err
	}

	stats := models.SupplyStats{TotalLots: len(lots)}
	for _, lot := range s.label(lots) {
		stats.TotalQuantity += lot.Quantity
		stats.RemainingQuantity += lot.CurrentQuantity

		switch lot.Status {
		case metadata.SupplyExpired:
			stats.ExpiredLots++
		case metadata.SupplyExpiringSoon:
			stats.ExpiringSoonLots++
		case metadata.SupplyLowStock:
			stats.LowStockLots++
		default:
			stats.AvailableLots++
		}
	}

	return &stats, nil
}

// CreateSupply turns a donation into a lot with its full quantity available.
func (s *SupplyService) CreateSupply(ctx context.Context, input CreateSupplyInput) (*models.SupplyLot, error) {
	switch {
	case input.CampID <= 0:
		return nil, custom_error.NewValidationError("camp_id", "is required")
	case strings.TrimSpace(input.ItemName) == "":
		return nil, custom_error.NewValidationError("item_name", "is required")
	case strings.TrimSpace(input.Category) == "":
		return nil, custom_error.NewValidationError("category", "is required")
	case input.Quantity <= 0:
		return nil, custom_error.NewValidationError("quantity", "must be a positive number")
	}

	lot := models.SupplyLot{
		CampID:          input.CampID,
		DonationID:      input.DonationID,
		Category:        strings.TrimSpace(input.Category),
		Type:            strings.TrimSpace(input.Type),
		ItemName:        strings.TrimSpace(input.ItemName),
		Quantity:        input.Quantity,
		CurrentQuantity: input.Quantity,
	}

	if input.ExpiryDate != "" {
		expiry, err := time.Parse(time.DateOnly, input.ExpiryDate)
		if err != nil {
			return nil, custom_error.NewValidationError("expiry_date", "must be a date in YYYY-MM-DD format")
		}
		lot.ExpiryDate = &expiry
	}

	created, err := s.r.PersistSupply(ctx, lot)
	if err != nil {
		return nil, err
	}

	created.Status = s.statusOf(created, s.now())
	s.logger.Info("supply created", zap.Int("supply_id", created.ID), zap.Int("camp_id", created.CampID))

	return created, nil
}

// DeleteSupply removes a lot that has never been distributed from.
func (s *SupplyService) DeleteSupply(ctx context.Context, id int) error {
	used, err := s.r.HasDistributions(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return custom_error.NewConflictError("supply %d has distributions and cannot be deleted", id)
	}

	deleted, err := s.r.DeleteSupply(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return custom_error.NewNotFoundError("supply", id)
	}

	s.logger.Info("supply deleted", zap.Int("supply_id", id))
	return nil
}
