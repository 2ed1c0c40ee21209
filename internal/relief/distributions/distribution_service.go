package distributions

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/models"
)

// RequestStore is the part of the request tracker the workflow needs.
type RequestStore interface {
	GetRequest(ctx context.Context, id int) (*models.Request, error)
	MarkFulfilled(ctx context.Context, tx *goqu.TxDatabase, id int, fulfilledAt time.Time) error
}

// SupplyLedger exposes lot lookup and the transactional stock decrement.
type SupplyLedger interface {
	GetSupply(ctx context.Context, id int) (*models.SupplyLot, error)
	Decrement(ctx context.Context, tx *goqu.TxDatabase, id int, amount int) error
}

type DistributionStore interface {
	InsertDistribution(ctx context.Context, tx *goqu.TxDatabase, d models.Distribution) (*models.Distribution, error)
	GetDistribution(ctx context.Context, id int) (*models.Distribution, error)
	GetDistributionsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Distribution, error)
	GetDistributionsSince(ctx context.Context, since time.Time) ([]models.Distribution, error)
	GetStats(ctx context.Context, today time.Time) (*models.DistributionStats, error)
}

type DistributionService struct {
	tx            repository.Transactor
	requests      RequestStore
	supplies      SupplyLedger
	distributions DistributionStore
	logger        *zap.Logger
	now           func() time.Time
}

func NewDistributionService(
	tx repository.Transactor,
	requests RequestStore,
	supplies SupplyLedger,
	distributions DistributionStore,
	logger *zap.Logger,
) *DistributionService {
	return &DistributionService{
		tx:            tx,
		requests:      requests,
		supplies:      supplies,
		distributions: distributions,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *DistributionService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FulfillRequest hands out supply against a pending request. All checks run
// before anything is written; the distribution row, the stock decrement and
// the status change then commit together or not at all.
func (s *DistributionService) FulfillRequest(ctx context.Context, input FulfillInput) (*models.Distribution, error) {
	if input.SupplyID <= 0 {
		return nil, custom_error.NewValidationError("supply_id", "is required")
	}
	if input.QuantityDistributed <= 0 {
		return nil, custom_error.NewValidationError("quantity_distributed", "must be a positive number")
	}

	req, err := s.requests.GetRequest(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, custom_error.NewNotFoundError("request", input.RequestID)
	}
	if !req.IsPending() {
		return nil, custom_error.NewConflictError("request %d is %s and cannot be fulfilled", req.ID, req.Status)
	}

	lot, err := s.supplies.GetSupply(ctx, input.SupplyID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, custom_error.NewNotFoundError("supply", input.SupplyID)
	}
	if input.QuantityDistributed > lot.CurrentQuantity {
		return nil, custom_error.NewValidationError(
			"quantity_distributed",
			fmt.Sprintf("requested %d but supply %d has only %d left", input.QuantityDistributed, lot.ID, lot.CurrentQuantity),
		)
	}
	if lot.CampID != req.CampID {
		return nil, custom_error.NewValidationError(
			"supply_id",
			fmt.Sprintf("supply %d belongs to camp %d, request %d to camp %d", lot.ID, lot.CampID, req.ID, req.CampID),
		)
	}

	today := s.today()
	var created *models.Distribution

	err = s.tx.WithinTransaction(ctx, func(tx *goqu.TxDatabase) error {
		d, err := s.distributions.InsertDistribution(ctx, tx, models.Distribution{
			RequestID:       req.ID,
			VictimID:        req.VictimID,
			SupplyID:        lot.ID,
			QuantityGiven:   input.QuantityDistributed,
			DateDistributed: today,
		})
		if err != nil {
			return err
		}

		if err := s.supplies.Decrement(ctx, tx, lot.ID, input.QuantityDistributed); err != nil {
			return err
		}

		if err := s.requests.MarkFulfilled(ctx, tx, req.ID, today); err != nil {
			return err
		}

		created = d
		return nil
	})
	if err != nil {
		if custom_error.IsClientError(err) {
			s.logger.Info("distribution rejected",
				zap.Int("request_id", req.ID),
				zap.Int("supply_id", lot.ID),
				zap.Error(err),
			)
			return nil, err
		}

		s.logger.Error("distribution rolled back",
			zap.Int("request_id", req.ID),
			zap.Int("supply_id", lot.ID),
			zap.Int("quantity", input.QuantityDistributed),
			zap.Error(err),
		)
		return nil, &custom_error.TransactionError{Op: "distribution", Err: err}
	}

	s.logger.Info("request fulfilled",
		zap.Int("distribution_id", created.ID),
		zap.Int("request_id", req.ID),
		zap.Int("supply_id", lot.ID),
		zap.Int("quantity", created.QuantityGiven),
	)

	return created, nil
}

func (s *DistributionService) GetDistribution(ctx context.Context, id int) (*models.Distribution, error) {
	d, err := s.distributions.GetDistribution(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, custom_error.NewNotFoundError("distribution", id)
	}
	return d, nil
}

func (s *DistributionService) ListDistributions(ctx context.Context, filter DistributionFilter) ([]models.Distribution, error) {
	qb := repository.NewQueryBuilder()
	qb.AddCondition("victim_id", filter.VictimID)
	qb.AddCondition("supply_id", filter.SupplyID)
	qb.AddCondition("request_id", filter.RequestID)

	return s.distributions.GetDistributionsBy(ctx, qb)
}

func (s *DistributionService) ListRecent(ctx context.Context) ([]models.Distribution, error) {
	return s.distributions.GetDistributionsSince(ctx, s.today().AddDate(0, 0, -7))
}

func (s *DistributionService) Stats(ctx context.Context) (*models.DistributionStats, error) {
	return s.distributions.GetStats(ctx, s.today())
}
