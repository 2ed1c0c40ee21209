package distributions

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"relief/internal/repository"
	"relief/pkg/models"
)

const distributionsTable = "distributions"

type DistributionRepository struct {
	repository *repository.Repository
}

func NewDistributionRepository(r *repository.Repository) *DistributionRepository {
	return &DistributionRepository{repository: r}
}

// InsertDistribution records a distribution inside tx. The UNIQUE constraint
// on request_id turns a second distribution for the same request into a
// UniqueViolationError.
func (r *DistributionRepository) InsertDistribution(ctx context.Context, tx *goqu.TxDatabase, d models.Distribution) (*models.Distribution, error) {
	query := tx.Insert(distributionsTable).
		Rows(goqu.Record{
			"request_id":       d.RequestID,
			"victim_id":        d.VictimID,
			"supply_id":        d.SupplyID,
			"quantity_given":   d.QuantityGiven,
			"date_distributed": d.DateDistributed,
		}).
		Returning("distribution_id")

	if _, err := query.Executor().ScanValContext(ctx, &d.ID); err != nil {
		return nil, repository.MapDBError(err, fmt.Sprintf("distribution for request %d", d.RequestID))
	}

	return &d, nil
}

// GetDistribution returns nil when the distribution does not exist.
func (r *DistributionRepository) GetDistribution(ctx context.Context, id int) (*models.Distribution, error) {
	var d models.Distribution

	found, err := r.repository.GoquDBWrapper.From(distributionsTable).
		Where(goqu.Ex{"distribution_id": id}).
		Executor().ScanStructContext(ctx, &d)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &d, nil
}

func (r *DistributionRepository) GetDistributionsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Distribution, error) {
	distributions := []models.Distribution{}

	query := r.repository.GoquDBWrapper.From(distributionsTable).
		Order(goqu.I("date_distributed").Desc(), goqu.I("distribution_id").Desc())
	if ex := conditions.BuildConditions(nil); len(ex) > 0 {
		query = query.Where(ex)
	}

	if err := query.Executor().ScanStructsContext(ctx, &distributions); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return distributions, nil
}

func (r *DistributionRepository) GetDistributionsSince(ctx context.Context, since time.Time) ([]models.Distribution, error) {
	distributions := []models.Distribution{}

	query := r.repository.GoquDBWrapper.From(distributionsTable).
		Where(goqu.C("date_distributed").Gte(since)).
		Order(goqu.I("date_distributed").Desc(), goqu.I("distribution_id").Desc())

	if err := query.Executor().ScanStructsContext(ctx, &distributions); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return distributions, nil
}

// GetStats aggregates the ledger. Week and month windows are counted back
// from today.
func (r *DistributionRepository) GetStats(ctx context.Context, today time.Time) (*models.DistributionStats, error) {
	var stats models.DistributionStats

	query := r.repository.GoquDBWrapper.From(distributionsTable).
		Select(
			goqu.COUNT(goqu.Star()).As("total_distributions"),
			goqu.COALESCE(goqu.SUM("quantity_given"), 0).As("total_quantity_distributed"),
			goqu.COUNT(goqu.DISTINCT("victim_id")).As("unique_victims_served"),
			goqu.COUNT(goqu.DISTINCT("request_id")).As("requests_fulfilled"),
			goqu.COUNT(goqu.DISTINCT("supply_id")).As("unique_supplies_used"),
			goqu.L("COALESCE(ROUND(AVG(quantity_given), 2), 0)").As("avg_quantity_per_distribution"),
			goqu.L("COUNT(*) FILTER (WHERE date_distributed >= ?)", today.AddDate(0, 0, -7)).As("distributions_last_week"),
			goqu.L("COUNT(*) FILTER (WHERE date_distributed >= ?)", today.AddDate(0, 0, -30)).As("distributions_last_month"),
		)

	if _, err := query.Executor().ScanStructContext(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return &stats, nil
}
