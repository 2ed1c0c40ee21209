package supplies

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/models"
)

const suppliesTable = "supplies"

type SupplyRepository struct {
	repository *repository.Repository
}

func NewSupplyRepository(r *repository.Repository) *SupplyRepository {
	return &SupplyRepository{repository: r}
}

// GetSupply returns nil when the lot does not exist.
func (r *SupplyRepository) GetSupply(ctx context.Context, id int) (*models.SupplyLot, error) {
	var lot models.SupplyLot

	found, err := r.repository.GoquDBWrapper.From(suppliesTable).
		Where(goqu.Ex{"supply_id": id}).
		Executor().ScanStructContext(ctx, &lot)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &lot, nil
}

func (r *SupplyRepository) GetSuppliesBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.SupplyLot, error) {
	lots := []models.SupplyLot{}

	query := r.repository.GoquDBWrapper.From(suppliesTable).
		Order(goqu.I("item_name").Asc(), goqu.I("supply_id").Asc())
	if ex := conditions.BuildConditions(nil); len(ex) > 0 {
		query = query.Where(ex)
	}

	if err := query.Executor().ScanStructsContext(ctx, &lots); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return lots, nil
}

// GetLowStockSupplies returns lots holding less than ratio of their
// original quantity.
func (r *SupplyRepository) GetLowStockSupplies(ctx context.Context, ratio float64) ([]models.SupplyLot, error) {
	lots := []models.SupplyLot{}

	query := r.repository.GoquDBWrapper.From(suppliesTable).
		Where(goqu.L("current_quantity < quantity * ?", ratio))

	if err := query.Executor().ScanStructsContext(ctx, &lots); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return lots, nil
}

func (r *SupplyRepository) PersistSupply(ctx context.Context, lot models.SupplyLot) (*models.SupplyLot, error) {
	query := r.repository.GoquDBWrapper.Insert(suppliesTable).
		Rows(goqu.Record{
			"camp_id":          lot.CampID,
			"donation_id":      lot.DonationID,
			"category":         lot.Category,
			"type":             lot.Type,
			"item_name":        lot.ItemName,
			"quantity":         lot.Quantity,
			"current_quantity": lot.CurrentQuantity,
			"expiry_date":      lot.ExpiryDate,
		}).
		Returning("supply_id")

	if _, err := query.Executor().ScanValContext(ctx, &lot.ID); err != nil {
		return nil, repository.MapDBError(err, "failed to insert supply")
	}

	return &lot, nil
}

// Decrement is the only write to current_quantity. It runs inside the
// distribution transaction; the guard leaves the row untouched when stock
// is short, including when a concurrent distribution got there first.
func (r *SupplyRepository) Decrement(ctx context.Context, tx *goqu.TxDatabase, id int, amount int) error {
	result, err := decrementQuery(tx, id, amount).Executor().ExecContext(ctx)
	if err != nil {
		return repository.MapDBError(err, "failed to decrease supply stock")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewValidationError("quantity_distributed", fmt.Sprintf("insufficient stock in supply %d", id))
	}

	return nil
}

func decrementQuery(tx *goqu.TxDatabase, id int, amount int) *goqu.UpdateDataset {
	return tx.Update(suppliesTable).
		Set(goqu.Record{"current_quantity": goqu.L("current_quantity - ?", amount)}).
		Where(
			goqu.C("supply_id").Eq(id),
			goqu.C("current_quantity").Gte(amount),
		)
}

func (r *SupplyRepository) HasDistributions(ctx context.Context, id int) (bool, error) {
	var count int

	_, err := r.repository.GoquDBWrapper.From("distributions").
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{"supply_id": id}).
		Executor().ScanValContext(ctx, &count)
	if err != nil {
		return false, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return count > 0, nil
}

func (r *SupplyRepository) DeleteSupply(ctx context.Context, id int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Delete(suppliesTable).
		Where(goqu.Ex{"supply_id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, repository.MapDBError(err, "failed to delete supply")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
