package camps

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"relief/internal/repository"
	"relief/pkg/models"
)

const campsTable = "relief_camps"

type CampRepository struct {
	repository *repository.Repository
}

func NewCampRepository(r *repository.Repository) *CampRepository {
	return &CampRepository{repository: r}
}

func campRecord(c models.Camp) goqu.Record {
	return goqu.Record{
		"area_id":           c.AreaID,
		"manager_id":        c.ManagerID,
		"name":              c.Name,
		"capacity":          c.Capacity,
		"current_occupancy": c.CurrentOccupancy,
		"location":          c.Location,
		"date_established":  c.DateEstablished,
		"status":            c.Status,
		"latitude":          c.Latitude,
		"longitude":         c.Longitude,
	}
}

// GetCamp returns nil when the camp does not exist.
func (r *CampRepository) GetCamp(ctx context.Context, id int) (*models.Camp, error) {
	var camp models.Camp

	found, err := r.repository.GoquDBWrapper.From(campsTable).
		Where(goqu.Ex{"camp_id": id}).
		Executor().ScanStructContext(ctx, &camp)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &camp, nil
}

func (r *CampRepository) GetCampsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Camp, error) {
	camps := []models.Camp{}

	query := r.repository.GoquDBWrapper.From(campsTable).
		Order(goqu.I("name").Asc(), goqu.I("camp_id").Asc())
	if ex := conditions.BuildConditions(nil); len(ex) > 0 {
		query = query.Where(ex)
	}

	if err := query.Executor().ScanStructsContext(ctx, &camps); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return camps, nil
}

func (r *CampRepository) PersistCamp(ctx context.Context, camp models.Camp) (*models.Camp, error) {
	query := r.repository.GoquDBWrapper.Insert(campsTable).
		Rows(campRecord(camp)).
		Returning("camp_id")

	var id int
	if _, err := query.Executor().ScanValContext(ctx, &id); err != nil {
		return nil, repository.MapDBError(err, "failed to insert camp")
	}

	return r.GetCamp(ctx, id)
}

// UpdateCamp overwrites every editable column. It reports whether the camp
// existed.
func (r *CampRepository) UpdateCamp(ctx context.Context, id int, camp models.Camp) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Update(campsTable).
		Set(campRecord(camp)).
		Where(goqu.Ex{"camp_id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, repository.MapDBError(err, "failed to update camp")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *CampRepository) DeleteCamp(ctx context.Context, id int) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Delete(campsTable).
		Where(goqu.Ex{"camp_id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, repository.MapDBError(err, "failed to delete camp")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
