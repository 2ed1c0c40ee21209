package requests

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"relief/internal/repository"
	custom_error "relief/pkg/errors"
	"relief/pkg/metadata"
	"relief/pkg/models"
)

const requestsTable = "requests"

// priorityOrder sorts High, Medium, Low when ordered descending.
var priorityOrder = goqu.L(
	"CASE priority WHEN ? THEN ? WHEN ? THEN ? WHEN ? THEN ? ELSE 0 END",
	metadata.PriorityHigh, metadata.PriorityHigh.Rank(),
	metadata.PriorityMedium, metadata.PriorityMedium.Rank(),
	metadata.PriorityLow, metadata.PriorityLow.Rank(),
)

type RequestRepository struct {
	repository *repository.Repository
}

func NewRequestRepository(r *repository.Repository) *RequestRepository {
	return &RequestRepository{repository: r}
}

func (r *RequestRepository) PersistRequest(ctx context.Context, req models.Request) (*models.Request, error) {
	query := r.repository.GoquDBWrapper.Insert(requestsTable).
		Rows(goqu.Record{
			"victim_id":       req.VictimID,
			"camp_id":         req.CampID,
			"item_requested":  req.ItemRequested,
			"quantity_needed": req.QuantityNeeded,
			"priority":        req.Priority,
			"status":          req.Status,
			"request_date":    req.RequestDate,
		}).
		Returning("request_id", "created_at")

	var created struct {
		ID        int       `db:"request_id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if _, err := query.Executor().ScanStructContext(ctx, &created); err != nil {
		return nil, repository.MapDBError(err, "failed to insert request")
	}

	req.ID = created.ID
	req.CreatedAt = created.CreatedAt
	return &req, nil
}

// GetRequest returns nil when the request does not exist.
func (r *RequestRepository) GetRequest(ctx context.Context, id int) (*models.Request, error) {
	var req models.Request

	found, err := r.repository.GoquDBWrapper.From(requestsTable).
		Where(goqu.Ex{"request_id": id}).
		Executor().ScanStructContext(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &req, nil
}

func (r *RequestRepository) GetRequestsBy(ctx context.Context, conditions repository.QueryBuilder) ([]models.Request, error) {
	requests := []models.Request{}

	query := r.repository.GoquDBWrapper.From(requestsTable).
		Order(goqu.I("request_date").Desc(), goqu.I("request_id").Desc())
	if ex := conditions.BuildConditions(nil); len(ex) > 0 {
		query = query.Where(ex)
	}

	if err := query.Executor().ScanStructsContext(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return requests, nil
}

// GetUrgentRequests lists pending High priority requests, oldest first.
func (r *RequestRepository) GetUrgentRequests(ctx context.Context) ([]models.Request, error) {
	requests := []models.Request{}

	query := r.repository.GoquDBWrapper.From(requestsTable).
		Where(goqu.Ex{
			"priority": metadata.PriorityHigh,
			"status":   metadata.StatusPending,
		}).
		Order(goqu.I("request_date").Asc(), goqu.I("request_id").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return requests, nil
}

func (r *RequestRepository) GetRequestsByCamp(ctx context.Context, campID int) ([]models.Request, error) {
	requests := []models.Request{}

	query := r.repository.GoquDBWrapper.From(requestsTable).
		Where(goqu.Ex{"camp_id": campID}).
		Order(priorityOrder.Desc(), goqu.I("request_date").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return requests, nil
}

func (r *RequestRepository) GetRequestsByVictim(ctx context.Context, victimID int) ([]models.Request, error) {
	requests := []models.Request{}

	query := r.repository.GoquDBWrapper.From(requestsTable).
		Where(goqu.Ex{"victim_id": victimID}).
		Order(goqu.I("request_date").Desc())

	if err := query.Executor().ScanStructsContext(ctx, &requests); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return requests, nil
}

// MarkFulfilled is only reachable through the distribution transaction. The
// status guard makes a concurrent second fulfilment affect zero rows.
func (r *RequestRepository) MarkFulfilled(ctx context.Context, tx *goqu.TxDatabase, id int, fulfilledAt time.Time) error {
	result, err := markFulfilledQuery(tx, id, fulfilledAt).Executor().ExecContext(ctx)
	if err != nil {
		return repository.MapDBError(err, "failed to mark request fulfilled")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewConflictError("request %d is no longer pending", id)
	}

	return nil
}

func markFulfilledQuery(tx *goqu.TxDatabase, id int, fulfilledAt time.Time) *goqu.UpdateDataset {
	return tx.Update(requestsTable).
		Set(goqu.Record{
			"status":         metadata.StatusFulfilled,
			"fulfilled_date": fulfilledAt,
		}).
		Where(goqu.Ex{
			"request_id": id,
			"status":     metadata.StatusPending,
		})
}

// UpdateStatus moves a request from one status to another, failing with a
// conflict when the stored status is no longer from.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int, from, to metadata.RequestStatus) error {
	result, err := r.repository.GoquDBWrapper.Update(requestsTable).
		Set(goqu.Record{"status": to}).
		Where(goqu.Ex{
			"request_id": id,
			"status":     from,
		}).
		Executor().ExecContext(ctx)
	if err != nil {
		return repository.MapDBError(err, "failed to update request status")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewConflictError("request %d is no longer %s", id, from)
	}

	return nil
}

func (r *RequestRepository) GetStats(ctx context.Context) (*models.RequestStats, error) {
	var stats models.RequestStats

	query := r.repository.GoquDBWrapper.From(requestsTable).
		Select(
			goqu.COUNT(goqu.Star()).As("total_requests"),
			goqu.L("COUNT(*) FILTER (WHERE status = ?)", metadata.StatusPending).As("pending_requests"),
			goqu.L("COUNT(*) FILTER (WHERE status = ?)", metadata.StatusFulfilled).As("fulfilled_requests"),
			goqu.L("COUNT(*) FILTER (WHERE status = ?)", metadata.StatusRejected).As("rejected_requests"),
			goqu.L("COUNT(*) FILTER (WHERE priority = ?)", metadata.PriorityHigh).As("high_priority"),
			goqu.L("COUNT(*) FILTER (WHERE priority = ?)", metadata.PriorityMedium).As("medium_priority"),
			goqu.L("COUNT(*) FILTER (WHERE priority = ?)", metadata.PriorityLow).As("low_priority"),
			goqu.COUNT(goqu.DISTINCT("victim_id")).As("unique_victims"),
			goqu.COUNT(goqu.DISTINCT("camp_id")).As("camps_with_requests"),
		)

	if _, err := query.Executor().ScanStructContext(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return &stats, nil
}
