package auditlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"relief/internal/repository"
	"relief/pkg/models"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

func (r *AuditLogRepository) PersistLog(ctx context.Context, entry models.AuditLog, data interface{}) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	query := r.repository.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"resource_id":   entry.ResourceID,
			"resource_type": entry.ResourceType,
			"action":        entry.Action,
			"data":          string(dataJSON),
			"user_id":       entry.UserID,
		})

	if _, err := query.Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) GetResourceLog(ctx context.Context, id int, resourceType string) ([]models.AuditLog, error) {
	var logs []models.AuditLog

	query := r.repository.GoquDBWrapper.
		From("audit_logs").
		Select("id", "resource_id", "resource_type", "action", goqu.L("data::text").As("data"), "created_at", "user_id").
		Where(goqu.Ex{
			"resource_id":   id,
			"resource_type": resourceType,
		}).
		Order(goqu.I("created_at").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &logs); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	for i := range logs {
		logs[i].LoadFromDB()
	}

	return logs, nil
}
