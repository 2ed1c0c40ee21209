package auditlog

import (
	"context"
	"time"

	"go.uber.org/zap"

	"relief/pkg/models"
)

type Auditable interface {
	CreateLogView() models.AuditLog
}

type LogPersister interface {
	PersistLog(ctx context.Context, entry models.AuditLog, data interface{}) error
}

// Auditor records domain events. Callers run Log in its own goroutine.
type Auditor interface {
	Log(action string, data interface{}, item Auditable, userID *int)
}

type Auditlog struct {
	r       LogPersister
	logger  *zap.Logger
	timeout time.Duration
}

func NewAuditLog(r LogPersister, logger *zap.Logger) *Auditlog {
	return &Auditlog{r: r, logger: logger, timeout: 5 * time.Second}
}

func (a *Auditlog) Log(action string, data interface{}, item Auditable, userID *int) {
	entry := item.CreateLogView()
	entry.Action = action
	entry.UserID = userID

	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.r.PersistLog(ctx, entry, data); err != nil {
		a.logger.Warn("unable to create audit log entry",
			zap.String("resource_type", entry.ResourceType),
			zap.Int("resource_id", entry.ResourceID),
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("created audit log entry",
		zap.String("resource_type", entry.ResourceType),
		zap.Int("resource_id", entry.ResourceID),
		zap.String("action", action),
	)
}
