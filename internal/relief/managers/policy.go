package managers

import (
	"context"

	"go.uber.org/zap"

	"relief/pkg/auditlog"
	"relief/pkg/models"
	"relief/pkg/roles"
)

type ManagerStore interface {
	CountManagedCamps(ctx context.Context, volunteerID int) (int, error)
	FindLinkedUser(ctx context.Context, volunteerID int) (*models.User, error)
	SwapRole(ctx context.Context, userID int, from, to roles.Role) (bool, error)
}

// Policy keeps a manager volunteer's account role in line with the camps
// they manage: Camp Manager while managing at least one, Volunteer otherwise.
// Only those two roles are ever swapped. The On* hooks never fail; problems
// are logged and the camp mutation stands.
type Policy struct {
	store    ManagerStore
	auditLog auditlog.Auditor
	logger   *zap.Logger
}

func NewPolicy(store ManagerStore, a auditlog.Auditor, logger *zap.Logger) *Policy {
	return &Policy{store: store, auditLog: a, logger: logger}
}

func (p *Policy) IsManagingAnyCamp(ctx context.Context, volunteerID int) (bool, error) {
	count, err := p.store.CountManagedCamps(ctx, volunteerID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (p *Policy) OnCampCreated(ctx context.Context, managerID *int, actorID *int) {
	if managerID == nil {
		return
	}
	p.promote(ctx, *managerID, actorID)
}

func (p *Policy) OnCampUpdated(ctx context.Context, oldManagerID, newManagerID *int, actorID *int) {
	if sameManager(oldManagerID, newManagerID) {
		return
	}
	if newManagerID != nil {
		p.promote(ctx, *newManagerID, actorID)
	}
	if oldManagerID != nil {
		p.demoteIfIdle(ctx, *oldManagerID, actorID)
	}
}

func (p *Policy) OnCampDeleted(ctx context.Context, oldManagerID *int, actorID *int) {
	if oldManagerID == nil {
		return
	}
	p.demoteIfIdle(ctx, *oldManagerID, actorID)
}

func (p *Policy) promote(ctx context.Context, volunteerID int, actorID *int) {
	p.swap(ctx, volunteerID, roles.Volunteer, roles.CampManager, actorID)
}

func (p *Policy) demoteIfIdle(ctx context.Context, volunteerID int, actorID *int) {
	managing, err := p.IsManagingAnyCamp(ctx, volunteerID)
	if err != nil {
		p.logger.Warn("could not count managed camps",
			zap.Int("volunteer_id", volunteerID),
			zap.Error(err),
		)
		return
	}
	if managing {
		return
	}

	p.swap(ctx, volunteerID, roles.CampManager, roles.Volunteer, actorID)
}

func (p *Policy) swap(ctx context.Context, volunteerID int, from, to roles.Role, actorID *int) {
	user, err := p.store.FindLinkedUser(ctx, volunteerID)
	if err != nil {
		p.logger.Warn("could not look up manager account",
			zap.Int("volunteer_id", volunteerID),
			zap.Error(err),
		)
		return
	}
	if user == nil {
		p.logger.Debug("no account linked to volunteer", zap.Int("volunteer_id", volunteerID))
		return
	}
	if !user.Role.IsManagerTrack() || user.Role != from {
		return
	}

	changed, err := p.store.SwapRole(ctx, user.ID, from, to)
	if err != nil {
		p.logger.Warn("could not change manager role",
			zap.Int("user_id", user.ID),
			zap.String("to", to.String()),
			zap.Error(err),
		)
		return
	}
	if !changed {
		return
	}

	p.logger.Info("manager role changed",
		zap.Int("user_id", user.ID),
		zap.Int("volunteer_id", volunteerID),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
	)

	go p.auditLog.Log("role_change", map[string]interface{}{
		"volunteer_id": volunteerID,
		"from":         from,
		"to":           to,
	}, user, actorID)
}

func sameManager(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
