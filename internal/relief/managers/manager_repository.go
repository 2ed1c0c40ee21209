package managers

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"relief/internal/repository"
	"relief/pkg/models"
	"relief/pkg/roles"
)

const (
	usersTable      = "users"
	volunteersTable = "volunteers"
	campsTable      = "relief_camps"
)

type ManagerRepository struct {
	repository *repository.Repository
}

func NewManagerRepository(r *repository.Repository) *ManagerRepository {
	return &ManagerRepository{repository: r}
}

func (r *ManagerRepository) CountManagedCamps(ctx context.Context, volunteerID int) (int, error) {
	var count int

	_, err := r.repository.GoquDBWrapper.From(campsTable).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.Ex{"manager_id": volunteerID}).
		Executor().ScanValContext(ctx, &count)
	if err != nil {
		return 0, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return count, nil
}

// FindLinkedUser resolves the account that belongs to a volunteer. Accounts
// carrying volunteer_id win; otherwise the oldest account whose full_name
// equals the volunteer's name is used. Returns nil when neither matches.
func (r *ManagerRepository) FindLinkedUser(ctx context.Context, volunteerID int) (*models.User, error) {
	user, err := r.findUser(ctx, goqu.Ex{"volunteer_id": volunteerID})
	if err != nil || user != nil {
		return user, err
	}

	volunteerName := r.repository.GoquDBWrapper.From(volunteersTable).
		Select("name").
		Where(goqu.Ex{"volunteer_id": volunteerID})

	return r.findUser(ctx,
		goqu.C("full_name").In(volunteerName),
		goqu.C("volunteer_id").IsNull(),
	)
}

func (r *ManagerRepository) findUser(ctx context.Context, where ...exp.Expression) (*models.User, error) {
	var user models.User

	found, err := r.repository.GoquDBWrapper.From(usersTable).
		Select(
			"user_id",
			"username",
			goqu.COALESCE(goqu.C("full_name"), "").As("full_name"),
			"role",
			"volunteer_id",
			"is_active",
		).
		Where(where...).
		Order(goqu.I("user_id").Asc()).
		Limit(1).
		Executor().ScanStructContext(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

// SwapRole sets the user's role to to only while it is still from. It
// reports whether a row changed.
func (r *ManagerRepository) SwapRole(ctx context.Context, userID int, from, to roles.Role) (bool, error) {
	result, err := r.repository.GoquDBWrapper.Update(usersTable).
		Set(goqu.Record{"role": to}).
		Where(goqu.Ex{
			"user_id": userID,
			"role":    from,
		}).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, repository.MapDBError(err, "failed to update user role")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
