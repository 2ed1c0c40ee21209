package users

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"relief/internal/repository"
	"relief/pkg/models"
)

type UserRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{repository: r}
}

func (r *UserRepository) PersistUser(ctx context.Context, user models.User, hashedPassword []byte) (*models.User, error) {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      user.Username,
			"full_name":     user.FullName,
			"password_hash": string(hashedPassword),
			"role":          user.Role,
			"volunteer_id":  user.VolunteerID,
			"is_active":     true,
		}).
		Returning("user_id")

	if _, err := query.Executor().ScanValContext(ctx, &user.ID); err != nil {
		return nil, repository.MapDBError(err, "failed to insert user")
	}

	user.IsActive = true
	return &user, nil
}
