package users

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	custom_error "relief/pkg/errors"
	"relief/pkg/models"
	"relief/pkg/roles"
)

const minPasswordLength = 6

type UserPersister interface {
	PersistUser(ctx context.Context, user models.User, hashedPassword []byte) (*models.User, error)
}

type CreateUserInput struct {
	Username    string
	Password    string
	FullName    string
	Role        string
	VolunteerID int
}

// UserService provisions operator accounts from the command line. Tokens
// for these accounts are issued elsewhere.
type UserService struct {
	r      UserPersister
	logger *zap.Logger
}

func NewUserService(r UserPersister, logger *zap.Logger) *UserService {
	return &UserService{r: r, logger: logger}
}

func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*models.User, error) {
	role := roles.Role(strings.TrimSpace(input.Role))

	switch {
	case strings.TrimSpace(input.Username) == "":
		return nil, custom_error.NewValidationError("username", "is required")
	case len(input.Password) < minPasswordLength:
		return nil, custom_error.NewValidationError("password", fmt.Sprintf("must be at least %d characters long", minPasswordLength))
	case !role.IsValid():
		return nil, custom_error.NewValidationError("role", fmt.Sprintf("must be one of %s, %s, %s, %s", roles.Admin, roles.CampManager, roles.Volunteer, roles.Donor))
	case input.VolunteerID < 0:
		return nil, custom_error.NewValidationError("volunteer_id", "must be a volunteer id")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Username: strings.TrimSpace(input.Username),
		FullName: strings.TrimSpace(input.FullName),
		Role:     role,
	}
	if input.VolunteerID > 0 {
		volunteerID := input.VolunteerID
		user.VolunteerID = &volunteerID
	}

	created, err := s.r.PersistUser(ctx, user, hashedPassword)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.Int("user_id", created.ID),
		zap.String("username", created.Username),
		zap.String("role", created.Role.String()),
	)

	return created, nil
}
