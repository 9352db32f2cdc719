package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// UserService provides profile use cases.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Get returns the full user record.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	return user, nil
}

// Profile returns the public subset of a user record.
func (s *UserService) Profile(ctx context.Context, id string) (*models.UserProfile, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{Username: user.Username, Photo: user.Photo}, nil
}

// UpdateProfile applies the provided fields to the user's profile. Only the
// account owner may update it.
func (s *UserService) UpdateProfile(ctx context.Context, id string, actorID string, req models.UpdateProfileRequest) (*models.User, error) {
	if id != actorID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot update another user's profile")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.SocialName != nil {
		user.SocialName = *req.SocialName
	}
	if req.Nationality != nil {
		user.Nationality = *req.Nationality
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Sex != nil {
		user.Sex = *req.Sex
	}
	if req.Color != nil {
		user.Color = *req.Color
	}
	if req.Photo != nil {
		user.Photo = *req.Photo
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}

	return user, nil
}
