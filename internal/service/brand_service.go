package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
)

type brandRepository interface {
	List(ctx context.Context) ([]models.Brand, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, brand *models.Brand) error
}

// BrandService provides brand management use cases.
type BrandService struct {
	repo      brandRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBrandService constructs a BrandService instance.
func NewBrandService(repo brandRepository, validate *validator.Validate, logger *zap.Logger) *BrandService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BrandService{repo: repo, validator: validate, logger: logger}
}

// List returns all brands.
func (s *BrandService) List(ctx context.Context) ([]models.Brand, error) {
	brands, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list brands")
	}
	return brands, nil
}

// Create persists a new brand with a unique name.
func (s *BrandService) Create(ctx context.Context, req models.CreateBrandRequest) (*models.Brand, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid brand payload")
	}

	taken, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check brand name")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "brand name already exists")
	}

	brand := &models.Brand{Name: req.Name}
	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create brand")
	}

	return brand, nil
}
