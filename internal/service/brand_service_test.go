package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
)

type mockBrandRepo struct {
	brands    []models.Brand
	nameTaken bool
	created   *models.Brand
}

func (m *mockBrandRepo) List(ctx context.Context) ([]models.Brand, error) {
	return m.brands, nil
}

func (m *mockBrandRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	return m.nameTaken, nil
}

func (m *mockBrandRepo) Create(ctx context.Context, brand *models.Brand) error {
	if brand.ID == "" {
		brand.ID = "generated-id"
	}
	m.created = brand
	return nil
}

func TestBrandServiceCreate(t *testing.T) {
	repo := &mockBrandRepo{}
	svc := NewBrandService(repo, validator.New(), zap.NewNop())

	brand, err := svc.Create(context.Background(), models.CreateBrandRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", brand.Name)
	assert.NotNil(t, repo.created)
}

func TestBrandServiceCreateDuplicateName(t *testing.T) {
	repo := &mockBrandRepo{nameTaken: true}
	svc := NewBrandService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), models.CreateBrandRequest{Name: "Acme"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.created)
}

func TestBrandServiceList(t *testing.T) {
	repo := &mockBrandRepo{brands: []models.Brand{{ID: "b1", Name: "Acme"}}}
	svc := NewBrandService(repo, validator.New(), zap.NewNop())

	brands, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, brands, 1)
}
