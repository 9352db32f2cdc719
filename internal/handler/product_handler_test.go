package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	"github.com/eficaz-commerce/eficaz-api/internal/service"
)

type productRepoStub struct {
	products   []models.Product
	lastFilter models.ProductFilter
}

func (s *productRepoStub) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	s.lastFilter = filter
	return s.products, len(s.products), nil
}

func (s *productRepoStub) FindByID(ctx context.Context, id string) (*models.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *productRepoStub) Create(ctx context.Context, product *models.Product) error {
	s.products = append(s.products, *product)
	return nil
}

func (s *productRepoStub) Update(ctx context.Context, product *models.Product) error { return nil }

func (s *productRepoStub) Delete(ctx context.Context, id string) error { return nil }

type brandCheckerStub struct{ exists bool }

func (s *brandCheckerStub) Exists(ctx context.Context, id string) (bool, error) {
	return s.exists, nil
}

func newProductRouter(t *testing.T, repo *productRepoStub, exportEnabled bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewProductService(repo, &brandCheckerStub{exists: true}, nil, nil, validator.New(), zap.NewNop())
	h := NewProductHandler(svc, exportEnabled)

	r := gin.New()
	r.GET("/products", h.List)
	r.GET("/products/export", h.Export)
	r.GET("/products/:id", h.Get)
	r.POST("/products", h.Create)
	return r
}

func TestProductHandlerList(t *testing.T) {
	repo := &productRepoStub{products: []models.Product{{ID: "p1", Name: "Sneaker", Price: 199.90}}}
	r := newProductRouter(t, repo, false)

	req := httptest.NewRequest(http.MethodGet, "/products?brand_id=b1&q=sneaker&page=2&page_size=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", repo.lastFilter.BrandID)
	assert.Equal(t, "sneaker", repo.lastFilter.Search)
	assert.Equal(t, 2, repo.lastFilter.Page)
	assert.Equal(t, 5, repo.lastFilter.PageSize)

	var body struct {
		Data       []models.Product   `json:"data"`
		Pagination *models.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 1)
	require.NotNil(t, body.Pagination)
	assert.Equal(t, 1, body.Pagination.TotalCount)
}

func TestProductHandlerGetNotFound(t *testing.T) {
	r := newProductRouter(t, &productRepoStub{}, false)

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandlerCreateInvalidBody(t *testing.T) {
	r := newProductRouter(t, &productRepoStub{}, false)

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandlerExportDisabled(t *testing.T) {
	r := newProductRouter(t, &productRepoStub{}, false)

	req := httptest.NewRequest(http.MethodGet, "/products/export?format=csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandlerExportCSV(t *testing.T) {
	repo := &productRepoStub{products: []models.Product{{ID: "p1", Name: "Sneaker", Price: 199.90, BrandID: "b1"}}}
	r := newProductRouter(t, repo, true)

	req := httptest.NewRequest(http.MethodGet, "/products/export?format=csv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=catalog.csv", w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Sneaker")
}
