package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
	"github.com/eficaz-commerce/eficaz-api/pkg/export"
)

const productCachePrefix = "products:list:"

type productRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type brandChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// ProductListResult bundles a product page with its pagination metadata so it
// can be cached as one payload.
type ProductListResult struct {
	Products   []models.Product  `json:"products"`
	Pagination models.Pagination `json:"pagination"`
}

// ProductService provides catalog use cases.
type ProductService struct {
	repo      productRepository
	brands    brandChecker
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProductService constructs a ProductService instance.
func NewProductService(repo productRepository, brands brandChecker, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ProductService{repo: repo, brands: brands, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns a product page, served from cache when possible.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) (*ProductListResult, error) {
	key := listCacheKey(filter)

	var cached ProductListResult
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	start := time.Now()
	products, total, err := s.repo.List(ctx, filter)
	if s.metrics != nil {
		s.metrics.ObserveDBQuery("list_products", time.Since(start))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list products")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}

	result := &ProductListResult{
		Products:   products,
		Pagination: models.Pagination{Page: page, PageSize: size, TotalCount: total},
	}

	if err := s.cache.Set(ctx, key, result, 0); err != nil {
		s.logger.Warn("failed to cache product list", zap.Error(err))
	}

	return result, nil
}

// Get returns a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "product not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load product")
	}
	return product, nil
}

// Create validates the brand reference and persists a new product.
func (s *ProductService) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid product payload")
	}

	ok, err := s.brands.Exists(ctx, req.BrandID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check brand")
	}
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "brand does not exist")
	}

	product := &models.Product{
		Name:       req.Name,
		Price:      req.Price,
		BrandID:    req.BrandID,
		Image:      req.Image,
		ImageHover: req.ImageHover,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create product")
	}

	s.invalidateListCache(ctx)
	return product, nil
}

// Update applies only the provided fields to a product.
func (s *ProductService) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid product payload")
	}

	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.BrandID != nil {
		ok, err := s.brands.Exists(ctx, *req.BrandID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check brand")
		}
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "brand does not exist")
		}
		product.BrandID = *req.BrandID
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.ImageHover != nil {
		product.ImageHover = *req.ImageHover
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update product")
	}

	s.invalidateListCache(ctx)
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete product")
	}
	s.invalidateListCache(ctx)
	return nil
}

// Export renders the full catalog in the requested format ("csv" or "pdf").
func (s *ProductService) Export(ctx context.Context, format string) ([]byte, string, error) {
	products, _, err := s.repo.List(ctx, models.ProductFilter{PageSize: 100})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load catalog")
	}

	dataset := export.Dataset{
		Headers: []string{"ID", "Name", "Price", "Brand ID"},
	}
	for _, p := range products {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":       p.ID,
			"Name":     p.Name,
			"Price":    fmt.Sprintf("%.2f", p.Price),
			"Brand ID": p.BrandID,
		})
	}

	switch format {
	case "csv":
		payload, err := export.NewCSVExporter().Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := export.NewPDFExporter().Render(dataset, "Product Catalog")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func (s *ProductService) invalidateListCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, productCachePrefix+"*"); err != nil {
		s.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func listCacheKey(filter models.ProductFilter) string {
	return fmt.Sprintf("%sbrand=%s:q=%s:page=%d:size=%d:sort=%s:%s",
		productCachePrefix, filter.BrandID, filter.Search, filter.Page, filter.PageSize, filter.SortBy, filter.SortOrder)
}
