package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
)

// BrandRepository handles persistence for brands.
type BrandRepository struct {
	db *sqlx.DB
}

// NewBrandRepository creates a new repository instance.
func NewBrandRepository(db *sqlx.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// List returns all brands ordered by name.
func (r *BrandRepository) List(ctx context.Context) ([]models.Brand, error) {
	const query = `SELECT id, name, created_at, updated_at FROM brands ORDER BY name ASC`
	var brands []models.Brand
	if err := r.db.SelectContext(ctx, &brands, query); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	return brands, nil
}

// Exists reports whether a brand with the given id is present.
func (r *BrandRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT 1 FROM brands WHERE id = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check brand: %w", err)
	}
	return true, nil
}

// ExistsByName checks uniqueness of a brand name.
func (r *BrandRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT 1 FROM brands WHERE LOWER(name) = LOWER($1) LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check brand name: %w", err)
	}
	return true, nil
}

// Create persists a new brand.
func (r *BrandRepository) Create(ctx context.Context, brand *models.Brand) error {
	if brand.ID == "" {
		brand.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if brand.CreatedAt.IsZero() {
		brand.CreatedAt = now
	}
	brand.UpdatedAt = now

	const query = `INSERT INTO brands (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, brand); err != nil {
		return fmt.Errorf("create brand: %w", err)
	}
	return nil
}
