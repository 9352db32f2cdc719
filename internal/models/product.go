package models

import "time"

// Product represents a catalog item. Image and ImageHover are stored as
// base64 encoded strings, matching what the storefront renders directly.
type Product struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Price      float64   `db:"price" json:"price"`
	BrandID    string    `db:"brand_id" json:"brand_id"`
	Image      string    `db:"image" json:"image,omitempty"`
	ImageHover string    `db:"image_hover" json:"image_hover,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// ProductFilter captures filtering criteria for listing products.
type ProductFilter struct {
	BrandID   string
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// CreateProductRequest creates a catalog item.
type CreateProductRequest struct {
	Name       string  `json:"name" validate:"required"`
	Price      float64 `json:"price" validate:"required,gt=0"`
	BrandID    string  `json:"brand_id" validate:"required,uuid4"`
	Image      string  `json:"image"`
	ImageHover string  `json:"image_hover"`
}

// UpdateProductRequest updates only the provided fields.
type UpdateProductRequest struct {
	Name       *string  `json:"name"`
	Price      *float64 `json:"price" validate:"omitempty,gt=0"`
	BrandID    *string  `json:"brand_id" validate:"omitempty,uuid4"`
	Image      *string  `json:"image"`
	ImageHover *string  `json:"image_hover"`
}
