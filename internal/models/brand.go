package models

import "time"

// Brand groups products under a manufacturer label.
type Brand struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CreateBrandRequest creates a brand.
type CreateBrandRequest struct {
	Name string `json:"name" validate:"required"`
}
