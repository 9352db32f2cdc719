package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
)

// TokenRepository is the durable record of issued tokens, keyed by the exact
// token string.
type TokenRepository struct {
	db *sqlx.DB
}

// NewTokenRepository creates a new repository instance.
func NewTokenRepository(db *sqlx.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Save persists a newly issued token. A persistence failure propagates to the
// caller; issuance must not succeed with an unpersisted token.
func (r *TokenRepository) Save(ctx context.Context, token *models.Token) error {
	const query = `INSERT INTO tokens (value, owner_id, issued_at, expires_at, revoked, revoked_at) VALUES (:value, :owner_id, :issued_at, :expires_at, :revoked, :revoked_at)`
	if _, err := r.db.NamedExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was explicitly revoked. A token with no
// record is also reported revoked: a value this store never issued cannot be
// told apart from a tampered one, so it is never trusted. Signature
// verification must already have run; this check only narrows further.
func (r *TokenRepository) IsRevoked(ctx context.Context, value string) (bool, error) {
	const query = `SELECT revoked FROM tokens WHERE value = $1 LIMIT 1`
	var revoked bool
	if err := r.db.GetContext(ctx, &revoked, query, value); err != nil {
		if err == sql.ErrNoRows {
			return true, nil
		}
		return true, fmt.Errorf("check token revocation: %w", err)
	}
	return revoked, nil
}

// Revoke marks the matching record revoked. The update is idempotent and
// silently ignores unknown or already revoked values, so callers learn
// nothing about a token's existence.
func (r *TokenRepository) Revoke(ctx context.Context, value string) error {
	const query = `UPDATE tokens SET revoked = TRUE, revoked_at = $2 WHERE value = $1 AND revoked = FALSE`
	if _, err := r.db.ExecContext(ctx, query, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
