package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
	"github.com/eficaz-commerce/eficaz-api/pkg/signing"
)

// TokenCodec mints and verifies signed bearer tokens. It performs no I/O;
// revocation is layered on top by the AuthService.
type TokenCodec struct {
	key []byte
}

// NewTokenCodec resolves the signing key once and returns a codec bound to
// it. The same codec instance serves both minting and verification, so the
// two operations can never disagree on key material.
func NewTokenCodec(keys *signing.KeyProvider) (*TokenCodec, error) {
	key, err := keys.Resolve()
	if err != nil {
		return nil, err
	}
	return &TokenCodec{key: key}, nil
}

// Mint returns an HS256 signed token embedding the user's identity claims
// with an absolute expiry of now + ttl, along with the claims as encoded. The
// caller persists the returned expiry so the stored record can never drift
// from what the token carries.
func (c *TokenCodec) Mint(user *models.User, ttl time.Duration) (string, *models.TokenClaims, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(ttl)
	claims := &models.TokenClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		SignupID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	return signed, claims, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// Expiry is enforced with zero leeway: a token is rejected from its exact
// expiry instant onward. Issuer and audience are not used. Every failure mode
// collapses into ErrTokenInvalid so callers cannot tell a malformed token
// from a forged or expired one.
func (c *TokenCodec) Verify(tokenString string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.key, nil
	})
	if err != nil {
		return nil, appErrors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, appErrors.ErrTokenInvalid
	}

	return claims, nil
}
