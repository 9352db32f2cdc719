package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdateLastLogin(ctx context.Context, id string, ts time.Time) error
}

// TokenStore is the durable record of issued tokens and their revocation
// state. Save failures must surface to the caller; Revoke is idempotent.
type TokenStore interface {
	Save(ctx context.Context, token *models.Token) error
	IsRevoked(ctx context.Context, value string) (bool, error)
	Revoke(ctx context.Context, value string) error
}

// AuthService orchestrates token issuance on signup/login, fail-closed
// validation on protected requests, and revocation on logout.
type AuthService struct {
	users     authUserRepository
	tokens    TokenStore
	codec     *TokenCodec
	validator *validator.Validate
	logger    *zap.Logger
	tokenTTL  time.Duration
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, tokens TokenStore, codec *TokenCodec, validate *validator.Validate, logger *zap.Logger, tokenTTL time.Duration) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{users: users, tokens: tokens, codec: codec, validator: validate, logger: logger, tokenTTL: tokenTTL}
}

// Signup creates an account and issues its first token.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, *models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}

	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}
	if taken {
		return nil, nil, appErrors.Clone(appErrors.ErrConflict, "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		SocialName:   req.SocialName,
		CPF:          req.CPF,
		Nationality:  req.Nationality,
		Email:        req.Email,
		Phone:        req.Phone,
		Sex:          req.Sex,
		Color:        req.Color,
		Photo:        req.Photo,
		PasswordHash: string(hash),
		Active:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	res, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, res, nil
}

// Login authenticates a user and returns a freshly issued token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !user.Active {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	res, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to update last login", zap.Error(err))
	}

	return res, nil
}

// Validate verifies a token cryptographically and against the revocation
// store. It is fail-closed: any parse, signature, expiry, revocation or
// storage failure yields false, and the reason is never exposed to the
// caller.
func (s *AuthService) Validate(ctx context.Context, tokenString string) (*models.TokenClaims, bool) {
	claims, err := s.codec.Verify(tokenString)
	if err != nil {
		return nil, false
	}

	revoked, err := s.tokens.IsRevoked(ctx, tokenString)
	if err != nil {
		s.logger.Warn("revocation check failed", zap.Error(err))
		return nil, false
	}
	if revoked {
		return nil, false
	}

	return claims, true
}

// Revoke marks the token revoked. The token is not required to be
// structurally valid: a malformed or already-expired token can still be
// revoked, and unknown values are a successful no-op.
func (s *AuthService) Revoke(ctx context.Context, tokenString string) error {
	if err := s.tokens.Revoke(ctx, tokenString); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke token")
	}
	return nil
}

// issue mints a token with the configured TTL and persists the record. The
// stored expiry is copied from the encoded claims, and a persistence failure
// aborts issuance so a client can never hold a token the store does not know.
func (s *AuthService) issue(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	signed, claims, err := s.codec.Mint(user, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	record := &models.Token{
		Value:     signed,
		OwnerID:   user.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		Revoked:   false,
	}
	if err := s.tokens.Save(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist token")
	}

	return &models.AuthResponse{
		Token:     signed,
		ExpiresIn: int64(s.tokenTTL.Seconds()),
		IssuedAt:  claims.IssuedAt.Time,
		User: models.UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
		},
	}, nil
}
