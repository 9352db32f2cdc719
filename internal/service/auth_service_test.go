package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
	"github.com/eficaz-commerce/eficaz-api/pkg/config"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
	"github.com/eficaz-commerce/eficaz-api/pkg/signing"
)

type mockUserRepo struct {
	userByEmail      *models.User
	findByEmailErr   error
	emailTaken       bool
	existsErr        error
	createErr        error
	created          *models.User
	lastLoginUpdated bool
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailErr != nil {
		return nil, m.findByEmailErr
	}
	return m.userByEmail, nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.emailTaken, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == "" {
		user.ID = "generated-id"
	}
	m.created = user
	return nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	m.lastLoginUpdated = true
	return nil
}

type mockTokenStore struct {
	mu           sync.Mutex
	saved        map[string]*models.Token
	saveErr      error
	isRevokedErr error
	revokeErr    error
}

func newMockTokenStore() *mockTokenStore {
	return &mockTokenStore{saved: make(map[string]*models.Token)}
}

func (m *mockTokenStore) Save(ctx context.Context, token *models.Token) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[token.Value] = token
	return nil
}

func (m *mockTokenStore) IsRevoked(ctx context.Context, value string) (bool, error) {
	if m.isRevokedErr != nil {
		return true, m.isRevokedErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.saved[value]
	if !ok {
		return true, nil
	}
	return record.Revoked, nil
}

func (m *mockTokenStore) Revoke(ctx context.Context, value string) error {
	if m.revokeErr != nil {
		return m.revokeErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if record, ok := m.saved[value]; ok && !record.Revoked {
		now := time.Now().UTC()
		record.Revoked = true
		record.RevokedAt = &now
	}
	return nil
}

func newTestAuthService(t *testing.T, users *mockUserRepo, tokens *mockTokenStore) *AuthService {
	t.Helper()
	codec, err := NewTokenCodec(signing.NewKeyProvider(config.JWTConfig{Secret: "secret"}))
	require.NoError(t, err)
	return NewAuthService(users, tokens, codec, validator.New(), zap.NewNop(), time.Hour)
}

func TestAuthServiceLoginSuccess(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", Username: "user", PasswordHash: string(password), Active: true}}
	tokens := newMockTokenStore()
	svc := newTestAuthService(t, users, tokens)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, int64(3600), res.ExpiresIn)
	assert.Equal(t, "u1", res.User.ID)
	assert.True(t, users.lastLoginUpdated)

	record, ok := tokens.saved[res.Token]
	require.True(t, ok)
	assert.Equal(t, "u1", record.OwnerID)
	assert.False(t, record.Revoked)
	assert.Equal(t, record.IssuedAt.Add(time.Hour), record.ExpiresAt)
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	users := &mockUserRepo{findByEmailErr: sql.ErrNoRows}
	svc := newTestAuthService(t, users, newMockTokenStore())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Active: true}}
	svc := newTestAuthService(t, users, newMockTokenStore())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactive(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Active: false}}
	svc := newTestAuthService(t, users, newMockTokenStore())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginStoreFailureAbortsIssue(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Active: true}}
	tokens := newMockTokenStore()
	tokens.saveErr = errors.New("connection refused")
	svc := newTestAuthService(t, users, tokens)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
	assert.Empty(t, tokens.saved)
}

func TestAuthServiceSignup(t *testing.T) {
	users := &mockUserRepo{}
	tokens := newMockTokenStore()
	svc := newTestAuthService(t, users, tokens)

	user, res, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	require.NotNil(t, users.created)
	assert.True(t, user.Active)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, res.Token)
	assert.Contains(t, tokens.saved, res.Token)

	claims, ok := svc.Validate(context.Background(), res.Token)
	require.True(t, ok)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.ID, claims.SignupID)
}

func TestAuthServiceSignupDuplicateEmail(t *testing.T) {
	users := &mockUserRepo{emailTaken: true}
	svc := newTestAuthService(t, users, newMockTokenStore())

	_, _, err := svc.Signup(context.Background(), models.SignupRequest{
		Username: "newuser",
		Email:    "taken@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Nil(t, users.created)
}

func TestAuthServiceValidateLifecycle(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Active: true}}
	tokens := newMockTokenStore()
	svc := newTestAuthService(t, users, tokens)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)

	claims, ok := svc.Validate(context.Background(), res.Token)
	require.True(t, ok)
	assert.Equal(t, "u1", claims.UserID)

	require.NoError(t, svc.Revoke(context.Background(), res.Token))

	_, ok = svc.Validate(context.Background(), res.Token)
	assert.False(t, ok)

	// Revoking again stays a successful no-op.
	require.NoError(t, svc.Revoke(context.Background(), res.Token))
	_, ok = svc.Validate(context.Background(), res.Token)
	assert.False(t, ok)
}

func TestAuthServiceValidateUnknownToken(t *testing.T) {
	svc := newTestAuthService(t, &mockUserRepo{}, newMockTokenStore())

	// Well signed but never issued through the store.
	signed, _, err := svc.codec.Mint(&models.User{ID: "u1", Email: "user@example.com"}, time.Hour)
	require.NoError(t, err)

	_, ok := svc.Validate(context.Background(), signed)
	assert.False(t, ok)
}

func TestAuthServiceValidateStoreErrorFailsClosed(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Active: true}}
	tokens := newMockTokenStore()
	svc := newTestAuthService(t, users, tokens)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)

	tokens.isRevokedErr = errors.New("connection refused")
	_, ok := svc.Validate(context.Background(), res.Token)
	assert.False(t, ok)
}

func TestAuthServiceRevokeMalformedToken(t *testing.T) {
	tokens := newMockTokenStore()
	svc := newTestAuthService(t, &mockUserRepo{}, tokens)

	// Structural validity is not required for revocation.
	require.NoError(t, svc.Revoke(context.Background(), "not-a-token"))
}

func TestAuthServiceValidateConcurrent(t *testing.T) {
	password, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	users := &mockUserRepo{userByEmail: &models.User{ID: "u1", Email: "user@example.com", PasswordHash: string(password), Active: true}}
	tokens := newMockTokenStore()
	svc := newTestAuthService(t, users, tokens)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "user@example.com", Password: "password"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]bool, 100)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, ok := svc.Validate(context.Background(), res.Token)
			results[idx] = ok
		}(i)
	}
	wg.Wait()

	for _, ok := range results {
		assert.True(t, ok)
	}
}
