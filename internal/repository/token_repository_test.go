package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eficaz-commerce/eficaz-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestTokenSave(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTokenRepository(db)

	mock.ExpectExec("INSERT INTO tokens").WillReturnResult(sqlmock.NewResult(1, 1))

	now := time.Now().UTC()
	err := repo.Save(context.Background(), &models.Token{
		Value:     "token-value",
		OwnerID:   "u1",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenSaveFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTokenRepository(db)

	mock.ExpectExec("INSERT INTO tokens").WillReturnError(errors.New("connection refused"))

	err := repo.Save(context.Background(), &models.Token{Value: "token-value", OwnerID: "u1"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenIsRevoked(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTokenRepository(db)

	rows := sqlmock.NewRows([]string{"revoked"}).AddRow(false)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT revoked FROM tokens WHERE value = $1 LIMIT 1")).
		WithArgs("token-value").
		WillReturnRows(rows)

	revoked, err := repo.IsRevoked(context.Background(), "token-value")
	require.NoError(t, err)
	assert.False(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenIsRevokedUnknownValue(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTokenRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT revoked FROM tokens WHERE value = $1 LIMIT 1")).
		WithArgs("never-issued").
		WillReturnRows(sqlmock.NewRows([]string{"revoked"}))

	revoked, err := repo.IsRevoked(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenIsRevokedQueryError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTokenRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT revoked FROM tokens WHERE value = $1 LIMIT 1")).
		WithArgs("token-value").
		WillReturnError(errors.New("connection refused"))

	revoked, err := repo.IsRevoked(context.Background(), "token-value")
	require.Error(t, err)
	assert.True(t, revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRevoke(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTokenRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE tokens SET revoked = TRUE, revoked_at = $2 WHERE value = $1 AND revoked = FALSE")).
		WithArgs("token-value", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Revoke(context.Background(), "token-value")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRevokeUnknownValue(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTokenRepository(db)

	// Zero rows affected is still a success; unknown tokens reveal nothing.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE tokens SET revoked = TRUE, revoked_at = $2 WHERE value = $1 AND revoked = FALSE")).
		WithArgs("never-issued", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Revoke(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
