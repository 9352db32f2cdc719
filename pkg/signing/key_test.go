package signing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eficaz-commerce/eficaz-api/pkg/config"
	appErrors "github.com/eficaz-commerce/eficaz-api/pkg/errors"
)

func TestKeyProviderResolve(t *testing.T) {
	provider := NewKeyProvider(config.JWTConfig{Secret: "super-secret", Expiration: time.Hour})

	key, err := provider.Resolve()
	require.NoError(t, err)
	assert.Equal(t, []byte("super-secret"), key)

	again, err := provider.Resolve()
	require.NoError(t, err)
	assert.Equal(t, key, again)
}

func TestKeyProviderMissingSecret(t *testing.T) {
	provider := NewKeyProvider(config.JWTConfig{})

	_, err := provider.Resolve()
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSigningKeyMissing.Code, appErr.Code)
}
