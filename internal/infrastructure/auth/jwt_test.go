package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "stockflow-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	token, expiresAt, err := service.GenerateToken(userID, "operator")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "operator", claims.Username)
	assert.Equal(t, "stockflow-test", claims.Issuer)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := newTestJWTService()

	t.Run("rejects garbage token", func(t *testing.T) {
		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-value",
			AccessTokenExpiration: 15 * time.Minute,
			Issuer:                "stockflow-test",
		})
		token, _, err := other.GenerateToken(uuid.New(), "operator")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-that-is-long-enough",
			AccessTokenExpiration: -time.Minute,
			Issuer:                "stockflow-test",
		})
		token, _, err := expired.GenerateToken(uuid.New(), "operator")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
