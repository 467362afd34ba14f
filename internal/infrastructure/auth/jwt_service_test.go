package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/saradorri/fairplay/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "secret", Expiry: time.Hour})

	token, err := svc.GenerateToken("user-1", "0xabc")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "0xabc", claims.WalletAddress)
	assert.Equal(t, "fairplay", claims.Issuer)

	userID, err := svc.ExtractUserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateTokenRejects(t *testing.T) {
	cfg := &config.JWTConfig{Secret: "secret", Expiry: time.Hour}
	svc := NewJWTService(cfg)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(&config.JWTConfig{Secret: "other", Expiry: time.Hour})
		token, err := other.GenerateToken("user-1", "0xabc")
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := &jwtService{config: cfg, now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
		token, err := expired.GenerateToken("user-1", "0xabc")
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			UserID:           "user-1",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
		}).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = svc.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := NewJWTService(&config.JWTConfig{}).GenerateToken("user-1", "0xabc")
		assert.Error(t, err)
	})
}
