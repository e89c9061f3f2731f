package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goblog/internal/config"
)

func newTestAuthService(tokenDuration time.Duration) AuthService {
	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		TokenDuration: tokenDuration,
	}
	return NewAuthService(nil, nil, cfg)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	auth := newTestAuthService(6 * time.Hour)

	token, err := auth.GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := auth.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestAuthService_ExpiredToken(t *testing.T) {
	// токен выпускается уже просроченным
	auth := newTestAuthService(-time.Hour)

	token, err := auth.GenerateToken("user-123")
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAuthService_TokenWithoutIDClaim(t *testing.T) {
	auth := newTestAuthService(6 * time.Hour)

	// валидная подпись, но нет claim id
	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthService_WrongSignature(t *testing.T) {
	auth := newTestAuthService(6 * time.Hour)

	claims := jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthService_MalformedToken(t *testing.T) {
	auth := newTestAuthService(6 * time.Hour)

	_, err := auth.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
