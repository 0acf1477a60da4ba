package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop-api/internal/models"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret-key-for-testing-purposes", time.Hour)
}

func TestNewTokenService(t *testing.T) {
	service := newTestTokenService()
	assert.NotNil(t, service)
	assert.Equal(t, time.Hour, service.TokenExpiry())
}

func TestTokenService_Generate_Success(t *testing.T) {
	service := newTestTokenService()

	token, expiresAt, err := service.Generate("user-123", "test@example.com", models.RoleUser)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(61*time.Minute)))
}

func TestTokenService_Validate_Valid(t *testing.T) {
	service := newTestTokenService()

	token, _, err := service.Generate("user-456", "admin@example.com", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := service.Validate(token)

	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "user-456", claims.Subject)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	service := NewTokenService("test-secret-key-for-testing-purposes", -time.Minute)

	token, _, err := service.Generate("user-789", "test@example.com", models.RoleUser)
	require.NoError(t, err)

	claims, err := service.Validate(token)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	service := newTestTokenService()
	other := NewTokenService("a-completely-different-secret-key", time.Hour)

	token, _, err := other.Generate("user-123", "test@example.com", models.RoleUser)
	require.NoError(t, err)

	claims, err := service.Validate(token)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_Garbage(t *testing.T) {
	service := newTestTokenService()

	claims, err := service.Validate("not.a.token")

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_WrongSigningMethod(t *testing.T) {
	service := newTestTokenService()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-123",
		Email:  "test@example.com",
		Role:   models.RoleUser,
	})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.Validate(tokenString)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_Validate_UnknownRole(t *testing.T) {
	service := newTestTokenService()

	token, _, err := service.Generate("user-123", "test@example.com", models.Role("superuser"))
	require.NoError(t, err)

	claims, err := service.Validate(token)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
