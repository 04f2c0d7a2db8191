package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

const testSecret = "test-secret-key-for-testing-purposes"

func TestNewService(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	assert.NotNil(t, service)
	assert.Equal(t, testSecret, service.secret)
	assert.Equal(t, time.Hour, service.tokenExpiry)
	assert.True(t, service.HasSecret())
}

func TestGenerateToken(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	token, err := service.GenerateToken("u-1", "Jane", "Doe", "jane@example.com", models.RoleCustomer)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Jane", claims.FirstName)
	assert.Equal(t, "Doe", claims.LastName)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, models.RoleCustomer, claims.Role)
	assert.Equal(t, "u-1", claims.Subject)
}

func TestVerify_WrongSecret(t *testing.T) {
	service := NewService(testSecret, time.Hour)
	other := NewService("a-completely-different-secret", time.Hour)

	token, err := service.GenerateToken("u-1", "Jane", "Doe", "jane@example.com", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := other.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestVerify_Expired(t *testing.T) {
	// Negative expiry produces a token that is already expired
	service := NewService(testSecret, -time.Minute)

	token, err := service.GenerateToken("u-1", "Jane", "Doe", "jane@example.com", models.RoleUser)
	require.NoError(t, err)

	claims, err := service.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, service.IsTokenExpired(token))
}

func TestVerify_ExpiredButWellSigned(t *testing.T) {
	// Build a token with a valid signature and an exp in the past
	// directly, bypassing GenerateToken's NotBefore handling
	now := time.Now()
	claims := Claims{
		UserID: "u-1",
		Role:   models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			Subject:   "u-1",
		},
	}
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := raw.SignedString([]byte(testSecret))
	require.NoError(t, err)

	service := NewService(testSecret, time.Hour)
	decoded, err := service.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, decoded)
}

func TestVerify_Malformed(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	claims, err := service.Verify("not-a-jwt")
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = service.Verify("")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestExtractClaims(t *testing.T) {
	service := NewService(testSecret, time.Hour)

	token, err := service.GenerateToken("u-9", "Sam", "Lee", "sam@example.com", models.RoleUser)
	require.NoError(t, err)

	claims, err := service.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "u-9", claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
}
