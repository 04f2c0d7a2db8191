package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorent/vehicle-rental-backend/internal/models"
	"github.com/velorent/vehicle-rental-backend/pkg/jwt"
)

func setupTestJWTService() *jwt.Service {
	return jwt.NewService("test-secret-key-123456789", time.Hour)
}

func protectedRouter(jwtService *jwt.Service, policy models.RolePolicy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", RequireRole(jwtService, policy), func(c *gin.Context) {
		userCtx, _ := GetUserContext(c)
		c.JSON(http.StatusOK, gin.H{"message": "success", "user_id": userCtx.UserID})
	})
	return router
}

func TestRequireRole_Success(t *testing.T) {
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService, models.PolicyAdmin)

	userID := uuid.New().String()
	token, err := jwtService.GenerateToken(userID, "Amara", "Perera", "amara@example.com", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "success")
	assert.Contains(t, w.Body.String(), userID)
}

func TestRequireRole_MissingAuthHeader(t *testing.T) {
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService, models.PolicyAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header is required")
}

func TestRequireRole_MissingBearerPrefix(t *testing.T) {
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService, models.PolicyAdmin)

	tests := []struct {
		name   string
		header string
	}{
		{"raw token", "some-token"},
		{"wrong scheme", "Basic some-token"},
		{"lowercase bearer", "bearer some-token"},
		{"no space", "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Bearer token is required")
		})
	}
}

func TestRequireRole_MissingSecret(t *testing.T) {
	jwtService := jwt.NewService("", time.Hour)
	router := protectedRouter(jwtService, models.PolicyAdmin)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Server configuration error")
}

func TestRequireRole_InvalidToken(t *testing.T) {
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService, models.PolicyAdmin)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"empty", ""},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.e30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid or expired token")
		})
	}
}

func TestRequireRole_WrongSecret(t *testing.T) {
	jwtService := setupTestJWTService()
	otherService := jwt.NewService("a-different-secret-entirely", time.Hour)
	router := protectedRouter(jwtService, models.PolicyAdmin)

	token, err := otherService.GenerateToken(uuid.New().String(), "Amara", "Perera", "amara@example.com", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireRole_ExpiredToken(t *testing.T) {
	expiredService := jwt.NewService("test-secret-key-123456789", -time.Hour)
	jwtService := setupTestJWTService()
	router := protectedRouter(jwtService, models.PolicyAdmin)

	token, err := expiredService.GenerateToken(uuid.New().String(), "Amara", "Perera", "amara@example.com", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireRole_PolicyMatrix(t *testing.T) {
	jwtService := setupTestJWTService()

	tests := []struct {
		name     string
		policy   models.RolePolicy
		role     models.Role
		wantCode int
	}{
		{"admin policy accepts admin", models.PolicyAdmin, models.RoleAdmin, http.StatusOK},
		{"admin policy rejects user", models.PolicyAdmin, models.RoleUser, http.StatusForbidden},
		{"admin policy rejects customer", models.PolicyAdmin, models.RoleCustomer, http.StatusForbidden},
		{"user policy accepts user", models.PolicyUser, models.RoleUser, http.StatusOK},
		{"user policy rejects admin", models.PolicyUser, models.RoleAdmin, http.StatusForbidden},
		{"customer policy accepts customer", models.PolicyCustomer, models.RoleCustomer, http.StatusOK},
		{"customer policy accepts admin", models.PolicyCustomer, models.RoleAdmin, http.StatusOK},
		{"customer policy rejects user", models.PolicyCustomer, models.RoleUser, http.StatusForbidden},
		{"both accepts admin", models.PolicyBoth, models.RoleAdmin, http.StatusOK},
		{"both accepts user", models.PolicyBoth, models.RoleUser, http.StatusOK},
		{"both accepts customer", models.PolicyBoth, models.RoleCustomer, http.StatusOK},
		{"unknown role never matches", models.PolicyBoth, models.Role("superuser"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(jwtService, tt.policy)

			token, err := jwtService.GenerateToken(uuid.New().String(), "Amara", "Perera", "amara@example.com", tt.role)
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantCode == http.StatusForbidden {
				assert.Contains(t, w.Body.String(), "Insufficient permissions")
			}
		})
	}
}
