package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/models"
	"github.com/velorent/vehicle-rental-backend/pkg/jwt"
)

// UserContextKey is the key used to store user information in Gin context
const UserContextKey = "user"

// UserContext represents the authenticated user's information
type UserContext struct {
	UserID    string      `json:"user_id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
}

// RequireRole validates the bearer token and checks the caller's role
// against the route's policy. Requests fail before the handler runs in a
// fixed order: missing header, missing bearer token, missing server
// secret, token verification, then the role check.
func RequireRole(jwtService *jwt.Service, policy models.RolePolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logrus.WithFields(logrus.Fields{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			}).Warn("Auth failed: missing authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			logrus.WithFields(logrus.Fields{
				"path": c.Request.URL.Path,
				"ip":   c.ClientIP(),
			}).Warn("Auth failed: malformed authorization header")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if !jwtService.HasSecret() {
			logrus.Error("Auth failed: JWT secret is not configured")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
			c.Abort()
			return
		}

		claims, err := jwtService.Verify(tokenString)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.Request.URL.Path,
				"ip":    c.ClientIP(),
				"error": err.Error(),
			}).Warn("Auth failed: token verification")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if !models.PolicyAllows(policy, claims.Role) {
			logrus.WithFields(logrus.Fields{
				"path":   c.Request.URL.Path,
				"ip":     c.ClientIP(),
				"role":   claims.Role,
				"policy": policy,
			}).Warn("Auth failed: insufficient role")
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, UserContext{
			UserID:    claims.UserID,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
			Email:     claims.Email,
			Role:      claims.Role,
		})

		c.Next()
	}
}

// GetUserContext retrieves the authenticated user from Gin context
func GetUserContext(c *gin.Context) (UserContext, bool) {
	value, exists := c.Get(UserContextKey)
	if !exists {
		return UserContext{}, false
	}

	userCtx, ok := value.(UserContext)
	if !ok {
		return UserContext{}, false
	}

	return userCtx, true
}
