package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/database"
)

// RateLimit rejects clients that exceed the configured number of requests
// per window. Counters live in the database so the limit holds across
// instances; if the counter store is unreachable the request is allowed
// through rather than failing the whole API.
func RateLimit(repo *database.RateLimitRepository, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := repo.Increment(c.ClientIP(), window)
		if err != nil {
			logrus.WithError(err).Warn("rate limit counter unavailable, allowing request")
			c.Next()
			return
		}

		if count > maxRequests {
			logrus.WithFields(logrus.Fields{
				"ip":    c.ClientIP(),
				"count": count,
				"limit": maxRequests,
			}).Warn("rate limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, please try again later"})
			c.Abort()
			return
		}

		c.Next()
	}
}
