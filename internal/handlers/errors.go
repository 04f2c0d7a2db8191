package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/database"
)

// respondRepoError maps repository errors onto HTTP responses. Missing
// rows become 404s, broken references 400s, unique violations 409s, and
// anything else a logged 500.
func respondRepoError(c *gin.Context, err error, notFoundMessage string) {
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
		return
	}

	if errors.Is(err, database.ErrInvalidIdentifier) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid identifier format"})
		return
	}

	var fkErr *database.ForeignKeyError
	if errors.As(err, &fkErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fkErr.Error()})
		return
	}

	var dupErr *database.DuplicateError
	if errors.As(err, &dupErr) {
		c.JSON(http.StatusConflict, gin.H{"error": "A record with the same value already exists"})
		return
	}

	logrus.WithError(err).Error("Unhandled repository error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
