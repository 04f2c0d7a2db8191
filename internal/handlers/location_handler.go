package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// LocationHandler handles rental location HTTP requests
type LocationHandler struct {
	locationRepo *database.LocationRepository
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(locationRepo *database.LocationRepository) *LocationHandler {
	return &LocationHandler{locationRepo: locationRepo}
}

// GetAll handles GET /api/locations
func (h *LocationHandler) GetAll(c *gin.Context) {
	locations, err := h.locationRepo.GetAll()
	if err != nil {
		respondRepoError(c, err, "Location not found")
		return
	}

	c.JSON(http.StatusOK, locations)
}

// GetByID handles GET /api/locations/:id
func (h *LocationHandler) GetByID(c *gin.Context) {
	location, err := h.locationRepo.GetByID(c.Param("id"))
	if err != nil {
		respondRepoError(c, err, "Location not found")
		return
	}

	c.JSON(http.StatusOK, location)
}

// Create handles POST /api/locations
func (h *LocationHandler) Create(c *gin.Context) {
	var req models.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := h.locationRepo.Create(&req)
	if err != nil {
		respondRepoError(c, err, "Location not found")
		return
	}

	c.JSON(http.StatusCreated, location)
}

// Update handles PUT /api/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	var req models.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	location, err := h.locationRepo.Update(c.Param("id"), &req)
	if err != nil {
		respondRepoError(c, err, "Location not found")
		return
	}

	c.JSON(http.StatusOK, location)
}

// Delete handles DELETE /api/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	if err := h.locationRepo.Delete(c.Param("id")); err != nil {
		if err.Error() == "location not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		respondRepoError(c, err, "Location not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}
