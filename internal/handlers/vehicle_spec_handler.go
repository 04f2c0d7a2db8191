package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// VehicleSpecHandler handles vehicle specification HTTP requests
type VehicleSpecHandler struct {
	specRepo *database.VehicleSpecRepository
}

// NewVehicleSpecHandler creates a new vehicle spec handler
func NewVehicleSpecHandler(specRepo *database.VehicleSpecRepository) *VehicleSpecHandler {
	return &VehicleSpecHandler{specRepo: specRepo}
}

// GetAll handles GET /api/vehiclespecs
func (h *VehicleSpecHandler) GetAll(c *gin.Context) {
	specs, err := h.specRepo.GetAll()
	if err != nil {
		respondRepoError(c, err, "Vehicle specification not found")
		return
	}

	c.JSON(http.StatusOK, specs)
}

// GetByID handles GET /api/vehiclespecs/:id
func (h *VehicleSpecHandler) GetByID(c *gin.Context) {
	spec, err := h.specRepo.GetByID(c.Param("id"))
	if err != nil {
		respondRepoError(c, err, "Vehicle specification not found")
		return
	}

	c.JSON(http.StatusOK, spec)
}

// Create handles POST /api/vehiclespecs
func (h *VehicleSpecHandler) Create(c *gin.Context) {
	var req models.CreateVehicleSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spec, err := h.specRepo.Create(&req)
	if err != nil {
		respondRepoError(c, err, "Vehicle specification not found")
		return
	}

	c.JSON(http.StatusCreated, spec)
}

// Update handles PUT /api/vehiclespecs/:id
func (h *VehicleSpecHandler) Update(c *gin.Context) {
	var req models.UpdateVehicleSpecRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	spec, err := h.specRepo.Update(c.Param("id"), &req)
	if err != nil {
		respondRepoError(c, err, "Vehicle specification not found")
		return
	}

	c.JSON(http.StatusOK, spec)
}

// Delete handles DELETE /api/vehiclespecs/:id
func (h *VehicleSpecHandler) Delete(c *gin.Context) {
	if err := h.specRepo.Delete(c.Param("id")); err != nil {
		if err.Error() == "vehicle spec not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle specification not found"})
			return
		}
		respondRepoError(c, err, "Vehicle specification not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle specification deleted successfully"})
}
