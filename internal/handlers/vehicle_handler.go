package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// VehicleHandler handles vehicle HTTP requests
type VehicleHandler struct {
	vehicleRepo *database.VehicleRepository
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleRepo *database.VehicleRepository) *VehicleHandler {
	return &VehicleHandler{vehicleRepo: vehicleRepo}
}

// GetAll handles GET /api/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleRepo.GetAll()
	if err != nil {
		respondRepoError(c, err, "Vehicle not found")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetAvailable handles GET /api/vehicles/available
func (h *VehicleHandler) GetAvailable(c *gin.Context) {
	vehicles, err := h.vehicleRepo.GetAvailable()
	if err != nil {
		respondRepoError(c, err, "Vehicle not found")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetByID handles GET /api/vehicles/:id
func (h *VehicleHandler) GetByID(c *gin.Context) {
	vehicle, err := h.vehicleRepo.GetByID(c.Param("id"))
	if err != nil {
		respondRepoError(c, err, "Vehicle not found")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// Create handles POST /api/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req models.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.vehicleRepo.Create(&req)
	if err != nil {
		respondRepoError(c, err, "Vehicle not found")
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

// Update handles PUT /api/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	var req models.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle, err := h.vehicleRepo.Update(c.Param("id"), &req)
	if err != nil {
		respondRepoError(c, err, "Vehicle not found")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// Delete handles DELETE /api/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	if err := h.vehicleRepo.Delete(c.Param("id")); err != nil {
		if err.Error() == "vehicle not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		respondRepoError(c, err, "Vehicle not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
