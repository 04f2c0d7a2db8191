package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
)

// DashboardHandler serves the admin dashboard aggregates
type DashboardHandler struct {
	dashboardRepo *database.DashboardRepository
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardRepo *database.DashboardRepository) *DashboardHandler {
	return &DashboardHandler{dashboardRepo: dashboardRepo}
}

// GetStats handles GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardRepo.GetStats()
	if err != nil {
		respondRepoError(c, err, "Dashboard data not found")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRecentBookings handles GET /api/dashboard/recent-bookings?limit=
func (h *DashboardHandler) GetRecentBookings(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	bookings, err := h.dashboardRepo.GetRecentBookings(limit)
	if err != nil {
		respondRepoError(c, err, "Dashboard data not found")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetTopVehicles handles GET /api/dashboard/top-vehicles?limit=
func (h *DashboardHandler) GetTopVehicles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))

	vehicles, err := h.dashboardRepo.GetTopVehicles(limit)
	if err != nil {
		respondRepoError(c, err, "Dashboard data not found")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetMonthlyRevenue handles GET /api/dashboard/monthly-revenue
func (h *DashboardHandler) GetMonthlyRevenue(c *gin.Context) {
	revenue, err := h.dashboardRepo.GetMonthlyRevenue()
	if err != nil {
		respondRepoError(c, err, "Dashboard data not found")
		return
	}

	c.JSON(http.StatusOK, revenue)
}
