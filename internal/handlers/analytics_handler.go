package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
)

// AnalyticsHandler serves period-scoped analytics aggregates
type AnalyticsHandler struct {
	analyticsRepo *database.AnalyticsRepository
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsRepo *database.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsRepo: analyticsRepo}
}

func periodParam(c *gin.Context) int {
	days, _ := strconv.Atoi(c.DefaultQuery("period", "30"))
	return days
}

// GetStats handles GET /api/analytics/stats?period=
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	stats, err := h.analyticsRepo.GetStats(periodParam(c))
	if err != nil {
		respondRepoError(c, err, "Analytics data not found")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRevenueTrend handles GET /api/analytics/revenue-trend?period=
func (h *AnalyticsHandler) GetRevenueTrend(c *gin.Context) {
	trend, err := h.analyticsRepo.GetRevenueTrend(periodParam(c))
	if err != nil {
		respondRepoError(c, err, "Analytics data not found")
		return
	}

	c.JSON(http.StatusOK, trend)
}

// GetBookingTrend handles GET /api/analytics/booking-trend?period=
func (h *AnalyticsHandler) GetBookingTrend(c *gin.Context) {
	trend, err := h.analyticsRepo.GetBookingTrend(periodParam(c))
	if err != nil {
		respondRepoError(c, err, "Analytics data not found")
		return
	}

	c.JSON(http.StatusOK, trend)
}

// GetUserGrowth handles GET /api/analytics/user-growth?period=
func (h *AnalyticsHandler) GetUserGrowth(c *gin.Context) {
	growth, err := h.analyticsRepo.GetUserGrowth(periodParam(c))
	if err != nil {
		respondRepoError(c, err, "Analytics data not found")
		return
	}

	c.JSON(http.StatusOK, growth)
}

// GetVehicleTypes handles GET /api/analytics/vehicle-types
func (h *AnalyticsHandler) GetVehicleTypes(c *gin.Context) {
	shares, err := h.analyticsRepo.GetVehicleTypeShares()
	if err != nil {
		respondRepoError(c, err, "Analytics data not found")
		return
	}

	c.JSON(http.StatusOK, shares)
}

// GetKpiMetrics handles GET /api/analytics/kpi?period=
func (h *AnalyticsHandler) GetKpiMetrics(c *gin.Context) {
	metrics, err := h.analyticsRepo.GetKpiMetrics(periodParam(c))
	if err != nil {
		respondRepoError(c, err, "Analytics data not found")
		return
	}

	c.JSON(http.StatusOK, metrics)
}
