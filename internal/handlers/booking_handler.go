package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// BookingHandler handles booking HTTP requests
type BookingHandler struct {
	bookingRepo *database.BookingRepository
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingRepo *database.BookingRepository) *BookingHandler {
	return &BookingHandler{bookingRepo: bookingRepo}
}

func validDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

// GetAll handles GET /api/bookings
func (h *BookingHandler) GetAll(c *gin.Context) {
	bookings, err := h.bookingRepo.GetAll()
	if err != nil {
		respondRepoError(c, err, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetByID handles GET /api/bookings/:id
func (h *BookingHandler) GetByID(c *gin.Context) {
	booking, err := h.bookingRepo.GetByID(c.Param("id"))
	if err != nil {
		respondRepoError(c, err, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetByUserID handles GET /api/bookings/user/:userId
func (h *BookingHandler) GetByUserID(c *gin.Context) {
	bookings, err := h.bookingRepo.GetByUserID(c.Param("userId"))
	if err != nil {
		respondRepoError(c, err, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validDate(req.BookingDate) || !validDate(req.ReturnDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must use the YYYY-MM-DD format"})
		return
	}

	booking, err := h.bookingRepo.Create(&req)
	if err != nil {
		respondRepoError(c, err, "Booking not found")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// Update handles PUT /api/bookings/:id
func (h *BookingHandler) Update(c *gin.Context) {
	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (req.BookingDate != nil && !validDate(*req.BookingDate)) ||
		(req.ReturnDate != nil && !validDate(*req.ReturnDate)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dates must use the YYYY-MM-DD format"})
		return
	}

	booking, err := h.bookingRepo.Update(c.Param("id"), &req)
	if err != nil {
		respondRepoError(c, err, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Delete handles DELETE /api/bookings/:id
func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.bookingRepo.Delete(c.Param("id")); err != nil {
		if err.Error() == "booking not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		respondRepoError(c, err, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
