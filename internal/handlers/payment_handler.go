package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
	"github.com/velorent/vehicle-rental-backend/internal/services"
	"github.com/velorent/vehicle-rental-backend/pkg/mailer"
)

// PaymentHandler handles payment HTTP requests, including the gateway
// intent endpoints and the booking confirmation workflow.
type PaymentHandler struct {
	paymentRepo  *database.PaymentRepository
	userRepo     *database.UserRepository
	stripe       *services.StripeService
	confirmation *services.BookingConfirmationService
	mailer       *mailer.Mailer
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(
	paymentRepo *database.PaymentRepository,
	userRepo *database.UserRepository,
	stripe *services.StripeService,
	confirmation *services.BookingConfirmationService,
	m *mailer.Mailer,
) *PaymentHandler {
	return &PaymentHandler{
		paymentRepo:  paymentRepo,
		userRepo:     userRepo,
		stripe:       stripe,
		confirmation: confirmation,
		mailer:       m,
	}
}

// CreateIntent handles POST /api/payments/create-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req models.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	intent, err := h.stripe.CreateIntent(req.Amount, req.Currency, req.Metadata)
	if err != nil {
		logrus.WithError(err).Error("Failed to create payment intent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"amount":       intent.Amount,
		"id":           intent.ID,
	})
}

// Confirm handles POST /api/payments/confirm
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req models.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.confirmation.Confirm(c.Request.Context(), &req)
	if err != nil {
		// A replayed intent is the one failure the client can act on
		// differently, so it keeps its own status code. Everything else
		// surfaces as 500 with a message describing what went wrong.
		if errors.Is(err, services.ErrDuplicateConfirmation) {
			c.JSON(http.StatusConflict, gin.H{"error": "This payment has already been confirmed", "success": false})
			return
		}

		logrus.WithError(err).Error("Payment confirmation failed")

		var fkErr *database.ForeignKeyError
		switch {
		case errors.Is(err, services.ErrPaymentNotSucceeded):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "success": false})
		case errors.As(err, &fkErr):
			c.JSON(http.StatusInternalServerError, gin.H{"error": fkErr.Error(), "success": false})
		case errors.Is(err, database.ErrInvalidIdentifier):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid identifier format", "success": false})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment", "success": false})
		}
		return
	}

	// Receipt email failures must not fail the confirmation
	if user, err := h.userRepo.GetByID(req.UserID); err == nil {
		if err := h.mailer.SendBookingConfirmation(user.Email, user.FirstName, result.BookingID, result.AmountCharged); err != nil {
			logrus.WithError(err).Warn("Failed to send booking confirmation email")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Booking confirmed successfully",
		"success":   true,
		"bookingId": result.BookingID,
		"paymentId": result.PaymentID,
		"paymentIntent": gin.H{
			"id":     req.PaymentIntentID,
			"amount": result.AmountCharged,
			"status": result.IntentStatus,
		},
	})
}

// GetAll handles GET /api/payments
func (h *PaymentHandler) GetAll(c *gin.Context) {
	payments, err := h.paymentRepo.GetAll()
	if err != nil {
		respondRepoError(c, err, "Payment not found")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetByID handles GET /api/payments/:id
func (h *PaymentHandler) GetByID(c *gin.Context) {
	payment, err := h.paymentRepo.GetByID(c.Param("id"))
	if err != nil {
		respondRepoError(c, err, "Payment not found")
		return
	}

	c.JSON(http.StatusOK, payment)
}

// GetByBookingID handles GET /api/payments/booking/:bookingId
func (h *PaymentHandler) GetByBookingID(c *gin.Context) {
	payments, err := h.paymentRepo.GetByBookingID(c.Param("bookingId"))
	if err != nil {
		respondRepoError(c, err, "Payment not found")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// Create handles POST /api/payments
func (h *PaymentHandler) Create(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentRepo.Create(&req)
	if err != nil {
		respondRepoError(c, err, "Payment not found")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// Update handles PUT /api/payments/:id
func (h *PaymentHandler) Update(c *gin.Context) {
	var req models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.paymentRepo.Update(c.Param("id"), &req)
	if err != nil {
		respondRepoError(c, err, "Payment not found")
		return
	}

	c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /api/payments/:id
func (h *PaymentHandler) Delete(c *gin.Context) {
	if err := h.paymentRepo.Delete(c.Param("id")); err != nil {
		if err.Error() == "payment not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
			return
		}
		respondRepoError(c, err, "Payment not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
