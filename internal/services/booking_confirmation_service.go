package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// ErrDuplicateConfirmation is returned when a payment intent has already
// been confirmed into a booking/payment pair.
var ErrDuplicateConfirmation = errors.New("payment intent already confirmed")

// BookingConfirmationService turns a succeeded payment intent into a
// booking and a payment record atomically.
type BookingConfirmationService struct {
	db           *sqlx.DB
	stripe       *StripeService
	bookingRepo  *database.BookingRepository
	paymentRepo  *database.PaymentRepository
	locationRepo *database.LocationRepository
	logger       *logrus.Logger
}

// ConfirmationResult reports the rows written by a confirmation
type ConfirmationResult struct {
	BookingID     string
	PaymentID     string
	IntentStatus  string
	AmountCharged float64
}

// NewBookingConfirmationService creates a new BookingConfirmationService
func NewBookingConfirmationService(
	db *sqlx.DB,
	stripe *StripeService,
	bookingRepo *database.BookingRepository,
	paymentRepo *database.PaymentRepository,
	locationRepo *database.LocationRepository,
	logger *logrus.Logger,
) *BookingConfirmationService {
	return &BookingConfirmationService{
		db:           db,
		stripe:       stripe,
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// Confirm verifies the payment intent with the gateway and records the
// booking and payment in one transaction. Either both rows commit or
// neither does. Confirming the same intent twice trips the unique index
// on provider_payment_id and returns ErrDuplicateConfirmation.
func (s *BookingConfirmationService) Confirm(ctx context.Context, req *models.ConfirmPaymentRequest) (*ConfirmationResult, error) {
	intent, err := s.stripe.RetrieveIntent(req.PaymentIntentID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment intent: %w", err)
	}

	if intent.Status != "succeeded" {
		s.logger.WithFields(logrus.Fields{
			"payment_intent": intent.ID,
			"status":         intent.Status,
		}).Warn("Confirmation attempted before payment succeeded")
		return nil, fmt.Errorf("%w: provider reports status %q", ErrPaymentNotSucceeded, intent.Status)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("end date must not be before start date")
	}

	bookingID := uuid.New().String()
	if req.BookingID != nil && *req.BookingID != "" {
		bookingID = *req.BookingID
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "stripe"
	}

	paymentID := uuid.New().String()
	providerPaymentID := intent.ID
	now := time.Now()

	err = database.WithinTx(ctx, s.db, func(tx *sqlx.Tx) error {
		locationID, err := s.locationRepo.FirstIDTx(tx)
		if errors.Is(err, sql.ErrNoRows) {
			locationID, err = s.locationRepo.InsertDefaultTx(tx)
		}
		if err != nil {
			return fmt.Errorf("failed to resolve booking location: %w", err)
		}

		booking := &models.Booking{
			BookingID:     bookingID,
			UserID:        req.UserID,
			VehicleID:     req.VehicleID,
			LocationID:    locationID,
			BookingDate:   startDate,
			ReturnDate:    endDate,
			TotalAmount:   req.Amount,
			BookingStatus: models.BookingStatusConfirmed,
		}
		if err := s.bookingRepo.InsertTx(tx, booking); err != nil {
			return err
		}

		payment := &models.Payment{
			PaymentID:         paymentID,
			BookingID:         bookingID,
			Amount:            req.Amount,
			PaymentStatus:     models.PaymentStatusSuccess,
			PaymentDate:       now,
			PaymentMethod:     paymentMethod,
			TransactionID:     intent.ID,
			ProviderPaymentID: &providerPaymentID,
			Metadata: models.JSONB{
				"gateway":        "stripe",
				"payment_intent": intent.ID,
				"intent_status":  intent.Status,
				"currency":       intent.Currency,
				"booking_id":     bookingID,
				"confirmed_at":   now.UTC().Format(time.RFC3339),
			},
		}
		return s.paymentRepo.InsertTx(tx, payment)
	})
	if err != nil {
		var dup *database.DuplicateError
		if errors.As(err, &dup) {
			s.logger.WithField("payment_intent", intent.ID).Warn("Payment intent confirmed twice")
			return nil, ErrDuplicateConfirmation
		}
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":     bookingID,
		"payment_id":     paymentID,
		"payment_intent": intent.ID,
		"amount":         req.Amount,
	}).Info("Booking confirmed")

	return &ConfirmationResult{
		BookingID:     bookingID,
		PaymentID:     paymentID,
		IntentStatus:  intent.Status,
		AmountCharged: req.Amount,
	}, nil
}
