package models

import "time"

// PaymentStatus values observed on payment rows
const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)

// Payment represents a payment made against a booking
type Payment struct {
	PaymentID         string    `json:"payment_id" db:"payment_id"`
	BookingID         string    `json:"booking_id" db:"booking_id"`
	Amount            float64   `json:"amount" db:"amount"`
	PaymentStatus     string    `json:"payment_status" db:"payment_status"`
	PaymentDate       time.Time `json:"payment_date" db:"payment_date"`
	PaymentMethod     string    `json:"payment_method" db:"payment_method"`
	TransactionID     string    `json:"transaction_id" db:"transaction_id"`
	ProviderPaymentID *string   `json:"provider_payment_id,omitempty" db:"provider_payment_id"`
	Metadata          JSONB     `json:"metadata,omitempty" db:"metadata"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// PaymentBookingInfo is the booking projection embedded in payment responses
type PaymentBookingInfo struct {
	BookingID     string        `json:"booking_id"`
	UserID        string        `json:"user_id"`
	VehicleID     string        `json:"vehicle_id"`
	TotalAmount   float64       `json:"total_amount"`
	BookingStatus BookingStatus `json:"booking_status"`
}

// PaymentUserInfo is the user projection embedded in payment responses
type PaymentUserInfo struct {
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// PaymentResponse is a payment joined with its booking and the booking's user
type PaymentResponse struct {
	PaymentID     string    `json:"payment_id"`
	BookingID     string    `json:"booking_id"`
	Amount        float64   `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	PaymentDate   time.Time `json:"payment_date"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Booking PaymentBookingInfo `json:"booking"`
	User    PaymentUserInfo    `json:"user"`
}

// CreatePaymentRequest represents the direct payment-creation payload
type CreatePaymentRequest struct {
	BookingID     string  `json:"booking_id" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentStatus string  `json:"payment_status" binding:"required"`
	PaymentMethod string  `json:"payment_method" binding:"required"`
	TransactionID string  `json:"transaction_id" binding:"required"`
}

// UpdatePaymentRequest represents the payment-update payload
type UpdatePaymentRequest struct {
	BookingID     *string  `json:"booking_id,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	PaymentStatus *string  `json:"payment_status,omitempty"`
	PaymentMethod *string  `json:"payment_method,omitempty"`
	TransactionID *string  `json:"transaction_id,omitempty"`
}

// CreateIntentRequest represents the payment-intent creation payload
type CreateIntentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency"`
	Metadata JSONB   `json:"metadata,omitempty"`
}

// ConfirmPaymentRequest represents the booking-payment confirmation payload
type ConfirmPaymentRequest struct {
	PaymentIntentID string  `json:"paymentIntentId" binding:"required"`
	UserID          string  `json:"userId" binding:"required"`
	VehicleID       string  `json:"vehicleId" binding:"required"`
	BookingID       *string `json:"bookingId,omitempty"`
	Amount          float64 `json:"amount" binding:"required,gt=0"`
	StartDate       string  `json:"startDate" binding:"required"` // Format: YYYY-MM-DD
	EndDate         string  `json:"endDate" binding:"required"`   // Format: YYYY-MM-DD
	PaymentMethod   string  `json:"paymentMethod"`
}
