package models

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "Confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking represents a vehicle rental booking
type Booking struct {
	BookingID     string        `json:"booking_id" db:"booking_id"`
	UserID        string        `json:"user_id" db:"user_id"`
	VehicleID     string        `json:"vehicle_id" db:"vehicle_id"`
	LocationID    string        `json:"location_id" db:"location_id"`
	BookingDate   time.Time     `json:"booking_date" db:"booking_date"`
	ReturnDate    time.Time     `json:"return_date" db:"return_date"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	BookingStatus BookingStatus `json:"booking_status" db:"booking_status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingUserInfo is the user projection embedded in booking responses
type BookingUserInfo struct {
	UserID       string `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	ContactPhone string `json:"contact_phone"`
}

// BookingVehicleInfo is the vehicle projection embedded in booking responses
type BookingVehicleInfo struct {
	VehicleID    string      `json:"vehicle_id"`
	RentalRate   float64     `json:"rental_rate"`
	Availability bool        `json:"availability"`
	VehicleSpec  VehicleSpec `json:"vehicle_spec"`
}

// BookingResponse is a booking joined with user, vehicle, spec and location
type BookingResponse struct {
	BookingID     string        `json:"booking_id"`
	UserID        string        `json:"user_id"`
	VehicleID     string        `json:"vehicle_id"`
	LocationID    string        `json:"location_id"`
	BookingDate   time.Time     `json:"booking_date"`
	ReturnDate    time.Time     `json:"return_date"`
	TotalAmount   float64       `json:"total_amount"`
	BookingStatus BookingStatus `json:"booking_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	User     BookingUserInfo    `json:"user"`
	Vehicle  BookingVehicleInfo `json:"vehicle"`
	Location Location           `json:"location"`
}

// CreateBookingRequest represents the booking-creation payload
type CreateBookingRequest struct {
	UserID        string  `json:"user_id" binding:"required"`
	VehicleID     string  `json:"vehicle_id" binding:"required"`
	LocationID    string  `json:"location_id" binding:"required"`
	BookingDate   string  `json:"booking_date" binding:"required"` // Format: YYYY-MM-DD
	ReturnDate    string  `json:"return_date" binding:"required"`  // Format: YYYY-MM-DD
	TotalAmount   float64 `json:"total_amount" binding:"required,gt=0"`
	BookingStatus *string `json:"booking_status,omitempty"`
}

// UpdateBookingRequest represents the booking-update payload
type UpdateBookingRequest struct {
	VehicleID     *string  `json:"vehicle_id,omitempty"`
	LocationID    *string  `json:"location_id,omitempty"`
	BookingDate   *string  `json:"booking_date,omitempty"`
	ReturnDate    *string  `json:"return_date,omitempty"`
	TotalAmount   *float64 `json:"total_amount,omitempty"`
	BookingStatus *string  `json:"booking_status,omitempty"`
}
