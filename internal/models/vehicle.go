package models

import "time"

// Vehicle represents a rentable vehicle in the fleet
type Vehicle struct {
	VehicleID     string    `json:"vehicle_id" db:"vehicle_id"`
	VehicleSpecID string    `json:"vehicle_spec_id" db:"vehicle_spec_id"`
	LocationID    string    `json:"location_id" db:"location_id"`
	RentalRate    float64   `json:"rental_rate" db:"rental_rate"`
	Availability  bool      `json:"availability" db:"availability"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleResponse is a vehicle joined with its specification and location
type VehicleResponse struct {
	VehicleID     string    `json:"vehicle_id"`
	VehicleSpecID string    `json:"vehicle_spec_id"`
	RentalRate    float64   `json:"rental_rate"`
	Availability  bool      `json:"availability"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	VehicleSpec VehicleSpec `json:"vehicle_spec"`
	Location    Location    `json:"location"`
}

// CreateVehicleRequest represents the vehicle-creation payload
type CreateVehicleRequest struct {
	VehicleSpecID string  `json:"vehicle_spec_id" binding:"required"`
	LocationID    string  `json:"location_id" binding:"required"`
	RentalRate    float64 `json:"rental_rate" binding:"required,gt=0"`
	Availability  *bool   `json:"availability,omitempty"`
}

// UpdateVehicleRequest represents the vehicle-update payload
type UpdateVehicleRequest struct {
	VehicleSpecID *string  `json:"vehicle_spec_id,omitempty"`
	LocationID    *string  `json:"location_id,omitempty"`
	RentalRate    *float64 `json:"rental_rate,omitempty"`
	Availability  *bool    `json:"availability,omitempty"`
}
