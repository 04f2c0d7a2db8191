package models

import "time"

// Location represents a rental branch location
type Location struct {
	LocationID string    `json:"location_id" db:"location_id"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	City       string    `json:"city" db:"city"`
	Country    string    `json:"country" db:"country"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CreateLocationRequest represents the location-creation payload
type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// UpdateLocationRequest represents the location-update payload
type UpdateLocationRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Country *string `json:"country,omitempty"`
}
