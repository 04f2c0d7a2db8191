package models

import "time"

// Ticket represents a simple customer-care ticket raised by a user
type Ticket struct {
	TicketID    string    `json:"ticket_id" db:"ticket_id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Subject     string    `json:"subject" db:"subject"`
	Description string    `json:"description" db:"description"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TicketUserInfo is the user projection embedded in ticket responses
type TicketUserInfo struct {
	UserID       string `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	ContactPhone string `json:"contact_phone"`
}

// TicketResponse is a ticket joined with the raising user
type TicketResponse struct {
	TicketID    string    `json:"ticket_id"`
	UserID      string    `json:"user_id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User TicketUserInfo `json:"user"`
}

// CreateTicketRequest represents the ticket-creation payload
type CreateTicketRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status"`
}

// UpdateTicketRequest represents the ticket-update payload
type UpdateTicketRequest struct {
	Subject     *string `json:"subject,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}
