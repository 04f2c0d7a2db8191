package models

import "time"

// SupportTicketStatus values used by the support desk
const (
	SupportStatusOpen       = "open"
	SupportStatusInProgress = "in_progress"
	SupportStatusResolved   = "resolved"
	SupportStatusClosed     = "closed"
)

// SupportTicket represents a support-desk ticket, which may be raised by
// a walk-in customer without an account (customer_id is optional)
type SupportTicket struct {
	TicketID        int        `json:"ticket_id" db:"ticket_id"`
	TicketReference string     `json:"ticket_reference" db:"ticket_reference"`
	CustomerID      *string    `json:"customer_id,omitempty" db:"customer_id"`
	CustomerName    string     `json:"customer_name" db:"customer_name"`
	CustomerEmail   string     `json:"customer_email" db:"customer_email"`
	Phone           *string    `json:"phone,omitempty" db:"phone"`
	Subject         string     `json:"subject" db:"subject"`
	Description     string     `json:"description" db:"description"`
	Status          string     `json:"status" db:"status"`
	Priority        string     `json:"priority" db:"priority"`
	Category        string     `json:"category" db:"category"`
	AssignedTo      *string    `json:"assigned_to,omitempty" db:"assigned_to"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty" db:"resolved_at"`
}

// TicketReply represents a reply on a support ticket thread
type TicketReply struct {
	ReplyID   int       `json:"reply_id" db:"reply_id"`
	TicketID  int       `json:"ticket_id" db:"ticket_id"`
	Message   string    `json:"message" db:"message"`
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SupportStats aggregates support-desk counters for the admin dashboard
type SupportStats struct {
	TotalTickets        int            `json:"total_tickets"`
	OpenTickets         int            `json:"open_tickets"`
	ResolvedTickets     int            `json:"resolved_tickets"`
	UrgentTickets       int            `json:"urgent_tickets"`
	AvgResponseHours    float64        `json:"average_response_time"`
	TicketsByCategory   map[string]int `json:"tickets_by_category"`
	TicketsByPriority   map[string]int `json:"tickets_by_priority"`
}

// CreateSupportTicketRequest represents the support-ticket creation payload
type CreateSupportTicketRequest struct {
	CustomerID    *string `json:"customer_id,omitempty"`
	CustomerName  string  `json:"customer_name" binding:"required"`
	CustomerEmail string  `json:"customer_email" binding:"required,email"`
	Phone         *string `json:"phone,omitempty"`
	Subject       string  `json:"subject" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Priority      string  `json:"priority" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Status        *string `json:"status,omitempty"`
}

// AddTicketReplyRequest represents the reply-creation payload
type AddTicketReplyRequest struct {
	Message   string `json:"message" binding:"required"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedBy string `json:"created_by" binding:"required"`
}
