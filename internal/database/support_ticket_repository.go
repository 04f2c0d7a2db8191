package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// SupportTicketRepository handles support-desk ticket database operations
type SupportTicketRepository struct {
	db *sqlx.DB
}

// NewSupportTicketRepository creates a new SupportTicketRepository
func NewSupportTicketRepository(db *sqlx.DB) *SupportTicketRepository {
	return &SupportTicketRepository{db: db}
}

const supportTicketColumns = `ticket_id, ticket_reference, customer_id, customer_name, customer_email, phone, subject, description, status, priority, category, assigned_to, created_at, updated_at, resolved_at`

// generateTicketReference builds a human-readable reference like
// TKT-20260830-4821 for quoting over the phone.
func generateTicketReference() string {
	return fmt.Sprintf("TKT-%s-%04d", time.Now().Format("20060102"), rand.Intn(10000))
}

// Create inserts a new support ticket with a generated reference
func (r *SupportTicketRepository) Create(req *models.CreateSupportTicketRequest) (*models.SupportTicket, error) {
	status := models.SupportStatusOpen
	if req.Status != nil {
		status = *req.Status
	}

	query := `
		INSERT INTO support_tickets (ticket_reference, customer_id, customer_name, customer_email, phone, subject, description, status, priority, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + supportTicketColumns

	var ticket models.SupportTicket
	err := r.db.Get(&ticket, query,
		generateTicketReference(), req.CustomerID, req.CustomerName, req.CustomerEmail,
		req.Phone, req.Subject, req.Description, status, req.Priority, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to create support ticket: %w", TranslateError(err))
	}

	return &ticket, nil
}

// GetAll returns support tickets, optionally filtered by status and priority
func (r *SupportTicketRepository) GetAll(status, priority string) ([]models.SupportTicket, error) {
	query := `SELECT ` + supportTicketColumns + ` FROM support_tickets WHERE 1=1`
	args := []interface{}{}
	argCount := 1

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, status)
		argCount++
	}
	if priority != "" {
		query += fmt.Sprintf(" AND priority = $%d", argCount)
		args = append(args, priority)
		argCount++
	}

	query += " ORDER BY created_at DESC"

	var tickets []models.SupportTicket
	if err := r.db.Select(&tickets, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch support tickets: %w", err)
	}

	return tickets, nil
}

// GetByID returns one support ticket by its numeric id
func (r *SupportTicketRepository) GetByID(ticketID int) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	query := `SELECT ` + supportTicketColumns + ` FROM support_tickets WHERE ticket_id = $1`

	if err := r.db.Get(&ticket, query, ticketID); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// GetByReference returns one support ticket by its human-readable reference
func (r *SupportTicketRepository) GetByReference(reference string) (*models.SupportTicket, error) {
	var ticket models.SupportTicket
	query := `SELECT ` + supportTicketColumns + ` FROM support_tickets WHERE ticket_reference = $1`

	if err := r.db.Get(&ticket, query, reference); err != nil {
		return nil, err
	}

	return &ticket, nil
}

// GetByCustomerID returns all support tickets raised by a registered customer
func (r *SupportTicketRepository) GetByCustomerID(customerID string) ([]models.SupportTicket, error) {
	var tickets []models.SupportTicket
	query := `SELECT ` + supportTicketColumns + ` FROM support_tickets WHERE customer_id = $1 ORDER BY created_at DESC`

	if err := r.db.Select(&tickets, query, customerID); err != nil {
		return nil, fmt.Errorf("failed to fetch customer support tickets: %w", err)
	}

	return tickets, nil
}

// Search matches the term against reference, customer name, email and subject
func (r *SupportTicketRepository) Search(term string) ([]models.SupportTicket, error) {
	query := `
		SELECT ` + supportTicketColumns + `
		FROM support_tickets
		WHERE ticket_reference ILIKE $1
		   OR customer_name ILIKE $1
		   OR customer_email ILIKE $1
		   OR subject ILIKE $1
		ORDER BY created_at DESC`

	var tickets []models.SupportTicket
	if err := r.db.Select(&tickets, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("failed to search support tickets: %w", err)
	}

	return tickets, nil
}

// UpdateStatus moves a ticket to a new status. Entering resolved stamps
// resolved_at; leaving it clears the stamp so a reopened ticket counts
// as unresolved again.
func (r *SupportTicketRepository) UpdateStatus(ticketID int, status string) (*models.SupportTicket, error) {
	query := `
		UPDATE support_tickets
		SET status = $1,
		    resolved_at = CASE WHEN $1 = 'resolved' THEN NOW() ELSE NULL END,
		    updated_at = NOW()
		WHERE ticket_id = $2
		RETURNING ` + supportTicketColumns

	var ticket models.SupportTicket
	if err := r.db.Get(&ticket, query, status, ticketID); err != nil {
		return nil, fmt.Errorf("failed to update support ticket status: %w", TranslateError(err))
	}

	return &ticket, nil
}

// Assign sets the staff member responsible for a ticket
func (r *SupportTicketRepository) Assign(ticketID int, assignee string) (*models.SupportTicket, error) {
	query := `
		UPDATE support_tickets
		SET assigned_to = $1, status = $2, updated_at = NOW()
		WHERE ticket_id = $3
		RETURNING ` + supportTicketColumns

	var ticket models.SupportTicket
	if err := r.db.Get(&ticket, query, assignee, models.SupportStatusInProgress, ticketID); err != nil {
		return nil, fmt.Errorf("failed to assign support ticket: %w", TranslateError(err))
	}

	return &ticket, nil
}

// AddReply appends a reply to a ticket thread
func (r *SupportTicketRepository) AddReply(ticketID int, req *models.AddTicketReplyRequest) (*models.TicketReply, error) {
	query := `
		INSERT INTO ticket_replies (ticket_id, message, is_admin, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING reply_id, ticket_id, message, is_admin, created_by, created_at`

	var reply models.TicketReply
	if err := r.db.Get(&reply, query, ticketID, req.Message, req.IsAdmin, req.CreatedBy); err != nil {
		return nil, fmt.Errorf("failed to add ticket reply: %w", TranslateError(err))
	}

	return &reply, nil
}

// GetReplies returns a ticket's reply thread in chronological order
func (r *SupportTicketRepository) GetReplies(ticketID int) ([]models.TicketReply, error) {
	var replies []models.TicketReply
	query := `SELECT reply_id, ticket_id, message, is_admin, created_by, created_at FROM ticket_replies WHERE ticket_id = $1 ORDER BY created_at ASC`

	if err := r.db.Select(&replies, query, ticketID); err != nil {
		return nil, fmt.Errorf("failed to fetch ticket replies: %w", err)
	}

	return replies, nil
}

// GetStats aggregates support-desk counters for the admin dashboard
func (r *SupportTicketRepository) GetStats() (*models.SupportStats, error) {
	stats := &models.SupportStats{
		TicketsByCategory: map[string]int{},
		TicketsByPriority: map[string]int{},
	}

	counters := struct {
		Total            int     `db:"total"`
		Open             int     `db:"open"`
		Resolved         int     `db:"resolved"`
		Urgent           int     `db:"urgent"`
		AvgResponseHours float64 `db:"avg_response_hours"`
	}{}

	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status IN ('open', 'in_progress')) AS open,
			COUNT(*) FILTER (WHERE status = 'resolved') AS resolved,
			COUNT(*) FILTER (WHERE priority = 'urgent' AND status NOT IN ('resolved', 'closed')) AS urgent,
			COALESCE(AVG(EXTRACT(EPOCH FROM (resolved_at - created_at)) / 3600) FILTER (WHERE resolved_at IS NOT NULL), 0) AS avg_response_hours
		FROM support_tickets`

	if err := r.db.Get(&counters, query); err != nil {
		return nil, fmt.Errorf("failed to fetch support stats: %w", err)
	}

	stats.TotalTickets = counters.Total
	stats.OpenTickets = counters.Open
	stats.ResolvedTickets = counters.Resolved
	stats.UrgentTickets = counters.Urgent
	stats.AvgResponseHours = counters.AvgResponseHours

	type bucket struct {
		Key   string `db:"key"`
		Count int    `db:"count"`
	}

	var byCategory []bucket
	if err := r.db.Select(&byCategory, `SELECT category AS key, COUNT(*) AS count FROM support_tickets GROUP BY category`); err != nil {
		return nil, fmt.Errorf("failed to fetch category stats: %w", err)
	}
	for _, b := range byCategory {
		stats.TicketsByCategory[b.Key] = b.Count
	}

	var byPriority []bucket
	if err := r.db.Select(&byPriority, `SELECT priority AS key, COUNT(*) AS count FROM support_tickets GROUP BY priority`); err != nil {
		return nil, fmt.Errorf("failed to fetch priority stats: %w", err)
	}
	for _, b := range byPriority {
		stats.TicketsByPriority[b.Key] = b.Count
	}

	return stats, nil
}
