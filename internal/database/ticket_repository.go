package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// TicketRepository handles customer-care ticket database operations
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `ticket_id, user_id, subject, description, status, created_at, updated_at`

type ticketRow struct {
	TicketID    string    `db:"ticket_id"`
	UserID      string    `db:"user_id"`
	Subject     string    `db:"subject"`
	Description string    `db:"description"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`

	UserFirstName    string `db:"user_first_name"`
	UserLastName     string `db:"user_last_name"`
	UserEmail        string `db:"user_email"`
	UserContactPhone string `db:"user_contact_phone"`
}

const ticketJoinedQuery = `
	SELECT
		t.ticket_id, t.user_id, t.subject, t.description, t.status, t.created_at, t.updated_at,
		u.first_name AS user_first_name,
		u.last_name AS user_last_name,
		u.email AS user_email,
		u.contact_phone AS user_contact_phone
	FROM tickets t
	JOIN users u ON u.user_id = t.user_id`

func (row *ticketRow) toResponse() models.TicketResponse {
	return models.TicketResponse{
		TicketID:    row.TicketID,
		UserID:      row.UserID,
		Subject:     row.Subject,
		Description: row.Description,
		Status:      row.Status,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		User: models.TicketUserInfo{
			UserID:       row.UserID,
			FirstName:    row.UserFirstName,
			LastName:     row.UserLastName,
			Email:        row.UserEmail,
			ContactPhone: row.UserContactPhone,
		},
	}
}

// Create inserts a new ticket
func (r *TicketRepository) Create(req *models.CreateTicketRequest) (*models.Ticket, error) {
	status := req.Status
	if status == "" {
		status = "open"
	}

	query := `
		INSERT INTO tickets (ticket_id, user_id, subject, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + ticketColumns

	var ticket models.Ticket
	err := r.db.Get(&ticket, query, uuid.New().String(), req.UserID, req.Subject, req.Description, status)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", TranslateError(err))
	}

	return &ticket, nil
}

// GetAll returns all tickets joined with the raising user
func (r *TicketRepository) GetAll() ([]models.TicketResponse, error) {
	var rows []ticketRow
	query := ticketJoinedQuery + ` ORDER BY t.created_at DESC`

	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch tickets: %w", err)
	}

	tickets := make([]models.TicketResponse, 0, len(rows))
	for i := range rows {
		tickets = append(tickets, rows[i].toResponse())
	}

	return tickets, nil
}

// GetByID returns one ticket joined with the raising user
func (r *TicketRepository) GetByID(ticketID string) (*models.TicketResponse, error) {
	var row ticketRow
	query := ticketJoinedQuery + ` WHERE t.ticket_id = $1`

	if err := r.db.Get(&row, query, ticketID); err != nil {
		return nil, err
	}

	ticket := row.toResponse()
	return &ticket, nil
}

// GetByUserID returns all tickets raised by one user
func (r *TicketRepository) GetByUserID(userID string) ([]models.TicketResponse, error) {
	var rows []ticketRow
	query := ticketJoinedQuery + ` WHERE t.user_id = $1 ORDER BY t.created_at DESC`

	if err := r.db.Select(&rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch user tickets: %w", err)
	}

	tickets := make([]models.TicketResponse, 0, len(rows))
	for i := range rows {
		tickets = append(tickets, rows[i].toResponse())
	}

	return tickets, nil
}

// Update applies a partial update and returns the updated row
func (r *TicketRepository) Update(ticketID string, req *models.UpdateTicketRequest) (*models.Ticket, error) {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.Subject != nil {
		updates = append(updates, fmt.Sprintf("subject = $%d", argCount))
		args = append(args, *req.Subject)
		argCount++
	}
	if req.Description != nil {
		updates = append(updates, fmt.Sprintf("description = $%d", argCount))
		args = append(args, *req.Description)
		argCount++
	}
	if req.Status != nil {
		updates = append(updates, fmt.Sprintf("status = $%d", argCount))
		args = append(args, *req.Status)
		argCount++
	}

	if len(updates) == 0 {
		var ticket models.Ticket
		query := `SELECT ` + ticketColumns + ` FROM tickets WHERE ticket_id = $1`
		if err := r.db.Get(&ticket, query, ticketID); err != nil {
			return nil, err
		}
		return &ticket, nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, ticketID)

	query := fmt.Sprintf(`UPDATE tickets SET %s WHERE ticket_id = $%d RETURNING `+ticketColumns,
		strings.Join(updates, ", "), argCount)

	var ticket models.Ticket
	if err := r.db.Get(&ticket, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", TranslateError(err))
	}

	return &ticket, nil
}

// Delete removes a ticket by id
func (r *TicketRepository) Delete(ticketID string) error {
	result, err := r.db.Exec(`DELETE FROM tickets WHERE ticket_id = $1`, ticketID)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("ticket not found")
	}

	return nil
}
