package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// PaymentRepository handles payment database operations
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

const paymentColumns = `payment_id, booking_id, amount, payment_status, payment_date, payment_method, transaction_id, provider_payment_id, metadata, created_at, updated_at`

// paymentRow is the flattened shape of a payment joined with its booking
// and the booking's user.
type paymentRow struct {
	PaymentID     string    `db:"payment_id"`
	BookingID     string    `db:"booking_id"`
	Amount        float64   `db:"amount"`
	PaymentStatus string    `db:"payment_status"`
	PaymentDate   time.Time `db:"payment_date"`
	PaymentMethod string    `db:"payment_method"`
	TransactionID string    `db:"transaction_id"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	BookingUserID      string  `db:"booking_user_id"`
	BookingVehicleID   string  `db:"booking_vehicle_id"`
	BookingTotalAmount float64 `db:"booking_total_amount"`
	BookingStatus      string  `db:"booking_status"`

	UserFirstName string `db:"user_first_name"`
	UserLastName  string `db:"user_last_name"`
	UserEmail     string `db:"user_email"`
}

const paymentJoinedQuery = `
	SELECT
		p.payment_id, p.booking_id, p.amount, p.payment_status, p.payment_date,
		p.payment_method, p.transaction_id, p.created_at, p.updated_at,
		b.user_id AS booking_user_id,
		b.vehicle_id AS booking_vehicle_id,
		b.total_amount AS booking_total_amount,
		b.booking_status,
		u.first_name AS user_first_name,
		u.last_name AS user_last_name,
		u.email AS user_email
	FROM payments p
	JOIN bookings b ON b.booking_id = p.booking_id
	JOIN users u ON u.user_id = b.user_id`

func (row *paymentRow) toResponse() models.PaymentResponse {
	return models.PaymentResponse{
		PaymentID:     row.PaymentID,
		BookingID:     row.BookingID,
		Amount:        row.Amount,
		PaymentStatus: row.PaymentStatus,
		PaymentDate:   row.PaymentDate,
		PaymentMethod: row.PaymentMethod,
		TransactionID: row.TransactionID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		Booking: models.PaymentBookingInfo{
			BookingID:     row.BookingID,
			UserID:        row.BookingUserID,
			VehicleID:     row.BookingVehicleID,
			TotalAmount:   row.BookingTotalAmount,
			BookingStatus: models.BookingStatus(row.BookingStatus),
		},
		User: models.PaymentUserInfo{
			UserID:    row.BookingUserID,
			FirstName: row.UserFirstName,
			LastName:  row.UserLastName,
			Email:     row.UserEmail,
		},
	}
}

// Create inserts a new payment
func (r *PaymentRepository) Create(req *models.CreatePaymentRequest) (*models.Payment, error) {
	query := `
		INSERT INTO payments (payment_id, booking_id, amount, payment_status, payment_date, payment_method, transaction_id)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6)
		RETURNING ` + paymentColumns

	var payment models.Payment
	err := r.db.Get(&payment, query,
		uuid.New().String(), req.BookingID, req.Amount, req.PaymentStatus, req.PaymentMethod, req.TransactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", TranslateError(err))
	}

	return &payment, nil
}

// InsertTx inserts a payment inside a transaction. The unique index on
// provider_payment_id makes repeated confirmations of the same intent
// fail here with a duplicate error.
func (r *PaymentRepository) InsertTx(tx *sqlx.Tx, payment *models.Payment) error {
	query := `
		INSERT INTO payments (payment_id, booking_id, amount, payment_status, payment_date, payment_method, transaction_id, provider_payment_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(query,
		payment.PaymentID, payment.BookingID, payment.Amount, payment.PaymentStatus,
		payment.PaymentDate, payment.PaymentMethod, payment.TransactionID,
		payment.ProviderPaymentID, payment.Metadata)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", TranslateError(err))
	}

	return nil
}

// GetAll returns all payments joined with booking and user
func (r *PaymentRepository) GetAll() ([]models.PaymentResponse, error) {
	var rows []paymentRow
	query := paymentJoinedQuery + ` ORDER BY p.created_at DESC`

	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch payments: %w", err)
	}

	payments := make([]models.PaymentResponse, 0, len(rows))
	for i := range rows {
		payments = append(payments, rows[i].toResponse())
	}

	return payments, nil
}

// GetByID returns one payment joined with booking and user
func (r *PaymentRepository) GetByID(paymentID string) (*models.PaymentResponse, error) {
	var row paymentRow
	query := paymentJoinedQuery + ` WHERE p.payment_id = $1`

	if err := r.db.Get(&row, query, paymentID); err != nil {
		return nil, err
	}

	payment := row.toResponse()
	return &payment, nil
}

// GetByBookingID returns the payments recorded against a booking
func (r *PaymentRepository) GetByBookingID(bookingID string) ([]models.PaymentResponse, error) {
	var rows []paymentRow
	query := paymentJoinedQuery + ` WHERE p.booking_id = $1 ORDER BY p.created_at DESC`

	if err := r.db.Select(&rows, query, bookingID); err != nil {
		return nil, fmt.Errorf("failed to fetch booking payments: %w", err)
	}

	payments := make([]models.PaymentResponse, 0, len(rows))
	for i := range rows {
		payments = append(payments, rows[i].toResponse())
	}

	return payments, nil
}

// Update applies a partial update and returns the updated row
func (r *PaymentRepository) Update(paymentID string, req *models.UpdatePaymentRequest) (*models.Payment, error) {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.BookingID != nil {
		updates = append(updates, fmt.Sprintf("booking_id = $%d", argCount))
		args = append(args, *req.BookingID)
		argCount++
	}
	if req.Amount != nil {
		updates = append(updates, fmt.Sprintf("amount = $%d", argCount))
		args = append(args, *req.Amount)
		argCount++
	}
	if req.PaymentStatus != nil {
		updates = append(updates, fmt.Sprintf("payment_status = $%d", argCount))
		args = append(args, *req.PaymentStatus)
		argCount++
	}
	if req.PaymentMethod != nil {
		updates = append(updates, fmt.Sprintf("payment_method = $%d", argCount))
		args = append(args, *req.PaymentMethod)
		argCount++
	}
	if req.TransactionID != nil {
		updates = append(updates, fmt.Sprintf("transaction_id = $%d", argCount))
		args = append(args, *req.TransactionID)
		argCount++
	}

	if len(updates) == 0 {
		var payment models.Payment
		query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1`
		if err := r.db.Get(&payment, query, paymentID); err != nil {
			return nil, err
		}
		return &payment, nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, paymentID)

	query := fmt.Sprintf(`UPDATE payments SET %s WHERE payment_id = $%d RETURNING `+paymentColumns,
		strings.Join(updates, ", "), argCount)

	var payment models.Payment
	if err := r.db.Get(&payment, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", TranslateError(err))
	}

	return &payment, nil
}

// Delete removes a payment by id
func (r *PaymentRepository) Delete(paymentID string) error {
	result, err := r.db.Exec(`DELETE FROM payments WHERE payment_id = $1`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("payment not found")
	}

	return nil
}
