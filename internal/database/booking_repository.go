package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// BookingRepository handles booking database operations
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `booking_id, user_id, vehicle_id, location_id, booking_date, return_date, total_amount, booking_status, created_at, updated_at`

// bookingRow is the flattened shape of a booking joined with user,
// vehicle, spec and location.
type bookingRow struct {
	BookingID     string    `db:"booking_id"`
	UserID        string    `db:"user_id"`
	VehicleID     string    `db:"vehicle_id"`
	LocationID    string    `db:"location_id"`
	BookingDate   time.Time `db:"booking_date"`
	ReturnDate    time.Time `db:"return_date"`
	TotalAmount   float64   `db:"total_amount"`
	BookingStatus string    `db:"booking_status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	UserFirstName    string `db:"user_first_name"`
	UserLastName     string `db:"user_last_name"`
	UserEmail        string `db:"user_email"`
	UserContactPhone string `db:"user_contact_phone"`

	VehicleRentalRate   float64 `db:"vehicle_rental_rate"`
	VehicleAvailability bool    `db:"vehicle_availability"`

	SpecID              string `db:"spec_id"`
	SpecManufacturer    string `db:"spec_manufacturer"`
	SpecModel           string `db:"spec_model"`
	SpecYear            int    `db:"spec_year"`
	SpecFuelType        string `db:"spec_fuel_type"`
	SpecEngineCapacity  string `db:"spec_engine_capacity"`
	SpecTransmission    string `db:"spec_transmission"`
	SpecSeatingCapacity int    `db:"spec_seating_capacity"`
	SpecColor           string `db:"spec_color"`
	SpecFeatures        string `db:"spec_features"`

	LocationName    string    `db:"location_name"`
	LocationAddress string    `db:"location_address"`
	LocationCity    string    `db:"location_city"`
	LocationCountry string    `db:"location_country"`
	LocationCreated time.Time `db:"location_created_at"`
}

const bookingJoinedQuery = `
	SELECT
		b.booking_id, b.user_id, b.vehicle_id, b.location_id, b.booking_date, b.return_date,
		b.total_amount, b.booking_status, b.created_at, b.updated_at,
		u.first_name AS user_first_name,
		u.last_name AS user_last_name,
		u.email AS user_email,
		u.contact_phone AS user_contact_phone,
		v.rental_rate AS vehicle_rental_rate,
		v.availability AS vehicle_availability,
		vs.vehicle_spec_id AS spec_id,
		vs.manufacturer AS spec_manufacturer,
		vs.model AS spec_model,
		vs.year AS spec_year,
		vs.fuel_type AS spec_fuel_type,
		vs.engine_capacity AS spec_engine_capacity,
		vs.transmission AS spec_transmission,
		vs.seating_capacity AS spec_seating_capacity,
		vs.color AS spec_color,
		vs.features AS spec_features,
		l.name AS location_name,
		l.address AS location_address,
		l.city AS location_city,
		l.country AS location_country,
		l.created_at AS location_created_at
	FROM bookings b
	JOIN users u ON u.user_id = b.user_id
	JOIN vehicles v ON v.vehicle_id = b.vehicle_id
	JOIN vehicle_specifications vs ON vs.vehicle_spec_id = v.vehicle_spec_id
	JOIN locations l ON l.location_id = b.location_id`

func (row *bookingRow) toResponse() models.BookingResponse {
	return models.BookingResponse{
		BookingID:     row.BookingID,
		UserID:        row.UserID,
		VehicleID:     row.VehicleID,
		LocationID:    row.LocationID,
		BookingDate:   row.BookingDate,
		ReturnDate:    row.ReturnDate,
		TotalAmount:   row.TotalAmount,
		BookingStatus: models.BookingStatus(row.BookingStatus),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		User: models.BookingUserInfo{
			UserID:       row.UserID,
			FirstName:    row.UserFirstName,
			LastName:     row.UserLastName,
			Email:        row.UserEmail,
			ContactPhone: row.UserContactPhone,
		},
		Vehicle: models.BookingVehicleInfo{
			VehicleID:    row.VehicleID,
			RentalRate:   row.VehicleRentalRate,
			Availability: row.VehicleAvailability,
			VehicleSpec: models.VehicleSpec{
				VehicleSpecID:   row.SpecID,
				Manufacturer:    row.SpecManufacturer,
				Model:           row.SpecModel,
				Year:            row.SpecYear,
				FuelType:        row.SpecFuelType,
				EngineCapacity:  row.SpecEngineCapacity,
				Transmission:    row.SpecTransmission,
				SeatingCapacity: row.SpecSeatingCapacity,
				Color:           row.SpecColor,
				Features:        row.SpecFeatures,
			},
		},
		Location: models.Location{
			LocationID: row.LocationID,
			Name:       row.LocationName,
			Address:    row.LocationAddress,
			City:       row.LocationCity,
			Country:    row.LocationCountry,
			CreatedAt:  row.LocationCreated,
		},
	}
}

// Create inserts a new booking
func (r *BookingRepository) Create(req *models.CreateBookingRequest) (*models.Booking, error) {
	status := string(models.BookingStatusPending)
	if req.BookingStatus != nil {
		status = *req.BookingStatus
	}

	query := `
		INSERT INTO bookings (booking_id, user_id, vehicle_id, location_id, booking_date, return_date, total_amount, booking_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + bookingColumns

	var booking models.Booking
	err := r.db.Get(&booking, query,
		uuid.New().String(), req.UserID, req.VehicleID, req.LocationID,
		req.BookingDate, req.ReturnDate, req.TotalAmount, status)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", TranslateError(err))
	}

	return &booking, nil
}

// InsertTx inserts a booking inside a transaction. Used by the payment
// confirmation workflow so the booking and payment commit together.
func (r *BookingRepository) InsertTx(tx *sqlx.Tx, booking *models.Booking) error {
	query := `
		INSERT INTO bookings (booking_id, user_id, vehicle_id, location_id, booking_date, return_date, total_amount, booking_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(query,
		booking.BookingID, booking.UserID, booking.VehicleID, booking.LocationID,
		booking.BookingDate, booking.ReturnDate, booking.TotalAmount, booking.BookingStatus)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", TranslateError(err))
	}

	return nil
}

// GetAll returns all bookings joined with related entities
func (r *BookingRepository) GetAll() ([]models.BookingResponse, error) {
	var rows []bookingRow
	query := bookingJoinedQuery + ` ORDER BY b.created_at DESC`

	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	bookings := make([]models.BookingResponse, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, rows[i].toResponse())
	}

	return bookings, nil
}

// GetByID returns one booking joined with related entities
func (r *BookingRepository) GetByID(bookingID string) (*models.BookingResponse, error) {
	var row bookingRow
	query := bookingJoinedQuery + ` WHERE b.booking_id = $1`

	if err := r.db.Get(&row, query, bookingID); err != nil {
		return nil, err
	}

	booking := row.toResponse()
	return &booking, nil
}

// GetByUserID returns all bookings belonging to one user
func (r *BookingRepository) GetByUserID(userID string) ([]models.BookingResponse, error) {
	var rows []bookingRow
	query := bookingJoinedQuery + ` WHERE b.user_id = $1 ORDER BY b.created_at DESC`

	if err := r.db.Select(&rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to fetch user bookings: %w", err)
	}

	bookings := make([]models.BookingResponse, 0, len(rows))
	for i := range rows {
		bookings = append(bookings, rows[i].toResponse())
	}

	return bookings, nil
}

// Update applies a partial update and returns the updated row
func (r *BookingRepository) Update(bookingID string, req *models.UpdateBookingRequest) (*models.Booking, error) {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.VehicleID != nil {
		updates = append(updates, fmt.Sprintf("vehicle_id = $%d", argCount))
		args = append(args, *req.VehicleID)
		argCount++
	}
	if req.LocationID != nil {
		updates = append(updates, fmt.Sprintf("location_id = $%d", argCount))
		args = append(args, *req.LocationID)
		argCount++
	}
	if req.BookingDate != nil {
		updates = append(updates, fmt.Sprintf("booking_date = $%d", argCount))
		args = append(args, *req.BookingDate)
		argCount++
	}
	if req.ReturnDate != nil {
		updates = append(updates, fmt.Sprintf("return_date = $%d", argCount))
		args = append(args, *req.ReturnDate)
		argCount++
	}
	if req.TotalAmount != nil {
		updates = append(updates, fmt.Sprintf("total_amount = $%d", argCount))
		args = append(args, *req.TotalAmount)
		argCount++
	}
	if req.BookingStatus != nil {
		updates = append(updates, fmt.Sprintf("booking_status = $%d", argCount))
		args = append(args, *req.BookingStatus)
		argCount++
	}

	if len(updates) == 0 {
		var booking models.Booking
		query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_id = $1`
		if err := r.db.Get(&booking, query, bookingID); err != nil {
			return nil, err
		}
		return &booking, nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, bookingID)

	query := fmt.Sprintf(`UPDATE bookings SET %s WHERE booking_id = $%d RETURNING `+bookingColumns,
		strings.Join(updates, ", "), argCount)

	var booking models.Booking
	if err := r.db.Get(&booking, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", TranslateError(err))
	}

	return &booking, nil
}

// Delete removes a booking by id
func (r *BookingRepository) Delete(bookingID string) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE booking_id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("booking not found")
	}

	return nil
}

// CompletePastDue marks confirmed or active bookings whose return date
// has passed as completed. Returns the number of bookings updated.
func (r *BookingRepository) CompletePastDue() (int64, error) {
	query := `
		UPDATE bookings
		SET booking_status = $1, updated_at = NOW()
		WHERE booking_status IN ($2, $3) AND return_date < NOW()`

	result, err := r.db.Exec(query,
		models.BookingStatusCompleted, models.BookingStatusConfirmed, models.BookingStatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to complete past-due bookings: %w", err)
	}

	return result.RowsAffected()
}

// CancelStalePending cancels pending bookings older than the given age.
// Returns the number of bookings updated.
func (r *BookingRepository) CancelStalePending(olderThan time.Duration) (int64, error) {
	query := `
		UPDATE bookings
		SET booking_status = $1, updated_at = NOW()
		WHERE booking_status = $2 AND created_at < NOW() - ($3 * INTERVAL '1 minute')`

	result, err := r.db.Exec(query,
		models.BookingStatusCancelled, models.BookingStatusPending, int(olderThan.Minutes()))
	if err != nil {
		return 0, fmt.Errorf("failed to cancel stale pending bookings: %w", err)
	}

	return result.RowsAffected()
}
