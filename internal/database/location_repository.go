package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// LocationRepository handles rental location database operations
type LocationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

const locationColumns = `location_id, name, address, city, country, created_at`

// Create inserts a new location
func (r *LocationRepository) Create(req *models.CreateLocationRequest) (*models.Location, error) {
	query := `
		INSERT INTO locations (location_id, name, address, city, country)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + locationColumns

	var loc models.Location
	err := r.db.Get(&loc, query, uuid.New().String(), req.Name, req.Address, req.City, req.Country)
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", TranslateError(err))
	}

	return &loc, nil
}

// GetAll returns all locations
func (r *LocationRepository) GetAll() ([]models.Location, error) {
	var locations []models.Location
	query := `SELECT ` + locationColumns + ` FROM locations ORDER BY created_at DESC`

	if err := r.db.Select(&locations, query); err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	return locations, nil
}

// GetByID returns a single location by id
func (r *LocationRepository) GetByID(locationID string) (*models.Location, error) {
	var loc models.Location
	query := `SELECT ` + locationColumns + ` FROM locations WHERE location_id = $1`

	if err := r.db.Get(&loc, query, locationID); err != nil {
		return nil, err
	}

	return &loc, nil
}

// Update applies a partial update and returns the updated row
func (r *LocationRepository) Update(locationID string, req *models.UpdateLocationRequest) (*models.Location, error) {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.Name != nil {
		updates = append(updates, fmt.Sprintf("name = $%d", argCount))
		args = append(args, *req.Name)
		argCount++
	}
	if req.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *req.Address)
		argCount++
	}
	if req.City != nil {
		updates = append(updates, fmt.Sprintf("city = $%d", argCount))
		args = append(args, *req.City)
		argCount++
	}
	if req.Country != nil {
		updates = append(updates, fmt.Sprintf("country = $%d", argCount))
		args = append(args, *req.Country)
		argCount++
	}

	if len(updates) == 0 {
		return r.GetByID(locationID)
	}

	args = append(args, locationID)

	query := fmt.Sprintf(`UPDATE locations SET %s WHERE location_id = $%d RETURNING `+locationColumns,
		strings.Join(updates, ", "), argCount)

	var loc models.Location
	if err := r.db.Get(&loc, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", TranslateError(err))
	}

	return &loc, nil
}

// Delete removes a location by id
func (r *LocationRepository) Delete(locationID string) error {
	result, err := r.db.Exec(`DELETE FROM locations WHERE location_id = $1`, locationID)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("location not found")
	}

	return nil
}

// FirstIDTx returns the id of any existing location inside a transaction.
// sql.ErrNoRows passes through when the table is empty.
func (r *LocationRepository) FirstIDTx(tx *sqlx.Tx) (string, error) {
	var locationID string
	err := tx.Get(&locationID, `SELECT location_id FROM locations ORDER BY created_at ASC LIMIT 1`)
	if err != nil {
		return "", err
	}
	return locationID, nil
}

// InsertDefaultTx inserts the synthetic fallback location inside a
// transaction and returns its id. Used only when no location exists to
// satisfy the booking's mandatory location reference.
func (r *LocationRepository) InsertDefaultTx(tx *sqlx.Tx) (string, error) {
	locationID := uuid.New().String()
	query := `
		INSERT INTO locations (location_id, name, address, city, country)
		VALUES ($1, 'Main Branch', 'Head Office', 'Colombo', 'LK')`

	if _, err := tx.Exec(query, locationID); err != nil {
		return "", fmt.Errorf("failed to create default location: %w", TranslateError(err))
	}

	return locationID, nil
}
