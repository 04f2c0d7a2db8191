package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// VehicleRepository handles vehicle database operations
type VehicleRepository struct {
	db *sqlx.DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `vehicle_id, vehicle_spec_id, location_id, rental_rate, availability, created_at, updated_at`

// vehicleRow is the flattened shape of a vehicle joined with its
// specification and location.
type vehicleRow struct {
	VehicleID     string    `db:"vehicle_id"`
	VehicleSpecID string    `db:"vehicle_spec_id"`
	RentalRate    float64   `db:"rental_rate"`
	Availability  bool      `db:"availability"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`

	SpecManufacturer    string `db:"spec_manufacturer"`
	SpecModel           string `db:"spec_model"`
	SpecYear            int    `db:"spec_year"`
	SpecFuelType        string `db:"spec_fuel_type"`
	SpecEngineCapacity  string `db:"spec_engine_capacity"`
	SpecTransmission    string `db:"spec_transmission"`
	SpecSeatingCapacity int    `db:"spec_seating_capacity"`
	SpecColor           string `db:"spec_color"`
	SpecFeatures        string `db:"spec_features"`

	LocationID      string    `db:"location_id"`
	LocationName    string    `db:"location_name"`
	LocationAddress string    `db:"location_address"`
	LocationCity    string    `db:"location_city"`
	LocationCountry string    `db:"location_country"`
	LocationCreated time.Time `db:"location_created_at"`
}

const vehicleJoinedQuery = `
	SELECT
		v.vehicle_id, v.vehicle_spec_id, v.rental_rate, v.availability, v.created_at, v.updated_at,
		vs.manufacturer AS spec_manufacturer,
		vs.model AS spec_model,
		vs.year AS spec_year,
		vs.fuel_type AS spec_fuel_type,
		vs.engine_capacity AS spec_engine_capacity,
		vs.transmission AS spec_transmission,
		vs.seating_capacity AS spec_seating_capacity,
		vs.color AS spec_color,
		vs.features AS spec_features,
		l.location_id,
		l.name AS location_name,
		l.address AS location_address,
		l.city AS location_city,
		l.country AS location_country,
		l.created_at AS location_created_at
	FROM vehicles v
	JOIN vehicle_specifications vs ON vs.vehicle_spec_id = v.vehicle_spec_id
	JOIN locations l ON l.location_id = v.location_id`

func (row *vehicleRow) toResponse() models.VehicleResponse {
	return models.VehicleResponse{
		VehicleID:     row.VehicleID,
		VehicleSpecID: row.VehicleSpecID,
		RentalRate:    row.RentalRate,
		Availability:  row.Availability,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		VehicleSpec: models.VehicleSpec{
			VehicleSpecID:   row.VehicleSpecID,
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

// Create inserts a new vehicle
func (r *VehicleRepository) Create(req *models.CreateVehicleRequest) (*models.Vehicle, error) {
	availability := true
	if req.Availability != nil {
		availability = *req.Availability
	}

	query := `
		INSERT INTO vehicles (vehicle_id, vehicle_spec_id, location_id, rental_rate, availability)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + vehicleColumns

	var vehicle models.Vehicle
	err := r.db.Get(&vehicle, query, uuid.New().String(), req.VehicleSpecID, req.LocationID, req.RentalRate, availability)
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", TranslateError(err))
	}

	return &vehicle, nil
}

// GetAll returns all vehicles joined with spec and location
func (r *VehicleRepository) GetAll() ([]models.VehicleResponse, error) {
	var rows []vehicleRow
	query := vehicleJoinedQuery + ` ORDER BY v.created_at DESC`

	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch vehicles: %w", err)
	}

	vehicles := make([]models.VehicleResponse, 0, len(rows))
	for i := range rows {
		vehicles = append(vehicles, rows[i].toResponse())
	}

	return vehicles, nil
}

// GetByID returns one vehicle joined with spec and location
func (r *VehicleRepository) GetByID(vehicleID string) (*models.VehicleResponse, error) {
	var row vehicleRow
	query := vehicleJoinedQuery + ` WHERE v.vehicle_id = $1`

	if err := r.db.Get(&row, query, vehicleID); err != nil {
		return nil, err
	}

	vehicle := row.toResponse()
	return &vehicle, nil
}

// GetAvailable returns all vehicles currently marked available
func (r *VehicleRepository) GetAvailable() ([]models.VehicleResponse, error) {
	var rows []vehicleRow
	query := vehicleJoinedQuery + ` WHERE v.availability = true ORDER BY v.created_at DESC`

	if err := r.db.Select(&rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch available vehicles: %w", err)
	}

	vehicles := make([]models.VehicleResponse, 0, len(rows))
	for i := range rows {
		vehicles = append(vehicles, rows[i].toResponse())
	}

	return vehicles, nil
}

// Update applies a partial update and returns the updated row
func (r *VehicleRepository) Update(vehicleID string, req *models.UpdateVehicleRequest) (*models.Vehicle, error) {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.VehicleSpecID != nil {
		updates = append(updates, fmt.Sprintf("vehicle_spec_id = $%d", argCount))
		args = append(args, *req.VehicleSpecID)
		argCount++
	}
	if req.LocationID != nil {
		updates = append(updates, fmt.Sprintf("location_id = $%d", argCount))
		args = append(args, *req.LocationID)
		argCount++
	}
	if req.RentalRate != nil {
		updates = append(updates, fmt.Sprintf("rental_rate = $%d", argCount))
		args = append(args, *req.RentalRate)
		argCount++
	}
	if req.Availability != nil {
		updates = append(updates, fmt.Sprintf("availability = $%d", argCount))
		args = append(args, *req.Availability)
		argCount++
	}

	if len(updates) == 0 {
		var vehicle models.Vehicle
		query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE vehicle_id = $1`
		if err := r.db.Get(&vehicle, query, vehicleID); err != nil {
			return nil, err
		}
		return &vehicle, nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, vehicleID)

	query := fmt.Sprintf(`UPDATE vehicles SET %s WHERE vehicle_id = $%d RETURNING `+vehicleColumns,
		strings.Join(updates, ", "), argCount)

	var vehicle models.Vehicle
	if err := r.db.Get(&vehicle, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", TranslateError(err))
	}

	return &vehicle, nil
}

// SetAvailabilityTx flips a vehicle's availability inside a transaction
func (r *VehicleRepository) SetAvailabilityTx(tx *sqlx.Tx, vehicleID string, available bool) error {
	result, err := tx.Exec(`UPDATE vehicles SET availability = $1, updated_at = NOW() WHERE vehicle_id = $2`, available, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to update vehicle availability: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("vehicle not found")
	}

	return nil
}

// Delete removes a vehicle by id
func (r *VehicleRepository) Delete(vehicleID string) error {
	result, err := r.db.Exec(`DELETE FROM vehicles WHERE vehicle_id = $1`, vehicleID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("vehicle not found")
	}

	return nil
}
