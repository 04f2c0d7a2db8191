package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// VehicleSpecRepository handles vehicle specification database operations
type VehicleSpecRepository struct {
	db *sqlx.DB
}

// NewVehicleSpecRepository creates a new VehicleSpecRepository
func NewVehicleSpecRepository(db *sqlx.DB) *VehicleSpecRepository {
	return &VehicleSpecRepository{db: db}
}

const vehicleSpecColumns = `vehicle_spec_id, manufacturer, model, year, fuel_type, engine_capacity, transmission, seating_capacity, color, features`

// Create inserts a new vehicle specification
func (r *VehicleSpecRepository) Create(req *models.CreateVehicleSpecRequest) (*models.VehicleSpec, error) {
	query := `
		INSERT INTO vehicle_specifications (
			vehicle_spec_id, manufacturer, model, year, fuel_type,
			engine_capacity, transmission, seating_capacity, color, features
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + vehicleSpecColumns

	var spec models.VehicleSpec
	err := r.db.Get(&spec, query,
		uuid.New().String(), req.Manufacturer, req.Model, req.Year, req.FuelType,
		req.EngineCapacity, req.Transmission, req.SeatingCapacity, req.Color, req.Features,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle spec: %w", TranslateError(err))
	}

	return &spec, nil
}

// GetAll returns all vehicle specifications
func (r *VehicleSpecRepository) GetAll() ([]models.VehicleSpec, error) {
	var specs []models.VehicleSpec
	query := `SELECT ` + vehicleSpecColumns + ` FROM vehicle_specifications ORDER BY manufacturer, model`

	if err := r.db.Select(&specs, query); err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle specs: %w", err)
	}

	return specs, nil
}

// GetByID returns a single vehicle specification by id
func (r *VehicleSpecRepository) GetByID(specID string) (*models.VehicleSpec, error) {
	var spec models.VehicleSpec
	query := `SELECT ` + vehicleSpecColumns + ` FROM vehicle_specifications WHERE vehicle_spec_id = $1`

	if err := r.db.Get(&spec, query, specID); err != nil {
		return nil, err
	}

	return &spec, nil
}

// Update applies a partial update and returns the updated row
func (r *VehicleSpecRepository) Update(specID string, req *models.UpdateVehicleSpecRequest) (*models.VehicleSpec, error) {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.Manufacturer != nil {
		updates = append(updates, fmt.Sprintf("manufacturer = $%d", argCount))
		args = append(args, *req.Manufacturer)
		argCount++
	}
	if req.Model != nil {
		updates = append(updates, fmt.Sprintf("model = $%d", argCount))
		args = append(args, *req.Model)
		argCount++
	}
	if req.Year != nil {
		updates = append(updates, fmt.Sprintf("year = $%d", argCount))
		args = append(args, *req.Year)
		argCount++
	}
	if req.FuelType != nil {
		updates = append(updates, fmt.Sprintf("fuel_type = $%d", argCount))
		args = append(args, *req.FuelType)
		argCount++
	}
	if req.EngineCapacity != nil {
		updates = append(updates, fmt.Sprintf("engine_capacity = $%d", argCount))
		args = append(args, *req.EngineCapacity)
		argCount++
	}
	if req.Transmission != nil {
		updates = append(updates, fmt.Sprintf("transmission = $%d", argCount))
		args = append(args, *req.Transmission)
		argCount++
	}
	if req.SeatingCapacity != nil {
		updates = append(updates, fmt.Sprintf("seating_capacity = $%d", argCount))
		args = append(args, *req.SeatingCapacity)
		argCount++
	}
	if req.Color != nil {
		updates = append(updates, fmt.Sprintf("color = $%d", argCount))
		args = append(args, *req.Color)
		argCount++
	}
	if req.Features != nil {
		updates = append(updates, fmt.Sprintf("features = $%d", argCount))
		args = append(args, *req.Features)
		argCount++
	}

	if len(updates) == 0 {
		return r.GetByID(specID)
	}

	args = append(args, specID)

	query := fmt.Sprintf(`UPDATE vehicle_specifications SET %s WHERE vehicle_spec_id = $%d RETURNING `+vehicleSpecColumns,
		strings.Join(updates, ", "), argCount)

	var spec models.VehicleSpec
	if err := r.db.Get(&spec, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update vehicle spec: %w", TranslateError(err))
	}

	return &spec, nil
}

// Delete removes a vehicle specification by id
func (r *VehicleSpecRepository) Delete(specID string) error {
	result, err := r.db.Exec(`DELETE FROM vehicle_specifications WHERE vehicle_spec_id = $1`, specID)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle spec: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("vehicle spec not found")
	}

	return nil
}
