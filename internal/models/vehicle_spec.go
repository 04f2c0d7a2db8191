package models

// VehicleSpec represents a vehicle specification (make/model/trim data)
type VehicleSpec struct {
	VehicleSpecID   string `json:"vehicleSpec_id" db:"vehicle_spec_id"`
	Manufacturer    string `json:"manufacturer" db:"manufacturer"`
	Model           string `json:"model" db:"model"`
	Year            int    `json:"year" db:"year"`
	FuelType        string `json:"fuel_type" db:"fuel_type"`
	EngineCapacity  string `json:"engine_capacity" db:"engine_capacity"`
	Transmission    string `json:"transmission" db:"transmission"`
	SeatingCapacity int    `json:"seating_capacity" db:"seating_capacity"`
	Color           string `json:"color" db:"color"`
	Features        string `json:"features" db:"features"`
}

// CreateVehicleSpecRequest represents the spec-creation payload
type CreateVehicleSpecRequest struct {
	Manufacturer    string `json:"manufacturer" binding:"required"`
	Model           string `json:"model" binding:"required"`
	Year            int    `json:"year" binding:"required,gt=1900"`
	FuelType        string `json:"fuel_type" binding:"required"`
	EngineCapacity  string `json:"engine_capacity"`
	Transmission    string `json:"transmission"`
	SeatingCapacity int    `json:"seating_capacity" binding:"required,gt=0"`
	Color           string `json:"color"`
	Features        string `json:"features"`
}

// UpdateVehicleSpecRequest represents the spec-update payload
type UpdateVehicleSpecRequest struct {
	Manufacturer    *string `json:"manufacturer,omitempty"`
	Model           *string `json:"model,omitempty"`
	Year            *int    `json:"year,omitempty"`
	FuelType        *string `json:"fuel_type,omitempty"`
	EngineCapacity  *string `json:"engine_capacity,omitempty"`
	Transmission    *string `json:"transmission,omitempty"`
	SeatingCapacity *int    `json:"seating_capacity,omitempty"`
	Color           *string `json:"color,omitempty"`
	Features        *string `json:"features,omitempty"`
}
