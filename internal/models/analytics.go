package models

import "time"

// DashboardStats aggregates the headline numbers for the admin dashboard,
// with percentage changes against the previous 30-day window
type DashboardStats struct {
	TotalBookings     int     `json:"total_bookings" db:"total_bookings"`
	TotalRevenue      float64 `json:"total_revenue" db:"total_revenue"`
	TotalUsers        int     `json:"total_users" db:"total_users"`
	ActiveVehicles    int     `json:"active_vehicles" db:"active_vehicles"`
	PendingBookings   int     `json:"pending_bookings" db:"pending_bookings"`
	CompletedBookings int     `json:"completed_bookings" db:"completed_bookings"`
	ActiveBookings    int     `json:"active_bookings" db:"active_bookings"`

	RevenueChange  float64 `json:"revenue_change"`
	BookingsChange float64 `json:"bookings_change"`
	UsersChange    float64 `json:"users_change"`
}

// RecentBooking is a compact booking row for dashboard listings
type RecentBooking struct {
	BookingID     string        `json:"booking_id" db:"booking_id"`
	CustomerName  string        `json:"customer_name" db:"customer_name"`
	VehicleName   string        `json:"vehicle_name" db:"vehicle_name"`
	BookingDate   time.Time     `json:"booking_date" db:"booking_date"`
	ReturnDate    time.Time     `json:"return_date" db:"return_date"`
	TotalAmount   float64       `json:"total_amount" db:"total_amount"`
	BookingStatus BookingStatus `json:"booking_status" db:"booking_status"`
}

// TopVehicle is a revenue-ranked vehicle projection
type TopVehicle struct {
	VehicleID    string  `json:"vehicle_id" db:"vehicle_id"`
	Manufacturer string  `json:"manufacturer" db:"manufacturer"`
	Model        string  `json:"model" db:"model"`
	RentalRate   float64 `json:"rental_rate" db:"rental_rate"`
	TotalRevenue float64 `json:"total_revenue" db:"total_revenue"`
	BookingCount int     `json:"booking_count" db:"booking_count"`
}

// MonthlyRevenue is one month of aggregated completed-booking revenue
type MonthlyRevenue struct {
	Month   string  `json:"month" db:"month"`
	Revenue float64 `json:"revenue" db:"revenue"`
}

// TrendPoint is a single dated counter for trend charts
type TrendPoint struct {
	Date  string `json:"date" db:"date"`
	Count int    `json:"count" db:"count"`
}

// AnalyticsStats aggregates period-scoped analytics counters
type AnalyticsStats struct {
	CurrentRevenue  float64 `json:"current_revenue" db:"current_revenue"`
	CurrentBookings int     `json:"current_bookings" db:"current_bookings"`
	CurrentUsers    int     `json:"current_users" db:"current_users"`
	ActiveVehicles  int     `json:"active_vehicles" db:"active_vehicles"`

	RevenueChange  float64 `json:"revenue_change"`
	BookingsChange float64 `json:"bookings_change"`
	UsersChange    float64 `json:"users_change"`
}

// VehicleTypeShare aggregates revenue per vehicle fuel/category type
type VehicleTypeShare struct {
	FuelType     string  `json:"fuel_type" db:"fuel_type"`
	VehicleCount int     `json:"vehicle_count" db:"vehicle_count"`
	TotalRevenue float64 `json:"total_revenue" db:"total_revenue"`
}

// KpiMetrics carries conversion-style KPIs for the analytics page
type KpiMetrics struct {
	ConversionRate  float64 `json:"conversion_rate" db:"conversion_rate"`
	AvgBookingValue float64 `json:"avg_booking_value" db:"avg_booking_value"`
	TotalBookings   int     `json:"total_bookings" db:"total_bookings"`
	TotalUsers      int     `json:"total_users" db:"total_users"`
}
