package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// DashboardRepository aggregates the numbers behind the admin dashboard
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository creates a new DashboardRepository
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// percentChange returns the percent change from previous to current,
// treating a zero previous window as 100% growth when anything happened.
func percentChange(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

// GetStats returns the headline dashboard numbers with 30-day change percentages
func (r *DashboardRepository) GetStats() (*models.DashboardStats, error) {
	var stats models.DashboardStats

	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings) AS total_bookings,
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'success') AS total_revenue,
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM vehicles WHERE availability = true) AS active_vehicles,
			(SELECT COUNT(*) FROM bookings WHERE booking_status = 'pending') AS pending_bookings,
			(SELECT COUNT(*) FROM bookings WHERE booking_status = 'completed') AS completed_bookings,
			(SELECT COUNT(*) FROM bookings WHERE booking_status IN ('Confirmed', 'active')) AS active_bookings`

	if err := r.db.Get(&stats, query); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard stats: %w", err)
	}

	windows := struct {
		CurrentRevenue   float64 `db:"current_revenue"`
		PreviousRevenue  float64 `db:"previous_revenue"`
		CurrentBookings  float64 `db:"current_bookings"`
		PreviousBookings float64 `db:"previous_bookings"`
		CurrentUsers     float64 `db:"current_users"`
		PreviousUsers    float64 `db:"previous_users"`
	}{}

	windowQuery := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'success' AND created_at >= NOW() - INTERVAL '30 days') AS current_revenue,
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'success' AND created_at >= NOW() - INTERVAL '60 days' AND created_at < NOW() - INTERVAL '30 days') AS previous_revenue,
			(SELECT COUNT(*) FROM bookings WHERE created_at >= NOW() - INTERVAL '30 days') AS current_bookings,
			(SELECT COUNT(*) FROM bookings WHERE created_at >= NOW() - INTERVAL '60 days' AND created_at < NOW() - INTERVAL '30 days') AS previous_bookings,
			(SELECT COUNT(*) FROM users WHERE created_at >= NOW() - INTERVAL '30 days') AS current_users,
			(SELECT COUNT(*) FROM users WHERE created_at >= NOW() - INTERVAL '60 days' AND created_at < NOW() - INTERVAL '30 days') AS previous_users`

	if err := r.db.Get(&windows, windowQuery); err != nil {
		return nil, fmt.Errorf("failed to fetch dashboard change windows: %w", err)
	}

	stats.RevenueChange = percentChange(windows.CurrentRevenue, windows.PreviousRevenue)
	stats.BookingsChange = percentChange(windows.CurrentBookings, windows.PreviousBookings)
	stats.UsersChange = percentChange(windows.CurrentUsers, windows.PreviousUsers)

	return &stats, nil
}

// GetRecentBookings returns the latest bookings for the dashboard list
func (r *DashboardRepository) GetRecentBookings(limit int) ([]models.RecentBooking, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT
			b.booking_id,
			u.first_name || ' ' || u.last_name AS customer_name,
			vs.manufacturer || ' ' || vs.model AS vehicle_name,
			b.booking_date, b.return_date, b.total_amount, b.booking_status
		FROM bookings b
		JOIN users u ON u.user_id = b.user_id
		JOIN vehicles v ON v.vehicle_id = b.vehicle_id
		JOIN vehicle_specifications vs ON vs.vehicle_spec_id = v.vehicle_spec_id
		ORDER BY b.created_at DESC
		LIMIT $1`

	var bookings []models.RecentBooking
	if err := r.db.Select(&bookings, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch recent bookings: %w", err)
	}

	return bookings, nil
}

// GetTopVehicles returns vehicles ranked by successful-payment revenue
func (r *DashboardRepository) GetTopVehicles(limit int) ([]models.TopVehicle, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT
			v.vehicle_id, vs.manufacturer, vs.model, v.rental_rate,
			COALESCE(SUM(p.amount), 0) AS total_revenue,
			COUNT(DISTINCT b.booking_id) AS booking_count
		FROM vehicles v
		JOIN vehicle_specifications vs ON vs.vehicle_spec_id = v.vehicle_spec_id
		LEFT JOIN bookings b ON b.vehicle_id = v.vehicle_id
		LEFT JOIN payments p ON p.booking_id = b.booking_id AND p.payment_status = 'success'
		GROUP BY v.vehicle_id, vs.manufacturer, vs.model, v.rental_rate
		ORDER BY total_revenue DESC
		LIMIT $1`

	var vehicles []models.TopVehicle
	if err := r.db.Select(&vehicles, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch top vehicles: %w", err)
	}

	return vehicles, nil
}

// GetMonthlyRevenue returns successful-payment revenue per month for the
// trailing year
func (r *DashboardRepository) GetMonthlyRevenue() ([]models.MonthlyRevenue, error) {
	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('month', created_at), 'YYYY-MM') AS month,
			COALESCE(SUM(amount), 0) AS revenue
		FROM payments
		WHERE payment_status = 'success' AND created_at >= NOW() - INTERVAL '12 months'
		GROUP BY DATE_TRUNC('month', created_at)
		ORDER BY month ASC`

	var revenue []models.MonthlyRevenue
	if err := r.db.Select(&revenue, query); err != nil {
		return nil, fmt.Errorf("failed to fetch monthly revenue: %w", err)
	}

	return revenue, nil
}
