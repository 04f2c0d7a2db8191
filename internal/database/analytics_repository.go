package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// AnalyticsRepository aggregates period-scoped analytics queries
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// normalizePeriod clamps the requested window to a supported number of days
func normalizePeriod(days int) int {
	switch days {
	case 7, 30, 90, 365:
		return days
	default:
		return 30
	}
}

// GetStats returns period counters with change against the preceding window
func (r *AnalyticsRepository) GetStats(periodDays int) (*models.AnalyticsStats, error) {
	days := normalizePeriod(periodDays)

	windows := struct {
		CurrentRevenue   float64 `db:"current_revenue"`
		PreviousRevenue  float64 `db:"previous_revenue"`
		CurrentBookings  int     `db:"current_bookings"`
		PreviousBookings int     `db:"previous_bookings"`
		CurrentUsers     int     `db:"current_users"`
		PreviousUsers    int     `db:"previous_users"`
		ActiveVehicles   int     `db:"active_vehicles"`
	}{}

	query := `
		SELECT
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'success' AND created_at >= NOW() - ($1 * INTERVAL '1 day')) AS current_revenue,
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'success' AND created_at >= NOW() - ($1 * 2 * INTERVAL '1 day') AND created_at < NOW() - ($1 * INTERVAL '1 day')) AS previous_revenue,
			(SELECT COUNT(*) FROM bookings WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')) AS current_bookings,
			(SELECT COUNT(*) FROM bookings WHERE created_at >= NOW() - ($1 * 2 * INTERVAL '1 day') AND created_at < NOW() - ($1 * INTERVAL '1 day')) AS previous_bookings,
			(SELECT COUNT(*) FROM users WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')) AS current_users,
			(SELECT COUNT(*) FROM users WHERE created_at >= NOW() - ($1 * 2 * INTERVAL '1 day') AND created_at < NOW() - ($1 * INTERVAL '1 day')) AS previous_users,
			(SELECT COUNT(*) FROM vehicles WHERE availability = true) AS active_vehicles`

	if err := r.db.Get(&windows, query, days); err != nil {
		return nil, fmt.Errorf("failed to fetch analytics stats: %w", err)
	}

	return &models.AnalyticsStats{
		CurrentRevenue:  windows.CurrentRevenue,
		CurrentBookings: windows.CurrentBookings,
		CurrentUsers:    windows.CurrentUsers,
		ActiveVehicles:  windows.ActiveVehicles,
		RevenueChange:   percentChange(windows.CurrentRevenue, windows.PreviousRevenue),
		BookingsChange:  percentChange(float64(windows.CurrentBookings), float64(windows.PreviousBookings)),
		UsersChange:     percentChange(float64(windows.CurrentUsers), float64(windows.PreviousUsers)),
	}, nil
}

// GetRevenueTrend returns daily successful-payment revenue over the period
func (r *AnalyticsRepository) GetRevenueTrend(periodDays int) ([]models.MonthlyRevenue, error) {
	days := normalizePeriod(periodDays)

	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('day', created_at), 'YYYY-MM-DD') AS month,
			COALESCE(SUM(amount), 0) AS revenue
		FROM payments
		WHERE payment_status = 'success' AND created_at >= NOW() - ($1 * INTERVAL '1 day')
		GROUP BY DATE_TRUNC('day', created_at)
		ORDER BY month ASC`

	var trend []models.MonthlyRevenue
	if err := r.db.Select(&trend, query, days); err != nil {
		return nil, fmt.Errorf("failed to fetch revenue trend: %w", err)
	}

	return trend, nil
}

// GetBookingTrend returns daily booking counts over the period
func (r *AnalyticsRepository) GetBookingTrend(periodDays int) ([]models.TrendPoint, error) {
	days := normalizePeriod(periodDays)

	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('day', created_at), 'YYYY-MM-DD') AS date,
			COUNT(*) AS count
		FROM bookings
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')
		GROUP BY DATE_TRUNC('day', created_at)
		ORDER BY date ASC`

	var trend []models.TrendPoint
	if err := r.db.Select(&trend, query, days); err != nil {
		return nil, fmt.Errorf("failed to fetch booking trend: %w", err)
	}

	return trend, nil
}

// GetUserGrowth returns daily user signups over the period
func (r *AnalyticsRepository) GetUserGrowth(periodDays int) ([]models.TrendPoint, error) {
	days := normalizePeriod(periodDays)

	query := `
		SELECT
			TO_CHAR(DATE_TRUNC('day', created_at), 'YYYY-MM-DD') AS date,
			COUNT(*) AS count
		FROM users
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')
		GROUP BY DATE_TRUNC('day', created_at)
		ORDER BY date ASC`

	var growth []models.TrendPoint
	if err := r.db.Select(&growth, query, days); err != nil {
		return nil, fmt.Errorf("failed to fetch user growth: %w", err)
	}

	return growth, nil
}

// GetVehicleTypeShares returns revenue and fleet share per fuel type
func (r *AnalyticsRepository) GetVehicleTypeShares() ([]models.VehicleTypeShare, error) {
	query := `
		SELECT
			vs.fuel_type,
			COUNT(DISTINCT v.vehicle_id) AS vehicle_count,
			COALESCE(SUM(p.amount), 0) AS total_revenue
		FROM vehicles v
		JOIN vehicle_specifications vs ON vs.vehicle_spec_id = v.vehicle_spec_id
		LEFT JOIN bookings b ON b.vehicle_id = v.vehicle_id
		LEFT JOIN payments p ON p.booking_id = b.booking_id AND p.payment_status = 'success'
		GROUP BY vs.fuel_type
		ORDER BY total_revenue DESC`

	var shares []models.VehicleTypeShare
	if err := r.db.Select(&shares, query); err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle type shares: %w", err)
	}

	return shares, nil
}

// GetKpiMetrics returns conversion-style KPIs for the analytics page
func (r *AnalyticsRepository) GetKpiMetrics(periodDays int) (*models.KpiMetrics, error) {
	days := normalizePeriod(periodDays)

	raw := struct {
		TotalBookings int     `db:"total_bookings"`
		TotalUsers    int     `db:"total_users"`
		TotalRevenue  float64 `db:"total_revenue"`
	}{}

	query := `
		SELECT
			(SELECT COUNT(*) FROM bookings WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')) AS total_bookings,
			(SELECT COUNT(*) FROM users WHERE created_at >= NOW() - ($1 * INTERVAL '1 day')) AS total_users,
			(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_status = 'success' AND created_at >= NOW() - ($1 * INTERVAL '1 day')) AS total_revenue`

	if err := r.db.Get(&raw, query, days); err != nil {
		return nil, fmt.Errorf("failed to fetch kpi metrics: %w", err)
	}

	metrics := &models.KpiMetrics{
		TotalBookings: raw.TotalBookings,
		TotalUsers:    raw.TotalUsers,
	}
	if raw.TotalUsers > 0 {
		metrics.ConversionRate = float64(raw.TotalBookings) / float64(raw.TotalUsers) * 100
	}
	if raw.TotalBookings > 0 {
		metrics.AvgBookingValue = raw.TotalRevenue / float64(raw.TotalBookings)
	}

	return metrics, nil
}
