package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/velorent/vehicle-rental-backend/internal/database"
)

// stalePendingAge is how long a pending booking may sit unpaid before
// the scheduler cancels it.
const stalePendingAge = 24 * time.Hour

// CronService manages scheduled background jobs
type CronService struct {
	cron          *cron.Cron
	bookingRepo   *database.BookingRepository
	rateLimitRepo *database.RateLimitRepository
	rateWindow    time.Duration
	logger        *logrus.Logger
}

// NewCronService creates a new CronService
func NewCronService(
	bookingRepo *database.BookingRepository,
	rateLimitRepo *database.RateLimitRepository,
	rateWindow time.Duration,
	logger *logrus.Logger,
) *CronService {
	return &CronService{
		cron:          cron.New(cron.WithSeconds()),
		bookingRepo:   bookingRepo,
		rateLimitRepo: rateLimitRepo,
		rateWindow:    rateWindow,
		logger:        logger,
	}
}

// Start schedules and starts all background jobs
func (s *CronService) Start() error {
	s.logger.Info("Starting cron service")

	// Cron format: second minute hour day month weekday
	// "0 0 1 * * *" = at 1:00 AM every day
	_, err := s.cron.AddFunc("0 0 1 * * *", s.completePastDueBookingsJob)
	if err != nil {
		return fmt.Errorf("failed to schedule booking completion job: %w", err)
	}
	s.logger.Info("Scheduled: complete past-due bookings (daily at 1:00 AM)")

	// "0 30 * * * *" = at half past every hour
	_, err = s.cron.AddFunc("0 30 * * * *", s.cancelStalePendingJob)
	if err != nil {
		return fmt.Errorf("failed to schedule stale booking cancellation job: %w", err)
	}
	s.logger.Info("Scheduled: cancel stale pending bookings (hourly)")

	// "0 */10 * * * *" = every 10 minutes
	_, err = s.cron.AddFunc("0 */10 * * * *", s.purgeRateLimitJob)
	if err != nil {
		return fmt.Errorf("failed to schedule rate limit purge job: %w", err)
	}
	s.logger.Info("Scheduled: purge expired rate limit counters (every 10 minutes)")

	s.cron.Start()
	s.logger.Info("Cron service started")

	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	s.logger.Info("Stopping cron service")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) completePastDueBookingsJob() {
	start := time.Now()

	updated, err := s.bookingRepo.CompletePastDue()
	if err != nil {
		s.logger.WithError(err).Error("[CRON] Failed to complete past-due bookings")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"updated":  updated,
		"duration": time.Since(start).String(),
	}).Info("[CRON] Completed past-due bookings")
}

func (s *CronService) cancelStalePendingJob() {
	start := time.Now()

	cancelled, err := s.bookingRepo.CancelStalePending(stalePendingAge)
	if err != nil {
		s.logger.WithError(err).Error("[CRON] Failed to cancel stale pending bookings")
		return
	}

	s.logger.WithFields(logrus.Fields{
		"cancelled": cancelled,
		"duration":  time.Since(start).String(),
	}).Info("[CRON] Cancelled stale pending bookings")
}

func (s *CronService) purgeRateLimitJob() {
	purged, err := s.rateLimitRepo.PurgeExpired(s.rateWindow)
	if err != nil {
		s.logger.WithError(err).Error("[CRON] Failed to purge rate limit counters")
		return
	}

	if purged > 0 {
		s.logger.WithField("purged", purged).Info("[CRON] Purged expired rate limit counters")
	}
}
