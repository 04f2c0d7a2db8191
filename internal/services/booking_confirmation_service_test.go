package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/models"
)

func intentServer(t *testing.T, status string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"pi_123","amount":4999,"currency":"usd","status":%q}`, status)
	}))
	t.Cleanup(server.Close)

	return server
}

func newConfirmationFixture(t *testing.T, intentStatus string) (*BookingConfirmationService, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })
	db := sqlx.NewDb(mockDb, "sqlmock")

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	stripe := newTestStripeService(intentServer(t, intentStatus).URL)

	svc := NewBookingConfirmationService(
		db,
		stripe,
		database.NewBookingRepository(db),
		database.NewPaymentRepository(db),
		database.NewLocationRepository(db),
		logger,
	)

	return svc, mock
}

func confirmRequest() *models.ConfirmPaymentRequest {
	return &models.ConfirmPaymentRequest{
		PaymentIntentID: "pi_123",
		UserID:          "user-1",
		VehicleID:       "veh-1",
		Amount:          49.99,
		StartDate:       "2026-09-01",
		EndDate:         "2026-09-05",
	}
}

func TestConfirm_CreatesDefaultLocationWhenNoneExists(t *testing.T) {
	svc, mock := newConfirmationFixture(t, "succeeded")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(`INSERT INTO locations`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(sqlmock.AnyArg(), "user-1", "veh-1", sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), 49.99, models.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), 49.99, models.PaymentStatusSuccess,
			sqlmock.AnyArg(), "stripe", "pi_123", "pi_123", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Confirm(context.Background(), confirmRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, result.BookingID)
	assert.NotEmpty(t, result.PaymentID)
	assert.Equal(t, "succeeded", result.IntentStatus)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_ReusesExistingLocation(t *testing.T) {
	svc, mock := newConfirmationFixture(t, "succeeded")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnRows(sqlmock.NewRows([]string{"location_id"}).AddRow("loc-1"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs(sqlmock.AnyArg(), "user-1", "veh-1", "loc-1",
			sqlmock.AnyArg(), sqlmock.AnyArg(), 49.99, models.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := svc.Confirm(context.Background(), confirmRequest())
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_UsesCallerSuppliedBookingID(t *testing.T) {
	svc, mock := newConfirmationFixture(t, "succeeded")

	req := confirmRequest()
	bookingID := "booking-42"
	req.BookingID = &bookingID

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnRows(sqlmock.NewRows([]string{"location_id"}).AddRow("loc-1"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WithArgs("booking-42", "user-1", "veh-1", "loc-1",
			sqlmock.AnyArg(), sqlmock.AnyArg(), 49.99, models.BookingStatusConfirmed).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Confirm(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "booking-42", result.BookingID)
}

func TestConfirm_RejectsUnsucceededIntent(t *testing.T) {
	svc, mock := newConfirmationFixture(t, "requires_payment_method")

	_, err := svc.Confirm(context.Background(), confirmRequest())
	assert.ErrorIs(t, err, ErrPaymentNotSucceeded)
	assert.Contains(t, err.Error(), "requires_payment_method")

	// Nothing may touch the database before the intent check passes
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_RollsBackWhenPaymentInsertFails(t *testing.T) {
	svc, mock := newConfirmationFixture(t, "succeeded")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnRows(sqlmock.NewRows([]string{"location_id"}).AddRow("loc-1"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Confirm(context.Background(), confirmRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create payment")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_DuplicateIntentReturnsDuplicateError(t *testing.T) {
	svc, mock := newConfirmationFixture(t, "succeeded")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnRows(sqlmock.NewRows([]string{"location_id"}).AddRow("loc-1"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "payments_provider_payment_id_key"})
	mock.ExpectRollback()

	_, err := svc.Confirm(context.Background(), confirmRequest())
	assert.ErrorIs(t, err, ErrDuplicateConfirmation)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirm_RejectsBadDates(t *testing.T) {
	svc, _ := newConfirmationFixture(t, "succeeded")

	req := confirmRequest()
	req.StartDate = "01-09-2026"
	_, err := svc.Confirm(context.Background(), req)
	assert.Error(t, err)

	req = confirmRequest()
	req.EndDate = "2026-08-01"
	_, err = svc.Confirm(context.Background(), req)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "end date")
}
