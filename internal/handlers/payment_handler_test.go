package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorent/vehicle-rental-backend/internal/config"
	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/internal/services"
	"github.com/velorent/vehicle-rental-backend/pkg/mailer"
)

func fakeGateway(t *testing.T, intentStatus string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"pi_123","amount":4999,"currency":"usd","status":%q}`, intentStatus)
	}))
	t.Cleanup(server.Close)

	return server
}

func newPaymentFixture(t *testing.T, intentStatus string) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })
	db := sqlx.NewDb(mockDb, "sqlmock")

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	stripe := services.NewStripeService(&config.StripeConfig{
		SecretKey:       "sk_test_123",
		DefaultCurrency: "usd",
		RequestTimeout:  5 * time.Second,
	}, logger)
	stripe.SetBaseURL(fakeGateway(t, intentStatus).URL)

	paymentRepo := database.NewPaymentRepository(db)
	confirmation := services.NewBookingConfirmationService(
		db,
		stripe,
		database.NewBookingRepository(db),
		paymentRepo,
		database.NewLocationRepository(db),
		logger,
	)

	handler := NewPaymentHandler(
		paymentRepo,
		database.NewUserRepository(db),
		stripe,
		confirmation,
		mailer.New(&config.EmailConfig{Mode: "dev"}, logger),
	)

	router := gin.New()
	router.POST("/api/payments/confirm", handler.Confirm)

	return router, mock
}

func confirmBody() gin.H {
	return gin.H{
		"paymentIntentId": "pi_123",
		"userId":          "user-1",
		"vehicleId":       "veh-1",
		"amount":          49.99,
		"startDate":       "2026-09-01",
		"endDate":         "2026-09-05",
	}
}

func TestConfirmPayment_UnsucceededIntentReturns500(t *testing.T) {
	router, mock := newPaymentFixture(t, "requires_payment_method")

	w := postJSON(t, router, "/api/payments/confirm", confirmBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "requires_payment_method")
	assert.Contains(t, w.Body.String(), `"success":false`)

	// The workflow must bail out before any database activity
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment_DuplicateIntentReturns409(t *testing.T) {
	router, mock := newPaymentFixture(t, "succeeded")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnRows(sqlmock.NewRows([]string{"location_id"}).AddRow("loc-1"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "payments_provider_payment_id_key"})
	mock.ExpectRollback()

	w := postJSON(t, router, "/api/payments/confirm", confirmBody())

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already been confirmed")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment_UnknownUserReturns500(t *testing.T) {
	router, mock := newPaymentFixture(t, "succeeded")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnRows(sqlmock.NewRows([]string{"location_id"}).AddRow("loc-1"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "bookings_user_id_fkey"})
	mock.ExpectRollback()

	w := postJSON(t, router, "/api/payments/confirm", confirmBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "referenced user does not exist")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPayment_PersistenceFailureReturns500(t *testing.T) {
	router, mock := newPaymentFixture(t, "succeeded")

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT location_id FROM locations`).
		WillReturnRows(sqlmock.NewRows([]string{"location_id"}).AddRow("loc-1"))
	mock.ExpectExec(`INSERT INTO bookings`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO payments`).
		WillReturnError(fmt.Errorf("connection reset"))
	mock.ExpectRollback()

	w := postJSON(t, router, "/api/payments/confirm", confirmBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to confirm payment")

	assert.NoError(t, mock.ExpectationsWereMet())
}
