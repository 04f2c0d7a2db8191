package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/velorent/vehicle-rental-backend/internal/config"
	"github.com/velorent/vehicle-rental-backend/internal/database"
	"github.com/velorent/vehicle-rental-backend/pkg/jwt"
	"github.com/velorent/vehicle-rental-backend/pkg/mailer"
)

func newAuthFixture(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })
	db := sqlx.NewDb(mockDb, "sqlmock")

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	handler := NewAuthHandler(
		database.NewUserRepository(db),
		jwt.NewService("test-secret-key-123456789", time.Hour),
		mailer.New(&config.EmailConfig{Mode: "dev"}, logger),
		bcrypt.MinCost,
	)

	router := gin.New()
	router.POST("/api/auth/register", handler.Register)
	router.POST("/api/auth/login", handler.Login)

	return router, mock
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

var authUserRows = []string{
	"user_id", "first_name", "last_name", "email", "contact_phone",
	"address", "role", "password", "created_at", "updated_at",
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock := newAuthFixture(t)
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnRows(sqlmock.NewRows(authUserRows).AddRow(
				"user-1", "Amara", "Perera", "amara@example.com", "+94712345678",
				"", "customer", "hashed", now, now,
			))

		w := postJSON(t, router, "/api/auth/register", gin.H{
			"first_name": "Amara",
			"last_name":  "Perera",
			"email":      "amara@example.com",
			"phone":      "+94712345678",
			"password":   "secret123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "User registered successfully")
		assert.NotContains(t, w.Body.String(), "hashed")
	})

	t.Run("Missing Fields", func(t *testing.T) {
		router, _ := newAuthFixture(t)

		w := postJSON(t, router, "/api/auth/register", gin.H{"email": "amara@example.com"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		router, mock := newAuthFixture(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("amara@example.com").
			WillReturnRows(sqlmock.NewRows(authUserRows).AddRow(
				"user-1", "Amara", "Perera", "amara@example.com", "+94712345678",
				"", "customer", string(hashed), now, now,
			))

		w := postJSON(t, router, "/api/auth/login", gin.H{
			"email":    "amara@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "user-1", resp.User.UserID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		router, mock := newAuthFixture(t)
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("amara@example.com").
			WillReturnRows(sqlmock.NewRows(authUserRows).AddRow(
				"user-1", "Amara", "Perera", "amara@example.com", "+94712345678",
				"", "customer", string(hashed), now, now,
			))

		w := postJSON(t, router, "/api/auth/login", gin.H{
			"email":    "amara@example.com",
			"password": "wrong-password",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid email or password")
	})

	t.Run("Unknown Email", func(t *testing.T) {
		router, mock := newAuthFixture(t)

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("nobody@example.com").
			WillReturnError(sqlmock.ErrCancelled)

		w := postJSON(t, router, "/api/auth/login", gin.H{
			"email":    "nobody@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
