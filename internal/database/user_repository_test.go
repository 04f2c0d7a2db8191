package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDb.Close() })

	return sqlx.NewDb(mockDb, "sqlmock"), mock
}

var userRows = []string{
	"user_id", "first_name", "last_name", "email", "contact_phone",
	"address", "role", "password", "created_at", "updated_at",
}

func TestCreateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Amara", "Perera", "amara@example.com", "+94712345678", "12 Galle Rd", models.RoleCustomer, "hashed").
			WillReturnRows(sqlmock.NewRows(userRows).AddRow(
				userID, "Amara", "Perera", "amara@example.com", "+94712345678",
				"12 Galle Rd", "customer", "hashed", now, now,
			))

		user, err := repo.Create("Amara", "Perera", "amara@example.com", "+94712345678", "12 Galle Rd", "hashed", models.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, models.RoleCustomer, user.Role)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(fmt.Errorf("database error"))

		user, err := repo.Create("Amara", "Perera", "amara@example.com", "+94712345678", "", "hashed", models.RoleCustomer)
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "failed to create user")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("amara@example.com").
			WillReturnRows(sqlmock.NewRows(userRows).AddRow(
				userID, "Amara", "Perera", "amara@example.com", "+94712345678",
				"", "admin", "hashed", now, now,
			))

		user, err := repo.GetByEmail("amara@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.Equal(t, "hashed", user.Password)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByEmail("nobody@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
	})
}

func TestUpdateUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Partial Update", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()
		newName := "Nadeesha"

		mock.ExpectQuery(`UPDATE users SET first_name = \$1, updated_at = NOW\(\) WHERE user_id = \$2`).
			WithArgs(newName, userID).
			WillReturnRows(sqlmock.NewRows(userRows).AddRow(
				userID, newName, "Perera", "amara@example.com", "+94712345678",
				"", "customer", "hashed", now, now,
			))

		user, err := repo.Update(userID, &models.UpdateUserRequest{FirstName: &newName})
		require.NoError(t, err)
		assert.Equal(t, newName, user.FirstName)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Fields Falls Back To Read", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users WHERE user_id`).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows(userRows).AddRow(
				userID, "Amara", "Perera", "amara@example.com", "+94712345678",
				"", "customer", "hashed", now, now,
			))

		user, err := repo.Update(userID, &models.UpdateUserRequest{})
		require.NoError(t, err)
		assert.Equal(t, "Amara", user.FirstName)
	})
}

func TestDeleteUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()

		mock.ExpectExec(`DELETE FROM users WHERE user_id`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(userID))
	})

	t.Run("Not Found", func(t *testing.T) {
		userID := uuid.New().String()

		mock.ExpectExec(`DELETE FROM users WHERE user_id`).
			WithArgs(userID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(userID)
		assert.EqualError(t, err, "user not found")
	})
}
