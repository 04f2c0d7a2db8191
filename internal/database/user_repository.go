package database

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/velorent/vehicle-rental-backend/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, first_name, last_name, email, contact_phone, address, role, password, created_at, updated_at`

// Create inserts a new user and returns the stored row
func (r *UserRepository) Create(firstName, lastName, email, phone, address, hashedPassword string, role models.Role) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, first_name, last_name, email, contact_phone, address, role, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns

	var user models.User
	err := r.db.Get(&user, query, uuid.New().String(), firstName, lastName, email, phone, address, role, hashedPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", TranslateError(err))
	}

	return &user, nil
}

// GetAll returns all users ordered by creation time, newest first
func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

	if err := r.db.Select(&users, query); err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, nil
}

// GetByID returns a single user by id
func (r *UserRepository) GetByID(userID string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	if err := r.db.Get(&user, query, userID); err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByEmail returns a single user by email, including the password hash
// so the caller can verify credentials
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	if err := r.db.Get(&user, query, email); err != nil {
		return nil, err
	}

	return &user, nil
}

// Update applies a partial update and returns the updated row
func (r *UserRepository) Update(userID string, req *models.UpdateUserRequest) (*models.User, error) {
	updates := []string{}
	args := []interface{}{}
	argCount := 1

	if req.FirstName != nil {
		updates = append(updates, fmt.Sprintf("first_name = $%d", argCount))
		args = append(args, *req.FirstName)
		argCount++
	}
	if req.LastName != nil {
		updates = append(updates, fmt.Sprintf("last_name = $%d", argCount))
		args = append(args, *req.LastName)
		argCount++
	}
	if req.Email != nil {
		updates = append(updates, fmt.Sprintf("email = $%d", argCount))
		args = append(args, *req.Email)
		argCount++
	}
	if req.ContactPhone != nil {
		updates = append(updates, fmt.Sprintf("contact_phone = $%d", argCount))
		args = append(args, *req.ContactPhone)
		argCount++
	}
	if req.Address != nil {
		updates = append(updates, fmt.Sprintf("address = $%d", argCount))
		args = append(args, *req.Address)
		argCount++
	}
	if req.Role != nil {
		updates = append(updates, fmt.Sprintf("role = $%d", argCount))
		args = append(args, *req.Role)
		argCount++
	}

	if len(updates) == 0 {
		return r.GetByID(userID)
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE user_id = $%d RETURNING `+userColumns,
		strings.Join(updates, ", "), argCount)

	var user models.User
	if err := r.db.Get(&user, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", TranslateError(err))
	}

	return &user, nil
}

// Delete removes a user by id
func (r *UserRepository) Delete(userID string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", TranslateError(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}
