package database

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.NoError(t, TranslateError(nil))
	})

	t.Run("Foreign Key Violation", func(t *testing.T) {
		err := TranslateError(&pq.Error{Code: "23503", Constraint: "bookings_user_id_fkey"})

		var fkErr *ForeignKeyError
		assert.ErrorAs(t, err, &fkErr)
		assert.Equal(t, "user", fkErr.Reference)
		assert.Equal(t, "referenced user does not exist", fkErr.Error())
	})

	t.Run("Foreign Key Names Vehicle", func(t *testing.T) {
		err := TranslateError(&pq.Error{Code: "23503", Constraint: "bookings_vehicle_id_fkey"})

		var fkErr *ForeignKeyError
		assert.ErrorAs(t, err, &fkErr)
		assert.Equal(t, "vehicle", fkErr.Reference)
	})

	t.Run("Unique Violation", func(t *testing.T) {
		err := TranslateError(&pq.Error{Code: "23505", Constraint: "payments_provider_payment_id_key"})

		var dupErr *DuplicateError
		assert.ErrorAs(t, err, &dupErr)
		assert.Equal(t, "payments_provider_payment_id_key", dupErr.Constraint)
	})

	t.Run("Invalid Text Representation", func(t *testing.T) {
		err := TranslateError(&pq.Error{Code: "22P02"})
		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})

	t.Run("Wrapped Error Unwraps", func(t *testing.T) {
		wrapped := fmt.Errorf("query failed: %w", &pq.Error{Code: "23505", Constraint: "users_email_key"})
		err := TranslateError(wrapped)

		var dupErr *DuplicateError
		assert.ErrorAs(t, err, &dupErr)
	})

	t.Run("Unknown Error Passes Through", func(t *testing.T) {
		original := fmt.Errorf("connection reset")
		assert.Equal(t, original, TranslateError(original))
	})
}
