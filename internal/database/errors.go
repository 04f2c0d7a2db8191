package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ErrInvalidIdentifier is returned when a supplied id cannot be parsed
// by Postgres (invalid uuid text, etc.)
var ErrInvalidIdentifier = errors.New("invalid identifier format")

// ForeignKeyError reports a write that referenced a missing row. The
// Reference field names the offending relation (user, vehicle, ...)
type ForeignKeyError struct {
	Reference string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("referenced %s does not exist", e.Reference)
}

// DuplicateError reports a write rejected by a unique constraint
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate value violates unique constraint %q", e.Constraint)
}

// Postgres error codes worth distinguishing at the service layer
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgInvalidTextRep      = "22P02"
)

// TranslateError maps a raw pq error onto the package error taxonomy.
// Anything unrecognized passes through unchanged so the caller can wrap
// it as a generic persistence failure.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case pgForeignKeyViolation:
		return &ForeignKeyError{Reference: referenceFromConstraint(pqErr.Constraint)}
	case pgUniqueViolation:
		return &DuplicateError{Constraint: pqErr.Constraint}
	case pgInvalidTextRep:
		return ErrInvalidIdentifier
	}

	return err
}

// referenceFromConstraint extracts the referenced relation from a
// foreign-key constraint name like "bookings_user_id_fkey"
func referenceFromConstraint(constraint string) string {
	name := strings.TrimSuffix(constraint, "_fkey")
	if idx := strings.Index(name, "_"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, "_id")
	if name == "" {
		return "record"
	}
	return name
}
