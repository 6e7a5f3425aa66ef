package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	ticketSeatConstraint = "tickets_performance_row_seat_key"
)

var (
	// ErrSeatTaken is returned when a ticket collides with an already sold seat.
	ErrSeatTaken = errors.New("seat already taken")
	// ErrDuplicate is returned for any other unique constraint violation.
	ErrDuplicate = errors.New("duplicate record")
	// ErrReferenceNotFound is returned when a foreign key points at a missing row.
	ErrReferenceNotFound = errors.New("referenced record not found")
)

func pgCode(err error) (string, string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", "", false
	}
	return pgErr.Code, pgErr.ConstraintName, true
}

// IsUniqueViolation reports whether err is a postgres unique_violation.
func IsUniqueViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == pgUniqueViolation
}

func IsForeignKeyViolation(err error) bool {
	code, _, ok := pgCode(err)
	return ok && code == pgForeignKeyViolation
}

// ConstraintName returns the violated constraint, if err carries one.
func ConstraintName(err error) string {
	_, name, _ := pgCode(err)
	return name
}
