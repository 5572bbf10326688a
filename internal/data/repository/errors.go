package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrVenueNotFound   = errors.New("venue not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrSlotTaken is returned when the database rejects a booking because a
	// live booking already holds an overlapping shift.
	ErrSlotTaken = errors.New("slot already taken")
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// isSlotViolation reports whether err is the overlap constraint firing.
func isSlotViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
}
