package usecase

import (
	"errors"
	"fmt"

	"mahal-booking/internal/data/entity"
	"mahal-booking/internal/data/repository"
	"mahal-booking/pkg/utils"
)

var (
	ErrVenueNotFound   = repository.ErrVenueNotFound
	ErrBookingNotFound = repository.ErrBookingNotFound
	ErrInvalidShift    = errors.New("invalid shift")
	ErrInvalidDate     = utils.ErrInvalidDate
	ErrValidation      = errors.New("validation failed")
	ErrSlotConflict    = errors.New("slot conflict")

	// ErrStoreUnavailable wraps any storage or lock failure. Callers may retry
	// the whole request; the service never does.
	ErrStoreUnavailable = errors.New("booking store unavailable")
)

// ValidationError lists offending request fields by their json names.
type ValidationError struct {
	Fields map[string]string
	cause  error
}

func newValidationError(fields map[string]string, cause error) *ValidationError {
	return &ValidationError{Fields: fields, cause: cause}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// SlotConflictError explains why a shift could not be admitted.
type SlotConflictError struct {
	Requested entity.Shift
	Blocking  []entity.Shift
	Reason    string
}

func (e *SlotConflictError) Error() string {
	return e.Reason
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
