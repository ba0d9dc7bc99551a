package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrBookingConflict   = errors.New("booking conflict")
	ErrInvalidTimeSlot   = errors.New("invalid time slot")
	ErrIllegalTransition = errors.New("illegal status transition")

	// Invoice errors
	ErrInvoiceNotFound = errors.New("invoice not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Authorization errors
	ErrNotAuthorized = errors.New("actor not authorized for this action")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
