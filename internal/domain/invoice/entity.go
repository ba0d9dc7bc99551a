package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNonPositiveAmount = errors.New("invoice amount must be positive")
	ErrNotPending        = errors.New("invoice is not pending")
	ErrNotPaid           = errors.New("invoice is not paid")
)

// Invoice is 1:1 with a booking. Free reservations never get one; callers must
// reject a zero or negative total before construction.
type Invoice struct {
	id         uuid.UUID
	bookingID  uuid.UUID
	totalCents int64
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewInvoice(bookingID uuid.UUID, totalCents int64) (*Invoice, error) {
	if totalCents <= 0 {
		return nil, ErrNonPositiveAmount
	}

	return &Invoice{
		id:         uuid.New(),
		bookingID:  bookingID,
		totalCents: totalCents,
		status:     StatusPending,
	}, nil
}

func ReconstructInvoice(
	id, bookingID uuid.UUID,
	totalCents int64,
	status Status,
	createdAt, updatedAt time.Time,
) *Invoice {
	return &Invoice{
		id:         id,
		bookingID:  bookingID,
		totalCents: totalCents,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// MarkPaid requires pending status. The paid ⇒ booking-confirmed coupling is
// the usecase's responsibility; both rows change in one transaction there.
func (i *Invoice) MarkPaid() error {
	if i.status != StatusPending {
		return ErrNotPending
	}
	i.status = StatusPaid
	return nil
}

// MarkRefunded requires paid status. Refunding never cancels the booking.
func (i *Invoice) MarkRefunded() error {
	if i.status != StatusPaid {
		return ErrNotPaid
	}
	i.status = StatusRefunded
	return nil
}

func (i *Invoice) ID() uuid.UUID        { return i.id }
func (i *Invoice) BookingID() uuid.UUID { return i.bookingID }
func (i *Invoice) TotalCents() int64    { return i.totalCents }
func (i *Invoice) Status() Status       { return i.status }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time { return i.updatedAt }
