package booking

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	id         uuid.UUID
	resourceID uuid.UUID
	customerID uuid.UUID
	timeSlot   TimeSlot
	status     Status
	deposit    Money
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking creates a pending booking for the given slot. now comes from the
// caller's clock so validation is deterministic under test.
func NewBooking(resourceID, customerID uuid.UUID, slot TimeSlot, deposit Money, now time.Time) (*Booking, error) {
	if err := slot.ValidateFutureAt(now); err != nil {
		return nil, err
	}

	return &Booking{
		id:         uuid.New(),
		resourceID: resourceID,
		customerID: customerID,
		timeSlot:   slot,
		status:     StatusPending,
		deposit:    deposit,
	}, nil
}

func ReconstructBooking(
	id, resourceID, customerID uuid.UUID,
	timeSlot TimeSlot,
	status Status,
	deposit Money,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		resourceID: resourceID,
		customerID: customerID,
		timeSlot:   timeSlot,
		status:     status,
		deposit:    deposit,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) Confirm() error {
	next, err := ApplyTransition(b.status, StatusConfirmed)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

func (b *Booking) Cancel() error {
	next, err := ApplyTransition(b.status, StatusCancelled)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

func (b *Booking) Complete() error {
	next, err := ApplyTransition(b.status, StatusCompleted)
	if err != nil {
		return err
	}
	b.status = next
	return nil
}

func (b *Booking) IsBlocking() bool {
	return b.status.IsBlocking()
}

func (b *Booking) BelongsTo(customerID uuid.UUID) bool {
	return b.customerID == customerID
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }
func (b *Booking) TimeSlot() TimeSlot    { return b.timeSlot }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) Deposit() Money        { return b.deposit }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
