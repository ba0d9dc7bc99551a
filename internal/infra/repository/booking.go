package repository

import (
	"context"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const lockResourceSQL = `
SELECT id FROM resources WHERE id = $1 FOR UPDATE`

const hasOverlapSQL = `
SELECT EXISTS (
    SELECT 1
    FROM bookings
    WHERE resource_id = $1
      AND status IN ('pending', 'confirmed')
      AND slot && tstzrange($2, $3, '[)')
)`

const createBookingSQL = `
INSERT INTO bookings (id, resource_id, customer_id, slot, status, deposit_cents)
VALUES ($1, $2, $3, tstzrange($4, $5, '[)'), $6, $7)`

const updateBookingStatusSQL = `
UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1`

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

// LockResource takes a row lock on the resource so concurrent writers for the
// same field serialize. Overlap check and insert must run while it is held.
func (r *BookingRepository) LockResource(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID) error {
	var id uuid.UUID
	if err := dbtx.QueryRow(ctx, lockResourceSQL, resourceID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock resource", err)
	}
	return nil
}

func (r *BookingRepository) HasOverlap(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, slot booking.TimeSlot) (bool, error) {
	var exists bool
	err := dbtx.QueryRow(ctx, hasOverlapSQL, resourceID, slot.Start(), slot.End()).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check booking overlap", err)
	}
	return exists, nil
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	_, err := dbtx.Exec(ctx, createBookingSQL,
		b.ID(),
		b.ResourceID(),
		b.CustomerID(),
		b.TimeSlot().Start(),
		b.TimeSlot().End(),
		b.Status().String(),
		b.Deposit().Cents(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err, infra.ClassifyPgError(err))
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error {
	tag, err := dbtx.Exec(ctx, updateBookingStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
