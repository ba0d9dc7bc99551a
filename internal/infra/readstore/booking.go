package readstore

import (
	"context"
	"time"

	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/pkg/pgconv"
	"fieldbook/internal/usecase/queries"

	"github.com/google/uuid"
)

const findBookingByIDSQL = `
SELECT b.id, b.resource_id, r.name, b.customer_id,
       lower(b.slot), upper(b.slot), b.status, b.deposit_cents,
       b.created_at, b.updated_at
FROM bookings b
JOIN resources r ON r.id = b.resource_id
WHERE b.id = $1`

const findBookingsByCustomerSQL = `
SELECT b.id, b.resource_id, r.name,
       lower(b.slot), upper(b.slot), b.status, b.deposit_cents, b.created_at
FROM bookings b
JOIN resources r ON r.id = b.resource_id
WHERE b.customer_id = $1
ORDER BY b.created_at DESC, b.id
LIMIT $2`

const findBookedIntervalsSQL = `
SELECT lower(slot), upper(slot), status
FROM bookings
WHERE resource_id = $1
  AND status IN ('pending', 'confirmed')
  AND slot && tstzrange($2, $3, '[)')
ORDER BY lower(slot)`

type BookingReadStore struct{}

func NewBookingReadStore() *BookingReadStore {
	return &BookingReadStore{}
}

func (r *BookingReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	err := dbtx.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&v.ID, &v.ResourceID, &v.ResourceName, &v.CustomerID,
		&v.StartTime, &v.EndTime, &v.Status, &v.DepositCents,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return &v, nil
}

func (r *BookingReadStore) FindByCustomerID(ctx context.Context, dbtx db.DBTX, customerID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := dbtx.Query(ctx, findBookingsByCustomerSQL, customerID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(
			&item.ID, &item.ResourceID, &item.ResourceName,
			&item.StartTime, &item.EndTime, &item.Status, &item.DepositCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

func (r *BookingReadStore) FindBookedIntervals(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, from, to time.Time) ([]*queries.BookedInterval, error) {
	rows, err := dbtx.Query(ctx, findBookedIntervalsSQL, resourceID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booked intervals", err)
	}
	defer rows.Close()

	var result []*queries.BookedInterval
	for rows.Next() {
		var iv queries.BookedInterval
		if err := rows.Scan(&iv.StartTime, &iv.EndTime, &iv.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan interval row", err)
		}
		result = append(result, &iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate interval rows", err)
	}
	return result, nil
}
