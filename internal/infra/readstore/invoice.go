package readstore

import (
	"context"

	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/pkg/pgconv"
	"fieldbook/internal/usecase/queries"

	"github.com/google/uuid"
)

const findInvoiceByIDSQL = `
SELECT id, booking_id, total_amount_cents, status, created_at, updated_at
FROM invoices
WHERE id = $1`

const findInvoiceByBookingIDSQL = `
SELECT id, booking_id, total_amount_cents, status, created_at, updated_at
FROM invoices
WHERE booking_id = $1`

type InvoiceReadStore struct{}

func NewInvoiceReadStore() *InvoiceReadStore {
	return &InvoiceReadStore{}
}

func (r *InvoiceReadStore) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*queries.InvoiceView, error) {
	return r.scanOne(ctx, dbtx, findInvoiceByIDSQL, id)
}

func (r *InvoiceReadStore) FindByBookingID(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID) (*queries.InvoiceView, error) {
	return r.scanOne(ctx, dbtx, findInvoiceByBookingIDSQL, bookingID)
}

func (r *InvoiceReadStore) scanOne(ctx context.Context, dbtx db.DBTX, sql string, arg uuid.UUID) (*queries.InvoiceView, error) {
	var v queries.InvoiceView
	err := dbtx.QueryRow(ctx, sql, arg).Scan(
		&v.ID, &v.BookingID, &v.TotalCents, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("invoice not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find invoice", err)
	}
	return &v, nil
}
