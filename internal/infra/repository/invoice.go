package repository

import (
	"context"

	"fieldbook/internal/domain/invoice"
	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"

	"github.com/google/uuid"
)

const createInvoiceSQL = `
INSERT INTO invoices (id, booking_id, total_amount_cents, status)
VALUES ($1, $2, $3, $4)`

const updateInvoiceStatusSQL = `
UPDATE invoices SET status = $2, updated_at = now() WHERE id = $1`

type InvoiceRepository struct{}

func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{}
}

func (r *InvoiceRepository) Create(ctx context.Context, dbtx db.DBTX, inv *invoice.Invoice) error {
	_, err := dbtx.Exec(ctx, createInvoiceSQL,
		inv.ID(),
		inv.BookingID(),
		inv.TotalCents(),
		inv.Status().String(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create invoice", err, infra.ClassifyPgError(err))
	}
	return nil
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status invoice.Status) error {
	tag, err := dbtx.Exec(ctx, updateInvoiceStatusSQL, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update invoice status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("invoice not found", nil, infra.KindNotFound)
	}
	return nil
}
