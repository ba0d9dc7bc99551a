package commands

import (
	"context"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/invoice"
	"fieldbook/internal/events"
	"fieldbook/internal/infra"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	cr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// PaymentResult distinguishes expected business-rule rejections from system
// faults. Paying a non-pending invoice is a no-op with Success=false, not an
// error; callers must be able to tell the two apart.
type PaymentResult struct {
	Success bool
	Invoice *queries.InvoiceView
}

type InvoiceCommands interface {
	// MarkAsPaid sets the invoice paid and the booking confirmed in one
	// transaction; either both change or neither does.
	MarkAsPaid(ctx context.Context, invoiceID uuid.UUID) (*PaymentResult, error)
	// ProcessRefund moves a paid invoice to refunded. The booking is left
	// untouched; cancellation is a separate, explicitly authorized action.
	ProcessRefund(ctx context.Context, invoiceID uuid.UUID) (*PaymentResult, error)
}

type invoiceCommandsImpl struct {
	uow            shared.UnitOfWork
	publisher      events.Publisher
	bookingQueries queries.BookingQueries
}

func NewInvoiceCommands(
	uow shared.UnitOfWork,
	publisher events.Publisher,
	bookingQueries queries.BookingQueries,
) InvoiceCommands {
	return &invoiceCommandsImpl{
		uow:            uow,
		publisher:      publisher,
		bookingQueries: bookingQueries,
	}
}

func (c *invoiceCommandsImpl) MarkAsPaid(ctx context.Context, invoiceID uuid.UUID) (*PaymentResult, error) {
	var (
		rejected  bool
		bookingID uuid.UUID
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := c.loadInvoice(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		bookingID = snap.BookingID

		entity := invoice.ReconstructInvoice(
			snap.ID, snap.BookingID, snap.TotalCents,
			invoice.Status(snap.Status), snap.CreatedAt, snap.UpdatedAt,
		)
		if err := entity.MarkPaid(); err != nil {
			// Already paid or refunded: expected outcome, no mutation.
			rejected = true
			return nil
		}

		if err := tx.Invoices().UpdateStatus(ctx, tx.DB(), snap.ID, invoice.StatusPaid); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		// Paid implies confirmed; both rows change in this transaction or
		// neither does.
		bsnap, err := tx.Reads().BookingByID(ctx, snap.BookingID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		current := booking.Status(bsnap.Status)
		if current == booking.StatusConfirmed {
			return nil
		}
		if _, err := booking.ApplyTransition(current, booking.StatusConfirmed); err != nil {
			return errs.Mark(err, errs.ErrIllegalTransition)
		}
		return tx.Bookings().UpdateStatus(ctx, tx.DB(), snap.BookingID, booking.StatusConfirmed)
	})
	if err != nil {
		return nil, err
	}

	if rejected {
		return &PaymentResult{Success: false}, nil
	}

	c.publisher.Publish(ctx, events.KeyInvoicePaid, map[string]any{
		"invoice_id": invoiceID,
		"booking_id": bookingID,
	})

	view, err := c.bookingQueries.GetInvoiceForBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &PaymentResult{Success: true, Invoice: view}, nil
}

func (c *invoiceCommandsImpl) ProcessRefund(ctx context.Context, invoiceID uuid.UUID) (*PaymentResult, error) {
	var (
		rejected  bool
		bookingID uuid.UUID
	)

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := c.loadInvoice(ctx, tx, invoiceID)
		if err != nil {
			return err
		}
		bookingID = snap.BookingID

		entity := invoice.ReconstructInvoice(
			snap.ID, snap.BookingID, snap.TotalCents,
			invoice.Status(snap.Status), snap.CreatedAt, snap.UpdatedAt,
		)
		if err := entity.MarkRefunded(); err != nil {
			rejected = true
			return nil
		}

		return tx.Invoices().UpdateStatus(ctx, tx.DB(), snap.ID, invoice.StatusRefunded)
	})
	if err != nil {
		return nil, err
	}

	if rejected {
		return &PaymentResult{Success: false}, nil
	}

	c.publisher.Publish(ctx, events.KeyInvoiceRefunded, map[string]any{
		"invoice_id": invoiceID,
		"booking_id": bookingID,
	})

	view, err := c.bookingQueries.GetInvoiceForBooking(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return &PaymentResult{Success: true, Invoice: view}, nil
}

func (c *invoiceCommandsImpl) loadInvoice(ctx context.Context, tx shared.Tx, invoiceID uuid.UUID) (*shared.InvoiceSnapshot, error) {
	snap, err := tx.Reads().InvoiceByID(ctx, invoiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrInvoiceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !invoice.Status(snap.Status).IsValid() {
		return nil, cr.Newf("invoice %s has unknown status %q", snap.ID, snap.Status)
	}
	return snap, nil
}
