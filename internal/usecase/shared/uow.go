package shared

import (
	"context"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/invoice"
	"fieldbook/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the single transaction boundary for the engine. Every mutation
// of booking or invoice rows goes through Within; no code path may read-then-
// write outside it. The transaction handle is threaded explicitly through the
// call chain, never held in ambient state.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Invoices() InvoiceRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*ResourceSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	InvoiceByID(ctx context.Context, id uuid.UUID) (*InvoiceSnapshot, error)
	InvoiceByBookingID(ctx context.Context, bookingID uuid.UUID) (*InvoiceSnapshot, error)
}

type BookingRepository interface {
	// LockResource serializes writers for one resource within the transaction.
	// The overlap check and insert that follow rely on holding this lock.
	LockResource(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID) error
	// HasOverlap reports whether any pending or confirmed booking on the
	// resource intersects the candidate slot. Must run inside the same
	// transaction as the subsequent Create.
	HasOverlap(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, slot booking.TimeSlot) (bool, error)
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status booking.Status) error
}

type InvoiceRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, inv *invoice.Invoice) error
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status invoice.Status) error
}
