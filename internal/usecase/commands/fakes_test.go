//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/invoice"
	"fieldbook/internal/events"
	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, errors.New("no rows"), infra.KindNotFound)
}

func storageConflict() error {
	return infra.WrapRepoErr("slot conflicts with an existing booking", errors.New("exclusion violation"), infra.KindConflict)
}

type bookingStatusUpdate struct {
	ID     uuid.UUID
	Status booking.Status
}

type invoiceStatusUpdate struct {
	ID     uuid.UUID
	Status invoice.Status
}

// The fake repos mirror writes into the fake command reads so read-after-write
// lookups observe them, the way committed rows would be visible.
type fakeBookingRepo struct {
	reads *fakeCommandReads

	lockErr    error
	overlap    bool
	overlapErr error
	createErr  error
	updateErr  error

	lockedResources []uuid.UUID
	created         []*booking.Booking
	statusUpdates   []bookingStatusUpdate
}

func (f *fakeBookingRepo) LockResource(_ context.Context, _ db.DBTX, resourceID uuid.UUID) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	f.lockedResources = append(f.lockedResources, resourceID)
	return nil
}

func (f *fakeBookingRepo) HasOverlap(context.Context, db.DBTX, uuid.UUID, booking.TimeSlot) (bool, error) {
	return f.overlap, f.overlapErr
}

func (f *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	f.reads.bookings[b.ID()] = &shared.BookingSnapshot{
		ID:           b.ID(),
		ResourceID:   b.ResourceID(),
		CustomerID:   b.CustomerID(),
		Status:       b.Status().String(),
		StartTime:    b.TimeSlot().Start(),
		EndTime:      b.TimeSlot().End(),
		DepositCents: b.Deposit().Cents(),
	}
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status booking.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, bookingStatusUpdate{ID: id, Status: status})
	if snap, ok := f.reads.bookings[id]; ok {
		snap.Status = status.String()
	}
	return nil
}

type fakeInvoiceRepo struct {
	reads *fakeCommandReads

	createErr error
	updateErr error

	created       []*invoice.Invoice
	statusUpdates []invoiceStatusUpdate
}

func (f *fakeInvoiceRepo) Create(_ context.Context, _ db.DBTX, inv *invoice.Invoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, inv)
	f.reads.invoices[inv.ID()] = &shared.InvoiceSnapshot{
		ID:         inv.ID(),
		BookingID:  inv.BookingID(),
		TotalCents: inv.TotalCents(),
		Status:     inv.Status().String(),
	}
	return nil
}

func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status invoice.Status) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, invoiceStatusUpdate{ID: id, Status: status})
	if snap, ok := f.reads.invoices[id]; ok {
		snap.Status = status.String()
	}
	return nil
}

type fakeCommandReads struct {
	resources map[uuid.UUID]*shared.ResourceSnapshot
	bookings  map[uuid.UUID]*shared.BookingSnapshot
	invoices  map[uuid.UUID]*shared.InvoiceSnapshot
}

func newFakeCommandReads() *fakeCommandReads {
	return &fakeCommandReads{
		resources: make(map[uuid.UUID]*shared.ResourceSnapshot),
		bookings:  make(map[uuid.UUID]*shared.BookingSnapshot),
		invoices:  make(map[uuid.UUID]*shared.InvoiceSnapshot),
	}
}

func (f *fakeCommandReads) ResourceByID(_ context.Context, id uuid.UUID) (*shared.ResourceSnapshot, error) {
	if r, ok := f.resources[id]; ok {
		return r, nil
	}
	return nil, notFound("resource not found")
}

func (f *fakeCommandReads) BookingByID(_ context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	if b, ok := f.bookings[id]; ok {
		return b, nil
	}
	return nil, notFound("booking not found")
}

func (f *fakeCommandReads) InvoiceByID(_ context.Context, id uuid.UUID) (*shared.InvoiceSnapshot, error) {
	if inv, ok := f.invoices[id]; ok {
		return inv, nil
	}
	return nil, notFound("invoice not found")
}

func (f *fakeCommandReads) InvoiceByBookingID(_ context.Context, bookingID uuid.UUID) (*shared.InvoiceSnapshot, error) {
	for _, inv := range f.invoices {
		if inv.BookingID == bookingID {
			return inv, nil
		}
	}
	return nil, notFound("invoice not found")
}

type fakeTx struct {
	bookings *fakeBookingRepo
	invoices *fakeInvoiceRepo
	reads    *fakeCommandReads
}

func (t *fakeTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *fakeTx) Invoices() shared.InvoiceRepository { return t.invoices }
func (t *fakeTx) Reads() shared.CommandReads         { return t.reads }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeUoW struct {
	tx          *fakeTx
	withinCalls int
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.withinCalls++
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return u.tx.reads
}

type publishedEvent struct {
	Key     string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, key string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Key: key, Payload: payload})
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, len(p.events))
	for i, e := range p.events {
		keys[i] = e.Key
	}
	return keys
}

var _ events.Publisher = (*recordingPublisher)(nil)

// fakeBookingQueries serves read-after-write lookups from the command reads so
// tests never need a second data source.
type fakeBookingQueries struct {
	reads *fakeCommandReads
}

func (q *fakeBookingQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	snap, err := q.reads.BookingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &queries.BookingView{
		ID:           snap.ID,
		ResourceID:   snap.ResourceID,
		CustomerID:   snap.CustomerID,
		StartTime:    snap.StartTime,
		EndTime:      snap.EndTime,
		Status:       snap.Status,
		DepositCents: snap.DepositCents,
		CreatedAt:    snap.CreatedAt,
		UpdatedAt:    snap.UpdatedAt,
	}, nil
}

func (q *fakeBookingQueries) ListByCustomer(context.Context, uuid.UUID, int) ([]*queries.BookingListItem, error) {
	return nil, nil
}

func (q *fakeBookingQueries) Availability(context.Context, uuid.UUID, time.Time, *time.Location) ([]*queries.BookedInterval, error) {
	return nil, nil
}

func (q *fakeBookingQueries) GetInvoiceForBooking(ctx context.Context, bookingID uuid.UUID) (*queries.InvoiceView, error) {
	snap, err := q.reads.InvoiceByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &queries.InvoiceView{
		ID:         snap.ID,
		BookingID:  snap.BookingID,
		TotalCents: snap.TotalCents,
		Status:     snap.Status,
		CreatedAt:  snap.CreatedAt,
		UpdatedAt:  snap.UpdatedAt,
	}, nil
}
