package queries

import (
	"context"
	"time"

	"fieldbook/internal/infra"
	"fieldbook/internal/infra/db"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	CustomerID   uuid.UUID `json:"customer_id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	DepositCents int64     `json:"deposit_cents"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	DepositCents int64     `json:"deposit_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookedInterval is one occupied slot on a resource. Callers derive free slots
// by subtracting these from the resource's operating hours.
type BookedInterval struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
}

type InvoiceView struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"booking_id"`
	TotalCents int64     `json:"total_cents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ResourceView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	OwnerID         uuid.UUID `json:"owner_id"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	OpenHour        int       `json:"open_hour"`
	CloseHour       int       `json:"close_hour"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BookingViewRepo interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*BookingView, error)
	FindByCustomerID(ctx context.Context, dbtx db.DBTX, customerID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindBookedIntervals(ctx context.Context, dbtx db.DBTX, resourceID uuid.UUID, from, to time.Time) ([]*BookedInterval, error)
}

type InvoiceViewRepo interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*InvoiceView, error)
	FindByBookingID(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID) (*InvoiceView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*BookingListItem, error)
	// Availability returns the booked intervals of one calendar day. The day is
	// interpreted in loc; pending and confirmed bookings both block.
	Availability(ctx context.Context, resourceID uuid.UUID, date time.Time, loc *time.Location) ([]*BookedInterval, error)
	GetInvoiceForBooking(ctx context.Context, bookingID uuid.UUID) (*InvoiceView, error)
}

type bookingQueriesImpl struct {
	uow      shared.UnitOfWork
	bookings BookingViewRepo
	invoices InvoiceViewRepo
}

func NewBookingQueries(uow shared.UnitOfWork, bookings BookingViewRepo, invoices InvoiceViewRepo) BookingQueries {
	return &bookingQueriesImpl{uow: uow, bookings: bookings, invoices: invoices}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		v, err := q.bookings.FindByID(ctx, dbtx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBookingNotFound)
			}
			return err
		}
		view = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}

	var items []*BookingListItem
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		items, err = q.bookings.FindByCustomerID(ctx, dbtx, customerID, int32(limit))
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (q *bookingQueriesImpl) Availability(ctx context.Context, resourceID uuid.UUID, date time.Time, loc *time.Location) ([]*BookedInterval, error) {
	if loc == nil {
		loc = time.UTC
	}
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	var intervals []*BookedInterval
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		var err error
		intervals, err = q.bookings.FindBookedIntervals(ctx, dbtx, resourceID, dayStart, dayEnd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return intervals, nil
}

func (q *bookingQueriesImpl) GetInvoiceForBooking(ctx context.Context, bookingID uuid.UUID) (*InvoiceView, error) {
	var view *InvoiceView
	err := q.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		inv, err := q.invoices.FindByBookingID(ctx, dbtx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrInvoiceNotFound)
			}
			return errs.Wrap(err, "failed to load invoice for booking")
		}
		view = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
