package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fieldbook/internal/domain/booking"
	"fieldbook/internal/domain/invoice"
	"fieldbook/internal/events"
	"fieldbook/internal/infra"
	"fieldbook/internal/pkg/clock"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/queries"
	"fieldbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	ResourceID   uuid.UUID
	CustomerID   uuid.UUID
	StartTime    time.Time
	EndTime      time.Time
	DepositCents int64
}

type CreateBookingResult struct {
	Booking *queries.BookingView
	Quote   booking.Quote
	// Invoice is nil for free reservations and when invoicing failed.
	Invoice *queries.InvoiceView
	// InvoiceErr reports an invoice-creation failure that happened after the
	// booking committed. The booking stands either way.
	InvoiceErr error
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error)
	Confirm(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error)
	Complete(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	resources      ResourceReader
	calc           booking.PriceCalculator
	publisher      events.Publisher
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	resources ResourceReader,
	calc booking.PriceCalculator,
	publisher events.Publisher,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		resources:      resources,
		calc:           calc,
		publisher:      publisher,
		bookingQueries: bookingQueries,
		clock:          clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*CreateBookingResult, error) {
	// All validation happens before any transaction opens.
	entity, err := c.validateAndBuild(params)
	if err != nil {
		return nil, err
	}

	resource, err := c.resolveResource(ctx, params.ResourceID)
	if err != nil {
		return nil, err
	}

	if err := c.reserveSlot(ctx, entity); err != nil {
		return nil, err
	}

	quote := c.calc.Calculate(entity.TimeSlot(), resource.HourlyRateCents, entity.Deposit())

	result := &CreateBookingResult{Quote: quote}

	if quote.TotalCents > 0 {
		inv, invErr := c.createInvoiceForBooking(ctx, entity.ID(), quote.TotalCents)
		if invErr != nil {
			// The booking committed already; never unwind it over invoicing.
			slog.Warn("invoice creation failed after booking commit",
				"booking_id", entity.ID().String(),
				"error", invErr.Error())
			result.InvoiceErr = invErr
		} else {
			result.Invoice = inv
		}
	}

	c.publisher.Publish(ctx, events.KeyBookingCreated, map[string]any{
		"booking_id":  entity.ID(),
		"resource_id": entity.ResourceID(),
		"customer_id": entity.CustomerID(),
		"start_time":  entity.TimeSlot().Start(),
		"end_time":    entity.TimeSlot().End(),
		"total_cents": quote.TotalCents,
	})

	view, err := c.bookingQueries.GetByID(ctx, entity.ID())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	result.Booking = view

	return result, nil
}

func (c *bookingCommandsImpl) validateAndBuild(params CreateBookingParams) (*booking.Booking, error) {
	if params.ResourceID == uuid.Nil || params.CustomerID == uuid.Nil {
		return nil, errs.Mark(errs.New("resource and customer are required"), errs.ErrDomainValidation)
	}

	deposit, err := booking.NewMoney(params.DepositCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	slot, err := booking.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	entity, err := booking.NewBooking(params.ResourceID, params.CustomerID, slot, deposit, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}
	return entity, nil
}

func (c *bookingCommandsImpl) resolveResource(ctx context.Context, resourceID uuid.UUID) (*shared.ResourceSnapshot, error) {
	resource, err := c.resources.ResourceByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrResourceNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return resource, nil
}

// reserveSlot holds the whole conflict-check-then-insert sequence inside one
// transaction. The resource row lock serializes concurrent writers, so of any
// set of overlapping candidates exactly one insert succeeds; the exclusion
// constraint backstops the same invariant at the storage level.
func (c *bookingCommandsImpl) reserveSlot(ctx context.Context, entity *booking.Booking) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().LockResource(ctx, tx.DB(), entity.ResourceID()); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrResourceNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		overlaps, err := tx.Bookings().HasOverlap(ctx, tx.DB(), entity.ResourceID(), entity.TimeSlot())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if overlaps {
			return errs.ErrBookingConflict
		}

		if err := tx.Bookings().Create(ctx, tx.DB(), entity); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, errs.ErrBookingConflict)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *bookingCommandsImpl) createInvoiceForBooking(ctx context.Context, bookingID uuid.UUID, totalCents int64) (*queries.InvoiceView, error) {
	inv, err := invoice.NewInvoice(bookingID, totalCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Invoices().Create(ctx, tx.DB(), inv)
	})
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return c.bookingQueries.GetInvoiceForBooking(ctx, bookingID)
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, booking.StatusConfirmed, actor, events.KeyBookingConfirmed)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, booking.StatusCancelled, actor, events.KeyBookingCancelled)
}

func (c *bookingCommandsImpl) Complete(ctx context.Context, bookingID uuid.UUID, actor Actor) (*queries.BookingView, error) {
	return c.transition(ctx, bookingID, booking.StatusCompleted, actor, events.KeyBookingCompleted)
}

func (c *bookingCommandsImpl) transition(
	ctx context.Context,
	bookingID uuid.UUID,
	target booking.Status,
	actor Actor,
	eventKey string,
) (*queries.BookingView, error) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrBookingNotFound)
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		resource, err := tx.Reads().ResourceByID(ctx, snap.ResourceID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := authorizeTransition(actor, snap, resource, target); err != nil {
			return err
		}

		if _, err := booking.ApplyTransition(booking.Status(snap.Status), target); err != nil {
			return errs.Mark(err, errs.ErrIllegalTransition)
		}

		return tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, target)
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(ctx, eventKey, map[string]any{
		"booking_id": bookingID,
		"status":     target.String(),
		"actor_id":   actor.ID,
	})

	return c.bookingQueries.GetByID(ctx, bookingID)
}

// authorizeTransition checks role-appropriateness only; authentication already
// happened upstream. Cancelling is open to the booking's customer; confirm and
// complete require the resource owner or an admin.
//
// TODO: product has not decided whether a second owner-delegate role may
// confirm; revisit once the ownership model is settled.
func authorizeTransition(actor Actor, snap *shared.BookingSnapshot, resource *shared.ResourceSnapshot, target booking.Status) error {
	if isElevatedFor(actor, resource) {
		return nil
	}

	if target == booking.StatusCancelled && snap.CustomerID == actor.ID {
		return nil
	}

	return errs.Mark(errors.New(string(target)+" not permitted for this actor"), errs.ErrNotAuthorized)
}

func isElevatedFor(actor Actor, resource *shared.ResourceSnapshot) bool {
	if actor.Role == booking.RoleAdmin {
		return true
	}
	return actor.Role == booking.RoleOwner && resource.OwnerID == actor.ID
}
