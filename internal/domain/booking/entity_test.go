//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fieldbook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingBooking(t *testing.T) *booking.Booking {
	t.Helper()

	slot, err := booking.NewTimeSlot(base.Add(time.Hour), base.Add(3*time.Hour))
	require.NoError(t, err)
	deposit, err := booking.NewMoney(0)
	require.NoError(t, err)

	b, err := booking.NewBooking(uuid.New(), uuid.New(), slot, deposit, base)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("starts pending with a fresh id", func(t *testing.T) {
		b := newPendingBooking(t)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.True(t, b.IsBlocking())
	})

	t.Run("rejects slot starting in the past", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(base.Add(-time.Hour), base.Add(time.Hour))
		require.NoError(t, err)
		deposit, err := booking.NewMoney(0)
		require.NoError(t, err)

		_, err = booking.NewBooking(uuid.New(), uuid.New(), slot, deposit, base)
		require.ErrorIs(t, err, booking.ErrStartNotFuture)
	})

	t.Run("rejects slot starting exactly now", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(base, base.Add(time.Hour))
		require.NoError(t, err)
		deposit, err := booking.NewMoney(0)
		require.NoError(t, err)

		_, err = booking.NewBooking(uuid.New(), uuid.New(), slot, deposit, base)
		require.ErrorIs(t, err, booking.ErrStartNotFuture)
	})
}

func TestBookingLifecycle(t *testing.T) {
	t.Run("pending confirm then complete", func(t *testing.T) {
		b := newPendingBooking(t)

		require.NoError(t, b.Confirm())
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		require.NoError(t, b.Complete())
		assert.Equal(t, booking.StatusCompleted, b.Status())
		assert.False(t, b.IsBlocking())
	})

	t.Run("pending cancel", func(t *testing.T) {
		b := newPendingBooking(t)

		require.NoError(t, b.Cancel())
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.False(t, b.IsBlocking())
	})

	t.Run("cancelled rejects everything", func(t *testing.T) {
		b := newPendingBooking(t)
		require.NoError(t, b.Cancel())

		var transitionErr *booking.IllegalTransitionError
		require.ErrorAs(t, b.Confirm(), &transitionErr)
		require.ErrorAs(t, b.Complete(), &transitionErr)
		require.ErrorAs(t, b.Cancel(), &transitionErr)
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("pending cannot complete directly", func(t *testing.T) {
		b := newPendingBooking(t)

		var transitionErr *booking.IllegalTransitionError
		require.ErrorAs(t, b.Complete(), &transitionErr)
		assert.Equal(t, booking.StatusPending, b.Status())
	})
}

func TestBookingBelongsTo(t *testing.T) {
	customerID := uuid.New()

	slot, err := booking.NewTimeSlot(base.Add(time.Hour), base.Add(2*time.Hour))
	require.NoError(t, err)
	deposit, err := booking.NewMoney(0)
	require.NoError(t, err)

	b, err := booking.NewBooking(uuid.New(), customerID, slot, deposit, base)
	require.NoError(t, err)

	assert.True(t, b.BelongsTo(customerID))
	assert.False(t, b.BelongsTo(uuid.New()))
}
