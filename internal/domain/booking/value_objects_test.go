//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fieldbook/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

func slot(t *testing.T, startOffset, endOffset time.Duration) booking.TimeSlot {
	t.Helper()
	s, err := booking.NewTimeSlot(base.Add(startOffset), base.Add(endOffset))
	require.NoError(t, err)
	return s
}

func TestNewTimeSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		s, err := booking.NewTimeSlot(base, base.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, base, s.Start())
		assert.Equal(t, base.Add(2*time.Hour), s.End())
		assert.Equal(t, 2*time.Hour, s.Duration())
	})

	t.Run("start equal to end", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base, base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base.Add(time.Hour), base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})
}

func TestTimeSlotValidateFutureAt(t *testing.T) {
	s := slot(t, 0, 2*time.Hour)

	t.Run("start in the future", func(t *testing.T) {
		assert.NoError(t, s.ValidateFutureAt(base.Add(-time.Minute)))
	})

	t.Run("start equal to now", func(t *testing.T) {
		assert.ErrorIs(t, s.ValidateFutureAt(base), booking.ErrStartNotFuture)
	})

	t.Run("start in the past", func(t *testing.T) {
		assert.ErrorIs(t, s.ValidateFutureAt(base.Add(time.Minute)), booking.ErrStartNotFuture)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	cases := []struct {
		name     string
		a, b     booking.TimeSlot
		overlaps bool
	}{
		{
			name:     "identical slots",
			a:        slot(t, 0, 2*time.Hour),
			b:        slot(t, 0, 2*time.Hour),
			overlaps: true,
		},
		{
			name:     "partial overlap at the end",
			a:        slot(t, 0, 2*time.Hour),
			b:        slot(t, time.Hour, 3*time.Hour),
			overlaps: true,
		},
		{
			name:     "containment",
			a:        slot(t, 0, 4*time.Hour),
			b:        slot(t, time.Hour, 2*time.Hour),
			overlaps: true,
		},
		{
			name:     "back to back slots share only an endpoint",
			a:        slot(t, 0, 2*time.Hour),
			b:        slot(t, 2*time.Hour, 4*time.Hour),
			overlaps: false,
		},
		{
			name:     "disjoint slots",
			a:        slot(t, 0, time.Hour),
			b:        slot(t, 3*time.Hour, 4*time.Hour),
			overlaps: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, c.a.Overlaps(c.b))
			// Overlap is symmetric
			assert.Equal(t, c.overlaps, c.b.Overlaps(c.a))
		})
	}
}

func TestNewMoney(t *testing.T) {
	t.Run("zero is allowed", func(t *testing.T) {
		m, err := booking.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, m.IsZero())
	})

	t.Run("positive amount", func(t *testing.T) {
		m, err := booking.NewMoney(50000)
		require.NoError(t, err)
		assert.Equal(t, int64(50000), m.Cents())
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := booking.NewMoney(-1)
		require.ErrorIs(t, err, booking.ErrNegativeAmount)
	})
}
