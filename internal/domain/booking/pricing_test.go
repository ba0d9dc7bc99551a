//go:build unit

package booking_test

import (
	"testing"
	"time"

	"fieldbook/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestHourlyPriceCalculator(t *testing.T) {
	calc := booking.NewHourlyPriceCalculator()

	money := func(cents int64) booking.Money {
		m, err := booking.NewMoney(cents)
		require.NoError(t, err)
		return m
	}

	cases := []struct {
		name            string
		duration        time.Duration
		hourlyRateCents int64
		deposit         booking.Money
		want            booking.Quote
	}{
		{
			name:            "two full hours",
			duration:        2 * time.Hour,
			hourlyRateCents: 200000,
			deposit:         money(0),
			want:            booking.Quote{Hours: 2, TotalCents: 400000},
		},
		{
			name:            "partial hour rounds up",
			duration:        45 * time.Minute,
			hourlyRateCents: 200000,
			deposit:         money(50000),
			want:            booking.Quote{Hours: 1, TotalCents: 150000},
		},
		{
			name:            "ninety minutes bill as two hours",
			duration:        90 * time.Minute,
			hourlyRateCents: 100000,
			deposit:         money(0),
			want:            booking.Quote{Hours: 2, TotalCents: 200000},
		},
		{
			name:            "deposit larger than price floors at zero",
			duration:        time.Hour,
			hourlyRateCents: 100000,
			deposit:         money(250000),
			want:            booking.Quote{Hours: 1, TotalCents: 0},
		},
		{
			name:            "deposit exactly covers price",
			duration:        time.Hour,
			hourlyRateCents: 100000,
			deposit:         money(100000),
			want:            booking.Quote{Hours: 1, TotalCents: 0},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			slot, err := booking.NewTimeSlot(base, base.Add(c.duration))
			require.NoError(t, err)

			got := calc.Calculate(slot, c.hourlyRateCents, c.deposit)

			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Errorf("quote mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
