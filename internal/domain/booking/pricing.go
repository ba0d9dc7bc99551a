package booking

import "time"

// Quote is the billable breakdown for one slot. Partial hours always round up.
type Quote struct {
	Hours      int
	TotalCents int64
}

type PriceCalculator interface {
	Calculate(slot TimeSlot, hourlyRateCents int64, deposit Money) Quote
}

type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

// Calculate bills ceil(duration / 1h) hours at the resource rate, minus the
// deposit, floored at zero.
func (pc *HourlyPriceCalculator) Calculate(slot TimeSlot, hourlyRateCents int64, deposit Money) Quote {
	hours := int((slot.Duration() + time.Hour - 1) / time.Hour)

	total := int64(hours)*hourlyRateCents - deposit.Cents()
	if total < 0 {
		total = 0
	}

	return Quote{
		Hours:      hours,
		TotalCents: total,
	}
}
