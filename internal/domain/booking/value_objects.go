package booking

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeSlot = errors.New("start time must be before end time")
	ErrStartNotFuture  = errors.New("start time must be in the future")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
)

// TimeSlot is a half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{start: start, end: end}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// ValidateFutureAt rejects slots whose start is not strictly after now.
func (ts TimeSlot) ValidateFutureAt(now time.Time) error {
	if !ts.start.After(now) {
		return ErrStartNotFuture
	}
	return nil
}

// Overlaps is the half-open overlap test: [a,b) and [s,e) intersect iff
// a < e && b > s. Covers containment, partial overlap and exact match;
// back-to-back slots sharing only an endpoint do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && ts.end.After(other.start)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}
