package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots keep command code off the read-side view types.
type ResourceSnapshot struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
	OwnerID         uuid.UUID
	OpenHour        int
	CloseHour       int
}

type BookingSnapshot struct {
	ID           uuid.UUID
	ResourceID   uuid.UUID
	CustomerID   uuid.UUID
	Status       string
	StartTime    time.Time
	EndTime      time.Time
	DepositCents int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type InvoiceSnapshot struct {
	ID         uuid.UUID
	BookingID  uuid.UUID
	TotalCents int64
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
