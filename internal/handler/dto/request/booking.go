package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID   uuid.UUID `json:"resource_id" binding:"required"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	DepositCents int64     `json:"deposit_cents" binding:"gte=0"`
}
