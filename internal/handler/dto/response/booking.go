package response

import (
	"time"

	"fieldbook/internal/usecase/commands"
	"fieldbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	CustomerID   uuid.UUID `json:"customerId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	DepositCents int64     `json:"depositCents"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	DepositCents int64     `json:"depositCents"`
	CreatedAt    time.Time `json:"createdAt"`
}

type QuoteResponse struct {
	Hours      int   `json:"hours"`
	TotalCents int64 `json:"totalCents"`
}

type CreateBookingResponse struct {
	Booking *BookingResponse `json:"booking"`
	Quote   QuoteResponse    `json:"quote"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
	// InvoicePending is set when the booking committed but the invoice could
	// not be written; billing is retried out of band.
	InvoicePending bool `json:"invoicePending,omitempty"`
}

type BookedIntervalResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

type AvailabilityResponse struct {
	ResourceID uuid.UUID                 `json:"resourceId"`
	Date       string                    `json:"date"`
	Booked     []*BookedIntervalResponse `json:"booked"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingListItem(rm *queries.BookingListItem) *BookingListResponse {
	var resp BookingListResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromCreateBookingResult(result *commands.CreateBookingResult) *CreateBookingResponse {
	resp := &CreateBookingResponse{
		Booking: FromBookingView(result.Booking),
		Quote: QuoteResponse{
			Hours:      result.Quote.Hours,
			TotalCents: result.Quote.TotalCents,
		},
		InvoicePending: result.InvoiceErr != nil,
	}
	if result.Invoice != nil {
		resp.Invoice = FromInvoiceView(result.Invoice)
	}
	return resp
}

func FromBookedIntervals(resourceID uuid.UUID, date string, intervals []*queries.BookedInterval) *AvailabilityResponse {
	booked := make([]*BookedIntervalResponse, len(intervals))
	for i, iv := range intervals {
		var resp BookedIntervalResponse
		_ = copier.Copy(&resp, iv)
		booked[i] = &resp
	}
	return &AvailabilityResponse{
		ResourceID: resourceID,
		Date:       date,
		Booked:     booked,
	}
}
