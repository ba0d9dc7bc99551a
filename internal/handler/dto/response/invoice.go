package response

import (
	"time"

	"fieldbook/internal/usecase/commands"
	"fieldbook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type InvoiceResponse struct {
	ID         uuid.UUID `json:"id"`
	BookingID  uuid.UUID `json:"bookingId"`
	TotalCents int64     `json:"totalCents"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type PaymentResponse struct {
	Success bool             `json:"success"`
	Invoice *InvoiceResponse `json:"invoice,omitempty"`
}

func FromInvoiceView(rm *queries.InvoiceView) *InvoiceResponse {
	var resp InvoiceResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromPaymentResult(result *commands.PaymentResult) *PaymentResponse {
	resp := &PaymentResponse{Success: result.Success}
	if result.Invoice != nil {
		resp.Invoice = FromInvoiceView(result.Invoice)
	}
	return resp
}
