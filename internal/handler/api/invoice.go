package api

import (
	"context"
	"errors"
	"net/http"

	resdto "fieldbook/internal/handler/dto/response"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InvoiceHandler struct {
	invoiceCommands commands.InvoiceCommands
}

func NewInvoiceHandler(invoiceCommands commands.InvoiceCommands) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceCommands: invoiceCommands,
	}
}

// @Summary Pay invoice
// @Description Mark an invoice paid and confirm its booking atomically
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invoices/{id}/pay [post]
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	h.process(c, h.invoiceCommands.MarkAsPaid)
}

// @Summary Refund invoice
// @Description Move a paid invoice to refunded; the booking is untouched
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /invoices/{id}/refund [post]
func (h *InvoiceHandler) RefundInvoice(c *gin.Context) {
	h.process(c, h.invoiceCommands.ProcessRefund)
}

func (h *InvoiceHandler) process(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*commands.PaymentResult, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid invoice ID format",
		})
		return
	}

	result, err := op(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvoiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Invoice not found",
			})
		case errors.Is(err, errs.ErrIllegalTransition):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Booking status does not allow this transition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}
