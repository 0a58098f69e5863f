package handlers

import (
	"net/http"

	"flightschool/internal/domain/models"
	"flightschool/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/invoices?user_id=4&status=pending
func (h *Handlers) ListInvoices(c *gin.Context) {
	var f models.InvoiceFilter
	var ok bool
	if f.UserID, ok = queryID(c, "user_id"); !ok {
		return
	}
	f.Status = models.InvoiceStatus(c.Query("status"))
	list, err := h.invoiceService(c).List(c.Request.Context(), actor(c), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handlers) GetInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoiceService(c).Get(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handlers) CreateInvoice(c *gin.Context) {
	var in services.InvoiceInput
	if !BindJSONOrError(c, &in) {
		return
	}
	inv, err := h.invoiceService(c).Create(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// POST /api/invoices/:id/payments
// Credit is drawn first when use_credit is set; any remainder needs payment_method.
func (h *Handlers) RecordPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in services.PaymentInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.paymentService(c).RecordPayment(c.Request.Context(), actor(c), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handlers) CancelInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	inv, err := h.invoiceService(c).Cancel(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// GET /api/invoices/:id/pdf
func (h *Handlers) InvoicePDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	pdf, filename, err := h.docsService(c).InvoicePDF(c.Request.Context(), actor(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sendPDF(c, pdf, filename)
}

// POST /api/charges/quote
func (h *Handlers) QuoteCharges(c *gin.Context) {
	var in services.QuoteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	q, err := h.invoiceService(c).Quote(c.Request.Context(), actor(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, q)
}
