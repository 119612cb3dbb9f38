package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
	"github.com/Karasal/Call-Sal-sub000/internal/booking"
	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

type createInvoiceRequest struct {
	ClientID    string  `json:"clientId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// CreateInvoice issues a pending invoice. Admin only.
func (h *Handlers) CreateInvoice(c echo.Context) error {
	principal, _ := h.CurrentPrincipal(c)

	var req createInvoiceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c)
	}

	invoice, err := h.billing.Issue(c.Request().Context(), principal, application.InvoiceInput{
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, invoice)
}

// ListInvoices returns invoices. The administrator may narrow to a
// client via ?client_id=; clients always see only their own.
func (h *Handlers) ListInvoices(c echo.Context) error {
	principal, ok := h.CurrentPrincipal(c)
	if !ok {
		return writeServiceError(c, booking.ErrLoginRequired)
	}

	clientID := principal.UserID
	if principal.IsAdmin {
		clientID = c.QueryParam("client_id")
	}

	invoices := h.billing.ListFor(c.Request().Context(), clientID)
	if invoices == nil {
		invoices = []portal.Invoice{}
	}
	return c.JSON(http.StatusOK, invoices)
}

// PayInvoice marks an invoice as paid. Admin only. Unknown ids leave
// the collection untouched and still answer 204, matching the store's
// silent no-op contract.
func (h *Handlers) PayInvoice(c echo.Context) error {
	principal, _ := h.CurrentPrincipal(c)

	if err := h.billing.MarkPaid(c.Request().Context(), principal, c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
