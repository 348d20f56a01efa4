package handlers

import (
	"net/http"
	"sort"

	"bima-invoice/internal/common"
	"bima-invoice/internal/models"
	"bima-invoice/internal/money"
	"bima-invoice/internal/services"

	"github.com/labstack/echo/v4"
)

// InvoiceHandlers handles HTTP requests for invoices
type InvoiceHandlers struct {
	invoiceService  services.InvoiceServiceInterface
	settingsService services.SettingsServiceInterface
}

// NewInvoiceHandlers creates a new invoice handlers instance
func NewInvoiceHandlers(invoiceService services.InvoiceServiceInterface, settingsService services.SettingsServiceInterface) *InvoiceHandlers {
	return &InvoiceHandlers{
		invoiceService:  invoiceService,
		settingsService: settingsService,
	}
}

// CreateInvoice handles POST /invoices. The body is a draft invoice; the
// identifier, invoice number, totals snapshot and payment status are
// assigned server-side.
func (h *InvoiceHandlers) CreateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	var draft models.Invoice
	if err := c.Bind(&draft); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if len(draft.LineItems) == 0 {
		return common.SendValidationError(c, "line_items", "Invoice must have at least one line item")
	}
	common.ClampInvoiceInput(&draft)

	if draft.Currency == "" {
		settings, err := h.settingsService.Get(ctx)
		if err != nil {
			return common.SendServerError(c, "Failed to load settings: "+err.Error())
		}
		draft.Currency = settings.DefaultCurrency
		if draft.VATRate == 0 {
			draft.VATRate = settings.VATRate
		}
		if draft.Notes == "" {
			draft.Notes = settings.InvoiceNotes
		}
	}

	invoice, err := h.invoiceService.Create(ctx, &draft)
	if err != nil {
		return common.SendServerError(c, "Failed to create invoice: "+err.Error())
	}

	return c.JSON(http.StatusCreated, invoice)
}

// ListInvoices handles GET /invoices. The store returns invoices unordered;
// they are sorted here, newest first, for display.
func (h *InvoiceHandlers) ListInvoices(c echo.Context) error {
	ctx := c.Request().Context()

	invoices, err := h.invoiceService.List(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list invoices: "+err.Error())
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].Date.After(invoices[j].Date)
	})

	return c.JSON(http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

// GetInvoice handles GET /invoices/:id
func (h *InvoiceHandlers) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	invoice, err := h.invoiceService.GetByID(ctx, invoiceID)
	if err != nil {
		return common.SendServerError(c, "Failed to get invoice: "+err.Error())
	}
	if invoice == nil {
		return common.SendNotFoundError(c, "invoice")
	}

	return c.JSON(http.StatusOK, invoice)
}

// UpdateInvoice handles PUT /invoices/:id. The body must be the complete
// invoice with a totals snapshot consistent with its line items; the service
// rejects stale totals rather than silently recomputing.
func (h *InvoiceHandlers) UpdateInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var invoice models.Invoice
	if err := c.Bind(&invoice); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	invoice.ID = invoiceID
	common.ClampInvoiceInput(&invoice)

	if err := h.invoiceService.Update(ctx, &invoice); err != nil {
		return common.SendServerError(c, "Failed to update invoice: "+err.Error())
	}

	return c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice handles DELETE /invoices/:id
func (h *InvoiceHandlers) DeleteInvoice(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.invoiceService.Delete(ctx, invoiceID); err != nil {
		return common.SendServerError(c, "Failed to delete invoice: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Invoice deleted successfully",
	})
}

// NextInvoiceNumber handles GET /invoices/next-number. The preview is
// computed from current store contents and is subject to the documented
// double-allocation race with concurrent creates.
func (h *InvoiceHandlers) NextInvoiceNumber(c echo.Context) error {
	ctx := c.Request().Context()

	number, err := h.invoiceService.NextNumber(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to compute next invoice number: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"next_invoice_number": number,
	})
}

// ConfirmPayment handles POST /invoices/:id/payment/confirm
func (h *InvoiceHandlers) ConfirmPayment(c echo.Context) error {
	return h.togglePayment(c, true)
}

// RevertPayment handles POST /invoices/:id/payment/revert
func (h *InvoiceHandlers) RevertPayment(c echo.Context) error {
	return h.togglePayment(c, false)
}

func (h *InvoiceHandlers) togglePayment(c echo.Context, confirm bool) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var invoice *models.Invoice
	if confirm {
		invoice, err = h.invoiceService.ConfirmPayment(ctx, invoiceID)
	} else {
		invoice, err = h.invoiceService.RevertPayment(ctx, invoiceID)
	}
	if err != nil {
		return common.SendServerError(c, "Failed to update payment status: "+err.Error())
	}

	return c.JSON(http.StatusOK, invoice)
}

// ValidateInvoiceTotals handles GET /invoices/:id/validate-totals. It
// recomputes the totals snapshot and reports whether the stored values match.
func (h *InvoiceHandlers) ValidateInvoiceTotals(c echo.Context) error {
	ctx := c.Request().Context()

	invoiceID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	invoice, err := h.invoiceService.GetByID(ctx, invoiceID)
	if err != nil {
		return common.SendServerError(c, "Failed to get invoice: "+err.Error())
	}
	if invoice == nil {
		return common.SendNotFoundError(c, "invoice")
	}

	recomputed := money.InvoiceTotals(invoice.LineItems, invoice.VATRate, invoice.Client.VATExempt)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"valid":      money.ValidateTotals(invoice),
		"stored":     money.Totals{Subtotal: invoice.Subtotal, TotalVAT: invoice.TotalVAT, GrandTotal: invoice.GrandTotal},
		"recomputed": recomputed,
	})
}
