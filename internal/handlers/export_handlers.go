package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"time"

	"bima-invoice/internal/analytics"
	"bima-invoice/internal/common"
	"bima-invoice/internal/models"
	"bima-invoice/internal/money"
	"bima-invoice/internal/services"

	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const exportURLExpiry = 24 * time.Hour

// ExportHandlers produces the PDF invoice and the Excel payment statement.
// Both artifacts are written to object storage and handed back as presigned
// download URLs.
type ExportHandlers struct {
	invoiceService  services.InvoiceServiceInterface
	settingsService services.SettingsServiceInterface
	analyticsSvc    *analytics.AnalyticsService
	minioSvc        services.MinioService
}

func NewExportHandlers(invoiceService services.InvoiceServiceInterface, settingsService services.SettingsServiceInterface, analyticsSvc *analytics.AnalyticsService, minioSvc services.MinioService) *ExportHandlers {
	return &ExportHandlers{
		invoiceService:  invoiceService,
		settingsService: settingsService,
		analyticsSvc:    analyticsSvc,
		minioSvc:        minioSvc,
	}
}

// GenerateInvoicePDF handles GET /invoices/:id/pdf. Exporting requires the
// settings record; a store failure here fails fast rather than producing a
// document with a blank company block.
func (h *ExportHandlers) GenerateInvoicePDF(c echo.Context) error {
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

	settings, err := h.settingsService.Get(ctx)
	if err != nil {
		return common.SendUnavailableError(c, "Settings not available")
	}

	pdfBytes, err := buildInvoicePDF(invoice, settings)
	if err != nil {
		return common.SendServerError(c, "Failed to generate PDF: "+err.Error())
	}

	fileName := fmt.Sprintf("%s.pdf", invoice.InvoiceNumber)
	if err := h.minioSvc.Upload(ctx, services.ExportBucket, fileName, "application/pdf", bytes.NewReader(pdfBytes), int64(len(pdfBytes))); err != nil {
		return common.SendServerError(c, "Failed to upload PDF to storage: "+err.Error())
	}

	pdfURL, err := h.minioSvc.GetPresignedURL(services.ExportBucket, fileName, exportURLExpiry)
	if err != nil {
		return common.SendServerError(c, "Failed to generate download URL: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"file_name":  fileName,
		"pdf_url":    pdfURL,
		"expires_in": "24 hours",
	})
}

// PaymentStatement handles GET /payments/statement. One spreadsheet row per
// invoice, every invoice included regardless of status.
func (h *ExportHandlers) PaymentStatement(c echo.Context) error {
	ctx := c.Request().Context()

	invoices, err := h.invoiceService.List(ctx)
	if err != nil {
		return common.SendServerError(c, "Failed to list invoices: "+err.Error())
	}

	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].Date.Before(invoices[j].Date)
	})

	data, err := buildPaymentStatement(invoices)
	if err != nil {
		return common.SendServerError(c, "Failed to build statement: "+err.Error())
	}

	fileName := fmt.Sprintf("payment-statement-%s.xlsx", time.Now().Format("2006-01-02"))
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if err := h.minioSvc.Upload(ctx, services.ExportBucket, fileName, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return common.SendServerError(c, "Failed to upload statement to storage: "+err.Error())
	}

	statementURL, err := h.minioSvc.GetPresignedURL(services.ExportBucket, fileName, exportURLExpiry)
	if err != nil {
		return common.SendServerError(c, "Failed to generate download URL: "+err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"file_name":     fileName,
		"statement_url": statementURL,
		"expires_in":    "24 hours",
	})
}

// PaymentSummary handles GET /payments/summary.
func (h *ExportHandlers) PaymentSummary(c echo.Context) error {
	summary, err := h.analyticsSvc.PaymentSummary(c.Request().Context())
	if err != nil {
		return common.SendServerError(c, "Failed to compute payment summary: "+err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

// buildInvoicePDF lays out one A4 page for the invoice: company block from
// settings, client block, line item table, totals with the amount spelled
// out, notes and the bank / M-Pesa payment footer.
func buildInvoicePDF(invoice *models.Invoice, settings *models.AppSettings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	marginX := 15.0
	marginY := 15.0
	pdf.SetMargins(marginX, marginY, marginX)
	pdf.SetAutoPageBreak(true, marginY)

	// Company header
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(33, 37, 41)
	pdf.Cell(0, 10, tr(settings.CompanyName))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(90, 90, 90)
	for _, line := range []string{
		settings.CompanyAddress,
		settings.CompanyCity + ", " + settings.CompanyCountry,
		settings.CompanyPhone + " | " + settings.CompanyEmail,
	} {
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)
	}
	pdf.Ln(5)

	// Invoice details
	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 8, tr("INVOICE "+invoice.InvoiceNumber))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Date: "+invoice.Date.Format("02 Jan 2006"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Due Date: "+invoice.DueDate.Format("02 Jan 2006"))
	pdf.Ln(10)

	// Client block
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 6, "BILL TO:")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 10)
	clientLines := []string{invoice.Client.Name, invoice.Client.Address, invoice.Client.Phone, invoice.Client.Email}
	for _, line := range clientLines {
		if line == "" {
			continue
		}
		pdf.Cell(0, 5, tr(line))
		pdf.Ln(5)
	}
	if invoice.Client.VATExempt {
		pdf.SetFont("Arial", "I", 9)
		pdf.Cell(0, 5, "VAT exempt")
		pdf.Ln(5)
	}
	pdf.Ln(5)

	// Line item table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	headers := []string{"Description", "Qty", "Unit Price", "Disc %", "VAT", "Line Total"}
	colWidths := []float64{70, 15, 30, 18, 12, 35}
	for i, header := range headers {
		pdf.CellFormat(colWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(255, 255, 255)
	for _, item := range invoice.LineItems {
		vatMark := "No"
		if item.VATEnabled {
			vatMark = "Yes"
		}
		pdf.CellFormat(colWidths[0], 7, tr(item.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, trimFloat(item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, fmt.Sprintf("%.2f", item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, trimFloat(item.Discount), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[4], 7, vatMark, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[5], 7, fmt.Sprintf("%.2f", money.LineTotal(item)), "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(4)

	// Totals
	labelWidth := colWidths[0] + colWidths[1] + colWidths[2] + colWidths[3] + colWidths[4]
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(labelWidth, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[5], 6, tr(money.FormatAmount(invoice.Subtotal, invoice.Currency)), "", 0, "R", false, 0, "")
	pdf.Ln(6)
	pdf.CellFormat(labelWidth, 6, fmt.Sprintf("VAT (%s%%):", trimFloat(invoice.VATRate)), "", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[5], 6, tr(money.FormatAmount(invoice.TotalVAT, invoice.Currency)), "", 0, "R", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(labelWidth, 8, "GRAND TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[5], 8, tr(money.FormatAmount(invoice.GrandTotal, invoice.Currency)), "", 0, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "I", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Total Due: %s Only", money.AmountInWords(invoice.GrandTotal))), "", "L", false)
	pdf.Ln(5)

	// Notes
	if invoice.Notes != "" {
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, tr(invoice.Notes), "", "L", false)
		pdf.Ln(5)
	}

	// Payment details footer
	pdf.SetFont("Arial", "B", 9)
	pdf.Cell(0, 5, "Payment Details:")
	pdf.Ln(5)
	pdf.SetFont("Arial", "", 9)
	pdf.Cell(0, 5, tr(fmt.Sprintf("Bank: %s, Account: %s", settings.BankName, settings.BankAccount)))
	pdf.Ln(5)
	pdf.Cell(0, 5, tr(fmt.Sprintf("M-Pesa Paybill: %s, Account: %s", settings.MpesaPaybill, settings.MpesaAccount)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildPaymentStatement writes the invoices into a "Payments" sheet, one row
// per invoice.
func buildPaymentStatement(invoices []*models.Invoice) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Payments"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"Invoice #", "Client", "Date", "Due Date", "Amount", "Currency", "Status", "Payment Date"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, inv := range invoices {
		paymentDate := ""
		if inv.PaymentDate != nil {
			paymentDate = inv.PaymentDate.Format("2006-01-02")
		}
		values := []interface{}{
			inv.InvoiceNumber,
			inv.Client.Name,
			inv.Date.Format("2006-01-02"),
			inv.DueDate.Format("2006-01-02"),
			inv.GrandTotal,
			string(inv.Currency),
			inv.PaymentStatus,
			paymentDate,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
