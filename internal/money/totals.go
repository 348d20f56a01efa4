// Package money holds the pure financial arithmetic for invoices: line and
// invoice totals, currency display helpers and the amount-in-words spellout.
// Nothing here validates input or touches storage; callers clamp fields at
// the boundary and the engine just computes.
package money

import (
	"math"

	"bima-invoice/internal/models"
)

// Totals is the invoice-level monetary snapshot.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	TotalVAT   float64 `json:"total_vat"`
	GrandTotal float64 `json:"grand_total"`
}

// LineTotal computes quantity * unitPrice less the per-line discount.
// VAT is not included.
func LineTotal(item models.LineItem) float64 {
	subtotal := item.Quantity * item.UnitPrice
	return subtotal - subtotal*item.Discount/100
}

// InvoiceTotals computes the invoice snapshot over items in sequence order.
// A VAT-exempt client zeroes the VAT regardless of per-line flags; otherwise
// only lines with VAT enabled contribute. No intermediate rounding is
// applied; two-decimal formatting is a display concern.
func InvoiceTotals(items []models.LineItem, vatRate float64, vatExempt bool) Totals {
	var t Totals
	for _, item := range items {
		t.Subtotal += LineTotal(item)
	}
	if !vatExempt {
		for _, item := range items {
			if item.VATEnabled {
				t.TotalVAT += LineTotal(item) * vatRate / 100
			}
		}
	}
	t.GrandTotal = t.Subtotal + t.TotalVAT
	return t
}

// totalsEpsilon absorbs float noise when comparing stored snapshots against
// a fresh recomputation.
const totalsEpsilon = 1e-6

// ValidateTotals reports whether the invoice's stored subtotal, VAT and
// grand total match a deterministic recomputation from its line items.
func ValidateTotals(inv *models.Invoice) bool {
	t := InvoiceTotals(inv.LineItems, inv.VATRate, inv.Client.VATExempt)
	return math.Abs(t.Subtotal-inv.Subtotal) < totalsEpsilon &&
		math.Abs(t.TotalVAT-inv.TotalVAT) < totalsEpsilon &&
		math.Abs(t.GrandTotal-inv.GrandTotal) < totalsEpsilon
}
