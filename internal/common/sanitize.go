package common

import (
	"bima-invoice/internal/models"

	"github.com/google/uuid"
)

// ClampLineItem pulls out-of-range numeric fields back into their valid
// ranges before they reach the totals engine, which is pure arithmetic and
// never re-validates. A missing identifier gets a fresh one.
func ClampLineItem(item *models.LineItem) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	if item.UnitPrice < 0 {
		item.UnitPrice = 0
	}
	if item.Discount < 0 {
		item.Discount = 0
	}
	if item.Discount > 100 {
		item.Discount = 100
	}
}

// ClampInvoiceInput clamps every line item and the VAT rate of a draft.
func ClampInvoiceInput(inv *models.Invoice) {
	for i := range inv.LineItems {
		ClampLineItem(&inv.LineItems[i])
	}
	if inv.VATRate < 0 {
		inv.VATRate = 0
	}
	if inv.VATRate > 100 {
		inv.VATRate = 100
	}
}
