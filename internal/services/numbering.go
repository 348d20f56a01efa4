package services

import (
	"fmt"
	"strconv"
	"strings"

	"bima-invoice/internal/models"
)

const (
	invoiceNumberPrefix = "INV"
	firstInvoiceNumber  = "INV-0001"
)

// NextInvoiceNumber derives the next sequential invoice number from the
// invoices currently in the store. It is pure: no counter is persisted, so
// two drafts that request a number before either saves will both get the
// same one. That race is accepted; the store does not serialize creates.
//
// Numbers that do not match the INV-<digits> shape are skipped rather than
// aborting. Padding is a minimum of four digits, never a truncation.
func NextInvoiceNumber(invoices []*models.Invoice) string {
	if len(invoices) == 0 {
		return firstInvoiceNumber
	}

	max := 0
	for _, inv := range invoices {
		prefix, suffix, found := strings.Cut(inv.InvoiceNumber, "-")
		if !found || prefix != invoiceNumberPrefix {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		if n > max {
			max = n
		}
	}

	return fmt.Sprintf("%s-%04d", invoiceNumberPrefix, max+1)
}
