package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment statuses an invoice can hold.
const (
	PaymentPending   = "pending"
	PaymentConfirmed = "confirmed"
)

// Currency is one of the twelve supported currency codes.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	JPY Currency = "JPY"
	GBP Currency = "GBP"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	CHF Currency = "CHF"
	CNH Currency = "CNH"
	HKD Currency = "HKD"
	NZD Currency = "NZD"
	KSH Currency = "KSH"
	NGN Currency = "NGN"
)

// Currencies lists every supported code.
var Currencies = []Currency{USD, EUR, JPY, GBP, AUD, CAD, CHF, CNH, HKD, NZD, KSH, NGN}

// Valid reports whether c is a supported currency code.
func (c Currency) Valid() bool {
	for _, cur := range Currencies {
		if c == cur {
			return true
		}
	}
	return false
}

// LineItem is a single billable row on an invoice.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Discount    float64 `json:"discount"`
	VATEnabled  bool    `json:"vat_enabled"`
}

// NewLineItem returns a line item with the draft defaults.
func NewLineItem() LineItem {
	return LineItem{
		ID:         uuid.New().String(),
		Quantity:   1,
		UnitPrice:  0,
		Discount:   0,
		VATEnabled: true,
	}
}

// Client is the billed party. It is owned by exactly one invoice and stored
// embedded, never shared between invoices.
type Client struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	VATExempt bool   `json:"vat_exempt"`
}

// Invoice is a persisted invoice. Subtotal, TotalVAT and GrandTotal are
// snapshots taken at save time. VATRate is copied from settings at creation
// so historical invoices do not move when settings change later.
type Invoice struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	InvoiceNumber string     `json:"invoice_number" db:"invoice_number"`
	Date          time.Time  `json:"date" db:"date"`
	DueDate       time.Time  `json:"due_date" db:"due_date"`
	Client        Client     `json:"client" db:"client"`
	LineItems     []LineItem `json:"line_items" db:"line_items"`
	Notes         string     `json:"notes" db:"notes"`
	Currency      Currency   `json:"currency" db:"currency"`
	VATRate       float64    `json:"vat_rate" db:"vat_rate"`
	Subtotal      float64    `json:"subtotal" db:"subtotal"`
	TotalVAT      float64    `json:"total_vat" db:"total_vat"`
	GrandTotal    float64    `json:"grand_total" db:"grand_total"`
	PaymentStatus string     `json:"payment_status" db:"payment_status"`
	PaymentDate   *time.Time `json:"payment_date,omitempty" db:"payment_date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
