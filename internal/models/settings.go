package models

// SettingsKey is the fixed key the single settings record lives under.
const SettingsKey = "app-settings"

// AppSettings is the singleton application settings record. It is read and
// replaced wholesale; there is no partial-field update.
type AppSettings struct {
	VATRate         float64  `json:"vat_rate" db:"vat_rate"`
	DefaultCurrency Currency `json:"default_currency" db:"default_currency"`
	CompanyName     string   `json:"company_name" db:"company_name"`
	CompanyAddress  string   `json:"company_address" db:"company_address"`
	CompanyCity     string   `json:"company_city" db:"company_city"`
	CompanyCountry  string   `json:"company_country" db:"company_country"`
	CompanyPhone    string   `json:"company_phone" db:"company_phone"`
	CompanyEmail    string   `json:"company_email" db:"company_email"`
	InvoiceNotes    string   `json:"invoice_notes" db:"invoice_notes"`
	BankName        string   `json:"bank_name" db:"bank_name"`
	BankAccount     string   `json:"bank_account" db:"bank_account"`
	MpesaPaybill    string   `json:"mpesa_paybill" db:"mpesa_paybill"`
	MpesaAccount    string   `json:"mpesa_account" db:"mpesa_account"`
	LogoURL         *string  `json:"logo_url,omitempty" db:"logo_url"`
}

// DefaultSettings returns the seed record persisted on first access.
func DefaultSettings() *AppSettings {
	return &AppSettings{
		VATRate:         16,
		DefaultCurrency: KSH,
		CompanyName:     "Bima Graphics",
		CompanyAddress:  "Thika Garissa Highway",
		CompanyCity:     "01000 Thika",
		CompanyCountry:  "Kenya",
		CompanyPhone:    "+254715909038",
		CompanyEmail:    "bima.ic.graphics@gmail.com",
		InvoiceNotes:    "Thank you for your business!",
		BankName:        "I&M Bank",
		BankAccount:     "02408149716150 (James Brend Omondi)",
		MpesaPaybill:    "542542",
		MpesaAccount:    "12954 or James Brend Omondi",
	}
}
