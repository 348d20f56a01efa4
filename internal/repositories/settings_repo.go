package repositories

import (
	"context"
	"errors"
	"fmt"

	"bima-invoice/internal/models"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository holds the single settings record under a fixed key.
// Get lazily seeds the defaults on first read; Put always replaces the
// whole record at the fixed key, regardless of what the caller passed.
type SettingsRepository interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Put(ctx context.Context, settings *models.AppSettings) error
}

type settingsRepo struct {
	db DB
}

func NewSettingsRepo(db DB) SettingsRepository {
	return &settingsRepo{db: db}
}

const settingsColumns = `vat_rate, default_currency, company_name, company_address, company_city, company_country, company_phone, company_email, invoice_notes, bank_name, bank_account, mpesa_paybill, mpesa_account, logo_url`

func (r *settingsRepo) Get(ctx context.Context) (*models.AppSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM settings WHERE key = $1`
	settings := &models.AppSettings{}
	err := r.db.QueryRow(ctx, query, models.SettingsKey).Scan(
		&settings.VATRate, &settings.DefaultCurrency, &settings.CompanyName,
		&settings.CompanyAddress, &settings.CompanyCity, &settings.CompanyCountry,
		&settings.CompanyPhone, &settings.CompanyEmail, &settings.InvoiceNotes,
		&settings.BankName, &settings.BankAccount, &settings.MpesaPaybill,
		&settings.MpesaAccount, &settings.LogoURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := models.DefaultSettings()
			if putErr := r.Put(ctx, defaults); putErr != nil {
				return nil, fmt.Errorf("seed default settings: %w", putErr)
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (r *settingsRepo) Put(ctx context.Context, settings *models.AppSettings) error {
	query := `
		INSERT INTO settings (key, vat_rate, default_currency, company_name, company_address, company_city, company_country, company_phone, company_email, invoice_notes, bank_name, bank_account, mpesa_paybill, mpesa_account, logo_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (key) DO UPDATE SET
			vat_rate = EXCLUDED.vat_rate,
			default_currency = EXCLUDED.default_currency,
			company_name = EXCLUDED.company_name,
			company_address = EXCLUDED.company_address,
			company_city = EXCLUDED.company_city,
			company_country = EXCLUDED.company_country,
			company_phone = EXCLUDED.company_phone,
			company_email = EXCLUDED.company_email,
			invoice_notes = EXCLUDED.invoice_notes,
			bank_name = EXCLUDED.bank_name,
			bank_account = EXCLUDED.bank_account,
			mpesa_paybill = EXCLUDED.mpesa_paybill,
			mpesa_account = EXCLUDED.mpesa_account,
			logo_url = EXCLUDED.logo_url
	`
	_, err := r.db.Exec(ctx, query, models.SettingsKey,
		settings.VATRate, settings.DefaultCurrency, settings.CompanyName,
		settings.CompanyAddress, settings.CompanyCity, settings.CompanyCountry,
		settings.CompanyPhone, settings.CompanyEmail, settings.InvoiceNotes,
		settings.BankName, settings.BankAccount, settings.MpesaPaybill,
		settings.MpesaAccount, settings.LogoURL)
	if err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
