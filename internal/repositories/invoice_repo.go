package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bima-invoice/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repositories use. pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// InvoiceRepository is the invoices collection: primary key on id, secondary
// indexes on invoice_number and date. Put is a full replace; GetAll makes no
// ordering guarantee, callers sort for display.
type InvoiceRepository interface {
	Put(ctx context.Context, invoice *models.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	GetAll(ctx context.Context) ([]*models.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetByNumber(ctx context.Context, invoiceNumber string) ([]*models.Invoice, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Invoice, error)
}

type invoiceRepo struct {
	db DB
}

func NewInvoiceRepo(db DB) InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, invoice_number, date, due_date, client, line_items, notes, currency, vat_rate, subtotal, total_vat, grand_total, payment_status, payment_date, created_at, updated_at`

func (r *invoiceRepo) Put(ctx context.Context, invoice *models.Invoice) error {
	query := `
		INSERT INTO invoices (id, invoice_number, date, due_date, client, line_items, notes, currency, vat_rate, subtotal, total_vat, grand_total, payment_status, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			invoice_number = EXCLUDED.invoice_number,
			date = EXCLUDED.date,
			due_date = EXCLUDED.due_date,
			client = EXCLUDED.client,
			line_items = EXCLUDED.line_items,
			notes = EXCLUDED.notes,
			currency = EXCLUDED.currency,
			vat_rate = EXCLUDED.vat_rate,
			subtotal = EXCLUDED.subtotal,
			total_vat = EXCLUDED.total_vat,
			grand_total = EXCLUDED.grand_total,
			payment_status = EXCLUDED.payment_status,
			payment_date = EXCLUDED.payment_date,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.Exec(ctx, query,
		invoice.ID, invoice.InvoiceNumber, invoice.Date, invoice.DueDate,
		invoice.Client, invoice.LineItems, invoice.Notes, invoice.Currency,
		invoice.VATRate, invoice.Subtotal, invoice.TotalVAT, invoice.GrandTotal,
		invoice.PaymentStatus, invoice.PaymentDate, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	invoice, err := scanInvoice(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return invoice, nil
}

func (r *invoiceRepo) GetAll(ctx context.Context) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM invoices WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// GetByNumber returns invoices carrying the given number. The index is
// non-unique; the documented numbering race can leave duplicates behind.
func (r *invoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE invoice_number = $1`
	rows, err := r.db.Query(ctx, query, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("get invoices by number: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func (r *invoiceRepo) GetByDateRange(ctx context.Context, from, to time.Time) ([]*models.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE date BETWEEN $1 AND $2`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("get invoices by date range: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	err := row.Scan(&invoice.ID, &invoice.InvoiceNumber, &invoice.Date, &invoice.DueDate,
		&invoice.Client, &invoice.LineItems, &invoice.Notes, &invoice.Currency,
		&invoice.VATRate, &invoice.Subtotal, &invoice.TotalVAT, &invoice.GrandTotal,
		&invoice.PaymentStatus, &invoice.PaymentDate, &invoice.CreatedAt, &invoice.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

func scanInvoices(rows pgx.Rows) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}
	return invoices, nil
}
