package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"bima-invoice/internal/caching"
	"bima-invoice/internal/models"
	"bima-invoice/internal/money"
	"bima-invoice/internal/repositories"

	"github.com/google/uuid"
)

const invoiceCacheTTL = 5 * time.Minute

// InvoiceServiceInterface orchestrates totals, numbering and the store for
// invoice lifecycle operations.
type InvoiceServiceInterface interface {
	Create(ctx context.Context, draft *models.Invoice) (*models.Invoice, error)
	Update(ctx context.Context, invoice *models.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	List(ctx context.Context) ([]*models.Invoice, error)
	NextNumber(ctx context.Context) (string, error)
	ConfirmPayment(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	RevertPayment(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
}

type invoiceService struct {
	invoiceRepo repositories.InvoiceRepository
	cacheSvc    caching.CacheService
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo repositories.InvoiceRepository, cacheSvc caching.CacheService) InvoiceServiceInterface {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		cacheSvc:    cacheSvc,
	}
}

func validateDraft(draft *models.Invoice) error {
	if len(draft.LineItems) == 0 {
		return fmt.Errorf("invoice must have at least one line item")
	}
	if !draft.Currency.Valid() {
		return fmt.Errorf("unsupported currency: %s", draft.Currency)
	}
	for _, item := range draft.LineItems {
		if item.Quantity < 0 {
			return fmt.Errorf("line item quantity cannot be negative")
		}
		if item.UnitPrice < 0 {
			return fmt.Errorf("line item unit price cannot be negative")
		}
		if item.Discount < 0 || item.Discount > 100 {
			return fmt.Errorf("line item discount must be between 0 and 100")
		}
	}
	return nil
}

// Create computes the totals snapshot, assigns an identifier and the next
// invoice number from the current store contents, and persists the invoice.
// The numbering read and the write are not serialized: two concurrent
// creates can be assigned the same number. On a store failure the draft is
// left untouched so the caller can retry.
func (s *invoiceService) Create(ctx context.Context, draft *models.Invoice) (*models.Invoice, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	existing, err := s.invoiceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load invoices for numbering: %w", err)
	}

	invoice := *draft
	invoice.ID = uuid.New()
	invoice.InvoiceNumber = NextInvoiceNumber(existing)

	totals := money.InvoiceTotals(invoice.LineItems, invoice.VATRate, invoice.Client.VATExempt)
	invoice.Subtotal = totals.Subtotal
	invoice.TotalVAT = totals.TotalVAT
	invoice.GrandTotal = totals.GrandTotal

	invoice.PaymentStatus = models.PaymentPending
	invoice.PaymentDate = nil
	now := time.Now()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	if invoice.Date.IsZero() {
		invoice.Date = now
	}
	if invoice.DueDate.IsZero() {
		invoice.DueDate = invoice.Date.AddDate(0, 0, 30)
	}

	if err := s.invoiceRepo.Put(ctx, &invoice); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)
	return &invoice, nil
}

// Update persists the invoice as given. It never recomputes totals on the
// caller's behalf; instead the stored snapshot must already match the line
// items, which keeps partial edits like payment toggles from overwriting a
// historical snapshot. The invoice number is immutable once assigned.
func (s *invoiceService) Update(ctx context.Context, invoice *models.Invoice) error {
	if err := validateDraft(invoice); err != nil {
		return err
	}

	stored, err := s.invoiceRepo.GetByID(ctx, invoice.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return fmt.Errorf("invoice %s not found", invoice.ID)
	}
	if stored.InvoiceNumber != invoice.InvoiceNumber {
		return fmt.Errorf("invoice number is immutable once assigned")
	}
	if !money.ValidateTotals(invoice) {
		return fmt.Errorf("invoice totals are stale: recompute before saving")
	}

	invoice.CreatedAt = stored.CreatedAt
	invoice.UpdatedAt = time.Now()

	if err := s.invoiceRepo.Put(ctx, invoice); err != nil {
		return err
	}

	s.invalidateCaches(ctx)
	return nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCaches(ctx)
	return nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

// List returns every invoice, unsorted. Callers sort for display.
func (s *invoiceService) List(ctx context.Context) ([]*models.Invoice, error) {
	if cached, err := s.cacheSvc.GetInvoices(ctx); err != nil {
		log.Printf("WARN: invoice cache read failed: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	invoices, err := s.invoiceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetInvoices(ctx, invoices, invoiceCacheTTL); err != nil {
		log.Printf("WARN: invoice cache write failed: %v", err)
	}
	return invoices, nil
}

// NextNumber previews the number the next created invoice would receive,
// subject to the same race as Create.
func (s *invoiceService) NextNumber(ctx context.Context) (string, error) {
	invoices, err := s.invoiceRepo.GetAll(ctx)
	if err != nil {
		return "", err
	}
	return NextInvoiceNumber(invoices), nil
}

// ConfirmPayment marks the invoice confirmed and stamps the payment date.
// Financial totals are never touched.
func (s *invoiceService) ConfirmPayment(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return s.setPaymentStatus(ctx, id, models.PaymentConfirmed)
}

// RevertPayment marks the invoice pending again and clears the payment date.
func (s *invoiceService) RevertPayment(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return s.setPaymentStatus(ctx, id, models.PaymentPending)
}

func (s *invoiceService) setPaymentStatus(ctx context.Context, id uuid.UUID, status string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, fmt.Errorf("invoice %s not found", id)
	}

	invoice.PaymentStatus = status
	if status == models.PaymentConfirmed {
		now := time.Now()
		invoice.PaymentDate = &now
	} else {
		invoice.PaymentDate = nil
	}
	invoice.UpdatedAt = time.Now()

	if err := s.invoiceRepo.Put(ctx, invoice); err != nil {
		return nil, err
	}

	s.invalidateCaches(ctx)
	return invoice, nil
}

func (s *invoiceService) invalidateCaches(ctx context.Context) {
	if err := s.cacheSvc.InvalidateInvoices(ctx); err != nil {
		log.Printf("WARN: invoice cache invalidation failed: %v", err)
	}
}
