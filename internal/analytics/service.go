// Package analytics aggregates payment figures over the invoice set for the
// payments dashboard. Aggregation is presentation support, not financial
// logic: it reads the stored grand-total snapshots and never recomputes them.
package analytics

import (
	"context"
	"log"
	"time"

	"bima-invoice/internal/caching"
	"bima-invoice/internal/models"
	"bima-invoice/internal/repositories"
)

const (
	summaryCacheKey = "payments:summary"
	summaryCacheTTL = 15 * time.Minute
)

// PaymentSummary holds the confirmed-vs-pending aggregation.
type PaymentSummary struct {
	ConfirmedTotal float64   `json:"confirmed_total"`
	PendingTotal   float64   `json:"pending_total"`
	ConfirmedCount int       `json:"confirmed_count"`
	PendingCount   int       `json:"pending_count"`
	InvoiceCount   int       `json:"invoice_count"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// AnalyticsService computes and caches the payment summary.
type AnalyticsService struct {
	invoiceRepo repositories.InvoiceRepository
	cacheSvc    caching.CacheService
}

func NewAnalyticsService(invoiceRepo repositories.InvoiceRepository, cacheSvc caching.CacheService) *AnalyticsService {
	return &AnalyticsService{
		invoiceRepo: invoiceRepo,
		cacheSvc:    cacheSvc,
	}
}

// Summarize aggregates grand totals by payment status over all invoices.
func Summarize(invoices []*models.Invoice) *PaymentSummary {
	summary := &PaymentSummary{GeneratedAt: time.Now()}
	for _, inv := range invoices {
		summary.InvoiceCount++
		switch inv.PaymentStatus {
		case models.PaymentConfirmed:
			summary.ConfirmedCount++
			summary.ConfirmedTotal += inv.GrandTotal
		case models.PaymentPending:
			summary.PendingCount++
			summary.PendingTotal += inv.GrandTotal
		}
	}
	return summary
}

// PaymentSummary returns the cached summary, recomputing on a miss.
func (s *AnalyticsService) PaymentSummary(ctx context.Context) (*PaymentSummary, error) {
	var cached PaymentSummary
	hit, err := s.cacheSvc.GetJSON(ctx, summaryCacheKey, &cached)
	if err != nil {
		log.Printf("WARN: payment summary cache read failed: %v", err)
	} else if hit {
		return &cached, nil
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the summary from the store and caches the result.
func (s *AnalyticsService) Refresh(ctx context.Context) (*PaymentSummary, error) {
	invoices, err := s.invoiceRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := Summarize(invoices)
	if err := s.cacheSvc.SetJSON(ctx, summaryCacheKey, summary, summaryCacheTTL); err != nil {
		log.Printf("WARN: payment summary cache write failed: %v", err)
	}
	return summary, nil
}
