package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Karasal/Call-Sal-sub000/internal/portal"
)

// InvoiceStore captures the portal persistence operations for invoices.
type InvoiceStore interface {
	Invoices(ctx context.Context, clientID string) []portal.Invoice
	AddInvoice(ctx context.Context, invoice portal.Invoice)
	MarkInvoicePaid(ctx context.Context, id string)
}

// BillingService issues and settles client invoices.
type BillingService struct {
	store       InvoiceStore
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewBillingService wires dependencies for the billing service.
func NewBillingService(store InvoiceStore, idGenerator func() string, now func() time.Time, logger *slog.Logger) *BillingService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &BillingService{store: store, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

// Issue creates a pending invoice for administrators.
func (s *BillingService) Issue(ctx context.Context, principal Principal, input InvoiceInput) (portal.Invoice, error) {
	if s == nil || s.store == nil {
		return portal.Invoice{}, fmt.Errorf("invoice store not configured")
	}
	if !principal.IsAdmin {
		return portal.Invoice{}, ErrUnauthorized
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(input.ClientID) == "" {
		vErr.add("client_id", "client id is required")
	}
	if input.Amount <= 0 {
		vErr.add("amount", "amount must be positive")
	}
	if vErr.HasErrors() {
		return portal.Invoice{}, vErr
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	invoice := portal.Invoice{
		ID:          s.idGenerator(),
		ClientID:    input.ClientID,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		Status:      portal.InvoicePending,
		Date:        date,
	}
	s.store.AddInvoice(ctx, invoice)

	serviceLogger(ctx, s.logger, "BillingService", "Issue").
		InfoContext(ctx, "invoice issued", "invoice_id", invoice.ID, "client_id", invoice.ClientID)
	return invoice, nil
}

// ListFor returns the invoices addressed to one client, or all invoices
// when clientID is empty.
func (s *BillingService) ListFor(ctx context.Context, clientID string) []portal.Invoice {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Invoices(ctx, clientID)
}

// MarkPaid settles the named invoice. The pending -> paid transition
// happens at most once; unknown ids are a silent no-op in the store.
func (s *BillingService) MarkPaid(ctx context.Context, principal Principal, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("invoice store not configured")
	}
	if !principal.IsAdmin {
		return ErrUnauthorized
	}
	s.store.MarkInvoicePaid(ctx, id)
	serviceLogger(ctx, s.logger, "BillingService", "MarkPaid").InfoContext(ctx, "invoice marked paid", "invoice_id", id)
	return nil
}
