package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkojima-works/agency-billing/internal/lineitem"
	"github.com/mkojima-works/agency-billing/pkg/apperr"
)

// ItemRepository is the slice of the line-item repository the service needs.
type ItemRepository interface {
	List(ctx context.Context) ([]lineitem.LineItem, error)
	MarkInvoiced(ctx context.Context, id string, at time.Time) error
}

// InvoiceOptions tunes invoice generation.
type InvoiceOptions struct {
	// TaxRate overrides the service's configured rate when non-zero.
	TaxRate float64

	// Notes is free text carried onto the document.
	Notes string
}

// QuoteOptions tunes quote generation.
type QuoteOptions struct {
	Client    string
	Title     string
	TaxRate   float64
	ExpiresIn time.Duration // default 30 days
	Notes     string
}

// Service wires the grouping engine, pricing and the document store into the
// billing operations. Construct it explicitly and pass it where needed.
type Service struct {
	repo    ItemRepository
	store   *Store
	taxRate float64
	now     func() time.Time
	logger  zerolog.Logger
}

// NewService creates a billing service. A zero taxRate selects
// DefaultTaxRate.
func NewService(repo ItemRepository, store *Store, taxRate float64, logger zerolog.Logger) *Service {
	if taxRate == 0 {
		taxRate = DefaultTaxRate
	}
	return &Service{
		repo:    repo,
		store:   store,
		taxRate: taxRate,
		now:     time.Now,
		logger:  logger.With().Str("component", "billing").Logger(),
	}
}

// Groups computes the current invoice groups from the remote table.
func (s *Service) Groups(ctx context.Context, filter GroupFilter) ([]InvoiceGroup, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Now.IsZero() {
		filter.Now = s.now()
	}
	return ComputeGroups(items, filter), nil
}

// GenerateInvoiceFromGroup builds a draft invoice for the group identified
// by client and billing month. It fails with a not-found error when no
// eligible group matches.
func (s *Service) GenerateInvoiceFromGroup(ctx context.Context, client string, year int, month time.Month, dueDate time.Time, opts InvoiceOptions) (*Invoice, error) {
	const op = "billing.GenerateInvoiceFromGroup"

	groups, err := s.Groups(ctx, GroupFilter{Client: client, Year: year, Month: month})
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op,
			fmt.Sprintf("no unbilled delivered items for %s in %d-%02d", client, year, month))
	}
	group := groups[0]

	inv := s.buildInvoice(group, dueDate, opts)
	s.store.PutInvoice(inv)

	s.logger.Info().
		Str("invoice", inv.Number).
		Str("client", client).
		Int("items", len(inv.Items)).
		Int64("total", inv.Totals.TotalAmount).
		Msg("generated draft invoice")

	return inv, nil
}

// IssueInvoice generates an invoice for the group and marks every member
// line item invoiced in the remote table.
//
// The per-item mutation is a sequential loop, not an atomic batch: if
// marking item N fails, items 1..N-1 stay invoiced and the caller must
// reconcile manually.
func (s *Service) IssueInvoice(ctx context.Context, client string, year int, month time.Month, dueDate time.Time, opts InvoiceOptions) (*Invoice, error) {
	const op = "billing.IssueInvoice"

	groups, err := s.Groups(ctx, GroupFilter{Client: client, Year: year, Month: month})
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, apperr.New(apperr.CodeNotFound, op,
			fmt.Sprintf("no unbilled delivered items for %s in %d-%02d", client, year, month))
	}
	group := groups[0]

	inv := s.buildInvoice(group, dueDate, opts)

	issuedAt := s.now()
	for _, item := range group.Items {
		if err := s.repo.MarkInvoiced(ctx, item.ID, issuedAt); err != nil {
			return nil, fmt.Errorf("failed to mark item %s invoiced (earlier items remain marked): %w", item.ID, err)
		}
	}

	inv.Status = StatusIssued
	inv.IssueDate = &issuedAt
	inv.UpdatedAt = issuedAt
	s.store.PutInvoice(inv)

	s.logger.Info().
		Str("invoice", inv.Number).
		Str("client", client).
		Int("items", len(inv.Items)).
		Int64("total", inv.Totals.TotalAmount).
		Msg("issued invoice")

	return inv, nil
}

// buildInvoice assembles and prices a draft invoice from a group.
func (s *Service) buildInvoice(group InvoiceGroup, dueDate time.Time, opts InvoiceOptions) *Invoice {
	taxRate := opts.TaxRate
	if taxRate == 0 {
		taxRate = s.taxRate
	}

	items := make([]Item, 0, len(group.Items))
	for _, member := range group.Items {
		items = append(items, Item{
			Description: fmt.Sprintf("%s - %s", member.ProjectName, member.ContentType),
			Quantity:    member.Quantity,
			UnitPrice:   member.UnitPrice,
			Taxable:     true,
			TaxCategory: TaxCategoryStandard,
		})
	}
	priced, totals := PriceItems(items, taxRate)

	now := s.now()
	projectTag := ""
	if len(group.Items) > 0 {
		projectTag = group.Items[0].ProjectName
	}

	return &Invoice{
		Number:     invoiceNumber(group.Client, monthTimeFromLabel(group.Month, now), now),
		Client:     group.Client,
		Month:      group.Month,
		ProjectTag: projectTag,
		DueDate:    dueDate,
		Items:      priced,
		Totals:     totals,
		Status:     StatusDraft,
		Notes:      opts.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// GenerateQuote prices a set of items into a quote document.
func (s *Service) GenerateQuote(items []Item, opts QuoteOptions) (*Quote, error) {
	const op = "billing.GenerateQuote"

	if len(items) == 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, op, "quote requires at least one item")
	}

	taxRate := opts.TaxRate
	if taxRate == 0 {
		taxRate = s.taxRate
	}
	expiresIn := opts.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 30 * 24 * time.Hour
	}

	priced, totals := PriceItems(items, taxRate)

	now := s.now()
	q := &Quote{
		Number:    quoteNumber(now),
		Client:    opts.Client,
		Title:     opts.Title,
		Date:      now,
		ExpiresAt: now.Add(expiresIn),
		Items:     priced,
		Totals:    totals,
		Notes:     opts.Notes,
		CreatedAt: now,
	}
	s.store.PutQuote(q)

	s.logger.Info().Str("quote", q.Number).Int64("total", totals.TotalAmount).Msg("generated quote")
	return q, nil
}

// GetInvoice returns a stored invoice by ID.
func (s *Service) GetInvoice(id string) (*Invoice, error) {
	const op = "billing.GetInvoice"
	inv := s.store.GetInvoice(id)
	if inv == nil {
		return nil, apperr.New(apperr.CodeNotFound, op, fmt.Sprintf("invoice %s not found", id))
	}
	return inv, nil
}

// ListInvoices returns the session's invoices, newest first.
func (s *Service) ListInvoices() []*Invoice {
	return s.store.ListInvoices()
}

// RecordPayment records a received amount against an invoice and advances
// its status by the payment threshold rule.
func (s *Service) RecordPayment(id string, amount int64) (*Invoice, error) {
	const op = "billing.RecordPayment"

	if amount <= 0 {
		return nil, apperr.New(apperr.CodeInvalidInput, op, "payment amount must be positive")
	}
	inv := s.store.GetInvoice(id)
	if inv == nil {
		return nil, apperr.New(apperr.CodeNotFound, op, fmt.Sprintf("invoice %s not found", id))
	}

	inv.RecordPayment(amount, s.now())

	s.logger.Info().
		Str("invoice", inv.Number).
		Int64("paid", inv.PaidAmount).
		Str("status", string(inv.Status)).
		Msg("recorded payment")

	return inv, nil
}

// monthTimeFromLabel parses a "2006年01月" label back into a time for number
// formatting, falling back to now's month when the label is malformed.
func monthTimeFromLabel(label string, now time.Time) time.Time {
	t, err := time.ParseInLocation("2006年01月", label, time.Local)
	if err != nil {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	}
	return t
}
