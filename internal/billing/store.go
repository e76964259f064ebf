package billing

import (
	"sort"

	"github.com/google/uuid"
)

// Store holds the session's quotes and invoices in memory. It is explicitly
// constructed and passed to the service; there is no package-level state.
// Access is assumed to come from one logical flow at a time; concurrent
// mutation is out of scope.
type Store struct {
	invoices map[string]*Invoice
	quotes   map[string]*Quote
}

// NewStore creates an empty in-memory document store.
func NewStore() *Store {
	return &Store{
		invoices: make(map[string]*Invoice),
		quotes:   make(map[string]*Quote),
	}
}

// PutInvoice stores an invoice, assigning an ID if it has none.
func (s *Store) PutInvoice(inv *Invoice) {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	s.invoices[inv.ID] = inv
}

// GetInvoice returns the invoice with the given ID, or nil.
func (s *Store) GetInvoice(id string) *Invoice {
	return s.invoices[id]
}

// ListInvoices returns all stored invoices ordered by creation time, newest
// first.
func (s *Store) ListInvoices() []*Invoice {
	out := make([]*Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// PutQuote stores a quote, assigning an ID if it has none.
func (s *Store) PutQuote(q *Quote) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	s.quotes[q.ID] = q
}

// GetQuote returns the quote with the given ID, or nil.
func (s *Store) GetQuote(id string) *Quote {
	return s.quotes[id]
}

// ListQuotes returns all stored quotes ordered by creation time, newest
// first.
func (s *Store) ListQuotes() []*Quote {
	out := make([]*Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
