package billing

import "time"

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

const (
	StatusDraft         InvoiceStatus = "draft"
	StatusIssued        InvoiceStatus = "issued"
	StatusSent          InvoiceStatus = "sent"
	StatusPartiallyPaid InvoiceStatus = "partially_paid"
	StatusPaid          InvoiceStatus = "paid"
	StatusOverpaid      InvoiceStatus = "overpaid"
	StatusUncollected   InvoiceStatus = "uncollected"
	StatusCancelled     InvoiceStatus = "cancelled"
)

// Invoice is a billing document held in process memory for the session.
type Invoice struct {
	ID         string
	Number     string
	Client     string
	Month      string // billing-month label
	ProjectTag string // first member project, for journal traceability
	IssueDate  *time.Time
	DueDate    time.Time
	Items      []Item
	Totals     Totals
	PaidAmount int64
	Status     InvoiceStatus
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Quote is a priced estimate document.
type Quote struct {
	ID        string
	Number    string
	Client    string
	Title     string
	Date      time.Time
	ExpiresAt time.Time
	Items     []Item
	Totals    Totals
	Notes     string
	CreatedAt time.Time
}

// Reprice recalculates the invoice's item amounts and totals. Call after
// items or the tax rate change.
func (inv *Invoice) Reprice(at time.Time) {
	inv.Items, inv.Totals = PriceItems(inv.Items, inv.Totals.TaxRate)
	inv.UpdatedAt = at
}

// RecordPayment adds a received amount to the cumulative paid amount and
// advances the status by the threshold rule:
//
//	paid >  total -> overpaid
//	paid == total -> paid
//	0 < paid < total -> partially paid
//	paid == 0 -> unchanged
//
// Sent, uncollected and cancelled are operator-driven and never set here.
func (inv *Invoice) RecordPayment(amount int64, at time.Time) {
	inv.PaidAmount += amount
	inv.UpdatedAt = at

	switch {
	case inv.PaidAmount == 0:
		// nothing received yet
	case inv.PaidAmount > inv.Totals.TotalAmount:
		inv.Status = StatusOverpaid
	case inv.PaidAmount == inv.Totals.TotalAmount:
		inv.Status = StatusPaid
	default:
		inv.Status = StatusPartiallyPaid
	}
}
