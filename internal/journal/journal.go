package journal

import (
	"fmt"
	"time"

	"github.com/mkojima-works/agency-billing/internal/billing"
)

// Side is one leg of a double-entry row. An empty Account means the leg is
// blank in the exported CSV.
type Side struct {
	Account     string
	SubAccount  string
	Department  string
	Amount      int64
	TaxCategory string
}

// Entry is one double-entry accounting row.
type Entry struct {
	Date        time.Time
	Debit       Side
	Credit      Side
	Description string
	Tag         string
}

// Converter synthesizes journal entries from invoice state.
type Converter struct {
	accounts Accounts
}

// NewConverter creates a converter using the given account titles.
func NewConverter(accounts Accounts) *Converter {
	return &Converter{accounts: accounts}
}

// FromInvoice converts an invoice into its journal entries.
//
// Non-draft invoices produce a sales-recognition entry for the taxable
// portion (accounts receivable debited for taxable plus tax, sales credited
// for the taxable amount), a tax-payable credit when tax was charged, and an
// exempt entry for any non-taxable portion. Any invoice with a positive paid
// amount additionally produces a payment entry dated at its last update,
// draft or not. Draft invoices never produce the sales legs.
func (c *Converter) FromInvoice(inv *billing.Invoice) []Entry {
	var entries []Entry

	salesDate := inv.UpdatedAt
	if inv.IssueDate != nil {
		salesDate = *inv.IssueDate
	}
	description := fmt.Sprintf("売上計上 %s", inv.Number)

	if inv.Status != billing.StatusDraft {
		totals := inv.Totals

		if totals.TaxableSubtotal > 0 || totals.TaxAmount > 0 {
			entries = append(entries, Entry{
				Date: salesDate,
				Debit: Side{
					Account:    c.accounts.Receivable,
					Department: c.accounts.Department,
					Amount:     totals.TaxableSubtotal + totals.TaxAmount,
				},
				Credit: Side{
					Account:     c.accounts.Sales,
					Department:  c.accounts.Department,
					Amount:      totals.TaxableSubtotal,
					TaxCategory: billing.TaxCategoryStandard,
				},
				Description: description,
				Tag:         inv.ProjectTag,
			})
		}

		if totals.TaxAmount > 0 {
			entries = append(entries, Entry{
				Date: salesDate,
				Credit: Side{
					Account:    c.accounts.TaxPayable,
					Department: c.accounts.Department,
					Amount:     totals.TaxAmount,
				},
				Description: fmt.Sprintf("消費税 %s", inv.Number),
				Tag:         inv.ProjectTag,
			})
		}

		if totals.NonTaxableSubtotal > 0 {
			entries = append(entries, Entry{
				Date: salesDate,
				Debit: Side{
					Account:    c.accounts.Receivable,
					Department: c.accounts.Department,
					Amount:     totals.NonTaxableSubtotal,
				},
				Credit: Side{
					Account:     c.accounts.Sales,
					Department:  c.accounts.Department,
					Amount:      totals.NonTaxableSubtotal,
					TaxCategory: billing.TaxCategoryExempt,
				},
				Description: description,
				Tag:         inv.ProjectTag,
			})
		}
	}

	if inv.PaidAmount > 0 {
		entries = append(entries, Entry{
			Date: inv.UpdatedAt,
			Debit: Side{
				Account:    c.accounts.Bank,
				Department: c.accounts.Department,
				Amount:     inv.PaidAmount,
			},
			Credit: Side{
				Account:    c.accounts.Receivable,
				Department: c.accounts.Department,
				Amount:     inv.PaidAmount,
			},
			Description: fmt.Sprintf("入金 %s", inv.Number),
			Tag:         inv.ProjectTag,
		})
	}

	return entries
}
