package journal

import (
	"encoding/csv"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mkojima-works/agency-billing/internal/billing"
	"github.com/mkojima-works/agency-billing/pkg/apperr"
)

// csvHeader is the fixed 13-column header of the accounting import format.
var csvHeader = []string{
	"取引日",
	"借方勘定科目",
	"借方補助科目",
	"借方部門",
	"借方金額",
	"借方税区分",
	"貸方勘定科目",
	"貸方補助科目",
	"貸方部門",
	"貸方金額",
	"貸方税区分",
	"摘要",
	"タグ",
}

// ExportOptions narrows which invoices are exported.
type ExportOptions struct {
	// StartDate and EndDate bound the invoice issue date when non-zero.
	StartDate time.Time
	EndDate   time.Time

	// IncludeUnpaid keeps invoices that have received no payment yet. When
	// false only invoices in a paid status (partially paid, paid, overpaid)
	// are exported.
	IncludeUnpaid bool
}

// ExportCSV flattens the invoices' journal entries into the 13-column CSV
// text: UTF-8 with a byte-order mark, RFC 4180 quoting, entries sorted by
// transaction date ascending. The whole string is built before returning;
// nothing is ever partially written.
func (c *Converter) ExportCSV(invoices []*billing.Invoice, opts ExportOptions) (string, error) {
	const op = "journal.ExportCSV"

	var entries []Entry
	for _, inv := range invoices {
		if !opts.StartDate.IsZero() && inv.IssueDate != nil && inv.IssueDate.Before(opts.StartDate) {
			continue
		}
		if !opts.EndDate.IsZero() && inv.IssueDate != nil && inv.IssueDate.After(opts.EndDate) {
			continue
		}
		if !opts.IncludeUnpaid && !isPaidStatus(inv.Status) {
			continue
		}
		entries = append(entries, c.FromInvoice(inv)...)
	}

	// YYYY-MM-DD sorts date-correctly as a string.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Format("2006-01-02") < entries[j].Date.Format("2006-01-02")
	})

	var sb strings.Builder
	sb.WriteString("\uFEFF") // byte-order mark for Excel compatibility

	w := csv.NewWriter(&sb)
	if err := w.Write(csvHeader); err != nil {
		return "", apperr.Wrap(apperr.CodeExportFailed, op, err)
	}
	for _, entry := range entries {
		if err := w.Write(entryRow(entry)); err != nil {
			return "", apperr.Wrap(apperr.CodeExportFailed, op, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", apperr.Wrap(apperr.CodeExportFailed, op, err)
	}

	return sb.String(), nil
}

// WriteFile exports the invoices and writes the CSV to path.
func (c *Converter) WriteFile(path string, invoices []*billing.Invoice, opts ExportOptions) error {
	const op = "journal.WriteFile"

	content, err := c.ExportCSV(invoices, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return apperr.Wrap(apperr.CodeFileWriteFailed, op, err)
	}
	return nil
}

// entryRow renders one entry as its 13 CSV fields. Amount cells of a blank
// leg stay empty.
func entryRow(entry Entry) []string {
	return []string{
		entry.Date.Format("2006-01-02"),
		entry.Debit.Account,
		entry.Debit.SubAccount,
		entry.Debit.Department,
		sideAmount(entry.Debit),
		entry.Debit.TaxCategory,
		entry.Credit.Account,
		entry.Credit.SubAccount,
		entry.Credit.Department,
		sideAmount(entry.Credit),
		entry.Credit.TaxCategory,
		entry.Description,
		entry.Tag,
	}
}

func sideAmount(s Side) string {
	if s.Account == "" {
		return ""
	}
	return strconv.FormatInt(s.Amount, 10)
}

func isPaidStatus(status billing.InvoiceStatus) bool {
	switch status {
	case billing.StatusPartiallyPaid, billing.StatusPaid, billing.StatusOverpaid:
		return true
	}
	return false
}
