package journal

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/mkojima-works/agency-billing/internal/billing"
)

func TestExportCSVFormat(t *testing.T) {
	conv := NewConverter(DefaultAccounts())
	inv := issuedInvoice(25000, 0)
	inv.RecordPayment(27500, time.Date(2025, 9, 15, 0, 0, 0, 0, time.Local))

	out, err := conv.ExportCSV([]*billing.Invoice{inv}, ExportOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "\uFEFF") {
		t.Error("output does not start with a byte-order mark")
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\uFEFF")))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output does not parse as CSV: %v", err)
	}

	// Header plus sales, tax and payment rows.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, expected 4", len(rows))
	}
	for i, row := range rows {
		if len(row) != 13 {
			t.Errorf("row %d has %d fields, expected 13", i, len(row))
		}
	}
	if rows[0][0] != "取引日" || rows[0][12] != "タグ" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	sales := rows[1]
	if sales[0] != "2025-08-31" || sales[1] != "売掛金" || sales[4] != "27500" {
		t.Errorf("unexpected sales row: %v", sales)
	}

	// The tax entry has no debit leg; its debit amount cell stays empty.
	tax := rows[2]
	if tax[1] != "" || tax[4] != "" {
		t.Errorf("tax row debit cells not empty: %v", tax)
	}
	if tax[6] != "仮受消費税" || tax[9] != "2500" {
		t.Errorf("unexpected tax row: %v", tax)
	}

	payment := rows[3]
	if payment[0] != "2025-09-15" || payment[1] != "普通預金" {
		t.Errorf("unexpected payment row: %v", payment)
	}
}

func TestExportCSVSortedByDate(t *testing.T) {
	conv := NewConverter(DefaultAccounts())

	early := issuedInvoice(10000, 0)
	earlyDate := time.Date(2025, 7, 31, 0, 0, 0, 0, time.Local)
	early.IssueDate = &earlyDate
	early.UpdatedAt = earlyDate
	early.Status = billing.StatusPaid
	early.PaidAmount = 11000

	late := issuedInvoice(20000, 0)
	late.Status = billing.StatusPaid
	late.PaidAmount = 22000

	// Pass the later invoice first to exercise the sort.
	out, err := conv.ExportCSV([]*billing.Invoice{late, early}, ExportOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\uFEFF")))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prev := ""
	for _, row := range rows[1:] {
		if row[0] < prev {
			t.Errorf("rows not sorted by date ascending: %s after %s", row[0], prev)
		}
		prev = row[0]
	}
}

func TestExportCSVPaidFilter(t *testing.T) {
	conv := NewConverter(DefaultAccounts())

	unpaid := issuedInvoice(10000, 0)
	paid := issuedInvoice(20000, 0)
	paid.RecordPayment(22000, time.Date(2025, 9, 1, 0, 0, 0, 0, time.Local))
	invoices := []*billing.Invoice{unpaid, paid}

	tests := []struct {
		name          string
		includeUnpaid bool
		expectedRows  int
	}{
		// Paid invoice: sales + tax + payment.
		{"paid only", false, 1 + 3},
		// Both invoices: 3 rows each minus the unpaid one's payment row.
		{"include unpaid", true, 1 + 3 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := conv.ExportCSV(invoices, ExportOptions{IncludeUnpaid: tt.includeUnpaid})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\uFEFF"))).ReadAll()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(rows) != tt.expectedRows {
				t.Errorf("got %d rows, expected %d", len(rows), tt.expectedRows)
			}
		})
	}
}

func TestExportCSVDateRange(t *testing.T) {
	conv := NewConverter(DefaultAccounts())

	july := issuedInvoice(10000, 0)
	julyDate := time.Date(2025, 7, 31, 0, 0, 0, 0, time.Local)
	july.IssueDate = &julyDate
	august := issuedInvoice(20000, 0)

	out, err := conv.ExportCSV([]*billing.Invoice{july, august}, ExportOptions{
		StartDate:     time.Date(2025, 8, 1, 0, 0, 0, 0, time.Local),
		IncludeUnpaid: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out, "2025-07-31") {
		t.Error("invoice issued before the start date was exported")
	}
	if !strings.Contains(out, "2025-08-31") {
		t.Error("invoice inside the range is missing")
	}
}

func TestExportCSVEmpty(t *testing.T) {
	conv := NewConverter(DefaultAccounts())

	out, err := conv.ExportCSV(nil, ExportOptions{IncludeUnpaid: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Header only, still with the byte-order mark.
	rows, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\uFEFF"))).ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, expected header only", len(rows))
	}
}
