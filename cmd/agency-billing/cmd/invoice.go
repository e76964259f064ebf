package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkojima-works/agency-billing/internal/billing"
	"github.com/mkojima-works/agency-billing/internal/render"
	"github.com/mkojima-works/agency-billing/pkg/db"
)

var (
	invoiceClient string
	invoiceYear   int
	invoiceMonth  int
	invoiceDue    string
	invoiceIssue  bool
	invoicePDF    bool
	invoiceNotes  string
	invoicePaid   int64
)

// invoiceCmd represents the invoice command.
var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Generate or issue a monthly invoice",
	Long: `Generate a draft invoice for one client and billing month, or issue
it with --issue, which also marks every member line item invoiced in the
remote table.

The member mutations are sequential, not atomic: if marking an item fails
midway, earlier items stay marked and must be reconciled by hand.

The rendered HTML (and PDF with --pdf) is written to the output directory,
and the invoice is recorded in the local history database. --paid records a
received amount and advances the payment status before recording.

Example:
  agency-billing invoice --client 株式会社サンライズ企画 --year 2025 --month 8
  agency-billing invoice --client 株式会社サンライズ企画 --year 2025 --month 8 --issue --pdf`,
	Run: runInvoice,
}

func init() {
	invoiceCmd.Flags().StringVar(&invoiceClient, "client", "", "Client name (required)")
	invoiceCmd.Flags().IntVar(&invoiceYear, "year", 0, "Billing year (required)")
	invoiceCmd.Flags().IntVar(&invoiceMonth, "month", 0, "Billing month 1-12 (required)")
	invoiceCmd.Flags().StringVar(&invoiceDue, "due", "", "Due date YYYY-MM-DD (default: end of next month)")
	invoiceCmd.Flags().BoolVar(&invoiceIssue, "issue", false, "Issue the invoice (marks line items invoiced)")
	invoiceCmd.Flags().BoolVar(&invoicePDF, "pdf", false, "Also render a PDF via headless Chrome")
	invoiceCmd.Flags().StringVar(&invoiceNotes, "notes", "", "Free-text notes printed on the document")
	invoiceCmd.Flags().Int64Var(&invoicePaid, "paid", 0, "Record a received payment amount in yen")

	invoiceCmd.MarkFlagRequired("client")
	invoiceCmd.MarkFlagRequired("year")
	invoiceCmd.MarkFlagRequired("month")
}

func runInvoice(cmd *cobra.Command, args []string) {
	a, err := newApp()
	exitOnError(err, "failed to initialize")

	dueDate, err := resolveDueDate(invoiceDue, invoiceYear, time.Month(invoiceMonth))
	exitOnError(err, "invalid due date")

	ctx := context.Background()
	opts := billing.InvoiceOptions{Notes: invoiceNotes}

	var inv *billing.Invoice
	if invoiceIssue {
		inv, err = a.service.IssueInvoice(ctx, invoiceClient, invoiceYear, time.Month(invoiceMonth), dueDate, opts)
	} else {
		inv, err = a.service.GenerateInvoiceFromGroup(ctx, invoiceClient, invoiceYear, time.Month(invoiceMonth), dueDate, opts)
	}
	exitOnError(err, "failed to build invoice")

	if invoicePaid > 0 {
		inv, err = a.service.RecordPayment(inv.ID, invoicePaid)
		exitOnError(err, "failed to record payment")
	}

	fmt.Printf("Invoice %s (%s)\n", inv.Number, inv.Status)
	fmt.Printf("  Client:   %s\n", inv.Client)
	fmt.Printf("  Month:    %s\n", inv.Month)
	fmt.Printf("  Items:    %d\n", len(inv.Items))
	fmt.Printf("  Subtotal: ¥%d\n", inv.Totals.Subtotal)
	fmt.Printf("  Tax:      ¥%d\n", inv.Totals.TaxAmount)
	fmt.Printf("  Total:    ¥%d\n", inv.Totals.TotalAmount)

	writeInvoiceDocument(ctx, a, inv)
	recordInvoice(a, inv)
}

// writeInvoiceDocument renders the invoice HTML (and optionally PDF) into
// the output directory.
func writeInvoiceDocument(ctx context.Context, a *app, inv *billing.Invoice) {
	issuer, err := render.LoadIssuer(a.cfg.Billing.IssuerPath)
	exitOnError(err, "failed to load issuer info")

	htmlContent, err := render.InvoiceHTML(inv, issuer)
	exitOnError(err, "failed to render invoice")

	htmlPath := filepath.Join(a.cfg.Billing.OutputDir, inv.Number+".html")
	exitOnError(writeOutputFile(htmlPath, []byte(htmlContent)), "failed to write invoice HTML")
	fmt.Printf("Wrote %s\n", htmlPath)

	if invoicePDF {
		pdfPath := filepath.Join(a.cfg.Billing.OutputDir, inv.Number+".pdf")
		exitOnError(render.WritePDF(ctx, htmlContent, pdfPath), "failed to render invoice PDF")
		fmt.Printf("Wrote %s\n", pdfPath)
	}
}

// recordInvoice stores the invoice in the local history database.
func recordInvoice(a *app, inv *billing.Invoice) {
	conn, history, err := a.openHistory()
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	record := db.InvoiceRecord{
		InvoiceNumber: inv.Number,
		Client:        inv.Client,
		BillingMonth:  inv.Month,
		ItemCount:     len(inv.Items),
		Subtotal:      inv.Totals.Subtotal,
		TaxAmount:     inv.Totals.TaxAmount,
		TotalAmount:   inv.Totals.TotalAmount,
		Status:        string(inv.Status),
	}
	if inv.IssueDate != nil {
		record.IssuedAt = sql.NullString{String: inv.IssueDate.Format("2006-01-02"), Valid: true}
	}
	exitOnError(history.RecordInvoice(record), "failed to record invoice history")
}

// resolveDueDate parses the --due flag, defaulting to the last day of the
// month after the billing month.
func resolveDueDate(flag string, year int, month time.Month) (time.Time, error) {
	if flag != "" {
		return time.ParseInLocation("2006-01-02", flag, time.Local)
	}
	// Day 0 of month+2 is the last day of month+1.
	return time.Date(year, month+2, 0, 0, 0, 0, 0, time.Local), nil
}
