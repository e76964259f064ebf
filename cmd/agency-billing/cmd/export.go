package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkojima-works/agency-billing/internal/billing"
	"github.com/mkojima-works/agency-billing/internal/journal"
	"github.com/mkojima-works/agency-billing/pkg/db"
)

var (
	exportYear          int
	exportMonth         int
	exportOut           string
	exportDraft         bool
	exportIncludeUnpaid bool
	exportPaidInFull    bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export accounting journal entries as CSV",
	Long: `Build invoices for every billable group of the given month and
export their double-entry journal rows as the 13-column accounting CSV
(UTF-8 with BOM).

By default invoices are built in issued state so the sales-recognition
entries are produced; --draft keeps them draft (no sales legs). Line items
are never marked invoiced by this command. --paid-in-full additionally
records full payment on each invoice so payment entries appear.

Example:
  agency-billing export --year 2025 --month 8 --out journal.csv
  agency-billing export --year 2025 --month 8 --paid-in-full`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Billing year (required)")
	exportCmd.Flags().IntVar(&exportMonth, "month", 0, "Billing month 1-12 (required)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output CSV path (default: <output-dir>/journal-YYYYMM.csv)")
	exportCmd.Flags().BoolVar(&exportDraft, "draft", false, "Keep invoices draft (suppresses sales-recognition entries)")
	exportCmd.Flags().BoolVar(&exportIncludeUnpaid, "include-unpaid", true, "Include invoices with no recorded payment")
	exportCmd.Flags().BoolVar(&exportPaidInFull, "paid-in-full", false, "Record full payment on each invoice before exporting")

	exportCmd.MarkFlagRequired("year")
	exportCmd.MarkFlagRequired("month")
}

func runExport(cmd *cobra.Command, args []string) {
	a, err := newApp()
	exitOnError(err, "failed to initialize")

	ctx := context.Background()
	month := time.Month(exportMonth)

	groups, err := a.service.Groups(ctx, billing.GroupFilter{Year: exportYear, Month: month})
	exitOnError(err, "failed to compute groups")
	if len(groups) == 0 {
		fmt.Println("No billable groups for the requested month")
		return
	}

	dueDate, err := resolveDueDate("", exportYear, month)
	exitOnError(err, "failed to derive due date")

	invoices := make([]*billing.Invoice, 0, len(groups))
	for _, group := range groups {
		inv, err := a.service.GenerateInvoiceFromGroup(ctx, group.Client, exportYear, month, dueDate, billing.InvoiceOptions{})
		exitOnError(err, fmt.Sprintf("failed to build invoice for %s", group.Client))

		if !exportDraft {
			now := time.Now()
			inv.Status = billing.StatusIssued
			inv.IssueDate = &now
			inv.UpdatedAt = now
		}
		if exportPaidInFull {
			_, err := a.service.RecordPayment(inv.ID, inv.Totals.TotalAmount)
			exitOnError(err, "failed to record payment")
		}
		invoices = append(invoices, inv)
	}

	accounts := journal.DefaultAccounts()
	if a.cfg.Billing.AccountsPath != "" {
		accounts, err = journal.LoadAccounts(a.cfg.Billing.AccountsPath)
		exitOnError(err, "failed to load account titles")
	}
	converter := journal.NewConverter(accounts)

	outPath := exportOut
	if outPath == "" {
		outPath = filepath.Join(a.cfg.Billing.OutputDir,
			fmt.Sprintf("journal-%04d%02d.csv", exportYear, exportMonth))
	}

	opts := journal.ExportOptions{IncludeUnpaid: exportIncludeUnpaid}
	exitOnError(converter.WriteFile(outPath, invoices, opts), "failed to export journal CSV")

	entryCount := 0
	for _, inv := range invoices {
		entryCount += len(converter.FromInvoice(inv))
	}
	fmt.Printf("Exported %d entries from %d invoices to %s\n", entryCount, len(invoices), outPath)

	recordExport(a, outPath, entryCount)
}

// recordExport stores the export in the local history database.
func recordExport(a *app, path string, entryCount int) {
	conn, history, err := a.openHistory()
	exitOnError(err, "failed to open history database")
	defer conn.Close()

	monthStart := time.Date(exportYear, time.Month(exportMonth), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, -1)

	exitOnError(history.RecordExport(db.ExportRecord{
		FilePath:   path,
		EntryCount: entryCount,
		RangeStart: sql.NullString{String: monthStart.Format("2006-01-02"), Valid: true},
		RangeEnd:   sql.NullString{String: monthEnd.Format("2006-01-02"), Valid: true},
	}), "failed to record export history")
}
