package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkojima-works/agency-billing/internal/billing"
	"github.com/mkojima-works/agency-billing/internal/render"
)

var (
	renderClient string
	renderYear   int
	renderMonth  int
	renderPDF    bool
	renderNotes  string
)

// renderCmd represents the render command.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render an invoice document without issuing it",
	Long: `Build a draft invoice for one client and billing month and render it
as HTML (and PDF with --pdf). Nothing is mutated: line items stay unbilled
and no history is recorded. Useful for previewing a document before issuing.

Example:
  agency-billing render --client 株式会社サンライズ企画 --year 2025 --month 8 --pdf`,
	Run: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderClient, "client", "", "Client name (required)")
	renderCmd.Flags().IntVar(&renderYear, "year", 0, "Billing year (required)")
	renderCmd.Flags().IntVar(&renderMonth, "month", 0, "Billing month 1-12 (required)")
	renderCmd.Flags().BoolVar(&renderPDF, "pdf", false, "Also render a PDF via headless Chrome")
	renderCmd.Flags().StringVar(&renderNotes, "notes", "", "Free-text notes printed on the document")

	renderCmd.MarkFlagRequired("client")
	renderCmd.MarkFlagRequired("year")
	renderCmd.MarkFlagRequired("month")
}

func runRender(cmd *cobra.Command, args []string) {
	a, err := newApp()
	exitOnError(err, "failed to initialize")

	dueDate, err := resolveDueDate("", renderYear, time.Month(renderMonth))
	exitOnError(err, "failed to derive due date")

	ctx := context.Background()
	inv, err := a.service.GenerateInvoiceFromGroup(ctx, renderClient, renderYear, time.Month(renderMonth),
		dueDate, billing.InvoiceOptions{Notes: renderNotes})
	exitOnError(err, "failed to build invoice")

	issuer, err := render.LoadIssuer(a.cfg.Billing.IssuerPath)
	exitOnError(err, "failed to load issuer info")

	htmlContent, err := render.InvoiceHTML(inv, issuer)
	exitOnError(err, "failed to render invoice")

	htmlPath := filepath.Join(a.cfg.Billing.OutputDir, inv.Number+"-preview.html")
	exitOnError(writeOutputFile(htmlPath, []byte(htmlContent)), "failed to write invoice HTML")
	fmt.Printf("Wrote %s\n", htmlPath)

	if renderPDF {
		pdfPath := filepath.Join(a.cfg.Billing.OutputDir, inv.Number+"-preview.pdf")
		exitOnError(render.WritePDF(ctx, htmlContent, pdfPath), "failed to render invoice PDF")
		fmt.Printf("Wrote %s\n", pdfPath)
	}
}
