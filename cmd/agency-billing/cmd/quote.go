package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkojima-works/agency-billing/internal/billing"
	"github.com/mkojima-works/agency-billing/internal/render"
)

var (
	quoteClient string
	quoteTitle  string
	quoteItems  []string
	quotePDF    bool
	quoteNotes  string
)

// quoteCmd represents the quote command.
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Generate a quote document",
	Long: `Generate a priced quote from ad-hoc items and render it as HTML
(and PDF with --pdf).

Each --item takes "description:quantity:unit-price" with an optional
":exempt" suffix for non-taxable lines.

Example:
  agency-billing quote --client 株式会社サンライズ企画 \
    --item "記事制作:2:10000" --item "取材費:1:5000:exempt" --pdf`,
	Run: runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteClient, "client", "", "Client name (required)")
	quoteCmd.Flags().StringVar(&quoteTitle, "title", "", "Quote title")
	quoteCmd.Flags().StringArrayVar(&quoteItems, "item", nil, `Quote line "description:quantity:unit-price[:exempt]" (repeatable, required)`)
	quoteCmd.Flags().BoolVar(&quotePDF, "pdf", false, "Also render a PDF via headless Chrome")
	quoteCmd.Flags().StringVar(&quoteNotes, "notes", "", "Free-text notes printed on the document")

	quoteCmd.MarkFlagRequired("client")
	quoteCmd.MarkFlagRequired("item")
}

func runQuote(cmd *cobra.Command, args []string) {
	a, err := newApp()
	exitOnError(err, "failed to initialize")

	items, err := parseQuoteItems(quoteItems)
	exitOnError(err, "invalid --item")

	q, err := a.service.GenerateQuote(items, billing.QuoteOptions{
		Client: quoteClient,
		Title:  quoteTitle,
		Notes:  quoteNotes,
	})
	exitOnError(err, "failed to generate quote")

	fmt.Printf("Quote %s\n", q.Number)
	fmt.Printf("  Subtotal: ¥%d\n", q.Totals.Subtotal)
	fmt.Printf("  Tax:      ¥%d\n", q.Totals.TaxAmount)
	fmt.Printf("  Total:    ¥%d\n", q.Totals.TotalAmount)

	issuer, err := render.LoadIssuer(a.cfg.Billing.IssuerPath)
	exitOnError(err, "failed to load issuer info")

	htmlContent, err := render.QuoteHTML(q, issuer)
	exitOnError(err, "failed to render quote")

	htmlPath := filepath.Join(a.cfg.Billing.OutputDir, q.Number+".html")
	exitOnError(writeOutputFile(htmlPath, []byte(htmlContent)), "failed to write quote HTML")
	fmt.Printf("Wrote %s\n", htmlPath)

	if quotePDF {
		pdfPath := filepath.Join(a.cfg.Billing.OutputDir, q.Number+".pdf")
		exitOnError(render.WritePDF(context.Background(), htmlContent, pdfPath), "failed to render quote PDF")
		fmt.Printf("Wrote %s\n", pdfPath)
	}
}

// parseQuoteItems parses the repeated --item flags.
func parseQuoteItems(specs []string) ([]billing.Item, error) {
	items := make([]billing.Item, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, fmt.Errorf("item %q: want description:quantity:unit-price[:exempt]", spec)
		}

		quantity, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil || quantity < 0 {
			return nil, fmt.Errorf("item %q: bad quantity %q", spec, parts[1])
		}
		unitPrice, err := strconv.ParseInt(parts[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("item %q: bad unit price %q", spec, parts[2])
		}

		taxable := true
		category := billing.TaxCategoryStandard
		if len(parts) == 4 {
			if parts[3] != "exempt" {
				return nil, fmt.Errorf("item %q: unknown suffix %q", spec, parts[3])
			}
			taxable = false
			category = billing.TaxCategoryExempt
		}

		items = append(items, billing.Item{
			Description: parts[0],
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Taxable:     taxable,
			TaxCategory: category,
		})
	}
	return items, nil
}
