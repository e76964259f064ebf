package render

import (
	"context"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/mkojima-works/agency-billing/pkg/apperr"
)

// HTMLToPDF renders an HTML document to PDF using headless Chrome.
func HTMLToPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	const op = "render.HTMLToPDF"

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
		)...,
	)
	defer cancel()

	chromedpCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	chromedpCtx, cancel = context.WithTimeout(chromedpCtx, 30*time.Second)
	defer cancel()

	var pdfData []byte

	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfData, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodePDFGenerationFailed, op, err)
	}

	return pdfData, nil
}

// WritePDF renders the HTML to PDF and writes it to path.
func WritePDF(ctx context.Context, htmlContent, path string) error {
	const op = "render.WritePDF"

	pdfData, err := HTMLToPDF(ctx, htmlContent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, pdfData, 0644); err != nil {
		return apperr.Wrap(apperr.CodeFileWriteFailed, op, err)
	}
	return nil
}
