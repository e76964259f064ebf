// Package render produces printable HTML and PDF documents for quotes and
// invoices.
package render

import (
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mkojima-works/agency-billing/internal/billing"
)

// Issuer is the company information printed on documents.
type Issuer struct {
	Name               string `yaml:"name"`
	Address            string `yaml:"address"`
	Email              string `yaml:"email"`
	BankDetails        string `yaml:"bank_details"`
	RegistrationNumber string `yaml:"registration_number"` // 適格請求書発行事業者登録番号
}

// issuerFile is the YAML shape of the issuer configuration file.
type issuerFile struct {
	Issuer Issuer `yaml:"issuer"`
}

// LoadIssuer reads issuer information from a YAML file.
func LoadIssuer(path string) (Issuer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Issuer{}, fmt.Errorf("failed to read issuer file: %w", err)
	}
	var file issuerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Issuer{}, fmt.Errorf("failed to parse issuer file: %w", err)
	}
	return file.Issuer, nil
}

// funcMap provides the formatting helpers shared by both document templates.
var funcMap = template.FuncMap{
	"yen":  formatYen,
	"date": formatDate,
	"rate": func(r float64) string { return fmt.Sprintf("%.0f%%", r*100) },
}

var invoiceTemplate = template.Must(template.New("invoice").Funcs(funcMap).Parse(invoiceHTML))
var quoteTemplate = template.Must(template.New("quote").Funcs(funcMap).Parse(quoteHTML))

// invoiceData is the template context for an invoice document.
type invoiceData struct {
	Invoice *billing.Invoice
	Issuer  Issuer
}

// quoteData is the template context for a quote document.
type quoteData struct {
	Quote  *billing.Quote
	Issuer Issuer
}

// InvoiceHTML renders the styled invoice document. All interpolated text is
// escaped by html/template.
func InvoiceHTML(inv *billing.Invoice, issuer Issuer) (string, error) {
	var sb strings.Builder
	if err := invoiceTemplate.Execute(&sb, invoiceData{Invoice: inv, Issuer: issuer}); err != nil {
		return "", fmt.Errorf("failed to render invoice document: %w", err)
	}
	return sb.String(), nil
}

// QuoteHTML renders the styled quote document.
func QuoteHTML(q *billing.Quote, issuer Issuer) (string, error) {
	var sb strings.Builder
	if err := quoteTemplate.Execute(&sb, quoteData{Quote: q, Issuer: issuer}); err != nil {
		return "", fmt.Errorf("failed to render quote document: %w", err)
	}
	return sb.String(), nil
}

// formatDate accepts both time.Time and *time.Time so templates can format
// optional dates directly.
func formatDate(v any) string {
	const layout = "2006年01月02日"
	switch t := v.(type) {
	case time.Time:
		return t.Format(layout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(layout)
	}
	return ""
}

// formatYen formats an integer yen amount with comma separators.
func formatYen(n int64) string {
	s := fmt.Sprintf("%d", n)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	if len(s) > 3 {
		var result []byte
		for i, c := range s {
			if i > 0 && (len(s)-i)%3 == 0 {
				result = append(result, ',')
			}
			result = append(result, byte(c))
		}
		s = string(result)
	}
	if negative {
		s = "-" + s
	}
	return "¥" + s
}
