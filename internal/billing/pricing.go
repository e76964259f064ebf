package billing

import "math"

// DefaultTaxRate is the Japanese consumption tax rate applied when no
// override is configured.
const DefaultTaxRate = 0.10

// TaxCategoryStandard is the tax category stamped on standard-rate invoice
// items and carried through to journal entries.
const TaxCategoryStandard = "課税売上10%"

// TaxCategoryExempt marks non-taxable amounts.
const TaxCategoryExempt = "非課税売上"

// Item is one priced line of a quote or invoice.
type Item struct {
	Description string
	Quantity    int64
	UnitPrice   int64 // yen
	Amount      int64 // Quantity * UnitPrice, recomputed by PriceItems
	Taxable     bool
	TaxCategory string
}

// Totals holds the derived amounts of a priced document.
type Totals struct {
	TaxableSubtotal    int64
	NonTaxableSubtotal int64
	Subtotal           int64
	TaxRate            float64
	TaxAmount          int64
	TotalAmount        int64
}

// PriceItems recomputes every item amount from quantity and unit price and
// derives the document totals. Tax is truncated, never rounded up, per
// Japanese consumption-tax invoice rules. The function is pure and
// idempotent: re-pricing already-priced items with the same inputs yields
// identical output.
func PriceItems(items []Item, taxRate float64) ([]Item, Totals) {
	priced := make([]Item, len(items))
	var taxable, nonTaxable int64

	for i, item := range items {
		item.Amount = item.Quantity * item.UnitPrice
		if item.Taxable {
			taxable += item.Amount
		} else {
			nonTaxable += item.Amount
		}
		priced[i] = item
	}

	taxAmount := int64(math.Floor(float64(taxable) * taxRate))
	subtotal := taxable + nonTaxable

	return priced, Totals{
		TaxableSubtotal:    taxable,
		NonTaxableSubtotal: nonTaxable,
		Subtotal:           subtotal,
		TaxRate:            taxRate,
		TaxAmount:          taxAmount,
		TotalAmount:        subtotal + taxAmount,
	}
}
