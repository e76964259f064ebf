// Package billing implements the invoice grouping engine, tax calculation
// and document assembly for the agency's monthly billing flow.
package billing

import (
	"sort"
	"time"

	"github.com/mkojima-works/agency-billing/internal/lineitem"
)

// InvoiceGroup is the unit of billing: all delivered, not-yet-invoiced line
// items sharing a client and a billing month. Membership is recomputed on
// every query, never persisted.
type InvoiceGroup struct {
	Client      string
	Month       string
	Items       []lineitem.LineItem
	TotalAmount int64
	ItemCount   int
}

// GroupFilter narrows the items considered by ComputeGroups.
type GroupFilter struct {
	// Client keeps only items of this client when non-empty.
	Client string

	// Year and Month keep only items whose resolved billing month matches
	// when Year is non-zero.
	Year  int
	Month time.Month

	// IncludeInvoiced also considers already-invoiced items. The default
	// (false) restricts grouping to unbilled items.
	IncludeInvoiced bool

	// Now anchors the month fallback for items without a submission date.
	// Zero means time.Now().
	Now time.Time
}

// ComputeGroups partitions eligible line items into invoice groups.
//
// Eligibility: delivered status, plus unbilled and client/month filters per
// the GroupFilter. Each item's billing month is its invoice-month label when
// present, else derived from its submission date (falling back to now).
// Groups are keyed by (client, month) and sorted by month label descending;
// the label format sorts date-correctly because it is zero-padded and
// year-first.
func ComputeGroups(items []lineitem.LineItem, filter GroupFilter) []InvoiceGroup {
	now := filter.Now
	if now.IsZero() {
		now = time.Now()
	}

	targetMonth := ""
	if filter.Year != 0 {
		targetMonth = lineitem.MonthLabel(time.Date(filter.Year, filter.Month, 1, 0, 0, 0, 0, time.Local))
	}

	type key struct {
		client string
		month  string
	}
	groups := make(map[key]*InvoiceGroup)
	var order []key

	for _, item := range items {
		if item.Status != lineitem.StatusDelivered {
			continue
		}
		if !filter.IncludeInvoiced && item.Invoiced {
			continue
		}
		if filter.Client != "" && item.Client != filter.Client {
			continue
		}

		month := item.ResolveMonth(now)

		if targetMonth != "" && month != targetMonth {
			// A missing label can still match through the invoice date.
			if item.InvoiceMonth != "" || item.InvoicedAt == nil {
				continue
			}
			if item.InvoicedAt.Year() != filter.Year || item.InvoicedAt.Month() != filter.Month {
				continue
			}
			month = targetMonth
		}

		k := key{client: item.Client, month: month}
		group, ok := groups[k]
		if !ok {
			group = &InvoiceGroup{Client: item.Client, Month: month}
			groups[k] = group
			order = append(order, k)
		}
		group.Items = append(group.Items, item)
		group.TotalAmount += item.Amount
		group.ItemCount++
	}

	result := make([]InvoiceGroup, 0, len(order))
	for _, k := range order {
		result = append(result, *groups[k])
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Month != result[j].Month {
			return result[i].Month > result[j].Month
		}
		return result[i].Client < result[j].Client
	})

	return result
}
