package billing

import (
	"testing"
	"time"

	"github.com/mkojima-works/agency-billing/internal/lineitem"
)

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	return &t
}

func testItems() []lineitem.LineItem {
	return []lineitem.LineItem{
		{ID: "rec1", ProjectName: "夏季キャンペーン", ContentType: "記事", Client: "株式会社サンライズ企画",
			Quantity: 2, UnitPrice: 10000, Amount: 20000,
			Status: lineitem.StatusDelivered, SubmittedAt: date(2025, 8, 10)},
		{ID: "rec2", ProjectName: "夏季キャンペーン", ContentType: "バナー", Client: "株式会社サンライズ企画",
			Quantity: 1, UnitPrice: 5000, Amount: 5000,
			Status: lineitem.StatusDelivered, SubmittedAt: date(2025, 8, 20)},
		{ID: "rec3", ProjectName: "会社案内", ContentType: "パンフレット", Client: "グリーンリーフ出版",
			Quantity: 1, UnitPrice: 30000, Amount: 30000,
			Status: lineitem.StatusDelivered, SubmittedAt: date(2025, 8, 5)},
		// Different month via explicit label.
		{ID: "rec4", ProjectName: "秋号特集", ContentType: "記事", Client: "グリーンリーフ出版",
			Quantity: 1, UnitPrice: 12000, Amount: 12000,
			Status: lineitem.StatusDelivered, SubmittedAt: date(2025, 8, 30), InvoiceMonth: "2025年09月"},
		// Not delivered: never eligible.
		{ID: "rec5", ProjectName: "進行中案件", ContentType: "記事", Client: "株式会社サンライズ企画",
			Quantity: 1, UnitPrice: 8000, Amount: 8000,
			Status: lineitem.StatusInProgress, SubmittedAt: date(2025, 8, 15)},
		// Already invoiced.
		{ID: "rec6", ProjectName: "7月納品分", ContentType: "記事", Client: "株式会社サンライズ企画",
			Quantity: 1, UnitPrice: 9000, Amount: 9000,
			Status: lineitem.StatusDelivered, SubmittedAt: date(2025, 7, 25),
			Invoiced: true, InvoicedAt: date(2025, 8, 1)},
	}
}

func TestComputeGroupsPartition(t *testing.T) {
	items := testItems()
	groups := ComputeGroups(items, GroupFilter{})

	// Eligible: rec1, rec2 (SUN 2025-08), rec3 (GLP 2025-08), rec4 (GLP 2025-09).
	if len(groups) != 3 {
		t.Fatalf("got %d groups, expected 3", len(groups))
	}

	seen := map[string]bool{}
	var groupTotal, memberCount int64
	for _, group := range groups {
		groupTotal += group.TotalAmount
		for _, item := range group.Items {
			if seen[item.ID] {
				t.Errorf("item %s appears in more than one group", item.ID)
			}
			seen[item.ID] = true
			memberCount++
		}
	}

	// Sum of group totals equals sum of eligible item amounts.
	if groupTotal != 20000+5000+30000+12000 {
		t.Errorf("total across groups = %d, expected 67000", groupTotal)
	}
	if memberCount != 4 {
		t.Errorf("member count = %d, expected 4", memberCount)
	}
}

func TestComputeGroupsSortedByMonthDescending(t *testing.T) {
	groups := ComputeGroups(testItems(), GroupFilter{})

	for i := 1; i < len(groups); i++ {
		if groups[i-1].Month < groups[i].Month {
			t.Errorf("groups not sorted by month descending: %s before %s",
				groups[i-1].Month, groups[i].Month)
		}
	}
	if groups[0].Month != "2025年09月" {
		t.Errorf("first group month = %s, expected 2025年09月", groups[0].Month)
	}
}

func TestComputeGroupsClientFilter(t *testing.T) {
	groups := ComputeGroups(testItems(), GroupFilter{Client: "株式会社サンライズ企画"})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, expected 1", len(groups))
	}
	if groups[0].TotalAmount != 25000 || groups[0].ItemCount != 2 {
		t.Errorf("group = ¥%d / %d items, expected ¥25000 / 2",
			groups[0].TotalAmount, groups[0].ItemCount)
	}
}

func TestComputeGroupsMonthFilter(t *testing.T) {
	groups := ComputeGroups(testItems(), GroupFilter{Year: 2025, Month: time.September})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, expected 1", len(groups))
	}
	if groups[0].Client != "グリーンリーフ出版" || groups[0].Items[0].ID != "rec4" {
		t.Errorf("unexpected group: %+v", groups[0])
	}
}

func TestComputeGroupsInvoicedExcluded(t *testing.T) {
	groups := ComputeGroups(testItems(), GroupFilter{})
	for _, group := range groups {
		for _, item := range group.Items {
			if item.Invoiced {
				t.Errorf("invoiced item %s included in unbilled grouping", item.ID)
			}
		}
	}

	// Marking an item invoiced removes it from subsequent computations.
	items := testItems()
	items[0].Invoiced = true
	items[0].InvoicedAt = date(2025, 9, 1)
	regrouped := ComputeGroups(items, GroupFilter{Client: "株式会社サンライズ企画"})
	if len(regrouped) != 1 || regrouped[0].ItemCount != 1 {
		t.Errorf("expected 1 group with 1 item after invoicing, got %+v", regrouped)
	}
}

func TestComputeGroupsIncludeInvoiced(t *testing.T) {
	groups := ComputeGroups(testItems(), GroupFilter{IncludeInvoiced: true, Client: "株式会社サンライズ企画"})

	total := int64(0)
	for _, group := range groups {
		total += group.TotalAmount
	}
	if total != 25000+9000 {
		t.Errorf("total = %d, expected 34000 with invoiced items included", total)
	}
}

func TestComputeGroupsMonthFallback(t *testing.T) {
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.Local)
	items := []lineitem.LineItem{
		{ID: "rec1", Client: "ホシノデザイン事務所", Status: lineitem.StatusDelivered,
			Quantity: 1, UnitPrice: 1000, Amount: 1000},
	}

	groups := ComputeGroups(items, GroupFilter{Now: now})

	if len(groups) != 1 {
		t.Fatalf("got %d groups, expected 1", len(groups))
	}
	if groups[0].Month != "2025年08月" {
		t.Errorf("month = %s, expected fallback to now (2025年08月)", groups[0].Month)
	}
}
