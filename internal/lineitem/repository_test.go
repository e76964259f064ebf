package lineitem

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkojima-works/agency-billing/pkg/tablestore"
)

// fakeClient is an in-memory RecordClient.
type fakeClient struct {
	records []tablestore.Record
	updates map[string]map[string]any
}

func (c *fakeClient) FetchAllRecords(ctx context.Context) ([]tablestore.Record, error) {
	return c.records, nil
}

func (c *fakeClient) GetRecord(ctx context.Context, id string) (*tablestore.Record, error) {
	for i := range c.records {
		if c.records[i].ID == id {
			return &c.records[i], nil
		}
	}
	return nil, nil
}

func (c *fakeClient) UpdateRecord(ctx context.Context, id string, fields map[string]any) (*tablestore.Record, error) {
	if c.updates == nil {
		c.updates = make(map[string]map[string]any)
	}
	c.updates[id] = fields
	return &tablestore.Record{ID: id, Fields: fields}, nil
}

func TestListDecodesFieldVariants(t *testing.T) {
	submitted := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{records: []tablestore.Record{
		{ID: "rec1", Fields: map[string]any{
			"案件名":     "夏季キャンペーン",
			"コンテンツ種別": map[string]any{"text": "記事", "id": "opt1"},
			"数量":      float64(2),
			"単価":      "10,000",
			"提出日":     float64(submitted.UnixMilli()),
			"ステータス":   "納品済",
			"クライアント":  map[string]any{"text": "株式会社サンライズ企画"},
			"請求済み":    false,
			"請求月":     "2025年08月",
		}},
	}}
	repo := NewRepository(client, zerolog.Nop())

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, expected 1", len(items))
	}

	item := items[0]
	if item.ProjectName != "夏季キャンペーン" {
		t.Errorf("ProjectName = %q", item.ProjectName)
	}
	if item.ContentType != "記事" {
		t.Errorf("ContentType = %q, expected text extracted from select object", item.ContentType)
	}
	if item.Quantity != 2 || item.UnitPrice != 10000 {
		t.Errorf("quantity/price = %d/%d, expected 2/10000", item.Quantity, item.UnitPrice)
	}
	if item.Status != StatusDelivered {
		t.Errorf("Status = %s, expected delivered", item.Status)
	}
	if item.SubmittedAt == nil || !item.SubmittedAt.Equal(submitted) {
		t.Errorf("SubmittedAt = %v", item.SubmittedAt)
	}
	if item.Client != "株式会社サンライズ企画" {
		t.Errorf("Client = %q", item.Client)
	}
	if item.InvoiceMonth != "2025年08月" {
		t.Errorf("InvoiceMonth = %q", item.InvoiceMonth)
	}
}

func TestListRecomputesAmount(t *testing.T) {
	client := &fakeClient{records: []tablestore.Record{
		{ID: "rec1", Fields: map[string]any{
			"数量": float64(3),
			"単価": float64(1000),
			// A stale stored amount must be ignored.
			"金額": float64(999999),
		}},
	}}
	repo := NewRepository(client, zerolog.Nop())

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Amount != 3000 {
		t.Errorf("Amount = %d, expected 3000", items[0].Amount)
	}
}

func TestListUnknownStatusLabel(t *testing.T) {
	client := &fakeClient{records: []tablestore.Record{
		{ID: "rec1", Fields: map[string]any{"ステータス": "検収待ち"}},
	}}
	repo := NewRepository(client, zerolog.Nop())

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Status != StatusNotStarted {
		t.Errorf("Status = %s, expected fallback to not_started", items[0].Status)
	}
}

func TestMarkInvoiced(t *testing.T) {
	client := &fakeClient{}
	repo := NewRepository(client, zerolog.Nop())
	at := time.Date(2025, 9, 1, 10, 0, 0, 0, time.Local)

	if err := repo.MarkInvoiced(context.Background(), "rec1", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fields := client.updates["rec1"]
	if fields == nil {
		t.Fatal("no update sent")
	}
	if fields["請求済み"] != true {
		t.Errorf("請求済み = %v, expected true", fields["請求済み"])
	}
	if fields["請求日"] != at.UnixMilli() {
		t.Errorf("請求日 = %v, expected %d", fields["請求日"], at.UnixMilli())
	}
}

func TestUpdateStatusSendsLabel(t *testing.T) {
	client := &fakeClient{}
	repo := NewRepository(client, zerolog.Nop())

	if err := repo.UpdateStatus(context.Background(), "rec1", StatusDelivered); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := client.updates["rec1"]["ステータス"]; got != "納品済" {
		t.Errorf("ステータス = %v, expected 納品済", got)
	}
}

func TestResolveMonth(t *testing.T) {
	now := time.Date(2025, 9, 15, 0, 0, 0, 0, time.Local)
	submitted := time.Date(2025, 8, 20, 0, 0, 0, 0, time.Local)

	tests := []struct {
		name     string
		item     LineItem
		expected string
	}{
		{"explicit label wins", LineItem{InvoiceMonth: "2025年10月", SubmittedAt: &submitted}, "2025年10月"},
		{"submission date", LineItem{SubmittedAt: &submitted}, "2025年08月"},
		{"fallback to now", LineItem{}, "2025年09月"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.ResolveMonth(now); got != tt.expected {
				t.Errorf("ResolveMonth = %q, expected %q", got, tt.expected)
			}
		})
	}
}
