package lineitem

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mkojima-works/agency-billing/pkg/tablestore"
)

// Field labels of the remote line-item table.
const (
	fieldProjectName  = "案件名"
	fieldContentType  = "コンテンツ種別"
	fieldQuantity     = "数量"
	fieldUnitPrice    = "単価"
	fieldScheduledAt  = "掲載予定日"
	fieldSubmittedAt  = "提出日"
	fieldStatus       = "ステータス"
	fieldClient       = "クライアント"
	fieldInvoiced     = "請求済み"
	fieldInvoicedAt   = "請求日"
	fieldNotes        = "備考"
	fieldInvoiceMonth = "請求月"
)

// RecordClient is the slice of the table-store client the repository needs.
type RecordClient interface {
	FetchAllRecords(ctx context.Context) ([]tablestore.Record, error)
	GetRecord(ctx context.Context, id string) (*tablestore.Record, error)
	UpdateRecord(ctx context.Context, id string, fields map[string]any) (*tablestore.Record, error)
}

// Repository reads and mutates line items in the remote table.
type Repository struct {
	client RecordClient
	logger zerolog.Logger
}

// NewRepository creates a line-item repository over the given client.
func NewRepository(client RecordClient, logger zerolog.Logger) *Repository {
	return &Repository{
		client: client,
		logger: logger.With().Str("component", "lineitem").Logger(),
	}
}

// List fetches every line item in the table.
func (r *Repository) List(ctx context.Context) ([]LineItem, error) {
	records, err := r.client.FetchAllRecords(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, r.decode(rec))
	}

	r.logger.Debug().Int("count", len(items)).Msg("fetched line items")
	return items, nil
}

// Get fetches one line item by record ID.
func (r *Repository) Get(ctx context.Context, id string) (*LineItem, error) {
	rec, err := r.client.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	item := r.decode(*rec)
	return &item, nil
}

// MarkInvoiced sets the invoiced flag and invoice date of a line item. This
// is the only mutation the billing flow performs on the remote table.
func (r *Repository) MarkInvoiced(ctx context.Context, id string, at time.Time) error {
	fields := map[string]any{
		fieldInvoiced:   true,
		fieldInvoicedAt: at.UnixMilli(),
	}
	if _, err := r.client.UpdateRecord(ctx, id, fields); err != nil {
		return err
	}
	r.logger.Info().Str("record_id", id).Time("invoiced_at", at).Msg("marked line item invoiced")
	return nil
}

// UpdateStatus changes the delivery status of a line item.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	fields := map[string]any{fieldStatus: status.Label()}
	if _, err := r.client.UpdateRecord(ctx, id, fields); err != nil {
		return err
	}
	r.logger.Info().Str("record_id", id).Str("status", string(status)).Msg("updated line item status")
	return nil
}

// decode maps a raw record to a LineItem, coercing each field defensively.
// Amount is always recomputed from quantity and unit price, never trusted
// from the stored column.
func (r *Repository) decode(rec tablestore.Record) LineItem {
	f := rec.Fields

	statusLabel := tablestore.StringValue(f[fieldStatus])
	status := ParseStatus(statusLabel)
	if statusLabel != "" && status == StatusNotStarted && statusLabel != StatusNotStarted.Label() {
		r.logger.Debug().Str("record_id", rec.ID).Str("label", statusLabel).Msg("unknown status label")
	}

	quantity := tablestore.IntValue(f[fieldQuantity])
	unitPrice := tablestore.IntValue(f[fieldUnitPrice])

	return LineItem{
		ID:           rec.ID,
		ProjectName:  tablestore.StringValue(f[fieldProjectName]),
		ContentType:  tablestore.StringValue(f[fieldContentType]),
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		Amount:       quantity * unitPrice,
		ScheduledAt:  tablestore.TimeValue(f[fieldScheduledAt]),
		SubmittedAt:  tablestore.TimeValue(f[fieldSubmittedAt]),
		Status:       status,
		Client:       tablestore.StringValue(f[fieldClient]),
		Invoiced:     tablestore.BoolValue(f[fieldInvoiced]),
		InvoicedAt:   tablestore.TimeValue(f[fieldInvoicedAt]),
		Notes:        tablestore.StringValue(f[fieldNotes]),
		InvoiceMonth: tablestore.StringValue(f[fieldInvoiceMonth]),
	}
}
