package db

import (
	"database/sql"
	"fmt"
	"time"
)

// InvoiceRecord is one row of the invoice history.
type InvoiceRecord struct {
	ID            int64
	InvoiceNumber string
	Client        string
	BillingMonth  string
	ItemCount     int
	Subtotal      int64
	TaxAmount     int64
	TotalAmount   int64
	Status        string
	IssuedAt      sql.NullString
	RecordedAt    time.Time
}

// ExportRecord is one row of the export history.
type ExportRecord struct {
	ID         int64
	FilePath   string
	EntryCount int
	RangeStart sql.NullString
	RangeEnd   sql.NullString
	ExportedAt time.Time
}

// History manages billing history operations.
type History struct {
	conn *Connection
}

// NewHistory creates a new History instance.
func NewHistory(conn *Connection) *History {
	return &History{conn: conn}
}

// RecordInvoice records an issued or generated invoice. A record with the
// same invoice number is updated in place.
func (h *History) RecordInvoice(record InvoiceRecord) error {
	query := `
		INSERT INTO invoice_history
			(invoice_number, client, billing_month, item_count, subtotal, tax_amount, total_amount, status, issued_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(invoice_number) DO UPDATE SET
			item_count = excluded.item_count,
			subtotal = excluded.subtotal,
			tax_amount = excluded.tax_amount,
			total_amount = excluded.total_amount,
			status = excluded.status,
			issued_at = excluded.issued_at,
			recorded_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query,
		record.InvoiceNumber,
		record.Client,
		record.BillingMonth,
		record.ItemCount,
		record.Subtotal,
		record.TaxAmount,
		record.TotalAmount,
		record.Status,
		record.IssuedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to record invoice: %w", err)
	}

	return nil
}

// RecordExport records a journal CSV export.
func (h *History) RecordExport(record ExportRecord) error {
	query := `
		INSERT INTO export_history (file_path, entry_count, range_start, range_end)
		VALUES (?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		record.FilePath,
		record.EntryCount,
		record.RangeStart,
		record.RangeEnd,
	)

	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}

	return nil
}

// GetInvoicesByClient retrieves invoice history for a client, newest month
// first.
func (h *History) GetInvoicesByClient(client string) ([]InvoiceRecord, error) {
	query := `
		SELECT id, invoice_number, client, billing_month, item_count, subtotal, tax_amount, total_amount, status, issued_at, recorded_at
		FROM invoice_history
		WHERE client = ?
		ORDER BY billing_month DESC
	`

	rows, err := h.conn.Query(query, client)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice history: %w", err)
	}
	defer rows.Close()

	var records []InvoiceRecord
	for rows.Next() {
		var record InvoiceRecord
		if err := rows.Scan(
			&record.ID,
			&record.InvoiceNumber,
			&record.Client,
			&record.BillingMonth,
			&record.ItemCount,
			&record.Subtotal,
			&record.TaxAmount,
			&record.TotalAmount,
			&record.Status,
			&record.IssuedAt,
			&record.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan invoice record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Stats represents billing history statistics.
type Stats struct {
	TotalInvoices int
	TotalBilled   int64
	TotalExports  int
	LastExport    sql.NullString
}

// GetStats retrieves billing statistics.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM invoice_history`).
		Scan(&stats.TotalInvoices, &stats.TotalBilled)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice stats: %w", err)
	}

	err = h.conn.QueryRow(`SELECT COUNT(*) FROM export_history`).Scan(&stats.TotalExports)
	if err != nil {
		return nil, fmt.Errorf("failed to get export count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(exported_at) FROM export_history`).Scan(&stats.LastExport)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last export time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (h *History) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM billing_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(key, value string) error {
	query := `
		INSERT INTO billing_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}
