// Package db provides SQLite storage for local billing history: which
// invoices were issued and which journal exports were produced.
package db

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Invoice history table
-- One row per issued invoice, keyed by invoice number
CREATE TABLE IF NOT EXISTS invoice_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    invoice_number TEXT NOT NULL,
    client TEXT NOT NULL,
    billing_month TEXT NOT NULL,      -- month label
    item_count INTEGER NOT NULL,
    subtotal INTEGER NOT NULL,        -- yen
    tax_amount INTEGER NOT NULL,
    total_amount INTEGER NOT NULL,
    status TEXT NOT NULL,
    issued_at TEXT,                   -- YYYY-MM-DD, NULL for drafts
    recorded_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(invoice_number)
);

CREATE INDEX IF NOT EXISTS idx_invoice_history_client
    ON invoice_history(client, billing_month);

-- Export history table
-- One row per journal CSV export
CREATE TABLE IF NOT EXISTS export_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path TEXT NOT NULL,
    entry_count INTEGER NOT NULL,
    range_start TEXT,                 -- YYYY-MM-DD, NULL when unbounded
    range_end TEXT,
    exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Metadata table
-- Stores key-value metadata about billing operations
CREATE TABLE IF NOT EXISTS billing_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
