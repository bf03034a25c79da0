package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID     string    `db:"entry_id"`
	UserID      string    `db:"user_id"`
	EntryDate   time.Time `db:"entry_date"`
	EntryTime   string    `db:"entry_time"`
	Description string    `db:"description"`
	SourceKind  string    `db:"source_kind"`
	SourceID    *string   `db:"source_id"` // Null for manual entries
	BillNo      string    `db:"bill_no"`
	PaymentType string    `db:"payment_type"`
	CustomerID  *string   `db:"customer_id"`
	SupplierID  *string   `db:"supplier_id"`
	SoftDelete
	AuditFields
}

// JournalLine represents a row of the journal_lines table.
type JournalLine struct {
	LineID    string          `db:"line_id"`
	EntryID   string          `db:"entry_id"`
	AccountID string          `db:"account_id"`
	LineType  string          `db:"line_type"` // DEBIT or CREDIT
	Amount    decimal.Decimal `db:"amount"`
	Position  int             `db:"position"`
}

// AccountLine is a journal line joined with the header of its entry.
type AccountLine struct {
	JournalLine
	EntryDate   time.Time `db:"entry_date"`
	EntryTime   string    `db:"entry_time"`
	Description string    `db:"description"`
	BillNo      string    `db:"bill_no"`
	SourceKind  string    `db:"source_kind"`
	SourceID    *string   `db:"source_id"`
	CreatedAt   time.Time `db:"created_at"`
}
