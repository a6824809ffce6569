package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table.
type JournalEntry struct {
	EntryID           int64     `db:"entry_id"`
	EntryDate         time.Time `db:"entry_date"`
	Description       string    `db:"description"`
	Status            string    `db:"status"`
	ReversedByEntryID *int64    `db:"reversed_by_entry_id"` // Nullable
	ReversesEntryID   *int64    `db:"reverses_entry_id"`    // Nullable
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID    int64           `db:"line_id"`
	EntryID   int64           `db:"entry_id"`
	AccountID int64           `db:"account_id"`
	Debit     decimal.Decimal `db:"debit"`
	Credit    decimal.Decimal `db:"credit"`
	Position  int             `db:"position"`
}

// LedgerLine is a journal line joined with its entry's date and description.
type LedgerLine struct {
	JournalLine
	EntryDate        time.Time `db:"entry_date"`
	EntryDescription string    `db:"entry_description"`
}
