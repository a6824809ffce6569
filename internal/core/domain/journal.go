package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a posted journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "Posted"
	Reversed EntryStatus = "Reversed"
)

// JournalEntry is an immutable record of one business event once posted.
// The only mutation ever applied to a stored entry is linking it to its reversal.
type JournalEntry struct {
	EntryID           int64         `json:"entryID"`
	Date              time.Time     `json:"date"`
	Description       string        `json:"description"`
	Status            EntryStatus   `json:"status"`
	ReversedByEntryID *int64        `json:"reversedByEntryID,omitempty"`
	ReversesEntryID   *int64        `json:"reversesEntryID,omitempty"`
	Lines             []JournalLine `json:"lines"`
	AuditFields
}

// JournalLine is one side of an entry. Exactly one of Debit and Credit is nonzero.
type JournalLine struct {
	LineID    int64           `json:"lineID"`
	EntryID   int64           `json:"entryID"`
	AccountID int64           `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Position  int             `json:"position"`
}

// Side reports which column carries the line's amount.
func (l JournalLine) Side() Side {
	if l.Debit.IsPositive() {
		return Debit
	}
	return Credit
}

// Amount is the nonzero column of the line.
func (l JournalLine) Amount() decimal.Decimal {
	if l.Debit.IsPositive() {
		return l.Debit
	}
	return l.Credit
}

// Mirror returns the line with debit and credit swapped and ids cleared.
func (l JournalLine) Mirror() JournalLine {
	return JournalLine{
		AccountID: l.AccountID,
		Debit:     l.Credit,
		Credit:    l.Debit,
		Position:  l.Position,
	}
}

// IsReversed reports whether a reversing entry has been linked to e.
func (e JournalEntry) IsReversed() bool {
	return e.Status == Reversed || e.ReversedByEntryID != nil
}

// BalanceChange is the signed delta applied to one account when an entry commits.
type BalanceChange struct {
	AccountID int64
	Delta     decimal.Decimal
}

// LedgerLine is a journal line joined with its entry's date and description, used when
// folding an account's history.
type LedgerLine struct {
	JournalLine
	EntryDate        time.Time       `json:"entryDate"`
	EntryDescription string          `json:"entryDescription"`
	RunningBalance   decimal.Decimal `json:"runningBalance"`
}
