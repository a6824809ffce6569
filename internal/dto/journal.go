package dto

import (
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostEntryLine is one debit or credit line of a journal entry request.
type PostEntryLine struct {
	AccountID int64           `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// PostEntryRequest defines the data needed to post a journal entry.
// Lines are validated by the posting engine, not by binding, so that each rule reports
// its own error kind. A missing date defaults to today.
type PostEntryRequest struct {
	Date        *Date           `json:"date"`
	Description string          `json:"description" binding:"max=1000"`
	Lines       []PostEntryLine `json:"lines"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    int64           `json:"lineID"`
	AccountID int64           `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID           int64                 `json:"entryID"`
	Date              Date                  `json:"date"`
	Description       string                `json:"description"`
	Status            domain.EntryStatus    `json:"status"`
	ReversedByEntryID *int64                `json:"reversedByEntryID,omitempty"`
	ReversesEntryID   *int64                `json:"reversesEntryID,omitempty"`
	Lines             []JournalLineResponse `json:"lines"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy     string                `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	res := JournalEntryResponse{
		EntryID:           e.EntryID,
		Date:              NewDate(e.Date),
		Description:       e.Description,
		Status:            e.Status,
		ReversedByEntryID: e.ReversedByEntryID,
		ReversesEntryID:   e.ReversesEntryID,
		Lines:             make([]JournalLineResponse, len(e.Lines)),
		TotalDebit:        decimal.Zero,
		TotalCredit:       decimal.Zero,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
	for i, l := range e.Lines {
		res.Lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
		res.TotalDebit = res.TotalDebit.Add(l.Debit)
		res.TotalCredit = res.TotalCredit.Add(l.Credit)
	}
	return res
}

// ReverseEntryResponse returns the new reversing entry together with the updated original.
type ReverseEntryResponse struct {
	Reversal JournalEntryResponse `json:"reversal"`
	Original JournalEntryResponse `json:"original"`
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of journal entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ToListEntriesResponse converts a page of entries.
func ToListEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListEntriesResponse {
	res := ListEntriesResponse{
		Entries:   make([]JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		res.Entries[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
