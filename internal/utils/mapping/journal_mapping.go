package mapping

import (
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its row form. Lines are mapped
// separately.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		EntryDate:         domain.DateOnly(d.Date),
		Description:       d.Description,
		Status:            string(d.Status),
		ReversedByEntryID: d.ReversedByEntryID,
		ReversesEntryID:   d.ReversesEntryID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts an entry row and its lines to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		Date:              domain.DateOnly(m.EntryDate),
		Description:       m.Description,
		Status:            domain.EntryStatus(m.Status),
		ReversedByEntryID: m.ReversedByEntryID,
		ReversesEntryID:   m.ReversesEntryID,
		Lines:             ToDomainJournalLineSlice(lines),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Debit:     m.Debit,
		Credit:    m.Credit,
		Position:  m.Position,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToDomainLedgerLine converts a joined ledger row to a domain LedgerLine.
func ToDomainLedgerLine(m models.LedgerLine) domain.LedgerLine {
	return domain.LedgerLine{
		JournalLine:      ToDomainJournalLine(m.JournalLine),
		EntryDate:        domain.DateOnly(m.EntryDate),
		EntryDescription: m.EntryDescription,
	}
}
