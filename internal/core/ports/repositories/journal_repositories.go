package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines in insertion order.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves entries ordered by date then id, newest first, using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// ListLedgerLines retrieves every line posted to an account, optionally restricted to
	// entries dated on or before asOf, ordered by entry date, entry id and line position.
	ListLedgerLines(ctx context.Context, accountID int64, asOf *time.Time) ([]domain.LedgerLine, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists an entry and its lines and applies balance changes as one atomic
	// unit, assigning entry and line ids in place. Touched accounts are serialized for the
	// duration of the write. When reverses is set, the referenced entry is marked reversed by
	// the new entry in the same unit; if it is already reversed nothing is written and a
	// conflict error is returned.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry, changes []domain.BalanceChange, reverses *int64) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
