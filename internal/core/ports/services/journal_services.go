package services

import (
	"context"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific entry with its lines.
	GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries, newest first.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error)
}

// JournalWriterSvc defines the posting operations. Posted entries are never edited or deleted.
type JournalWriterSvc interface {
	// PostEntry validates and atomically commits a balanced entry, updating account balances.
	PostEntry(ctx context.Context, req dto.PostEntryRequest, actor string) (*domain.JournalEntry, error)

	// ReverseEntry posts the mirror image of an entry and marks the original reversed.
	// It returns the new reversing entry.
	ReverseEntry(ctx context.Context, entryID int64, actor string) (*domain.JournalEntry, error)
}

// JournalCalculatorSvc defines balance queries over the posted entry log.
type JournalCalculatorSvc interface {
	// GetAccountBalance returns the stored balance, or the balance folded from entries
	// dated on or before asOf when asOf is set.
	GetAccountBalance(ctx context.Context, accountID int64, asOf *time.Time) (decimal.Decimal, error)

	// GetAccountLedger returns the account's lines with running balances and the final balance.
	GetAccountLedger(ctx context.Context, accountID int64, asOf *time.Time) ([]domain.LedgerLine, decimal.Decimal, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalCalculatorSvc
}
