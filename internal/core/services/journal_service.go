package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// journalService is the posting engine. It is the only writer of account balances.
type journalService struct {
	BaseService
	accountSvc  portssvc.AccountReaderSvc
	journalRepo portsrepo.JournalRepositoryFacade
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalClock overrides the clock used for reversal dates and audit timestamps.
func WithJournalClock(clock func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.clock = clock
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountReaderSvc, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func normalBalanceOf(acc domain.Account) domain.Side {
	if acc.NormalBalance != "" {
		return acc.NormalBalance
	}
	return acc.AccountType.NormalBalance()
}

// PostEntry implements portssvc.JournalSvcFacade
func (s *journalService) PostEntry(ctx context.Context, req dto.PostEntryRequest, actor string) (*domain.JournalEntry, error) {
	date := domain.DateOnly(s.Now())
	if req.Date != nil && !req.Date.IsZero() {
		date = domain.DateOnly(req.Date.Time)
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Position:  i,
		}
	}

	return s.post(ctx, date, req.Description, lines, actor, nil)
}

// post validates lines in a fixed order and commits the entry. Validation never touches
// storage state; the only mutation is the single SaveEntry call.
func (s *journalService) post(ctx context.Context, date time.Time, description string, lines []domain.JournalLine, actor string, reverses *int64) (*domain.JournalEntry, error) {
	if len(lines) == 0 {
		err := apperrors.NewValidationError(apperrors.KindEmptyEntry, "journal entry must have at least one line")
		s.LogWarn(ctx, err, "Rejected journal entry")
		return nil, err
	}

	for i, line := range lines {
		if !accounting.IsWellFormed(line) {
			err := apperrors.NewValidationError(apperrors.KindMalformedLine,
				fmt.Sprintf("line %d: amounts must be non-negative with exactly one of debit or credit nonzero and at most %d decimal places (debit %s, credit %s)", i+1, accounting.AmountScale, line.Debit, line.Credit))
			s.LogWarn(ctx, err, "Rejected journal entry")
			return nil, err
		}
	}

	accountIDs := make([]int64, 0, len(lines))
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal entry")
		return nil, apperrors.AsStorageError("failed to fetch accounts", err)
	}

	normalBalances := make(map[int64]domain.Side, len(accountIDs))
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			err := apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", id))
			s.LogWarn(ctx, err, "Rejected journal entry")
			return nil, err
		}
		normalBalances[id] = normalBalanceOf(acc)
	}

	if !accounting.IsBalanced(lines) {
		debits, credits := accounting.Totals(lines)
		err := apperrors.NewValidationError(apperrors.KindUnbalanced,
			fmt.Sprintf("total debits %s do not equal total credits %s", debits, credits))
		s.LogWarn(ctx, err, "Rejected journal entry")
		return nil, err
	}

	now := s.Now()
	entry := &domain.JournalEntry{
		Date:        date,
		Description: description,
		Status:      domain.Posted,
		Lines:       lines,
		AuditFields: domain.NewAuditFields(actor, now),
	}
	changes := accounting.BalanceChanges(lines, normalBalances)

	if err := s.journalRepo.SaveEntry(ctx, entry, changes, reverses); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, apperrors.AsStorageError("failed to save journal entry", err)
	}

	s.LogInfo(ctx, "Journal entry posted",
		slog.Int64("entry_id", entry.EntryID),
		slog.Int("lines", len(entry.Lines)),
		slog.Time("date", entry.Date))
	return entry, nil
}

// ReverseEntry implements portssvc.JournalSvcFacade
func (s *journalService) ReverseEntry(ctx context.Context, entryID int64, actor string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch journal entry", err)
	}
	if original.IsReversed() {
		return nil, apperrors.NewConflictError(apperrors.KindAlreadyReversed, fmt.Sprintf("journal entry %d is already reversed", entryID))
	}

	mirrored := make([]domain.JournalLine, len(original.Lines))
	for i, line := range original.Lines {
		mirrored[i] = line.Mirror()
	}

	description := fmt.Sprintf("Reversal of entry %d", entryID)
	if original.Description != "" {
		description = fmt.Sprintf("%s: %s", description, original.Description)
	}

	reversal, err := s.post(ctx, domain.DateOnly(s.Now()), description, mirrored, actor, &original.EntryID)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.Int64("original_entry_id", entryID),
		slog.Int64("reversing_entry_id", reversal.EntryID))
	return reversal, nil
}

// GetEntryByID implements portssvc.JournalSvcFacade
func (s *journalService) GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch journal entry", err)
	}
	return entry, nil
}

// ListEntries implements portssvc.JournalSvcFacade
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.JournalEntry, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	entries, next, err := s.journalRepo.ListEntries(ctx, limit, params.NextToken)
	if err != nil {
		return nil, nil, apperrors.AsStorageError("failed to list journal entries", err)
	}
	return entries, next, nil
}

// GetAccountBalance implements portssvc.JournalSvcFacade
func (s *journalService) GetAccountBalance(ctx context.Context, accountID int64, asOf *time.Time) (decimal.Decimal, error) {
	acc, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, apperrors.AsStorageError("failed to fetch account", err)
	}
	if asOf == nil {
		return acc.Balance, nil
	}

	_, balance, err := s.foldLedger(ctx, *acc, *asOf)
	return balance, err
}

// GetAccountLedger implements portssvc.JournalSvcFacade
func (s *journalService) GetAccountLedger(ctx context.Context, accountID int64, asOf *time.Time) ([]domain.LedgerLine, decimal.Decimal, error) {
	acc, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, decimal.Zero, apperrors.AsStorageError("failed to fetch account", err)
	}

	var lines []domain.LedgerLine
	if asOf == nil {
		lines, err = s.journalRepo.ListLedgerLines(ctx, accountID, nil)
		if err != nil {
			return nil, decimal.Zero, apperrors.AsStorageError("failed to list ledger lines", err)
		}
		balance := accounting.FoldBalance(lines, normalBalanceOf(*acc))
		return lines, balance, nil
	}
	return s.foldLedger(ctx, *acc, *asOf)
}

func (s *journalService) foldLedger(ctx context.Context, acc domain.Account, asOf time.Time) ([]domain.LedgerLine, decimal.Decimal, error) {
	day := domain.DateOnly(asOf)
	lines, err := s.journalRepo.ListLedgerLines(ctx, acc.AccountID, &day)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger lines", slog.Int64("account_id", acc.AccountID))
		return nil, decimal.Zero, apperrors.AsStorageError("failed to list ledger lines", err)
	}
	return lines, accounting.FoldBalance(lines, normalBalanceOf(acc)), nil
}
