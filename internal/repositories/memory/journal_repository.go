package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func copyEntry(e *domain.JournalEntry) domain.JournalEntry {
	cp := *e
	cp.Lines = append([]domain.JournalLine(nil), e.Lines...)
	if e.ReversedByEntryID != nil {
		id := *e.ReversedByEntryID
		cp.ReversedByEntryID = &id
	}
	if e.ReversesEntryID != nil {
		id := *e.ReversesEntryID
		cp.ReversesEntryID = &id
	}
	return cp
}

// SaveEntry stages the entry, its lines, the new balances and the reversal link, then
// applies them together while holding the write lock.
func (s *Store) SaveEntry(ctx context.Context, entry *domain.JournalEntry, changes []domain.BalanceChange, reverses *int64) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	newBalances := make(map[int64]decimal.Decimal, len(changes))
	for _, change := range changes {
		acc, ok := s.accounts[change.AccountID]
		if !ok {
			return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", change.AccountID))
		}
		current, staged := newBalances[change.AccountID]
		if !staged {
			current = acc.Balance
		}
		newBalances[change.AccountID] = current.Add(change.Delta)
	}

	var original *domain.JournalEntry
	if reverses != nil {
		var ok bool
		original, ok = s.entries[*reverses]
		if !ok {
			return apperrors.NewNotFoundError(apperrors.KindUnknownEntry, fmt.Sprintf("journal entry %d not found", *reverses))
		}
		if original.IsReversed() {
			return apperrors.NewConflictError(apperrors.KindAlreadyReversed, fmt.Sprintf("journal entry %d is already reversed", *reverses))
		}
	}

	entryID := s.entrySeq + 1
	staged := copyEntry(entry)
	staged.EntryID = entryID
	for i := range staged.Lines {
		staged.Lines[i].LineID = s.lineSeq + int64(i) + 1
		staged.Lines[i].EntryID = entryID
		staged.Lines[i].Position = i
	}
	if reverses != nil {
		id := *reverses
		staged.ReversesEntryID = &id
	}

	if err := s.checkFault("SaveEntry"); err != nil {
		return err
	}

	s.entrySeq = entryID
	s.lineSeq += int64(len(staged.Lines))
	s.entries[entryID] = &staged
	for accountID, balance := range newBalances {
		acc := s.accounts[accountID]
		acc.Balance = balance
		acc.LastUpdatedAt = staged.CreatedAt
		acc.LastUpdatedBy = staged.CreatedBy
	}
	if original != nil {
		id := entryID
		original.Status = domain.Reversed
		original.ReversedByEntryID = &id
		original.LastUpdatedAt = staged.CreatedAt
		original.LastUpdatedBy = staged.CreatedBy
	}

	*entry = copyEntry(&staged)
	return nil
}

func (s *Store) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError(apperrors.KindUnknownEntry, fmt.Sprintf("journal entry %d not found", entryID))
	}
	cp := copyEntry(entry)
	return &cp, nil
}

func (s *Store) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, nil, err
	}

	var hasCursor bool
	var cursorDate time.Time
	var cursorID int64
	if nextToken != nil && *nextToken != "" {
		var err error
		cursorDate, cursorID, err = pagination.DecodeEntryCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, err.Error())
		}
		hasCursor = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.JournalEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		if hasCursor && !pagination.Before(entry.Date, entry.EntryID, cursorDate, cursorID) {
			continue
		}
		all = append(all, copyEntry(entry))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Date.Equal(all[j].Date) {
			return all[i].EntryID > all[j].EntryID
		}
		return all[i].Date.After(all[j].Date)
	})

	if limit <= 0 || len(all) <= limit {
		return all, nil, nil
	}
	page := all[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeEntryCursor(last.Date, last.EntryID)
	return page, &token, nil
}

func (s *Store) ListLedgerLines(ctx context.Context, accountID int64, asOf *time.Time) ([]domain.LedgerLine, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var lines []domain.LedgerLine
	for _, entry := range s.entries {
		if asOf != nil && entry.Date.After(*asOf) {
			continue
		}
		for _, line := range entry.Lines {
			if line.AccountID != accountID {
				continue
			}
			lines = append(lines, domain.LedgerLine{
				JournalLine:      line,
				EntryDate:        entry.Date,
				EntryDescription: entry.Description,
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		if a.EntryID != b.EntryID {
			return a.EntryID < b.EntryID
		}
		return a.Position < b.Position
	})
	return lines, nil
}
