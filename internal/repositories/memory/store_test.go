package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *memory.Store
	ctx   context.Context
	cash  domain.Account
	sales domain.Account
	day   time.Time
}

func (s *StoreTestSuite) SetupTest() {
	s.store = memory.New()
	s.ctx = context.Background()
	s.day = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	s.cash = domain.Account{Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.Debit, Balance: decimal.Zero}
	s.Require().NoError(s.store.SaveAccount(s.ctx, &s.cash))
	s.sales = domain.Account{Code: "4000", Name: "Sales", AccountType: domain.Revenue, NormalBalance: domain.Credit, Balance: decimal.Zero}
	s.Require().NoError(s.store.SaveAccount(s.ctx, &s.sales))
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) sale(amount int64, date time.Time) (*domain.JournalEntry, []domain.BalanceChange) {
	amt := decimal.NewFromInt(amount)
	entry := &domain.JournalEntry{
		Date:        date,
		Description: "sale",
		Status:      domain.Posted,
		Lines: []domain.JournalLine{
			{AccountID: s.cash.AccountID, Debit: amt, Credit: decimal.Zero},
			{AccountID: s.sales.AccountID, Debit: decimal.Zero, Credit: amt},
		},
	}
	changes := []domain.BalanceChange{
		{AccountID: s.cash.AccountID, Delta: amt},
		{AccountID: s.sales.AccountID, Delta: amt},
	}
	return entry, changes
}

func (s *StoreTestSuite) balanceOf(id int64) decimal.Decimal {
	acc, err := s.store.FindAccountByID(s.ctx, id)
	s.Require().NoError(err)
	return acc.Balance
}

func (s *StoreTestSuite) TestSaveAccount_Duplicates() {
	dupCode := domain.Account{Code: "1000", Name: "Petty cash", AccountType: domain.Asset, NormalBalance: domain.Debit}
	err := s.store.SaveAccount(s.ctx, &dupCode)
	s.ErrorIs(err, apperrors.ErrConflict)

	dupName := domain.Account{Code: "1001", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.Debit}
	err = s.store.SaveAccount(s.ctx, &dupName)
	s.ErrorIs(err, apperrors.ErrConflict)

	missingParent := int64(99)
	orphan := domain.Account{Code: "1002", Name: "Orphan", AccountType: domain.Asset, NormalBalance: domain.Debit, ParentID: &missingParent}
	s.ErrorIs(s.store.SaveAccount(s.ctx, &orphan), apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSaveEntry_AssignsIDsAndAppliesChanges() {
	entry, changes := s.sale(100, s.day)

	s.Require().NoError(s.store.SaveEntry(s.ctx, entry, changes, nil))

	s.Equal(int64(1), entry.EntryID)
	s.Equal(int64(1), entry.Lines[0].LineID)
	s.Equal(int64(2), entry.Lines[1].LineID)
	s.Equal(entry.EntryID, entry.Lines[1].EntryID)
	s.True(s.balanceOf(s.cash.AccountID).Equal(decimal.NewFromInt(100)))
	s.True(s.balanceOf(s.sales.AccountID).Equal(decimal.NewFromInt(100)))
}

func (s *StoreTestSuite) TestSaveEntry_FaultLeavesStateUnchanged() {
	entry, changes := s.sale(100, s.day)
	s.store.SetFaultHook(func(op string) error { return errors.New("disk unplugged") })

	err := s.store.SaveEntry(s.ctx, entry, changes, nil)

	s.ErrorIs(err, apperrors.ErrStorage)
	s.True(s.balanceOf(s.cash.AccountID).IsZero())
	s.True(s.balanceOf(s.sales.AccountID).IsZero())
	entries, _, err := s.store.ListEntries(s.ctx, 10, nil)
	s.Require().NoError(err)
	s.Empty(entries)

	s.store.SetFaultHook(nil)
	s.Require().NoError(s.store.SaveEntry(s.ctx, entry, changes, nil))
	s.Equal(int64(1), entry.EntryID)
}

func (s *StoreTestSuite) TestSaveEntry_ReversalLinksOriginalOnce() {
	entry, changes := s.sale(40, s.day)
	s.Require().NoError(s.store.SaveEntry(s.ctx, entry, changes, nil))
	originalID := entry.EntryID

	reversal, revChanges := s.sale(40, s.day)
	for i := range revChanges {
		revChanges[i].Delta = revChanges[i].Delta.Neg()
	}
	s.Require().NoError(s.store.SaveEntry(s.ctx, reversal, revChanges, &originalID))

	original, err := s.store.FindEntryByID(s.ctx, originalID)
	s.Require().NoError(err)
	s.Equal(domain.Reversed, original.Status)
	s.Require().NotNil(original.ReversedByEntryID)
	s.Equal(reversal.EntryID, *original.ReversedByEntryID)
	s.Require().NotNil(reversal.ReversesEntryID)
	s.Equal(originalID, *reversal.ReversesEntryID)

	again, againChanges := s.sale(40, s.day)
	err = s.store.SaveEntry(s.ctx, again, againChanges, &originalID)
	s.ErrorIs(err, apperrors.ErrConflict)
	kind, _ := apperrors.KindOf(err)
	s.Equal(apperrors.KindAlreadyReversed, kind)
	s.True(s.balanceOf(s.cash.AccountID).IsZero())
}

func (s *StoreTestSuite) TestSaveEntry_UnknownReversalTarget() {
	entry, changes := s.sale(10, s.day)
	missing := int64(404)
	err := s.store.SaveEntry(s.ctx, entry, changes, &missing)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.True(s.balanceOf(s.cash.AccountID).IsZero())
}

func (s *StoreTestSuite) TestListLedgerLines_OrderAndAsOf() {
	later, laterChanges := s.sale(5, s.day.AddDate(0, 0, 2))
	s.Require().NoError(s.store.SaveEntry(s.ctx, later, laterChanges, nil))
	earlier, earlierChanges := s.sale(7, s.day)
	s.Require().NoError(s.store.SaveEntry(s.ctx, earlier, earlierChanges, nil))
	sameDay, sameDayChanges := s.sale(3, s.day)
	s.Require().NoError(s.store.SaveEntry(s.ctx, sameDay, sameDayChanges, nil))

	lines, err := s.store.ListLedgerLines(s.ctx, s.cash.AccountID, nil)
	s.Require().NoError(err)
	s.Require().Len(lines, 3)
	s.Equal(earlier.EntryID, lines[0].EntryID)
	s.Equal(sameDay.EntryID, lines[1].EntryID)
	s.Equal(later.EntryID, lines[2].EntryID)

	asOf := s.day.AddDate(0, 0, 1)
	lines, err = s.store.ListLedgerLines(s.ctx, s.cash.AccountID, &asOf)
	s.Require().NoError(err)
	s.Len(lines, 2)
}

func (s *StoreTestSuite) TestListEntries_Paginates() {
	for i := 0; i < 5; i++ {
		entry, changes := s.sale(int64(i+1), s.day.AddDate(0, 0, i%2))
		s.Require().NoError(s.store.SaveEntry(s.ctx, entry, changes, nil))
	}

	var seen []int64
	var token *string
	for page := 0; page < 5; page++ {
		entries, next, err := s.store.ListEntries(s.ctx, 2, token)
		s.Require().NoError(err)
		for _, e := range entries {
			seen = append(seen, e.EntryID)
		}
		if next == nil {
			break
		}
		token = next
	}

	// day+1 entries (2, 4) first, then day entries (1, 3, 5), each id descending
	s.Equal([]int64{4, 2, 5, 3, 1}, seen)
}

func (s *StoreTestSuite) TestDeleteAccount_InUse() {
	entry, changes := s.sale(1, s.day)
	s.Require().NoError(s.store.SaveEntry(s.ctx, entry, changes, nil))

	err := s.store.DeleteAccount(s.ctx, s.cash.AccountID)
	s.ErrorIs(err, apperrors.ErrConflict)

	unused := domain.Account{Code: "9000", Name: "Unused", AccountType: domain.Expense, NormalBalance: domain.Debit}
	s.Require().NoError(s.store.SaveAccount(s.ctx, &unused))
	s.NoError(s.store.DeleteAccount(s.ctx, unused.AccountID))
	_, err = s.store.FindAccountByID(s.ctx, unused.AccountID)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *StoreTestSuite) TestSumLinesByAccount() {
	entry, changes := s.sale(30, s.day)
	s.Require().NoError(s.store.SaveEntry(s.ctx, entry, changes, nil))
	future, futureChanges := s.sale(70, s.day.AddDate(0, 1, 0))
	s.Require().NoError(s.store.SaveEntry(s.ctx, future, futureChanges, nil))

	sums, err := s.store.SumLinesByAccount(s.ctx, s.day)
	s.Require().NoError(err)
	s.True(sums[s.cash.AccountID].Debit.Equal(decimal.NewFromInt(30)))
	s.True(sums[s.sales.AccountID].Credit.Equal(decimal.NewFromInt(30)))
}

func (s *StoreTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	entry, changes := s.sale(1, s.day)
	s.ErrorIs(s.store.SaveEntry(ctx, entry, changes, nil), apperrors.ErrStorage)
}
