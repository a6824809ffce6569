package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/core/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memory.Store
	accountSvc portssvc.AccountSvcFacade
	journalSvc portssvc.JournalSvcFacade
	now        time.Time

	cash    *domain.Account
	sales   *domain.Account
	rent    *domain.Account
	payable *domain.Account
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.New()
	s.now = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }

	repos := memory.NewRepositoryProvider(s.store)
	s.accountSvc = services.NewAccountService(repos.AccountRepo, services.WithAccountClock(clock))
	s.journalSvc = services.NewJournalService(repos.JournalRepo, s.accountSvc, services.WithJournalClock(clock))

	s.cash = s.createAccount("1000", "Cash", "Asset")
	s.sales = s.createAccount("4000", "Sales", "Revenue")
	s.rent = s.createAccount("6000", "Rent", "Expense")
	s.payable = s.createAccount("2000", "Accounts Payable", "Liability")
}

func (s *JournalServiceTestSuite) createAccount(code, name, accountType string) *domain.Account {
	acc, err := s.accountSvc.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: code, Name: name, AccountType: accountType}, "tester")
	s.Require().NoError(err)
	return acc
}

func (s *JournalServiceTestSuite) balance(id int64) decimal.Decimal {
	b, err := s.journalSvc.GetAccountBalance(s.ctx, id, nil)
	s.Require().NoError(err)
	return b
}

func (s *JournalServiceTestSuite) balanceAsOf(id int64, asOf time.Time) decimal.Decimal {
	b, err := s.journalSvc.GetAccountBalance(s.ctx, id, &asOf)
	s.Require().NoError(err)
	return b
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func line(accountID int64, debit, credit string) dto.PostEntryLine {
	return dto.PostEntryLine{AccountID: accountID, Debit: dec(debit), Credit: dec(credit)}
}

func dated(y int, m time.Month, d int) *dto.Date {
	date := dto.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &date
}

func (s *JournalServiceTestSuite) post(date *dto.Date, lines ...dto.PostEntryLine) (*domain.JournalEntry, error) {
	return s.journalSvc.PostEntry(s.ctx, dto.PostEntryRequest{Date: date, Description: "test entry", Lines: lines}, "tester")
}

func (s *JournalServiceTestSuite) assertKind(err error, category error, kind apperrors.Kind) {
	s.Require().Error(err)
	s.ErrorIs(err, category)
	got, reason := apperrors.KindOf(err)
	s.Equal(kind, got)
	s.NotEmpty(reason)
}

func (s *JournalServiceTestSuite) TestPostEntry_UpdatesBalancesByNormalSide() {
	entry, err := s.post(nil, line(s.cash.AccountID, "100", "0"), line(s.sales.AccountID, "0", "100"))
	s.Require().NoError(err)

	s.NotZero(entry.EntryID)
	s.Equal(domain.Posted, entry.Status)
	s.Equal(domain.DateOnly(s.now), entry.Date)
	s.Equal("tester", entry.CreatedBy)
	s.Require().Len(entry.Lines, 2)
	for i, l := range entry.Lines {
		s.Equal(entry.EntryID, l.EntryID)
		s.Equal(i, l.Position)
		s.NotZero(l.LineID)
	}

	s.True(dec("100").Equal(s.balance(s.cash.AccountID)))
	s.True(dec("100").Equal(s.balance(s.sales.AccountID)))

	// a credit to a debit-normal account reduces it
	_, err = s.post(nil, line(s.rent.AccountID, "30", "0"), line(s.cash.AccountID, "0", "30"))
	s.Require().NoError(err)
	s.True(dec("70").Equal(s.balance(s.cash.AccountID)))
	s.True(dec("30").Equal(s.balance(s.rent.AccountID)))
}

func (s *JournalServiceTestSuite) TestPostEntry_ValidationOrder() {
	_, err := s.post(nil)
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindEmptyEntry)

	// malformed wins over unknown account and imbalance
	_, err = s.post(nil, line(9999, "50", "60"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindMalformedLine)

	_, err = s.post(nil, line(s.cash.AccountID, "0", "0"), line(s.sales.AccountID, "0", "0"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindMalformedLine)

	_, err = s.post(nil, line(s.cash.AccountID, "-5", "0"), line(s.sales.AccountID, "0", "-5"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindMalformedLine)

	// unknown account wins over imbalance
	_, err = s.post(nil, line(s.cash.AccountID, "100", "0"), line(9999, "0", "1"))
	s.assertKind(err, apperrors.ErrNotFound, apperrors.KindUnknownAccount)

	_, err = s.post(nil, line(s.cash.AccountID, "100", "0"), line(s.sales.AccountID, "0", "99"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindUnbalanced)

	s.True(s.balance(s.cash.AccountID).IsZero())
	entries, _, err := s.journalSvc.ListEntries(s.ctx, dto.ListEntriesParams{Limit: 10})
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *JournalServiceTestSuite) TestPostEntry_SingleLineWithBothSides() {
	_, err := s.post(nil, line(s.cash.AccountID, "50", "60"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindMalformedLine)
}

func (s *JournalServiceTestSuite) TestPostEntry_UnknownAccountLeavesNoTrace() {
	_, err := s.post(nil, line(9999, "10", "0"), line(s.sales.AccountID, "0", "10"))
	s.assertKind(err, apperrors.ErrNotFound, apperrors.KindUnknownAccount)
	s.True(s.balance(s.sales.AccountID).IsZero())
}

func (s *JournalServiceTestSuite) TestPostEntry_ExcessPrecisionIsMalformed() {
	_, err := s.post(nil, line(s.cash.AccountID, "0.00000000001", "0"), line(s.sales.AccountID, "0", "0.00000000001"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindMalformedLine)

	_, err = s.post(nil, line(s.cash.AccountID, "1.00000000005", "0"), line(s.sales.AccountID, "0", "1.00000000005"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindMalformedLine)

	s.True(s.balance(s.cash.AccountID).IsZero())
	s.True(s.balance(s.sales.AccountID).IsZero())

	// ten places is the column scale and still posts
	_, err = s.post(nil, line(s.cash.AccountID, "1.0000000001", "0"), line(s.sales.AccountID, "0", "1.0000000001"))
	s.Require().NoError(err)
	s.True(dec("1.0000000001").Equal(s.balance(s.cash.AccountID)))
}

func (s *JournalServiceTestSuite) TestPostEntry_BalancedWithinEpsilon() {
	_, err := s.post(nil, line(s.cash.AccountID, "100.004", "0"), line(s.sales.AccountID, "0", "100"))
	s.Require().NoError(err)
	s.True(dec("100.004").Equal(s.balance(s.cash.AccountID)))
	s.True(dec("100").Equal(s.balance(s.sales.AccountID)))

	_, err = s.post(nil, line(s.cash.AccountID, "100.006", "0"), line(s.sales.AccountID, "0", "100"))
	s.assertKind(err, apperrors.ErrValidation, apperrors.KindUnbalanced)
}

func (s *JournalServiceTestSuite) TestPostEntry_RepeatedAccountNetsChanges() {
	_, err := s.post(nil,
		line(s.cash.AccountID, "100", "0"),
		line(s.cash.AccountID, "0", "40"),
		line(s.sales.AccountID, "0", "60"))
	s.Require().NoError(err)
	s.True(dec("60").Equal(s.balance(s.cash.AccountID)))
}

func (s *JournalServiceTestSuite) TestPostEntry_FaultDuringCommitIsAtomic() {
	_, err := s.post(nil, line(s.cash.AccountID, "10", "0"), line(s.sales.AccountID, "0", "10"))
	s.Require().NoError(err)

	s.store.SetFaultHook(func(op string) error {
		if op == "SaveEntry" {
			return errors.New("disk unplugged")
		}
		return nil
	})
	_, err = s.post(nil, line(s.cash.AccountID, "25", "0"), line(s.sales.AccountID, "0", "25"))
	s.assertKind(err, apperrors.ErrStorage, apperrors.KindStorage)
	s.store.SetFaultHook(nil)

	s.True(dec("10").Equal(s.balance(s.cash.AccountID)))
	s.True(dec("10").Equal(s.balance(s.sales.AccountID)))
	entries, _, err := s.journalSvc.ListEntries(s.ctx, dto.ListEntriesParams{Limit: 10})
	s.Require().NoError(err)
	s.Len(entries, 1)
}

func (s *JournalServiceTestSuite) TestReverseEntry_RestoresBalances() {
	_, err := s.post(nil, line(s.cash.AccountID, "500", "0"), line(s.sales.AccountID, "0", "500"))
	s.Require().NoError(err)
	cashBefore := s.balance(s.cash.AccountID)
	payableBefore := s.balance(s.payable.AccountID)
	rentBefore := s.balance(s.rent.AccountID)

	original, err := s.post(dated(2024, 6, 1), line(s.rent.AccountID, "120", "0"), line(s.payable.AccountID, "0", "120"))
	s.Require().NoError(err)

	reversal, err := s.journalSvc.ReverseEntry(s.ctx, original.EntryID, "auditor")
	s.Require().NoError(err)
	s.Require().NotNil(reversal.ReversesEntryID)
	s.Equal(original.EntryID, *reversal.ReversesEntryID)
	s.Equal(domain.DateOnly(s.now), reversal.Date)
	s.Equal("auditor", reversal.CreatedBy)
	s.Contains(reversal.Description, "Reversal of entry")
	s.Require().Len(reversal.Lines, 2)
	s.True(dec("120").Equal(reversal.Lines[0].Credit))
	s.True(reversal.Lines[0].Debit.IsZero())

	s.True(cashBefore.Equal(s.balance(s.cash.AccountID)))
	s.True(payableBefore.Equal(s.balance(s.payable.AccountID)))
	s.True(rentBefore.Equal(s.balance(s.rent.AccountID)))

	stored, err := s.journalSvc.GetEntryByID(s.ctx, original.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Reversed, stored.Status)
	s.Require().NotNil(stored.ReversedByEntryID)
	s.Equal(reversal.EntryID, *stored.ReversedByEntryID)
}

func (s *JournalServiceTestSuite) TestReverseEntry_Twice() {
	original, err := s.post(nil, line(s.cash.AccountID, "10", "0"), line(s.sales.AccountID, "0", "10"))
	s.Require().NoError(err)

	_, err = s.journalSvc.ReverseEntry(s.ctx, original.EntryID, "tester")
	s.Require().NoError(err)

	_, err = s.journalSvc.ReverseEntry(s.ctx, original.EntryID, "tester")
	s.assertKind(err, apperrors.ErrConflict, apperrors.KindAlreadyReversed)
	s.True(s.balance(s.cash.AccountID).IsZero())
}

func (s *JournalServiceTestSuite) TestReverseEntry_ConcurrentReversalsLinkOnce() {
	original, err := s.post(nil, line(s.cash.AccountID, "10", "0"), line(s.sales.AccountID, "0", "10"))
	s.Require().NoError(err)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.journalSvc.ReverseEntry(s.ctx, original.EntryID, "tester")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.ErrorIs(err, apperrors.ErrConflict)
	}
	s.Equal(1, succeeded)
	s.True(s.balance(s.cash.AccountID).IsZero())
}

func (s *JournalServiceTestSuite) TestReverseEntry_OfReversal() {
	original, err := s.post(nil, line(s.cash.AccountID, "10", "0"), line(s.sales.AccountID, "0", "10"))
	s.Require().NoError(err)
	reversal, err := s.journalSvc.ReverseEntry(s.ctx, original.EntryID, "tester")
	s.Require().NoError(err)

	_, err = s.journalSvc.ReverseEntry(s.ctx, reversal.EntryID, "tester")
	s.Require().NoError(err)
	s.True(dec("10").Equal(s.balance(s.cash.AccountID)))
}

func (s *JournalServiceTestSuite) TestReverseEntry_Unknown() {
	_, err := s.journalSvc.ReverseEntry(s.ctx, 9999, "tester")
	s.assertKind(err, apperrors.ErrNotFound, apperrors.KindUnknownEntry)
}

func (s *JournalServiceTestSuite) TestGetAccountBalance_AsOf() {
	_, err := s.post(dated(2024, 1, 10), line(s.cash.AccountID, "100", "0"), line(s.sales.AccountID, "0", "100"))
	s.Require().NoError(err)
	_, err = s.post(dated(2024, 2, 10), line(s.rent.AccountID, "40", "0"), line(s.cash.AccountID, "0", "40"))
	s.Require().NoError(err)
	_, err = s.post(dated(2024, 3, 10), line(s.cash.AccountID, "5", "0"), line(s.sales.AccountID, "0", "5"))
	s.Require().NoError(err)

	s.True(s.balanceAsOf(s.cash.AccountID, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)).IsZero())
	s.True(dec("100").Equal(s.balanceAsOf(s.cash.AccountID, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC))))
	s.True(dec("60").Equal(s.balanceAsOf(s.cash.AccountID, time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC))))

	// folding everything up to now matches the stored balance
	for _, acc := range []*domain.Account{s.cash, s.sales, s.rent, s.payable} {
		s.True(s.balance(acc.AccountID).Equal(s.balanceAsOf(acc.AccountID, s.now)), acc.Name)
	}
}

func (s *JournalServiceTestSuite) TestGetAccountBalance_UnknownAccount() {
	_, err := s.journalSvc.GetAccountBalance(s.ctx, 9999, nil)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *JournalServiceTestSuite) TestGetAccountLedger_RunningBalance() {
	_, err := s.post(dated(2024, 1, 10), line(s.cash.AccountID, "100", "0"), line(s.sales.AccountID, "0", "100"))
	s.Require().NoError(err)
	_, err = s.post(dated(2024, 1, 5), line(s.rent.AccountID, "40", "0"), line(s.cash.AccountID, "0", "40"))
	s.Require().NoError(err)

	lines, balance, err := s.journalSvc.GetAccountLedger(s.ctx, s.cash.AccountID, nil)
	s.Require().NoError(err)
	s.Require().Len(lines, 2)
	s.True(dec("-40").Equal(lines[0].RunningBalance))
	s.True(dec("60").Equal(lines[1].RunningBalance))
	s.True(dec("60").Equal(balance))
}

func (s *JournalServiceTestSuite) TestConcurrentPostingLosesNoUpdates() {
	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// alternate the line order so lock acquisition order varies
			lines := []dto.PostEntryLine{line(s.cash.AccountID, "2.50", "0"), line(s.sales.AccountID, "0", "2.50")}
			if i%2 == 1 {
				lines[0], lines[1] = lines[1], lines[0]
			}
			_, err := s.post(nil, lines...)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	s.True(dec("125").Equal(s.balance(s.cash.AccountID)))
	s.True(dec("125").Equal(s.balance(s.sales.AccountID)))
	s.True(s.balance(s.cash.AccountID).Equal(s.balanceAsOf(s.cash.AccountID, s.now)))
}

func (s *JournalServiceTestSuite) TestListEntries_Paginates() {
	for d := 1; d <= 5; d++ {
		_, err := s.post(dated(2024, 1, d), line(s.cash.AccountID, "1", "0"), line(s.sales.AccountID, "0", "1"))
		s.Require().NoError(err)
	}

	first, next, err := s.journalSvc.ListEntries(s.ctx, dto.ListEntriesParams{Limit: 3})
	s.Require().NoError(err)
	s.Require().Len(first, 3)
	s.Require().NotNil(next)
	s.Equal(5, first[0].Date.Day())

	second, next, err := s.journalSvc.ListEntries(s.ctx, dto.ListEntriesParams{Limit: 3, NextToken: next})
	s.Require().NoError(err)
	s.Len(second, 2)
	s.Nil(next)
	s.Equal(1, second[1].Date.Day())
}
