//go:build integration

package pgsql_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/core/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/platform/database"
	"github.com/SscSPs/simplefi_backend/internal/repositories/database/pgsql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PgsqlIntegrationTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcpostgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider

	accountSvc portssvc.AccountSvcFacade
	journalSvc portssvc.JournalSvcFacade
	now        time.Time
}

func TestPgsqlIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PgsqlIntegrationTestSuite))
}

func (s *PgsqlIntegrationTestSuite) SetupSuite() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := tcpostgres.Run(s.ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("simplefi"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)
	s.Require().NoError(database.MigrateUp(dsn, logger))

	s.pool, err = database.NewPgxPool(s.ctx, dsn, logger)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgsqlIntegrationTestSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(s.ctx))
	}
}

func (s *PgsqlIntegrationTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE bank_reconciliations, invoices, contacts, journal_lines, journal_entries, accounts RESTART IDENTITY CASCADE;`)
	s.Require().NoError(err)

	s.now = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	clock := func() time.Time { return s.now }
	s.accountSvc = services.NewAccountService(s.repos.AccountRepo, services.WithAccountClock(clock))
	s.journalSvc = services.NewJournalService(s.repos.JournalRepo, s.accountSvc, services.WithJournalClock(clock))
}

func (s *PgsqlIntegrationTestSuite) createAccount(code, name, accountType string) *domain.Account {
	acc, err := s.accountSvc.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: code, Name: name, AccountType: accountType}, "tester")
	s.Require().NoError(err)
	return acc
}

func (s *PgsqlIntegrationTestSuite) balance(id int64, asOf *time.Time) decimal.Decimal {
	b, err := s.journalSvc.GetAccountBalance(s.ctx, id, asOf)
	s.Require().NoError(err)
	return b
}

func postLine(accountID int64, debit, credit string) dto.PostEntryLine {
	return dto.PostEntryLine{AccountID: accountID, Debit: decimal.RequireFromString(debit), Credit: decimal.RequireFromString(credit)}
}

func onDay(y int, m time.Month, d int) *dto.Date {
	date := dto.NewDate(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
	return &date
}

func (s *PgsqlIntegrationTestSuite) TestPostAndReverse() {
	cash := s.createAccount("1000", "Cash", "Asset")
	sales := s.createAccount("4000", "Sales", "Revenue")

	entry, err := s.journalSvc.PostEntry(s.ctx, dto.PostEntryRequest{
		Date:        onDay(2024, 6, 1),
		Description: "Cash sale",
		Lines:       []dto.PostEntryLine{postLine(cash.AccountID, "100.25", "0"), postLine(sales.AccountID, "0", "100.25")},
	}, "tester")
	s.Require().NoError(err)
	s.NotZero(entry.EntryID)
	s.Require().Len(entry.Lines, 2)
	s.NotZero(entry.Lines[0].LineID)

	s.True(s.balance(cash.AccountID, nil).Equal(decimal.RequireFromString("100.25")))
	s.True(s.balance(sales.AccountID, nil).Equal(decimal.RequireFromString("100.25")))

	stored, err := s.journalSvc.GetEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal("Cash sale", stored.Description)
	s.Len(stored.Lines, 2)
	s.Equal(domain.DateOnly(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), stored.Date)

	reversal, err := s.journalSvc.ReverseEntry(s.ctx, entry.EntryID, "tester")
	s.Require().NoError(err)
	s.Require().NotNil(reversal.ReversesEntryID)
	s.Equal(entry.EntryID, *reversal.ReversesEntryID)

	s.True(s.balance(cash.AccountID, nil).IsZero())
	s.True(s.balance(sales.AccountID, nil).IsZero())

	original, err := s.journalSvc.GetEntryByID(s.ctx, entry.EntryID)
	s.Require().NoError(err)
	s.Equal(domain.Reversed, original.Status)
	s.Require().NotNil(original.ReversedByEntryID)
	s.Equal(reversal.EntryID, *original.ReversedByEntryID)

	_, err = s.journalSvc.ReverseEntry(s.ctx, entry.EntryID, "tester")
	s.ErrorIs(err, apperrors.ErrConflict)

	asOf := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	s.True(s.balance(cash.AccountID, &asOf).Equal(decimal.RequireFromString("100.25")))
}

func (s *PgsqlIntegrationTestSuite) TestSaveEntry_UnknownAccountWritesNothing() {
	cash := s.createAccount("1000", "Cash", "Asset")

	entry := &domain.JournalEntry{
		Date:   domain.DateOnly(s.now),
		Status: domain.Posted,
		Lines: []domain.JournalLine{
			{AccountID: cash.AccountID, Debit: decimal.NewFromInt(5), Credit: decimal.Zero},
			{AccountID: 9999, Debit: decimal.Zero, Credit: decimal.NewFromInt(5)},
		},
		AuditFields: domain.AuditFields{CreatedAt: s.now, CreatedBy: "tester", LastUpdatedAt: s.now, LastUpdatedBy: "tester"},
	}
	changes := []domain.BalanceChange{
		{AccountID: cash.AccountID, Delta: decimal.NewFromInt(5)},
		{AccountID: 9999, Delta: decimal.NewFromInt(-5)},
	}
	err := s.repos.JournalRepo.SaveEntry(s.ctx, entry, changes, nil)
	s.ErrorIs(err, apperrors.ErrNotFound)

	entries, _, err := s.repos.JournalRepo.ListEntries(s.ctx, 10, nil)
	s.Require().NoError(err)
	s.Empty(entries)
	s.True(s.balance(cash.AccountID, nil).IsZero())
}

func (s *PgsqlIntegrationTestSuite) TestPostEntry_ExcessPrecisionIsMalformedLine() {
	cash := s.createAccount("1000", "Cash", "Asset")
	sales := s.createAccount("4000", "Sales", "Revenue")

	_, err := s.journalSvc.PostEntry(s.ctx, dto.PostEntryRequest{
		Date:        onDay(2024, 6, 1),
		Description: "Sub-scale amount",
		Lines:       []dto.PostEntryLine{postLine(cash.AccountID, "0.00000000001", "0"), postLine(sales.AccountID, "0", "0.00000000001")},
	}, "tester")
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(apperrors.KindMalformedLine, appErr.Kind)

	entries, _, err := s.repos.JournalRepo.ListEntries(s.ctx, 10, nil)
	s.Require().NoError(err)
	s.Empty(entries)
	s.True(s.balance(cash.AccountID, nil).IsZero())
}

func (s *PgsqlIntegrationTestSuite) TestConcurrentPostsAndReversals() {
	cash := s.createAccount("1000", "Cash", "Asset")
	sales := s.createAccount("4000", "Sales", "Revenue")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.journalSvc.PostEntry(s.ctx, dto.PostEntryRequest{
				Lines: []dto.PostEntryLine{postLine(cash.AccountID, "2.5", "0"), postLine(sales.AccountID, "0", "2.5")},
			}, "tester")
			s.NoError(err)
		}()
	}
	wg.Wait()
	s.True(s.balance(cash.AccountID, nil).Equal(decimal.NewFromInt(50)))

	entries, _, err := s.repos.JournalRepo.ListEntries(s.ctx, 1, nil)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	target := entries[0].EntryID

	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.journalSvc.ReverseEntry(s.ctx, target, "tester"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				s.ErrorIs(err, apperrors.ErrConflict)
			}
		}()
	}
	wg.Wait()
	s.Equal(1, succeeded)
	s.True(s.balance(cash.AccountID, nil).Equal(decimal.RequireFromString("47.5")))
}

func (s *PgsqlIntegrationTestSuite) TestListEntriesPaginates() {
	cash := s.createAccount("1000", "Cash", "Asset")
	sales := s.createAccount("4000", "Sales", "Revenue")
	for d := 1; d <= 5; d++ {
		_, err := s.journalSvc.PostEntry(s.ctx, dto.PostEntryRequest{
			Date:  onDay(2024, 5, d),
			Lines: []dto.PostEntryLine{postLine(cash.AccountID, "1", "0"), postLine(sales.AccountID, "0", "1")},
		}, "tester")
		s.Require().NoError(err)
	}

	first, token, err := s.repos.JournalRepo.ListEntries(s.ctx, 3, nil)
	s.Require().NoError(err)
	s.Len(first, 3)
	s.Require().NotNil(token)
	s.Equal(5, first[0].Date.Day())
	s.Len(first[0].Lines, 2)

	second, token, err := s.repos.JournalRepo.ListEntries(s.ctx, 3, token)
	s.Require().NoError(err)
	s.Len(second, 2)
	s.Nil(token)
	s.Equal(1, second[1].Date.Day())
}

func (s *PgsqlIntegrationTestSuite) TestAccountConstraints() {
	cash := s.createAccount("1000", "Cash", "Asset")

	_, err := s.accountSvc.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: "1000", Name: "Other", AccountType: "Asset"}, "tester")
	s.ErrorIs(err, apperrors.ErrConflict)

	sales := s.createAccount("4000", "Sales", "Revenue")
	_, err = s.journalSvc.PostEntry(s.ctx, dto.PostEntryRequest{
		Lines: []dto.PostEntryLine{postLine(cash.AccountID, "1", "0"), postLine(sales.AccountID, "0", "1")},
	}, "tester")
	s.Require().NoError(err)

	err = s.accountSvc.DeleteAccount(s.ctx, cash.AccountID)
	s.ErrorIs(err, apperrors.ErrConflict)
	kind, _ := apperrors.KindOf(err)
	s.Equal(apperrors.KindAccountInUse, kind)

	rows, err := s.repos.ReportingRepo.SumLinesByAccount(s.ctx, s.now)
	s.Require().NoError(err)
	s.True(rows[cash.AccountID].Debit.Equal(decimal.NewFromInt(1)))
	s.True(rows[sales.AccountID].Credit.Equal(decimal.NewFromInt(1)))
}

func (s *PgsqlIntegrationTestSuite) TestHealthPing() {
	s.NoError(s.repos.Health.Ping(s.ctx))
}
