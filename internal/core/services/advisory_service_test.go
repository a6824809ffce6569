package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/core/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/llm"
	"github.com/SscSPs/simplefi_backend/internal/repositories/memory"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockCompleter struct {
	mock.Mock
}

var _ llm.Completer = (*MockCompleter)(nil)

func (m *MockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func (m *MockCompleter) State() string {
	args := m.Called()
	return args.String(0)
}

type AdvisoryServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	completer  *MockCompleter
	accountSvc portssvc.AccountSvcFacade
	journalSvc portssvc.JournalSvcFacade
	reporting  portssvc.ReportingService
	now        time.Time
}

func TestAdvisoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdvisoryServiceTestSuite))
}

func (s *AdvisoryServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.completer = new(MockCompleter)
	s.now = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	repos := memory.NewRepositoryProvider(memory.New())
	s.accountSvc = services.NewAccountService(repos.AccountRepo)
	s.journalSvc = services.NewJournalService(repos.JournalRepo, s.accountSvc, services.WithJournalClock(func() time.Time { return s.now }))
	s.reporting = services.NewReportingService(repos.ReportingRepo, repos.AccountRepo)
}

func (s *AdvisoryServiceTestSuite) newService(withModel bool) portssvc.AdvisorySvc {
	opts := []services.AdvisoryServiceOption{
		services.WithAdvisoryCacheTTL(time.Minute),
		services.WithAdvisoryClock(func() time.Time { return s.now }),
	}
	if withModel {
		opts = append(opts, services.WithCompleter(s.completer))
	}
	return services.NewAdvisoryService(s.journalSvc, s.accountSvc, s.reporting, opts...)
}

func (s *AdvisoryServiceTestSuite) account(code, name, accountType string) *domain.Account {
	acc, err := s.accountSvc.CreateAccount(s.ctx, dto.CreateAccountRequest{Code: code, Name: name, AccountType: accountType}, "tester")
	s.Require().NoError(err)
	return acc
}

func (s *AdvisoryServiceTestSuite) post(description string, lines ...dto.PostEntryLine) {
	_, err := s.journalSvc.PostEntry(s.ctx, dto.PostEntryRequest{Description: description, Lines: lines}, "tester")
	s.Require().NoError(err)
}

func (s *AdvisoryServiceTestSuite) TestChat_CachesIdenticalPrompts() {
	svc := s.newService(true)
	s.completer.On("State").Return(llm.StateClosed).Maybe()
	s.completer.On("Complete", mock.Anything, mock.Anything, "What is accrual accounting?").Return("Revenue when earned.", nil).Once()

	first, err := svc.Chat(s.ctx, "What is accrual accounting?")
	s.Require().NoError(err)
	s.False(first.Cached)
	s.Equal("Revenue when earned.", first.Text)

	second, err := svc.Chat(s.ctx, "  What is accrual accounting?  ")
	s.Require().NoError(err)
	s.True(second.Cached)
	s.completer.AssertNumberOfCalls(s.T(), "Complete", 1)
}

func (s *AdvisoryServiceTestSuite) TestChat_EmptyMessage() {
	_, err := s.newService(true).Chat(s.ctx, "   ")
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *AdvisoryServiceTestSuite) TestChat_Disabled() {
	svc := s.newService(false)
	s.Equal("disabled", svc.Status())
	_, err := svc.Chat(s.ctx, "hi")
	s.ErrorIs(err, apperrors.ErrUnavailable)
}

func (s *AdvisoryServiceTestSuite) TestChat_UpstreamErrorIsReturned() {
	svc := s.newService(true)
	s.completer.On("State").Return(llm.StateClosed).Maybe()
	upstream := apperrors.NewAppError(apperrors.ErrUpstream, apperrors.KindUpstream, "language model returned an error", nil)
	s.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", upstream).Once()

	_, err := svc.Chat(s.ctx, "hi")
	s.ErrorIs(err, apperrors.ErrUpstream)
}

func (s *AdvisoryServiceTestSuite) TestAnalyzeFinancialHealth_DerivesFiguresFromLedger() {
	bank := s.account("1000", "Bank", "Asset")
	sales := s.account("4000", "Sales", "Revenue")
	rent := s.account("6000", "Rent", "Expense")
	s.post("Sale", line(bank.AccountID, "900", "0"), line(sales.AccountID, "0", "900"))
	s.post("Rent", line(rent.AccountID, "300", "0"), line(bank.AccountID, "0", "300"))

	svc := s.newService(true)
	s.completer.On("State").Return(llm.StateClosed).Maybe()
	s.completer.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return containsAll(prompt, "Revenue: $900.00", "Expenses: $300.00", "Cash Balance: $600.00")
	})).Return("Healthy.", nil).Once()

	advice, snapshot, err := svc.AnalyzeFinancialHealth(s.ctx, dto.AnalyzeFinancialHealthRequest{Cash: dec("600")})
	s.Require().NoError(err)
	s.Equal("Healthy.", advice.Text)
	s.True(dec("900").Equal(snapshot.Revenue))
	s.True(dec("300").Equal(snapshot.Expenses))
	s.completer.AssertExpectations(s.T())
}

func (s *AdvisoryServiceTestSuite) TestSuggestCategorization_UsesModelWhenAvailable() {
	svc := s.newService(true)
	s.completer.On("State").Return(llm.StateClosed).Maybe()
	s.completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("Expense: Software", nil).Once()

	suggestion, err := svc.SuggestCategorization(s.ctx, "GitHub subscription")
	s.Require().NoError(err)
	s.Equal("llm", suggestion.Source)
	s.Equal("Expense: Software", suggestion.Suggestion)
}

func (s *AdvisoryServiceTestSuite) TestSuggestCategorization_FallsBackToClassifier() {
	bank := s.account("1000", "Bank", "Asset")
	rent := s.account("6000", "Rent", "Expense")
	hosting := s.account("6100", "Hosting", "Expense")
	for _, d := range []string{"Office rent March", "Office rent April", "Rent for office"} {
		s.post(d, line(rent.AccountID, "1000", "0"), line(bank.AccountID, "0", "1000"))
	}
	for _, d := range []string{"AWS hosting", "Cloud hosting bill", "AWS bill"} {
		s.post(d, line(hosting.AccountID, "50", "0"), line(bank.AccountID, "0", "50"))
	}

	svc := s.newService(true)
	s.completer.On("State").Return(llm.StateOpen)
	s.Equal("circuit_open", svc.Status())

	suggestion, err := svc.SuggestCategorization(s.ctx, "office rent May")
	s.Require().NoError(err)
	s.Equal("classifier", suggestion.Source)
	s.Require().NotNil(suggestion.AccountID)
	s.Equal(rent.AccountID, *suggestion.AccountID)
	s.Contains(suggestion.Suggestion, "Rent")
	s.completer.AssertNotCalled(s.T(), "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AdvisoryServiceTestSuite) TestSuggestCategorization_NoModelNoHistory() {
	_, err := s.newService(false).SuggestCategorization(s.ctx, "coffee")
	s.ErrorIs(err, apperrors.ErrUnavailable)
}

func (s *AdvisoryServiceTestSuite) TestFinancialInsights_ListsRecentEntries() {
	bank := s.account("1000", "Bank", "Asset")
	sales := s.account("4000", "Sales", "Revenue")
	s.post("Widget sale", line(bank.AccountID, "42.5", "0"), line(sales.AccountID, "0", "42.5"))

	svc := s.newService(true)
	s.completer.On("State").Return(llm.StateClosed).Maybe()
	s.completer.On("Complete", mock.Anything, mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return containsAll(prompt, "Widget sale ($42.50)")
	})).Return("Sales are steady.", nil).Once()

	advice, err := svc.FinancialInsights(s.ctx, 0)
	s.Require().NoError(err)
	s.Equal("Sales are steady.", advice.Text)
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
