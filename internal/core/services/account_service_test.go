package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/core/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepository interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// --- Implement mock methods for AccountRepository ---

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	if args.Error(0) == nil {
		account.AccountID = 42
	}
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	now      time.Time
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo, services.WithAccountClock(func() time.Time { return suite.now }))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        " 1000 ",
		Name:        "Cash",
		AccountType: "Asset",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, req, "alice")

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(int64(42), created.AccountID)
	suite.Equal("1000", created.Code)
	suite.Equal(domain.Asset, created.AccountType)
	suite.Equal(domain.Debit, created.NormalBalance)
	suite.True(created.Balance.IsZero())
	suite.Equal("alice", created.CreatedBy)
	suite.Equal(suite.now, created.CreatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DerivesCreditNormalBalance() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).Return(nil).Once()

	credit := domain.Credit
	created, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code: "2000", Name: "Loans", AccountType: "Liability", NormalBalance: &credit,
	}, "")

	suite.Require().NoError(err)
	suite.Equal(domain.Credit, created.NormalBalance)
	suite.Equal(domain.SystemActor, created.CreatedBy)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidType() {
	_, err := suite.service.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code: "9", Name: "Mystery", AccountType: "Savings",
	}, "alice")

	suite.ErrorIs(err, apperrors.ErrValidation)
	kind, _ := apperrors.KindOf(err)
	suite.Equal(apperrors.KindInvalidAccountType, kind)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NormalBalanceMismatch() {
	credit := domain.Credit
	_, err := suite.service.CreateAccount(context.Background(), dto.CreateAccountRequest{
		Code: "5000", Name: "Travel", AccountType: "Expense", NormalBalance: &credit,
	}, "alice")

	suite.ErrorIs(err, apperrors.ErrValidation)
	kind, _ := apperrors.KindOf(err)
	suite.Equal(apperrors.KindNormalBalanceMismatch, kind)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).Return(errors.New("db down")).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1", Name: "Cash", AccountType: "Asset"}, "alice")

	suite.ErrorIs(err, apperrors.ErrStorage)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicatePassesThrough() {
	ctx := context.Background()
	dup := apperrors.NewConflictError(apperrors.KindDuplicateAccount, "account code 1 already exists")
	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("*domain.Account")).Return(dup).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{Code: "1", Name: "Cash", AccountType: "Asset"}, "alice")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ChangesNameOnly() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: 7, Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.Debit}
	suite.mockRepo.On("FindAccountByID", ctx, int64(7)).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Petty Cash" && a.Code == "1000" && a.LastUpdatedBy == "bob"
	})).Return(nil).Once()

	name := "Petty Cash"
	updated, err := suite.service.UpdateAccount(ctx, 7, dto.UpdateAccountRequest{Name: &name}, "bob")

	suite.Require().NoError(err)
	suite.Equal("Petty Cash", updated.Name)
	suite.Equal(suite.now, updated.LastUpdatedAt)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChangesSkipsWrite() {
	ctx := context.Background()
	existing := &domain.Account{AccountID: 7, Code: "1000", Name: "Cash"}
	suite.mockRepo.On("FindAccountByID", ctx, int64(7)).Return(existing, nil).Once()

	name := "Cash"
	_, err := suite.service.UpdateAccount(ctx, 7, dto.UpdateAccountRequest{Name: &name}, "bob")

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotFound() {
	ctx := context.Background()
	notFound := apperrors.NewNotFoundError(apperrors.KindUnknownAccount, "account 8 not found")
	suite.mockRepo.On("FindAccountByID", ctx, int64(8)).Return(nil, notFound).Once()

	name := "x"
	_, err := suite.service.UpdateAccount(ctx, 8, dto.UpdateAccountRequest{Name: &name}, "bob")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByIDs_EmptySkipsRepository() {
	accounts, err := suite.service.GetAccountsByIDs(context.Background(), nil)
	suite.Require().NoError(err)
	suite.Empty(accounts)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_InUse() {
	ctx := context.Background()
	inUse := apperrors.NewConflictError(apperrors.KindAccountInUse, "account 3 has journal lines")
	suite.mockRepo.On("DeleteAccount", ctx, int64(3)).Return(inUse).Once()

	err := suite.service.DeleteAccount(ctx, 3)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRepo.AssertExpectations(suite.T())
}
