package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClock overrides the clock used for audit timestamps.
func WithAccountClock(clock func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.clock = clock
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	accountType, err := domain.ParseAccountType(req.AccountType)
	if err != nil {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidAccountType, err.Error())
	}

	normal := accountType.NormalBalance()
	if req.NormalBalance != nil && *req.NormalBalance != normal {
		return nil, apperrors.NewValidationError(apperrors.KindNormalBalanceMismatch,
			fmt.Sprintf("%s accounts have a %s normal balance, got %q", accountType, normal, *req.NormalBalance))
	}

	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "code and name must not be blank")
	}

	account := &domain.Account{
		Code:          code,
		Name:          name,
		AccountType:   accountType,
		NormalBalance: normal,
		Description:   req.Description,
		ParentID:      req.ParentID,
		Balance:       decimal.Zero,
		AuditFields:   domain.NewAuditFields(actor, s.Now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, apperrors.AsStorageError("failed to save account", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.Int64("account_id", account.AccountID),
		slog.String("code", account.Code),
		slog.String("account_type", string(account.AccountType)))
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch account", err)
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch accounts", err)
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, apperrors.AsStorageError("failed to list accounts", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, actor string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch account", err)
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "name must not be blank")
		}
		if name != account.Name {
			account.Name = name
			updated = true
		}
	}
	if req.Description != nil && *req.Description != account.Description {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		return account, nil
	}

	account.Touch(actor, s.Now())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, apperrors.AsStorageError("failed to update account", err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.Int64("account_id", accountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) error {
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogWarn(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return apperrors.AsStorageError("failed to delete account", err)
	}
	s.LogInfo(ctx, "Account deleted", slog.Int64("account_id", accountID))
	return nil
}
