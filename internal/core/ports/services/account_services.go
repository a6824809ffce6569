package services

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts. Unknown ids are absent from the result.
	GetAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account metadata
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)

	// UpdateAccount updates an account's name or description.
	UpdateAccount(ctx context.Context, accountID int64, req dto.UpdateAccountRequest, actor string) (*domain.Account, error)

	// DeleteAccount removes an account that has never been posted to.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
