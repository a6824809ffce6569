package repositories

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts. Unknown ids are absent from the result.
	FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account metadata. Balances are never written
// through this interface; they change only when a journal entry is saved.
type AccountWriter interface {
	// SaveAccount persists a new account and assigns its id.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// UpdateAccount persists name, description, parent and audit fields.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account that no journal line references.
	DeleteAccount(ctx context.Context, accountID int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
