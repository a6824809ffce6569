package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	"github.com/SscSPs/simplefi_backend/internal/models"
	"github.com/SscSPs/simplefi_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, code, name, account_type, normal_balance, description, parent_id, balance,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func accountWriteError(err error, account domain.Account) error {
	code, constraint := pgErrorCode(err)
	switch {
	case code == pgUniqueViolation && constraint == "accounts_code_key":
		return apperrors.NewConflictError(apperrors.KindDuplicateAccount, fmt.Sprintf("account code %q already exists", account.Code))
	case code == pgUniqueViolation:
		return apperrors.NewConflictError(apperrors.KindDuplicateAccount, fmt.Sprintf("account name %q already exists", account.Name))
	case code == pgForeignKeyViolation && account.ParentID != nil:
		return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("parent account %d not found", *account.ParentID))
	}
	return apperrors.NewStorageError(fmt.Sprintf("failed to save account %s", account.Code), err)
}

// SaveAccount inserts a new account and assigns its id.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)
	query := `
		INSERT INTO accounts (code, name, account_type, normal_balance, description, parent_id, balance,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING account_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Code,
		m.Name,
		m.AccountType,
		m.NormalBalance,
		m.Description,
		m.ParentID,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&account.AccountID)
	if err != nil {
		return accountWriteError(err, *account)
	}
	return nil
}

// FindAccountByID retrieves a single account.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query account", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", accountID))
		}
		return nil, apperrors.NewStorageError("failed to scan account", err)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing ids are absent from
// the result; the caller decides whether that is an error.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[int64]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query accounts by IDs", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan account rows", err)
	}

	accounts := make(map[int64]domain.Account, len(ms))
	for _, m := range ms {
		accounts[m.AccountID] = mapping.ToDomainAccount(m)
	}
	return accounts, nil
}

// ListAccounts retrieves accounts ordered by code. A non-positive limit returns all.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list accounts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan account rows", err)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccount persists metadata changes. The balance column is never written here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, description = $3, parent_id = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.Description,
		account.ParentID,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return accountWriteError(err, account)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", account.AccountID))
	}
	return nil
}

// DeleteAccount removes an account. Foreign keys from journal lines, child accounts and
// reconciliations make the delete fail while the account is referenced.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return apperrors.NewConflictError(apperrors.KindAccountInUse, fmt.Sprintf("account %d is referenced by other records", accountID))
		}
		return apperrors.NewStorageError("failed to delete account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", accountID))
	}
	return nil
}
