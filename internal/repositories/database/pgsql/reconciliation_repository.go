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

const reconciliationColumns = `reconciliation_id, account_id, statement_date, statement_balance, reconciled_balance, status,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) *PgxReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec *domain.BankReconciliation) error {
	m := mapping.ToModelReconciliation(*rec)
	query := `
		INSERT INTO bank_reconciliations (account_id, statement_date, statement_balance, reconciled_balance, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING reconciliation_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.AccountID, m.StatementDate, m.StatementBalance, m.ReconciledBalance, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&rec.ReconciliationID)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", rec.AccountID))
		}
		return apperrors.NewStorageError("failed to save reconciliation", err)
	}
	return nil
}

func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, reconciliationID int64) (*domain.BankReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM bank_reconciliations WHERE reconciliation_id = $1;`
	rows, err := r.Pool.Query(ctx, query, reconciliationID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query reconciliation", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.BankReconciliation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.KindUnknownReconciliation, fmt.Sprintf("reconciliation %d not found", reconciliationID))
		}
		return nil, apperrors.NewStorageError("failed to scan reconciliation", err)
	}
	rec := mapping.ToDomainReconciliation(m)
	return &rec, nil
}

// ListReconciliations returns the newest reconciliations first, optionally for one account.
func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, accountID *int64, limit int, offset int) ([]domain.BankReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE ($1::bigint IS NULL OR account_id = $1)
		ORDER BY reconciliation_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limitArg(limit), offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list reconciliations", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.BankReconciliation])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan reconciliations", err)
	}
	recs := make([]domain.BankReconciliation, len(ms))
	for i, m := range ms {
		recs[i] = mapping.ToDomainReconciliation(m)
	}
	return recs, nil
}

func (r *PgxReconciliationRepository) UpdateReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	m := mapping.ToModelReconciliation(rec)
	query := `
		UPDATE bank_reconciliations
		SET statement_balance = $2, reconciled_balance = $3, status = $4, last_updated_at = $5, last_updated_by = $6
		WHERE reconciliation_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ReconciliationID, m.StatementBalance, m.ReconciledBalance, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to update reconciliation", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.KindUnknownReconciliation, fmt.Sprintf("reconciliation %d not found", rec.ReconciliationID))
	}
	return nil
}
