package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// SumLinesByAccount totals debits and credits per account for entries dated on or before
// asOf. Reversed entries and their reversals are both included; they cancel out.
func (r *reportingRepository) SumLinesByAccount(ctx context.Context, asOf time.Time) (map[int64]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			l.account_id,
			SUM(l.debit) AS total_debit,
			SUM(l.credit) AS total_credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.entry_date <= $1::date
		GROUP BY l.account_id
	`

	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, apperrors.NewStorageError("error querying trial balance data", err)
	}
	defer rows.Close()

	sums := make(map[int64]domain.TrialBalanceRow)
	for rows.Next() {
		var row domain.TrialBalanceRow
		var debit, credit decimal.Decimal
		if err := rows.Scan(&row.AccountID, &debit, &credit); err != nil {
			return nil, apperrors.NewStorageError("error scanning trial balance row", err)
		}
		row.Debit = debit
		row.Credit = credit
		sums[row.AccountID] = row
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("error iterating trial balance rows", err)
	}
	return sums, nil
}
