package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

// ReportingRepository defines aggregate queries over posted journal lines.
type ReportingRepository interface {
	// SumLinesByAccount returns the raw debit and credit totals per account for entries
	// dated on or before asOf. Accounts without lines are omitted.
	SumLinesByAccount(ctx context.Context, asOf time.Time) (map[int64]domain.TrialBalanceRow, error)
}
