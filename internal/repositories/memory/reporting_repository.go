package memory

import (
	"context"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (s *Store) SumLinesByAccount(ctx context.Context, asOf time.Time) (map[int64]domain.TrialBalanceRow, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[int64]domain.TrialBalanceRow)
	for _, entry := range s.entries {
		if entry.Date.After(asOf) {
			continue
		}
		for _, line := range entry.Lines {
			row, ok := sums[line.AccountID]
			if !ok {
				row = domain.TrialBalanceRow{AccountID: line.AccountID, Debit: decimal.Zero, Credit: decimal.Zero}
			}
			row.Debit = row.Debit.Add(line.Debit)
			row.Credit = row.Credit.Add(line.Credit)
			sums[line.AccountID] = row
		}
	}
	return sums, nil
}
