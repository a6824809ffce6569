package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, accountRepo portsrepo.AccountReader) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		accountRepo:   accountRepo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance nets each account's posted lines up to asOf and places the result in the
// debit or credit column. Accounts without lines are left out.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	asOf = domain.DateOnly(asOf)

	sums, err := s.reportingRepo.SumLinesByAccount(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.String("asOf", asOf.Format(time.DateOnly)))
		return nil, apperrors.AsStorageError("failed to retrieve trial balance data", err)
	}

	// ordered by code
	accounts, err := s.accountRepo.ListAccounts(ctx, 0, 0)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to list accounts", err)
	}

	tb := &domain.TrialBalance{
		AsOf:         asOf,
		Rows:         make([]domain.TrialBalanceRow, 0, len(sums)),
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, acc := range accounts {
		sum, ok := sums[acc.AccountID]
		if !ok {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			AccountName: acc.Name,
			AccountType: acc.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		net := sum.Debit.Sub(sum.Credit)
		if net.IsNegative() {
			row.Credit = net.Neg()
		} else {
			row.Debit = net
		}
		tb.TotalDebits = tb.TotalDebits.Add(row.Debit)
		tb.TotalCredits = tb.TotalCredits.Add(row.Credit)
		tb.Rows = append(tb.Rows, row)
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("asOf", asOf.Format(time.DateOnly)),
		slog.Int("row_count", len(tb.Rows)),
		slog.Bool("balanced", tb.Balanced()))
	return tb, nil
}
