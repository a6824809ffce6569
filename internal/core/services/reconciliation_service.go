package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// reconciliationService compares bank statements with the ledger. It reads balances through
// the journal service and never posts entries itself.
type reconciliationService struct {
	BaseService
	reconciliationRepo portsrepo.ReconciliationRepositoryFacade
	journalSvc         portssvc.JournalSvcFacade
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(repo portsrepo.ReconciliationRepositoryFacade, journalSvc portssvc.JournalSvcFacade) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		reconciliationRepo: repo,
		journalSvc:         journalSvc,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) StartReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, actor string) (*domain.BankReconciliation, error) {
	if req.StatementDate.IsZero() {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "statementDate is required")
	}
	statementDate := domain.DateOnly(req.StatementDate.Time)

	ledgerBalance, err := s.journalSvc.GetAccountBalance(ctx, req.AccountID, &statementDate)
	if err != nil {
		return nil, err
	}

	rec := &domain.BankReconciliation{
		AccountID:         req.AccountID,
		StatementDate:     statementDate,
		StatementBalance:  req.StatementBalance,
		ReconciledBalance: ledgerBalance,
		Status:            domain.ReconciliationInProgress,
		AuditFields:       domain.NewAuditFields(actor, s.Now()),
	}
	if err := s.reconciliationRepo.SaveReconciliation(ctx, rec); err != nil {
		s.LogError(ctx, err, "Failed to save reconciliation", slog.Int64("account_id", req.AccountID))
		return nil, apperrors.AsStorageError("failed to save reconciliation", err)
	}

	s.LogInfo(ctx, "Reconciliation started",
		slog.Int64("reconciliation_id", rec.ReconciliationID),
		slog.String("difference", rec.Difference().String()))
	return rec, nil
}

func (s *reconciliationService) GetReconciliationByID(ctx context.Context, reconciliationID int64) (*domain.BankReconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch reconciliation", err)
	}
	return rec, nil
}

func (s *reconciliationService) ListReconciliations(ctx context.Context, params dto.ListReconciliationsParams) ([]domain.BankReconciliation, error) {
	recs, err := s.reconciliationRepo.ListReconciliations(ctx, params.AccountID, params.Limit, params.Offset)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to list reconciliations", err)
	}
	return recs, nil
}

func (s *reconciliationService) RefreshReconciliation(ctx context.Context, reconciliationID int64, actor string) (*domain.BankReconciliation, error) {
	rec, err := s.openReconciliation(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}
	if err := s.recompute(ctx, rec, actor); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *reconciliationService) CompleteReconciliation(ctx context.Context, reconciliationID int64, actor string) (*domain.BankReconciliation, error) {
	rec, err := s.openReconciliation(ctx, reconciliationID)
	if err != nil {
		return nil, err
	}

	balance, err := s.journalSvc.GetAccountBalance(ctx, rec.AccountID, &rec.StatementDate)
	if err != nil {
		return nil, err
	}
	rec.ReconciledBalance = balance
	if diff := rec.Difference(); !diff.Equal(decimal.Zero) {
		return nil, apperrors.NewConflictError(apperrors.KindReconciliationMismatch,
			fmt.Sprintf("statement balance differs from ledger balance by %s", diff))
	}

	rec.Status = domain.ReconciliationCompleted
	rec.Touch(actor, s.Now())
	if err := s.reconciliationRepo.UpdateReconciliation(ctx, *rec); err != nil {
		s.LogError(ctx, err, "Failed to complete reconciliation", slog.Int64("reconciliation_id", reconciliationID))
		return nil, apperrors.AsStorageError("failed to update reconciliation", err)
	}

	s.LogInfo(ctx, "Reconciliation completed", slog.Int64("reconciliation_id", reconciliationID))
	return rec, nil
}

func (s *reconciliationService) openReconciliation(ctx context.Context, reconciliationID int64) (*domain.BankReconciliation, error) {
	rec, err := s.reconciliationRepo.FindReconciliationByID(ctx, reconciliationID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch reconciliation", err)
	}
	if rec.Status == domain.ReconciliationCompleted {
		return nil, apperrors.NewConflictError(apperrors.KindAlreadyCompleted,
			fmt.Sprintf("reconciliation %d is already completed", reconciliationID))
	}
	return rec, nil
}

func (s *reconciliationService) recompute(ctx context.Context, rec *domain.BankReconciliation, actor string) error {
	balance, err := s.journalSvc.GetAccountBalance(ctx, rec.AccountID, &rec.StatementDate)
	if err != nil {
		return err
	}
	rec.ReconciledBalance = balance
	rec.Touch(actor, s.Now())
	if err := s.reconciliationRepo.UpdateReconciliation(ctx, *rec); err != nil {
		return apperrors.AsStorageError("failed to update reconciliation", err)
	}
	return nil
}
