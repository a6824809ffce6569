package services

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/dto"
)

type ReconciliationSvcFacade interface {
	// StartReconciliation records a statement and computes the ledger balance as of its date.
	StartReconciliation(ctx context.Context, req dto.CreateReconciliationRequest, actor string) (*domain.BankReconciliation, error)
	GetReconciliationByID(ctx context.Context, reconciliationID int64) (*domain.BankReconciliation, error)
	ListReconciliations(ctx context.Context, params dto.ListReconciliationsParams) ([]domain.BankReconciliation, error)

	// RefreshReconciliation recomputes the ledger balance of an in-progress reconciliation.
	RefreshReconciliation(ctx context.Context, reconciliationID int64, actor string) (*domain.BankReconciliation, error)

	// CompleteReconciliation closes a reconciliation whose difference is zero.
	CompleteReconciliation(ctx context.Context, reconciliationID int64, actor string) (*domain.BankReconciliation, error)
}
