package repositories

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

type ReconciliationRepositoryFacade interface {
	SaveReconciliation(ctx context.Context, rec *domain.BankReconciliation) error
	FindReconciliationByID(ctx context.Context, reconciliationID int64) (*domain.BankReconciliation, error)
	ListReconciliations(ctx context.Context, accountID *int64, limit int, offset int) ([]domain.BankReconciliation, error)
	UpdateReconciliation(ctx context.Context, rec domain.BankReconciliation) error
}
