package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

func (s *Store) SaveReconciliation(ctx context.Context, rec *domain.BankReconciliation) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[rec.AccountID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", rec.AccountID))
	}
	if err := s.checkFault("SaveReconciliation"); err != nil {
		return err
	}
	s.reconciliationSeq++
	rec.ReconciliationID = s.reconciliationSeq
	stored := *rec
	s.reconciliations[stored.ReconciliationID] = &stored
	return nil
}

func (s *Store) FindReconciliationByID(ctx context.Context, reconciliationID int64) (*domain.BankReconciliation, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.reconciliations[reconciliationID]
	if !ok {
		return nil, apperrors.NewNotFoundError(apperrors.KindUnknownReconciliation, fmt.Sprintf("reconciliation %d not found", reconciliationID))
	}
	cp := *rec
	return &cp, nil
}

func (s *Store) ListReconciliations(ctx context.Context, accountID *int64, limit int, offset int) ([]domain.BankReconciliation, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.BankReconciliation, 0, len(s.reconciliations))
	for _, rec := range s.reconciliations {
		if accountID != nil && rec.AccountID != *accountID {
			continue
		}
		all = append(all, *rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ReconciliationID > all[j].ReconciliationID })
	return paginate(all, limit, offset), nil
}

func (s *Store) UpdateReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reconciliations[rec.ReconciliationID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownReconciliation, fmt.Sprintf("reconciliation %d not found", rec.ReconciliationID))
	}
	if err := s.checkFault("UpdateReconciliation"); err != nil {
		return err
	}
	stored := rec
	s.reconciliations[rec.ReconciliationID] = &stored
	return nil
}
