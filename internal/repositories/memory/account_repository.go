package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

func copyAccount(a *domain.Account) domain.Account {
	cp := *a
	if a.ParentID != nil {
		parent := *a.ParentID
		cp.ParentID = &parent
	}
	return cp
}

// uniqueAccountConflict must be called with s.mu held.
func (s *Store) uniqueAccountConflict(account *domain.Account) error {
	for _, existing := range s.accounts {
		if existing.AccountID == account.AccountID {
			continue
		}
		if existing.Code == account.Code {
			return apperrors.NewConflictError(apperrors.KindDuplicateAccount, fmt.Sprintf("account code %q already exists", account.Code))
		}
		if existing.Name == account.Name {
			return apperrors.NewConflictError(apperrors.KindDuplicateAccount, fmt.Sprintf("account name %q already exists", account.Name))
		}
	}
	return nil
}

func (s *Store) SaveAccount(ctx context.Context, account *domain.Account) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.uniqueAccountConflict(account); err != nil {
		return err
	}
	if account.ParentID != nil {
		if _, ok := s.accounts[*account.ParentID]; !ok {
			return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("parent account %d not found", *account.ParentID))
		}
	}
	if err := s.checkFault("SaveAccount"); err != nil {
		return err
	}

	s.accountSeq++
	account.AccountID = s.accountSeq
	stored := copyAccount(account)
	s.accounts[stored.AccountID] = &stored
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", accountID))
	}
	cp := copyAccount(acc)
	return &cp, nil
}

func (s *Store) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[int64]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := s.accounts[id]; ok {
			found[id] = copyAccount(acc)
		}
	}
	return found, nil
}

func (s *Store) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		all = append(all, copyAccount(acc))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return paginate(all, limit, offset), nil
}

func (s *Store) UpdateAccount(ctx context.Context, account domain.Account) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.accounts[account.AccountID]
	if !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", account.AccountID))
	}
	probe := account
	probe.Code = existing.Code
	if err := s.uniqueAccountConflict(&probe); err != nil {
		return err
	}
	if err := s.checkFault("UpdateAccount"); err != nil {
		return err
	}

	existing.Name = account.Name
	existing.Description = account.Description
	existing.LastUpdatedAt = account.LastUpdatedAt
	existing.LastUpdatedBy = account.LastUpdatedBy
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, accountID int64) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", accountID))
	}
	for _, entry := range s.entries {
		for _, line := range entry.Lines {
			if line.AccountID == accountID {
				return apperrors.NewConflictError(apperrors.KindAccountInUse, fmt.Sprintf("account %d has posted journal lines", accountID))
			}
		}
	}
	for _, acc := range s.accounts {
		if acc.ParentID != nil && *acc.ParentID == accountID {
			return apperrors.NewConflictError(apperrors.KindAccountInUse, fmt.Sprintf("account %d has child accounts", accountID))
		}
	}
	for _, rec := range s.reconciliations {
		if rec.AccountID == accountID {
			return apperrors.NewConflictError(apperrors.KindAccountInUse, fmt.Sprintf("account %d has reconciliations", accountID))
		}
	}
	if err := s.checkFault("DeleteAccount"); err != nil {
		return err
	}

	delete(s.accounts, accountID)
	return nil
}
