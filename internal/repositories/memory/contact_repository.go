package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

func (s *Store) SaveContact(ctx context.Context, contact *domain.Contact) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFault("SaveContact"); err != nil {
		return err
	}
	s.contactSeq++
	contact.ContactID = s.contactSeq
	stored := *contact
	s.contacts[stored.ContactID] = &stored
	return nil
}

func (s *Store) FindContactByID(ctx context.Context, contactID int64) (*domain.Contact, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[contactID]
	if !ok {
		return nil, apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", contactID))
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListContacts(ctx context.Context, limit int, offset int) ([]domain.Contact, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ContactID < all[j].ContactID })
	return paginate(all, limit, offset), nil
}

func (s *Store) UpdateContact(ctx context.Context, contact domain.Contact) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[contact.ContactID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", contact.ContactID))
	}
	if err := s.checkFault("UpdateContact"); err != nil {
		return err
	}
	stored := contact
	s.contacts[contact.ContactID] = &stored
	return nil
}

func (s *Store) DeleteContact(ctx context.Context, contactID int64) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[contactID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", contactID))
	}
	for _, inv := range s.invoices {
		if inv.ContactID == contactID {
			return apperrors.NewConflictError(apperrors.KindContactInUse, fmt.Sprintf("contact %d has invoices", contactID))
		}
	}
	if err := s.checkFault("DeleteContact"); err != nil {
		return err
	}
	delete(s.contacts, contactID)
	return nil
}
