package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

func (s *Store) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[invoice.ContactID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", invoice.ContactID))
	}
	for _, existing := range s.invoices {
		if existing.InvoiceNumber == invoice.InvoiceNumber {
			return apperrors.NewConflictError(apperrors.KindDuplicateInvoice, fmt.Sprintf("invoice number %q already exists", invoice.InvoiceNumber))
		}
	}
	if err := s.checkFault("SaveInvoice"); err != nil {
		return err
	}

	s.invoiceSeq++
	invoice.InvoiceID = s.invoiceSeq
	stored := *invoice
	s.invoices[stored.InvoiceID] = &stored
	return nil
}

func (s *Store) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, apperrors.NewNotFoundError(apperrors.KindUnknownInvoice, fmt.Sprintf("invoice %d not found", invoiceID))
	}
	cp := *inv
	return &cp, nil
}

func (s *Store) ListInvoices(ctx context.Context, status domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	if err := checkCtx(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if status != "" && inv.Status != status {
			continue
		}
		all = append(all, *inv)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].DueDate.Equal(all[j].DueDate) {
			return all[i].InvoiceID < all[j].InvoiceID
		}
		return all[i].DueDate.Before(all[j].DueDate)
	})
	return paginate(all, limit, offset), nil
}

func (s *Store) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[invoice.InvoiceID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownInvoice, fmt.Sprintf("invoice %d not found", invoice.InvoiceID))
	}
	if err := s.checkFault("UpdateInvoice"); err != nil {
		return err
	}
	stored := invoice
	s.invoices[invoice.InvoiceID] = &stored
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, invoiceID int64) error {
	if err := checkCtx(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[invoiceID]; !ok {
		return apperrors.NewNotFoundError(apperrors.KindUnknownInvoice, fmt.Sprintf("invoice %d not found", invoiceID))
	}
	if err := s.checkFault("DeleteInvoice"); err != nil {
		return err
	}
	delete(s.invoices, invoiceID)
	return nil
}
