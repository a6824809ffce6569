package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
)

type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	contactRepo portsrepo.ContactRepositoryFacade
	storageDir  string
}

// NewInvoiceService creates a new invoice service. Invoice PDFs are looked up under
// storageDir as <invoiceNumber>.pdf.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, contactRepo portsrepo.ContactRepositoryFacade, storageDir string) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		contactRepo: contactRepo,
		storageDir:  storageDir,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor string) (*domain.Invoice, error) {
	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "invoiceNumber must not be blank")
	}
	if req.DueDate.IsZero() {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "dueDate is required")
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "amount must be greater than zero")
	}

	if _, err := s.contactRepo.FindContactByID(ctx, req.ContactID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", req.ContactID))
		}
		return nil, apperrors.AsStorageError("failed to fetch contact", err)
	}

	status := req.Status
	if status == "" {
		status = domain.InvoiceDraft
	}

	invoice := &domain.Invoice{
		InvoiceNumber: number,
		ContactID:     req.ContactID,
		Type:          req.Type,
		Amount:        req.Amount,
		DueDate:       domain.DateOnly(req.DueDate.Time),
		Status:        status,
		AuditFields:   domain.NewAuditFields(actor, s.Now()),
	}
	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", number))
		return nil, apperrors.AsStorageError("failed to save invoice", err)
	}

	s.LogInfo(ctx, "Invoice created",
		slog.Int64("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber))
	return invoice, nil
}

func (s *invoiceService) GetInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch invoice", err)
	}
	return invoice, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error) {
	invoices, err := s.invoiceRepo.ListInvoices(ctx, params.Status, params.Limit, params.Offset)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to list invoices", err)
	}
	return invoices, nil
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, invoiceID int64, req dto.UpdateInvoiceRequest, actor string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch invoice", err)
	}

	if req.Status != nil && !invoice.Status.CanTransitionTo(*req.Status) {
		return nil, apperrors.NewConflictError(apperrors.KindInvalidStatusTransition,
			fmt.Sprintf("invoice cannot move from %s to %s", invoice.Status, *req.Status))
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "amount must be greater than zero")
		}
		invoice.Amount = *req.Amount
	}
	if req.DueDate != nil && !req.DueDate.IsZero() {
		invoice.DueDate = domain.DateOnly(req.DueDate.Time)
	}
	if req.Status != nil {
		invoice.Status = *req.Status
	}

	invoice.Touch(actor, s.Now())
	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.Int64("invoice_id", invoiceID))
		return nil, apperrors.AsStorageError("failed to update invoice", err)
	}
	return invoice, nil
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, invoiceID int64) error {
	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		return apperrors.AsStorageError("failed to delete invoice", err)
	}
	s.LogInfo(ctx, "Invoice deleted", slog.Int64("invoice_id", invoiceID))
	return nil
}

func (s *invoiceService) InvoicePDFPath(ctx context.Context, invoiceID int64) (string, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return "", apperrors.AsStorageError("failed to fetch invoice", err)
	}

	notFound := apperrors.NewNotFoundError(apperrors.KindPDFNotFound,
		fmt.Sprintf("no PDF stored for invoice %s", invoice.InvoiceNumber))

	// invoice numbers are user supplied; refuse anything that would escape storageDir
	name := invoice.InvoiceNumber + ".pdf"
	if s.storageDir == "" || filepath.Base(name) != name {
		return "", notFound
	}

	path := filepath.Join(s.storageDir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound
		}
		return "", apperrors.NewStorageError("failed to stat invoice PDF", err)
	}
	if info.IsDir() {
		return "", notFound
	}
	return path, nil
}
