package services

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/dto"
)

type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, actor string) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID int64, req dto.UpdateInvoiceRequest, actor string) (*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, invoiceID int64) error

	// InvoicePDFPath resolves the stored PDF for an invoice, failing with not found when
	// no file exists.
	InvoicePDFPath(ctx context.Context, invoiceID int64) (string, error)
}
