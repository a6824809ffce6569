package repositories

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

type InvoiceRepositoryFacade interface {
	SaveInvoice(ctx context.Context, invoice *domain.Invoice) error
	FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error)
	// ListInvoices filters by status when status is non-empty.
	ListInvoices(ctx context.Context, status domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
	DeleteInvoice(ctx context.Context, invoiceID int64) error
}
