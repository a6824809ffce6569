package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	"github.com/SscSPs/simplefi_backend/internal/models"
	"github.com/SscSPs/simplefi_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const invoiceColumns = `invoice_id, invoice_number, contact_id, invoice_type, amount, due_date, status,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) *PgxInvoiceRepository {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func invoiceWriteError(err error, invoice domain.Invoice) error {
	switch code, _ := pgErrorCode(err); code {
	case pgUniqueViolation:
		return apperrors.NewConflictError(apperrors.KindDuplicateInvoice, fmt.Sprintf("invoice number %q already exists", invoice.InvoiceNumber))
	case pgForeignKeyViolation:
		return apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", invoice.ContactID))
	}
	return apperrors.NewStorageError("failed to save invoice", err)
}

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice *domain.Invoice) error {
	m := mapping.ToModelInvoice(*invoice)
	query := `
		INSERT INTO invoices (invoice_number, contact_id, invoice_type, amount, due_date, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING invoice_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.InvoiceNumber, m.ContactID, m.InvoiceType, m.Amount, m.DueDate, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&invoice.InvoiceID)
	if err != nil {
		return invoiceWriteError(err, *invoice)
	}
	return nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID int64) (*domain.Invoice, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query invoice", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.KindUnknownInvoice, fmt.Sprintf("invoice %d not found", invoiceID))
		}
		return nil, apperrors.NewStorageError("failed to scan invoice", err)
	}
	inv := mapping.ToDomainInvoice(m)
	return &inv, nil
}

// ListInvoices returns invoices ordered by due date, optionally filtered by status.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, status domain.InvoiceStatus, limit int, offset int) ([]domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1 = '' OR status = $1)
		ORDER BY due_date, invoice_id
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, string(status), limitArg(limit), offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list invoices", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan invoices", err)
	}
	invoices := make([]domain.Invoice, len(ms))
	for i, m := range ms {
		invoices[i] = mapping.ToDomainInvoice(m)
	}
	return invoices, nil
}

func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices
		SET invoice_number = $2, contact_id = $3, invoice_type = $4, amount = $5, due_date = $6, status = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE invoice_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.InvoiceID, m.InvoiceNumber, m.ContactID, m.InvoiceType, m.Amount, m.DueDate, m.Status,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return invoiceWriteError(err, invoice)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.KindUnknownInvoice, fmt.Sprintf("invoice %d not found", invoice.InvoiceID))
	}
	return nil
}

func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id = $1;`, invoiceID)
	if err != nil {
		return apperrors.NewStorageError("failed to delete invoice", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.KindUnknownInvoice, fmt.Sprintf("invoice %d not found", invoiceID))
	}
	return nil
}
