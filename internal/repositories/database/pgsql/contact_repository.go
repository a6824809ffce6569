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

const contactColumns = `contact_id, name, contact_type, email, phone, address, tax_id,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxContactRepository struct {
	BaseRepository
}

func newPgxContactRepository(pool *pgxpool.Pool) *PgxContactRepository {
	return &PgxContactRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ContactRepositoryFacade = (*PgxContactRepository)(nil)

func (r *PgxContactRepository) SaveContact(ctx context.Context, contact *domain.Contact) error {
	m := mapping.ToModelContact(*contact)
	query := `
		INSERT INTO contacts (name, contact_type, email, phone, address, tax_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING contact_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Name, m.ContactType, m.Email, m.Phone, m.Address, m.TaxID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	).Scan(&contact.ContactID)
	if err != nil {
		return apperrors.NewStorageError("failed to save contact", err)
	}
	return nil
}

func (r *PgxContactRepository) FindContactByID(ctx context.Context, contactID int64) (*domain.Contact, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE contact_id = $1;`, contactID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query contact", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Contact])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", contactID))
		}
		return nil, apperrors.NewStorageError("failed to scan contact", err)
	}
	c := mapping.ToDomainContact(m)
	return &c, nil
}

func (r *PgxContactRepository) ListContacts(ctx context.Context, limit int, offset int) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts ORDER BY contact_id LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limitArg(limit), offset)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list contacts", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Contact])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan contacts", err)
	}
	contacts := make([]domain.Contact, len(ms))
	for i, m := range ms {
		contacts[i] = mapping.ToDomainContact(m)
	}
	return contacts, nil
}

func (r *PgxContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	m := mapping.ToModelContact(contact)
	query := `
		UPDATE contacts
		SET name = $2, contact_type = $3, email = $4, phone = $5, address = $6, tax_id = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE contact_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.ContactID, m.Name, m.ContactType, m.Email, m.Phone, m.Address, m.TaxID,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewStorageError("failed to update contact", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", contact.ContactID))
	}
	return nil
}

func (r *PgxContactRepository) DeleteContact(ctx context.Context, contactID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM contacts WHERE contact_id = $1;`, contactID)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return apperrors.NewConflictError(apperrors.KindContactInUse, fmt.Sprintf("contact %d has invoices", contactID))
		}
		return apperrors.NewStorageError("failed to delete contact", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.KindUnknownContact, fmt.Sprintf("contact %d not found", contactID))
	}
	return nil
}
