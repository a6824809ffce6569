package repositories

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
)

type ContactRepositoryFacade interface {
	SaveContact(ctx context.Context, contact *domain.Contact) error
	FindContactByID(ctx context.Context, contactID int64) (*domain.Contact, error)
	ListContacts(ctx context.Context, limit int, offset int) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, contact domain.Contact) error
	// DeleteContact fails with a conflict while invoices reference the contact.
	DeleteContact(ctx context.Context, contactID int64) error
}
