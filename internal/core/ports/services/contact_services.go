package services

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/dto"
)

type ContactSvcFacade interface {
	CreateContact(ctx context.Context, req dto.CreateContactRequest, actor string) (*domain.Contact, error)
	GetContactByID(ctx context.Context, contactID int64) (*domain.Contact, error)
	ListContacts(ctx context.Context, limit int, offset int) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, contactID int64, req dto.UpdateContactRequest, actor string) (*domain.Contact, error)
	DeleteContact(ctx context.Context, contactID int64) error
}
