package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
)

type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepositoryFacade
}

// NewContactService creates a new contact service.
func NewContactService(repo portsrepo.ContactRepositoryFacade) portssvc.ContactSvcFacade {
	return &contactService{contactRepo: repo}
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, req dto.CreateContactRequest, actor string) (*domain.Contact, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "name must not be blank")
	}

	contact := &domain.Contact{
		Name:        name,
		Type:        req.Type,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		TaxID:       req.TaxID,
		AuditFields: domain.NewAuditFields(actor, s.Now()),
	}
	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact")
		return nil, apperrors.AsStorageError("failed to save contact", err)
	}

	s.LogInfo(ctx, "Contact created", slog.Int64("contact_id", contact.ContactID))
	return contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, contactID int64) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch contact", err)
	}
	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, limit int, offset int) ([]domain.Contact, error) {
	contacts, err := s.contactRepo.ListContacts(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to list contacts", err)
	}
	return contacts, nil
}

func (s *contactService) UpdateContact(ctx context.Context, contactID int64, req dto.UpdateContactRequest, actor string) (*domain.Contact, error) {
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		return nil, apperrors.AsStorageError("failed to fetch contact", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "name must not be blank")
		}
		contact.Name = name
	}
	if req.Type != nil {
		contact.Type = *req.Type
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Address != nil {
		contact.Address = *req.Address
	}
	if req.TaxID != nil {
		contact.TaxID = *req.TaxID
	}

	contact.Touch(actor, s.Now())
	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		s.LogError(ctx, err, "Failed to update contact", slog.Int64("contact_id", contactID))
		return nil, apperrors.AsStorageError("failed to update contact", err)
	}
	return contact, nil
}

func (s *contactService) DeleteContact(ctx context.Context, contactID int64) error {
	if err := s.contactRepo.DeleteContact(ctx, contactID); err != nil {
		return apperrors.AsStorageError("failed to delete contact", err)
	}
	s.LogInfo(ctx, "Contact deleted", slog.Int64("contact_id", contactID))
	return nil
}
