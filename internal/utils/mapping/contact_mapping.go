package mapping

import (
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/models"
)

func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:   d.ContactID,
		Name:        d.Name,
		ContactType: string(d.Type),
		Email:       d.Email,
		Phone:       d.Phone,
		Address:     d.Address,
		TaxID:       d.TaxID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:   m.ContactID,
		Name:        m.Name,
		Type:        domain.ContactType(m.ContactType),
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		TaxID:       m.TaxID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
