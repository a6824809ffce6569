package mapping

import (
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/models"
)

func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		ContactID:     d.ContactID,
		InvoiceType:   string(d.Type),
		Amount:        d.Amount,
		DueDate:       domain.DateOnly(d.DueDate),
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		ContactID:     m.ContactID,
		Type:          domain.InvoiceType(m.InvoiceType),
		Amount:        m.Amount,
		DueDate:       domain.DateOnly(m.DueDate),
		Status:        domain.InvoiceStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
