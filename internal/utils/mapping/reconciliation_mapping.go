package mapping

import (
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/models"
)

func ToModelReconciliation(d domain.BankReconciliation) models.BankReconciliation {
	return models.BankReconciliation{
		ReconciliationID:  d.ReconciliationID,
		AccountID:         d.AccountID,
		StatementDate:     domain.DateOnly(d.StatementDate),
		StatementBalance:  d.StatementBalance,
		ReconciledBalance: d.ReconciledBalance,
		Status:            string(d.Status),
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainReconciliation(m models.BankReconciliation) domain.BankReconciliation {
	return domain.BankReconciliation{
		ReconciliationID:  m.ReconciliationID,
		AccountID:         m.AccountID,
		StatementDate:     domain.DateOnly(m.StatementDate),
		StatementBalance:  m.StatementBalance,
		ReconciledBalance: m.ReconciledBalance,
		Status:            domain.ReconciliationStatus(m.Status),
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
