package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ReconciliationStatus string

const (
	ReconciliationInProgress ReconciliationStatus = "In Progress"
	ReconciliationCompleted  ReconciliationStatus = "Completed"
)

// BankReconciliation compares a bank statement balance with the ledger balance of an
// account as of the statement date.
type BankReconciliation struct {
	ReconciliationID  int64                `json:"reconciliationID"`
	AccountID         int64                `json:"accountID"`
	StatementDate     time.Time            `json:"statementDate"`
	StatementBalance  decimal.Decimal      `json:"statementBalance"`
	ReconciledBalance decimal.Decimal      `json:"reconciledBalance"`
	Status            ReconciliationStatus `json:"status"`
	AuditFields
}

// Difference is the statement balance minus the ledger balance.
func (r BankReconciliation) Difference() decimal.Decimal {
	return r.StatementBalance.Sub(r.ReconciledBalance)
}
