package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankReconciliation is a row of the bank_reconciliations table.
type BankReconciliation struct {
	ReconciliationID  int64           `db:"reconciliation_id"`
	AccountID         int64           `db:"account_id"`
	StatementDate     time.Time       `db:"statement_date"`
	StatementBalance  decimal.Decimal `db:"statement_balance"`
	ReconciledBalance decimal.Decimal `db:"reconciled_balance"`
	Status            string          `db:"status"`
	AuditFields
}
