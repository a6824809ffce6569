package models

import (
	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID     int64           `db:"account_id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	AccountType   string          `db:"account_type"`
	NormalBalance string          `db:"normal_balance"`
	Description   string          `db:"description"`
	ParentID      *int64          `db:"parent_id"` // Nullable
	Balance       decimal.Decimal `db:"balance"`
	AuditFields
}
