package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Revenue   AccountType = "Revenue"
	Expense   AccountType = "Expense"
)

// Side is one of the two columns of a journal line. It doubles as an account's normal balance.
type Side string

const (
	Debit  Side = "Debit"
	Credit Side = "Credit"
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == Debit {
		return Credit
	}
	return Debit
}

// ParseAccountType validates a raw account type.
func ParseAccountType(raw string) (AccountType, error) {
	switch t := AccountType(raw); t {
	case Asset, Liability, Equity, Revenue, Expense:
		return t, nil
	default:
		return "", fmt.Errorf("unknown account type %q", raw)
	}
}

// NormalBalance is the side on which an account of this type increases.
// Asset and Expense accounts are debit-normal; Liability, Equity and Revenue are credit-normal.
func (t AccountType) NormalBalance() Side {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// Account is a node in the chart of accounts.
type Account struct {
	AccountID     int64           `json:"accountID"`
	Code          string          `json:"code"` // immutable once assigned
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance Side            `json:"normalBalance"`
	Description   string          `json:"description"`
	ParentID      *int64          `json:"parentID,omitempty"`
	Balance       decimal.Decimal `json:"balance"` // written only by journal posting
	AuditFields
}
