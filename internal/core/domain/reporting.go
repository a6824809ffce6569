package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account's as-of balance in debit and credit columns.
type TrialBalance struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
}

// BalanceTolerance is the largest debit/credit difference, in major currency units, that
// posting accepts. A trial balance is judged with the same tolerance.
var BalanceTolerance = decimal.RequireFromString("0.005")

// Balanced reports whether the debit and credit columns agree within BalanceTolerance.
func (tb TrialBalance) Balanced() bool {
	return tb.TotalDebits.Sub(tb.TotalCredits).Abs().LessThanOrEqual(BalanceTolerance)
}

// TotalFor sums the net balances of all rows of the given account type, signed toward
// that type's normal balance.
func (tb TrialBalance) TotalFor(t AccountType) decimal.Decimal {
	total := decimal.Zero
	for _, row := range tb.Rows {
		if row.AccountType != t {
			continue
		}
		if t.NormalBalance() == Debit {
			total = total.Add(row.Debit).Sub(row.Credit)
		} else {
			total = total.Add(row.Credit).Sub(row.Debit)
		}
	}
	return total
}
