package dto

import (
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   int64           `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf     Date                      `json:"asOf"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Balanced bool                      `json:"balanced"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance.
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	res := TrialBalanceResponse{
		AsOf:     NewDate(tb.AsOf),
		Rows:     make([]TrialBalanceRowResponse, len(tb.Rows)),
		Balanced: tb.Balanced(),
	}
	for i, row := range tb.Rows {
		res.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
	}
	res.Totals.Debit = tb.TotalDebits
	res.Totals.Credit = tb.TotalCredits
	return res
}
