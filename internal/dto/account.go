package dto

import (
	"time"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code          string       `json:"code" binding:"required,max=32"`
	Name          string       `json:"name" binding:"required,max=255"`
	AccountType   string       `json:"accountType" binding:"required"`
	NormalBalance *domain.Side `json:"normalBalance"` // Optional, must agree with accountType
	Description   string       `json:"description"`
	ParentID      *int64       `json:"parentID"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     int64              `json:"accountID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	NormalBalance domain.Side        `json:"normalBalance"`
	Description   string             `json:"description"`
	ParentID      *int64             `json:"parentID,omitempty"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		NormalBalance: acc.NormalBalance,
		Description:   acc.Description,
		ParentID:      acc.ParentID,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
// AsOf is omitted when the stored balance was returned.
type AccountBalanceResponse struct {
	AccountID     int64           `json:"accountID"`
	NormalBalance domain.Side     `json:"normalBalance"`
	Balance       decimal.Decimal `json:"balance"`
	AsOf          *Date           `json:"asOf,omitempty"`
}

// LedgerLineResponse is one line of an account ledger with the running balance after it.
type LedgerLineResponse struct {
	EntryID        int64           `json:"entryID"`
	LineID         int64           `json:"lineID"`
	Date           Date            `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedgerResponse lists an account's lines in posting order.
type AccountLedgerResponse struct {
	AccountID int64                `json:"accountID"`
	AsOf      *Date                `json:"asOf,omitempty"`
	Balance   decimal.Decimal      `json:"balance"`
	Lines     []LedgerLineResponse `json:"lines"`
}

// ToAccountLedgerResponse converts folded ledger lines to the response DTO.
func ToAccountLedgerResponse(accountID int64, asOf *time.Time, lines []domain.LedgerLine, balance decimal.Decimal) AccountLedgerResponse {
	res := AccountLedgerResponse{
		AccountID: accountID,
		Balance:   balance,
		Lines:     make([]LedgerLineResponse, len(lines)),
	}
	if asOf != nil {
		d := NewDate(*asOf)
		res.AsOf = &d
	}
	for i, l := range lines {
		res.Lines[i] = LedgerLineResponse{
			EntryID:        l.EntryID,
			LineID:         l.LineID,
			Date:           NewDate(l.EntryDate),
			Description:    l.EntryDescription,
			Debit:          l.Debit,
			Credit:         l.Credit,
			RunningBalance: l.RunningBalance,
		}
	}
	return res
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
