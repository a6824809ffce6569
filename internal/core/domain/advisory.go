package domain

import "github.com/shopspring/decimal"

// FinancialSnapshot is the set of headline figures passed to a financial health analysis.
type FinancialSnapshot struct {
	Revenue            decimal.Decimal `json:"revenue"`
	Expenses           decimal.Decimal `json:"expenses"`
	AccountsReceivable decimal.Decimal `json:"accountsReceivable"`
	AccountsPayable    decimal.Decimal `json:"accountsPayable"`
	Cash               decimal.Decimal `json:"cash"`
}

// CategorySuggestion is a proposed account for a free-text transaction description.
type CategorySuggestion struct {
	Suggestion string  `json:"suggestion"`
	Source     string  `json:"source"` // "llm" or "classifier"
	AccountID  *int64  `json:"accountID,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Advice is a free-text answer produced by the language model.
type Advice struct {
	Text   string `json:"text"`
	Cached bool   `json:"cached"`
}
