package dto

import (
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ChatRequest is a free-text question for the assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// AnalyzeFinancialHealthRequest carries headline figures. Revenue and expenses default to
// the ledger's year-to-date totals when omitted.
type AnalyzeFinancialHealthRequest struct {
	Revenue            *decimal.Decimal `json:"revenue"`
	Expenses           *decimal.Decimal `json:"expenses"`
	AccountsReceivable decimal.Decimal  `json:"accountsReceivable" binding:"dgte0"`
	AccountsPayable    decimal.Decimal  `json:"accountsPayable" binding:"dgte0"`
	Cash               decimal.Decimal  `json:"cash"`
}

// ExtractInvoiceRequest carries raw invoice text.
type ExtractInvoiceRequest struct {
	InvoiceText string `json:"invoiceText" binding:"required"`
}

// SuggestCategorizationRequest carries a transaction description.
type SuggestCategorizationRequest struct {
	Description string `json:"description" binding:"required"`
}

// FinancialInsightsRequest selects how many recent entries to summarize.
type FinancialInsightsRequest struct {
	Limit int `json:"limit" binding:"omitempty,min=1,max=100"`
}

// AdviceResponse is the result of a free-text model call.
type AdviceResponse struct {
	Result string `json:"result"`
	Status string `json:"status"`
	Cached bool   `json:"cached"`
}

func ToAdviceResponse(a *domain.Advice) AdviceResponse {
	return AdviceResponse{Result: a.Text, Status: "success", Cached: a.Cached}
}

// FinancialHealthResponse echoes the figures that were analyzed with the model's answer.
type FinancialHealthResponse struct {
	AdviceResponse
	Snapshot domain.FinancialSnapshot `json:"snapshot"`
}

// CategorizationResponse is a category suggestion.
type CategorizationResponse struct {
	Suggestion string  `json:"suggestion"`
	Source     string  `json:"source"`
	AccountID  *int64  `json:"accountID,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Status     string  `json:"status"`
}

func ToCategorizationResponse(s *domain.CategorySuggestion) CategorizationResponse {
	return CategorizationResponse{
		Suggestion: s.Suggestion,
		Source:     s.Source,
		AccountID:  s.AccountID,
		Confidence: s.Confidence,
		Status:     "success",
	}
}
