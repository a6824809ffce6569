package services

import (
	"context"

	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	"github.com/SscSPs/simplefi_backend/internal/dto"
)

// AdvisorySvc exposes the language-model backed helpers. None of its operations write to
// the ledger.
type AdvisorySvc interface {
	Chat(ctx context.Context, message string) (*domain.Advice, error)
	AnalyzeFinancialHealth(ctx context.Context, req dto.AnalyzeFinancialHealthRequest) (*domain.Advice, *domain.FinancialSnapshot, error)
	ExtractInvoiceData(ctx context.Context, invoiceText string) (*domain.Advice, error)
	SuggestCategorization(ctx context.Context, description string) (*domain.CategorySuggestion, error)
	FinancialInsights(ctx context.Context, limit int) (*domain.Advice, error)

	// Status reports "configured", "disabled" or "circuit_open" for health checks.
	Status() string
}
