package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/SscSPs/simplefi_backend/internal/llm"
	"github.com/SscSPs/simplefi_backend/internal/utils/classifier"
	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

const (
	advisoryStatusConfigured  = "configured"
	advisoryStatusDisabled    = "disabled"
	advisoryStatusCircuitOpen = "circuit_open"

	defaultInsightEntries  = 20
	classifierTrainingSize = 500
	classifierRetrainAfter = 5 * time.Minute
)

const (
	promptChatSystem       = "You are a helpful accounting assistant for a small business bookkeeping system. Answer concisely."
	promptAnalystSystem    = "You are a skilled financial analyst."
	promptInvoiceSystem    = "You are an expert at processing invoices."
	promptCategorySystem   = "You are an expert accountant."
	promptInsightsSystem   = "You are a financial advisor specializing in business analytics."
	promptFinancialHealth  = "Based on the following financial data, provide a comprehensive analysis:\nRevenue: %s\nExpenses: %s\nAccounts Receivable: %s\nAccounts Payable: %s\nCash Balance: %s\n\nPlease analyze:\n1. Overall financial health\n2. Cash flow status\n3. Key recommendations\n4. Potential risks"
	promptExtractInvoice   = "Extract the following information from this invoice:\n1. Invoice number\n2. Date\n3. Amount\n4. Vendor/Customer name\n5. Line items\n\nInvoice text:\n%s\n\nReturn the information in a structured format."
	promptSuggestCategory  = "Suggest the appropriate accounting categorization for this transaction:\nTransaction: %s\n\nPlease provide:\n1. Account category (e.g., Revenue, Expense, Asset, Liability)\n2. Specific account suggestion\n3. Confidence level (High, Medium, Low)"
	promptFinancialInsight = "Analyze these transactions and provide insights:\n%s\n\nPlease provide:\n1. Spending patterns\n2. Unusual transactions\n3. Cost-saving opportunities\n4. Cash flow predictions"
)

// advisoryService answers free-text questions with a language model. It only reads the
// ledger; nothing here posts entries.
type advisoryService struct {
	BaseService
	completer  llm.Completer
	cache      *gocache.Cache
	journalSvc portssvc.JournalSvcFacade
	accountSvc portssvc.AccountReaderSvc
	reporting  portssvc.ReportingService

	mu           sync.Mutex
	classifier   *classifier.Classifier
	classifierAt time.Time
}

// AdvisoryServiceOption is a functional option for configuring the advisory service
type AdvisoryServiceOption func(*advisoryService)

// WithCompleter sets the language model client. Without one the service reports itself as
// disabled and only the classifier fallback works.
func WithCompleter(completer llm.Completer) AdvisoryServiceOption {
	return func(s *advisoryService) {
		s.completer = completer
	}
}

// WithAdvisoryCacheTTL sets how long identical prompts are answered from cache.
func WithAdvisoryCacheTTL(ttl time.Duration) AdvisoryServiceOption {
	return func(s *advisoryService) {
		s.cache = gocache.New(ttl, 2*ttl)
	}
}

// WithAdvisoryClock overrides the clock.
func WithAdvisoryClock(clock func() time.Time) AdvisoryServiceOption {
	return func(s *advisoryService) {
		s.clock = clock
	}
}

// NewAdvisoryService creates a new advisory service.
func NewAdvisoryService(journalSvc portssvc.JournalSvcFacade, accountSvc portssvc.AccountReaderSvc, reporting portssvc.ReportingService, options ...AdvisoryServiceOption) portssvc.AdvisorySvc {
	svc := &advisoryService{
		journalSvc: journalSvc,
		accountSvc: accountSvc,
		reporting:  reporting,
		cache:      gocache.New(10*time.Minute, 20*time.Minute),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AdvisorySvc = (*advisoryService)(nil)

func (s *advisoryService) Status() string {
	if s.completer == nil {
		return advisoryStatusDisabled
	}
	if s.completer.State() == llm.StateOpen {
		return advisoryStatusCircuitOpen
	}
	return advisoryStatusConfigured
}

func (s *advisoryService) complete(ctx context.Context, system, user string) (*domain.Advice, error) {
	if s.completer == nil {
		return nil, apperrors.NewAppError(apperrors.ErrUnavailable, apperrors.KindServiceUnavailable,
			"language model is not configured", nil)
	}

	sum := sha256.Sum256([]byte(system + "\x00" + user))
	key := hex.EncodeToString(sum[:])
	if cached, ok := s.cache.Get(key); ok {
		s.LogDebug(ctx, "Advisory answer served from cache")
		return &domain.Advice{Text: cached.(string), Cached: true}, nil
	}

	start := time.Now()
	text, err := s.completer.Complete(ctx, system, user)
	if err != nil {
		s.LogError(ctx, err, "Language model call failed", slog.String("breaker", s.completer.State()))
		return nil, err
	}
	s.LogInfo(ctx, "Language model call completed", slog.Duration("latency", time.Since(start)))

	s.cache.SetDefault(key, text)
	return &domain.Advice{Text: text}, nil
}

func (s *advisoryService) Chat(ctx context.Context, message string) (*domain.Advice, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "message must not be empty")
	}
	return s.complete(ctx, promptChatSystem, message)
}

func (s *advisoryService) AnalyzeFinancialHealth(ctx context.Context, req dto.AnalyzeFinancialHealthRequest) (*domain.Advice, *domain.FinancialSnapshot, error) {
	snapshot := &domain.FinancialSnapshot{
		AccountsReceivable: req.AccountsReceivable,
		AccountsPayable:    req.AccountsPayable,
		Cash:               req.Cash,
	}

	if req.Revenue == nil || req.Expenses == nil {
		tb, err := s.reporting.TrialBalance(ctx, s.Now())
		if err != nil {
			return nil, nil, err
		}
		snapshot.Revenue = tb.TotalFor(domain.Revenue)
		snapshot.Expenses = tb.TotalFor(domain.Expense)
	}
	if req.Revenue != nil {
		snapshot.Revenue = *req.Revenue
	}
	if req.Expenses != nil {
		snapshot.Expenses = *req.Expenses
	}

	prompt := fmt.Sprintf(promptFinancialHealth,
		money(snapshot.Revenue),
		money(snapshot.Expenses),
		money(snapshot.AccountsReceivable),
		money(snapshot.AccountsPayable),
		money(snapshot.Cash))

	advice, err := s.complete(ctx, promptAnalystSystem, prompt)
	if err != nil {
		return nil, nil, err
	}
	return advice, snapshot, nil
}

func (s *advisoryService) ExtractInvoiceData(ctx context.Context, invoiceText string) (*domain.Advice, error) {
	if strings.TrimSpace(invoiceText) == "" {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "invoiceText must not be empty")
	}
	return s.complete(ctx, promptInvoiceSystem, fmt.Sprintf(promptExtractInvoice, invoiceText))
}

// SuggestCategorization asks the language model when it is available and falls back to the
// classifier when the model is not configured or its breaker is open.
func (s *advisoryService) SuggestCategorization(ctx context.Context, description string) (*domain.CategorySuggestion, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, "description must not be empty")
	}

	if s.Status() == advisoryStatusConfigured {
		advice, err := s.complete(ctx, promptCategorySystem, fmt.Sprintf(promptSuggestCategory, description))
		if err == nil {
			return &domain.CategorySuggestion{Suggestion: advice.Text, Source: "llm"}, nil
		}
		if !errors.Is(err, apperrors.ErrUnavailable) {
			return nil, err
		}
	}

	return s.classify(ctx, description)
}

func (s *advisoryService) classify(ctx context.Context, description string) (*domain.CategorySuggestion, error) {
	model, err := s.trainedClassifier(ctx)
	if err != nil {
		return nil, err
	}

	accountID, confidence, ok := model.Predict(description)
	if !ok {
		return nil, apperrors.NewAppError(apperrors.ErrUnavailable, apperrors.KindServiceUnavailable,
			"language model unavailable and no confident match from posted entries", nil)
	}

	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &domain.CategorySuggestion{
		Suggestion: fmt.Sprintf("%s %s (%s)", account.Code, account.Name, account.AccountType),
		Source:     "classifier",
		AccountID:  &account.AccountID,
		Confidence: confidence,
	}, nil
}

// trainedClassifier learns from the descriptions of recent entries. Lines on Asset and
// Liability accounts are skipped so the model learns the categorizing side of each entry.
func (s *advisoryService) trainedClassifier(ctx context.Context) (*classifier.Classifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.classifier != nil && s.Now().Sub(s.classifierAt) < classifierRetrainAfter {
		return s.classifier, nil
	}

	entries, _, err := s.journalSvc.ListEntries(ctx, dto.ListEntriesParams{Limit: classifierTrainingSize})
	if err != nil {
		return nil, err
	}

	var ids []int64
	seen := make(map[int64]bool)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if !seen[line.AccountID] {
				seen[line.AccountID] = true
				ids = append(ids, line.AccountID)
			}
		}
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var examples []classifier.Example
	for _, entry := range entries {
		if entry.ReversesEntryID != nil || entry.IsReversed() {
			continue
		}
		for _, line := range entry.Lines {
			acc, ok := accounts[line.AccountID]
			if !ok || acc.AccountType == domain.Asset || acc.AccountType == domain.Liability {
				continue
			}
			examples = append(examples, classifier.Example{Description: entry.Description, AccountID: line.AccountID})
		}
	}

	s.classifier = classifier.Train(examples)
	s.classifierAt = s.Now()
	s.LogDebug(ctx, "Categorization classifier trained", slog.Int("examples", len(examples)))
	return s.classifier, nil
}

func (s *advisoryService) FinancialInsights(ctx context.Context, limit int) (*domain.Advice, error) {
	if limit <= 0 {
		limit = defaultInsightEntries
	}
	entries, _, err := s.journalSvc.ListEntries(ctx, dto.ListEntriesParams{Limit: limit})
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString("(no journal entries have been posted)")
	}
	for _, entry := range entries {
		total := decimal.Zero
		for _, line := range entry.Lines {
			total = total.Add(line.Debit)
		}
		fmt.Fprintf(&b, "- %s: %s (%s)\n", entry.Date.Format(time.DateOnly), entry.Description, money(total))
	}

	return s.complete(ctx, promptInsightsSystem, fmt.Sprintf(promptFinancialInsight, strings.TrimRight(b.String(), "\n")))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
