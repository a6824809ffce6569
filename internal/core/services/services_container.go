package services

import (
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/llm"
	"github.com/SscSPs/simplefi_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Account service first since the journal engine resolves accounts through it
	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, container.Account)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)
	container.Contact = NewContactService(repos.ContactRepo)
	container.Invoice = NewInvoiceService(repos.InvoiceRepo, repos.ContactRepo, cfg.InvoiceStorageDir)
	container.Reconciliation = NewReconciliationService(repos.ReconciliationRepo, container.Journal)

	advisoryOpts := []AdvisoryServiceOption{WithAdvisoryCacheTTL(cfg.LLMCacheTTL)}
	if cfg.OpenAIAPIKey != "" {
		advisoryOpts = append(advisoryOpts, WithCompleter(llm.NewClient(llm.Config{
			BaseURL: cfg.OpenAIBaseURL,
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.LLMTimeout,
		})))
	}
	container.Advisory = NewAdvisoryService(container.Journal, container.Account, container.Reporting, advisoryOpts...)
	container.Health = NewHealthService(repos.Health, container.Advisory)

	return container
}
