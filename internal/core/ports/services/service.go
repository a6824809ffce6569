package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Journal        JournalSvcFacade
	Reporting      ReportingService
	Contact        ContactSvcFacade
	Invoice        InvoiceSvcFacade
	Reconciliation ReconciliationSvcFacade
	Advisory       AdvisorySvc
	Health         HealthSvc
}

// HealthSvc reports the status of backing services.
type HealthSvc interface {
	Check(ctx context.Context) map[string]string
}
