package pgsql

import (
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:        newPgxAccountRepository(dbPool),
		JournalRepo:        newPgxJournalRepository(dbPool),
		ReportingRepo:      newReportingRepository(dbPool),
		ContactRepo:        newPgxContactRepository(dbPool),
		InvoiceRepo:        newPgxInvoiceRepository(dbPool),
		ReconciliationRepo: newPgxReconciliationRepository(dbPool),
		Health:             &BaseRepository{Pool: dbPool},
	}
}
