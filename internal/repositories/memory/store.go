// Package memory is an in-process storage backend. All state lives behind one RWMutex:
// writers hold it exclusively for the whole of a posting, so balance updates to the
// same account are serialized and readers never see a half-applied entry.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
)

// FaultHook is consulted after a write has been staged and before it is applied.
// Returning an error aborts the write with a storage error and leaves state unchanged.
type FaultHook func(op string) error

// Store implements every repository port in memory.
type Store struct {
	mu sync.RWMutex

	accounts        map[int64]*domain.Account
	entries         map[int64]*domain.JournalEntry
	contacts        map[int64]*domain.Contact
	invoices        map[int64]*domain.Invoice
	reconciliations map[int64]*domain.BankReconciliation

	accountSeq        int64
	entrySeq          int64
	lineSeq           int64
	contactSeq        int64
	invoiceSeq        int64
	reconciliationSeq int64

	faultHook FaultHook
}

// New creates an empty store.
func New() *Store {
	return &Store{
		accounts:        make(map[int64]*domain.Account),
		entries:         make(map[int64]*domain.JournalEntry),
		contacts:        make(map[int64]*domain.Contact),
		invoices:        make(map[int64]*domain.Invoice),
		reconciliations: make(map[int64]*domain.BankReconciliation),
	}
}

// NewRepositoryProvider exposes one store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:        store,
		JournalRepo:        store,
		ReportingRepo:      store,
		ContactRepo:        store,
		InvoiceRepo:        store,
		ReconciliationRepo: store,
		Health:             store,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade        = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade        = (*Store)(nil)
	_ portsrepo.ReportingRepository            = (*Store)(nil)
	_ portsrepo.ContactRepositoryFacade        = (*Store)(nil)
	_ portsrepo.InvoiceRepositoryFacade        = (*Store)(nil)
	_ portsrepo.ReconciliationRepositoryFacade = (*Store)(nil)
	_ portsrepo.HealthChecker                  = (*Store)(nil)
)

// SetFaultHook installs hook for subsequent writes. Pass nil to clear it.
func (s *Store) SetFaultHook(hook FaultHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faultHook = hook
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// checkFault must be called with s.mu held.
func (s *Store) checkFault(op string) error {
	if s.faultHook == nil {
		return nil
	}
	if err := s.faultHook(op); err != nil {
		return apperrors.NewStorageError("failed to commit "+op, err)
	}
	return nil
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewStorageError("request cancelled", err)
	}
	return nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
