package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/simplefi_backend/internal/apperrors"
	"github.com/SscSPs/simplefi_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/simplefi_backend/internal/core/ports/repositories"
	"github.com/SscSPs/simplefi_backend/internal/models"
	"github.com/SscSPs/simplefi_backend/internal/utils/mapping"
	"github.com/SscSPs/simplefi_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, entry_date, description, status, reversed_by_entry_id, reverses_entry_id,
		created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, debit, credit, position`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry writes the entry, its lines, the balance deltas and the reversal link in one
// transaction. Touched account rows are locked in id order so concurrent postings to the
// same accounts serialize without deadlocking.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry, changes []domain.BalanceChange, reverses *int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after commit

	// 1. Lock the touched accounts.
	accountIDs := make([]int64, 0, len(changes))
	for _, change := range changes {
		accountIDs = append(accountIDs, change.AccountID)
	}
	rows, err := tx.Query(ctx, `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`, accountIDs)
	if err != nil {
		return apperrors.NewStorageError("failed to lock accounts", err)
	}
	locked, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return apperrors.NewStorageError("failed to lock accounts", err)
	}
	lockedSet := make(map[int64]struct{}, len(locked))
	for _, id := range locked {
		lockedSet[id] = struct{}{}
	}
	for _, id := range accountIDs {
		if _, ok := lockedSet[id]; !ok {
			return apperrors.NewNotFoundError(apperrors.KindUnknownAccount, fmt.Sprintf("account %d not found", id))
		}
	}

	// 2. Lock the entry being reversed and make sure nobody got there first.
	if reverses != nil {
		var reversedBy *int64
		err = tx.QueryRow(ctx, `SELECT reversed_by_entry_id FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`, *reverses).Scan(&reversedBy)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError(apperrors.KindUnknownEntry, fmt.Sprintf("journal entry %d not found", *reverses))
			}
			return apperrors.NewStorageError("failed to lock reversed entry", err)
		}
		if reversedBy != nil {
			return apperrors.NewConflictError(apperrors.KindAlreadyReversed, fmt.Sprintf("journal entry %d is already reversed", *reverses))
		}
	}

	// 3. Insert the entry.
	m := mapping.ToModelJournalEntry(*entry)
	m.ReversesEntryID = reverses
	entryQuery := `
		INSERT INTO journal_entries (
			entry_date, description, status, reversed_by_entry_id, reverses_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, NULL, $4, $5, $6, $7, $8)
		RETURNING entry_id;
	`
	var entryID int64
	err = tx.QueryRow(ctx, entryQuery,
		m.EntryDate,
		m.Description,
		m.Status,
		m.ReversesEntryID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&entryID)
	if err != nil {
		return apperrors.NewStorageError("failed to insert journal entry", err)
	}

	// 4. Lines and balance deltas go out as one batch.
	lineIDs := make([]int64, len(entry.Lines))
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (entry_id, account_id, debit, credit, position)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING line_id;
	`
	for i, line := range entry.Lines {
		batch.Queue(lineQuery, entryID, line.AccountID, line.Debit, line.Credit, i).QueryRow(func(row pgx.Row) error {
			return row.Scan(&lineIDs[i])
		})
	}
	balanceQuery := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	for _, change := range changes {
		batch.Queue(balanceQuery, change.AccountID, change.Delta, m.CreatedAt, m.CreatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewStorageError("failed to write journal lines", err)
	}

	// 5. Link the reversed entry. The IS NULL guard keeps the link single even if the row
	// lock above were ever bypassed.
	if reverses != nil {
		tag, err := tx.Exec(ctx, `
			UPDATE journal_entries
			SET status = $3, reversed_by_entry_id = $1, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $2 AND reversed_by_entry_id IS NULL;
		`, entryID, *reverses, string(domain.Reversed), m.CreatedAt, m.CreatedBy)
		if err != nil {
			if code, _ := pgErrorCode(err); code == pgUniqueViolation {
				return apperrors.NewConflictError(apperrors.KindAlreadyReversed, fmt.Sprintf("journal entry %d is already reversed", *reverses))
			}
			return apperrors.NewStorageError("failed to link reversed entry", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewConflictError(apperrors.KindAlreadyReversed, fmt.Sprintf("journal entry %d is already reversed", *reverses))
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	entry.EntryID = entryID
	entry.ReversesEntryID = reverses
	for i := range entry.Lines {
		entry.Lines[i].LineID = lineIDs[i]
		entry.Lines[i].EntryID = entryID
		entry.Lines[i].Position = i
	}
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query journal entry", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(apperrors.KindUnknownEntry, fmt.Sprintf("journal entry %d not found", entryID))
		}
		return nil, apperrors.NewStorageError("failed to scan journal entry", err)
	}

	lines, err := r.linesByEntry(ctx, []int64{entryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines[entryID])
	return &entry, nil
}

// linesByEntry loads the lines of several entries grouped by entry id, in position order.
func (r *PgxJournalRepository) linesByEntry(ctx context.Context, entryIDs []int64) (map[int64][]models.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, position;`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query journal lines", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan journal lines", err)
	}
	grouped := make(map[int64][]models.JournalLine, len(entryIDs))
	for _, m := range ms {
		grouped[m.EntryID] = append(grouped[m.EntryID], m)
	}
	return grouped, nil
}

// ListEntries retrieves entries newest first using keyset pagination on (entry_date, entry_id).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	var cursorDate *time.Time
	var cursorID int64
	if nextToken != nil && *nextToken != "" {
		date, id, err := pagination.DecodeEntryCursor(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError(apperrors.KindInvalidRequest, err.Error())
		}
		cursorDate, cursorID = &date, id
	}

	// Fetch one extra row to know whether another page exists.
	var fetch *int
	if limit > 0 {
		n := limit + 1
		fetch = &n
	}
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE ($1::date IS NULL OR (entry_date, entry_id) < ($1::date, $2))
		ORDER BY entry_date DESC, entry_id DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, cursorDate, cursorID, fetch)
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to list journal entries", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalEntry])
	if err != nil {
		return nil, nil, apperrors.NewStorageError("failed to scan journal entries", err)
	}

	var token *string
	if limit > 0 && len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		t := pagination.EncodeEntryCursor(last.EntryDate, last.EntryID)
		token = &t
	}
	if len(ms) == 0 {
		return []domain.JournalEntry{}, nil, nil
	}

	ids := make([]int64, len(ms))
	for i, m := range ms {
		ids[i] = m.EntryID
	}
	lines, err := r.linesByEntry(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m, lines[m.EntryID])
	}
	return entries, token, nil
}

// ListLedgerLines retrieves an account's lines in posting order, optionally cut off at asOf.
func (r *PgxJournalRepository) ListLedgerLines(ctx context.Context, accountID int64, asOf *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.position,
			e.entry_date, e.description AS entry_description
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND ($2::date IS NULL OR e.entry_date <= $2::date)
		ORDER BY e.entry_date, l.entry_id, l.position;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, asOf)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query ledger lines", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.LedgerLine])
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan ledger lines", err)
	}

	lines := make([]domain.LedgerLine, len(ms))
	for i, m := range ms {
		lines[i] = mapping.ToDomainLedgerLine(m)
	}
	return lines, nil
}
