package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `e.entry_id, e.user_id, e.entry_date, e.entry_time, e.description, e.source_kind, e.source_id,
	e.bill_no, e.payment_type, e.customer_id, e.supplier_id, e.is_deleted,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by`

const accountLineColumns = `l.line_id, l.entry_id, l.account_id, l.line_type, l.amount, l.position,
	e.entry_date, e.entry_time, e.description, e.bill_no, e.source_kind, e.source_id, e.created_at`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.EntryDate,
		&m.EntryTime,
		&m.Description,
		&m.SourceKind,
		&m.SourceID,
		&m.BillNo,
		&m.PaymentType,
		&m.CustomerID,
		&m.SupplierID,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanAccountLine(row pgx.Row) (models.AccountLine, error) {
	var m models.AccountLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.LineType,
		&m.Amount,
		&m.Position,
		&m.EntryDate,
		&m.EntryTime,
		&m.Description,
		&m.BillNo,
		&m.SourceKind,
		&m.SourceID,
		&m.CreatedAt,
	)
	return m, err
}

// insertEntry writes the header and queues every line in one batch. It runs inside the caller's transaction.
func (r *PgxJournalRepository) insertEntry(ctx context.Context, q querier, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	headerQuery := `
		INSERT INTO journal_entries (
			entry_id, user_id, entry_date, entry_time, description, source_kind, source_id,
			bill_no, payment_type, customer_id, supplier_id, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, $12, $13, $14, $15);
	`
	_, err := q.Exec(ctx, headerQuery,
		m.EntryID,
		m.UserID,
		m.EntryDate,
		m.EntryTime,
		m.Description,
		m.SourceKind,
		m.SourceID,
		m.BillNo,
		m.PaymentType,
		m.CustomerID,
		m.SupplierID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "journal entry "+m.EntryID)
	}
	return r.insertLines(ctx, q, entry.EntryID, entry.Lines)
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, q querier, entryID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, line_type, amount, position)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		ml := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery, ml.LineID, entryID, ml.AccountID, ml.LineType, ml.Amount, ml.Position)
	}

	br := q.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError(err, "lines of journal entry "+entryID)
	}
	return nil
}

// loadLines fetches the lines of every given entry, grouped by entry id and ordered by position.
func (r *PgxJournalRepository) loadLines(ctx context.Context, entryIDs []string) (map[string][]models.JournalLine, error) {
	byEntry := make(map[string][]models.JournalLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return byEntry, nil
	}

	query := `
		SELECT line_id, entry_id, account_id, line_type, amount, position
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, position;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.AccountID, &l.LineType, &l.Amount, &l.Position); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line row", err)
		}
		byEntry[l.EntryID] = append(byEntry[l.EntryID], l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal line rows", err)
	}
	return byEntry, nil
}

// queryEntries runs a header query and attaches the lines of every returned entry.
func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, []models.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	headers := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	rows.Close()

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	lines, err := r.loadLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, lines[h.EntryID])
	}
	return entries, headers, nil
}

// SaveEntry persists a new entry and its lines within one transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntry(ctx, tx, entry); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceEntry updates the header of a live entry and swaps its lines.
func (r *PgxJournalRepository) ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET entry_date = $3, entry_time = $4, description = $5, bill_no = $6, payment_type = $7,
		    customer_id = $8, supplier_id = $9, last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := tx.Exec(ctx, query,
		m.EntryID,
		m.UserID,
		m.EntryDate,
		m.EntryTime,
		m.Description,
		m.BillNo,
		m.PaymentType,
		m.CustomerID,
		m.SupplierID,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateWriteError(err, "journal entry "+m.EntryID)
	}
	if err := notFoundUnlessAffected(tag, "journal entry "+m.EntryID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines of journal entry "+m.EntryID, err)
	}
	if err := r.insertLines(ctx, tx, m.EntryID, entry.Lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceEntriesBySource hard-deletes the source's entries, deleted ones included, and saves entries in their place.
func (r *PgxJournalRepository) ReplaceEntriesBySource(ctx context.Context, userID string, source domain.SourceRef, entries []domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// journal_lines cascade with their entry
	query := `DELETE FROM journal_entries WHERE user_id = $1 AND source_kind = $2 AND source_id = $3;`
	if _, err := tx.Exec(ctx, query, userID, string(source.Kind), source.ID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entries of "+source.String(), err)
	}

	for _, entry := range entries {
		if err := r.insertEntry(ctx, tx, entry); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// SoftDeleteEntry marks one live entry deleted.
func (r *PgxJournalRepository) SoftDeleteEntry(ctx context.Context, userID, entryID, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_deleted = TRUE, deleted_at = $3, deleted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND user_id = $2 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, userID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	return notFoundUnlessAffected(tag, "journal entry "+entryID)
}

// SoftDeleteEntriesBySource marks every live entry of source deleted.
func (r *PgxJournalRepository) SoftDeleteEntriesBySource(ctx context.Context, userID string, source domain.SourceRef, deletedBy string, deletedAt time.Time) (int64, error) {
	query := `
		UPDATE journal_entries
		SET is_deleted = TRUE, deleted_at = $4, deleted_by = $5, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND source_kind = $2 AND source_id = $3 AND is_deleted = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, string(source.Kind), source.ID, deletedAt, deletedBy)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete journal entries of "+source.String(), err)
	}
	return tag.RowsAffected(), nil
}

// FindEntryByID retrieves a live entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE e.entry_id = $1 AND e.user_id = $2 AND e.is_deleted = FALSE;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry "+entryID, err)
	}

	lines, err := r.loadLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines[entryID])
	return &entry, nil
}

// FindEntriesBySource retrieves the entries of one business record, oldest first.
func (r *PgxJournalRepository) FindEntriesBySource(ctx context.Context, userID string, source domain.SourceRef, includeDeleted bool) ([]domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM journal_entries e
		WHERE e.user_id = $1 AND e.source_kind = $2 AND e.source_id = $3`
	if !includeDeleted {
		query += ` AND e.is_deleted = FALSE`
	}
	query += ` ORDER BY e.entry_date, e.created_at;`

	entries, _, err := r.queryEntries(ctx, query, userID, string(source.Kind), source.ID)
	return entries, err
}

// ListEntries retrieves a page of live entries, newest first, using token-based pagination.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, userID string, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	clauses := []string{"e.user_id = $1", "e.is_deleted = FALSE"}
	args := []any{userID}
	addClause := func(format string, value any) {
		args = append(args, value)
		clauses = append(clauses, strings.ReplaceAll(format, "?", "$"+strconv.Itoa(len(args))))
	}

	if filter.StartDate != nil {
		addClause("e.entry_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addClause("e.entry_date <= ?", *filter.EndDate)
	}
	if filter.SourceKind != nil {
		addClause("e.source_kind = ?", string(*filter.SourceKind))
	}
	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		clauses = append(clauses, "(e.entry_date, e.created_at) < ($"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}

	args = append(args, fetchLimit)
	query := `SELECT ` + entryColumns + ` FROM journal_entries e WHERE ` + strings.Join(clauses, " AND ") +
		` ORDER BY e.entry_date DESC, e.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	entries, headers, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		// The token points to the last item included in this page.
		last := headers[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}
	return entries, nextTokenVal, nil
}

// SumAccountLines returns SUM(debits) - SUM(credits) over the account's live lines.
func (r *PgxJournalRepository) SumAccountLines(ctx context.Context, userID, accountID string, before *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN l.line_type = 'DEBIT' THEN l.amount ELSE -l.amount END), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.user_id = $1 AND l.account_id = $2 AND e.is_deleted = FALSE
	`
	args := []any{userID, accountID}
	if before != nil {
		query += ` AND e.entry_date < $3`
		args = append(args, *before)
	}

	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum lines of account "+accountID, err)
	}
	return sum, nil
}

// ListAccountLines returns the account's live lines bounded by the query's dates and source kinds.
func (r *PgxJournalRepository) ListAccountLines(ctx context.Context, userID, accountID string, q domain.LedgerQuery) ([]domain.AccountLine, error) {
	query := `SELECT ` + accountLineColumns + `
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.user_id = $1 AND l.account_id = $2 AND e.is_deleted = FALSE`
	args := []any{userID, accountID}

	if q.StartDate != nil {
		args = append(args, *q.StartDate)
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if q.EndDate != nil {
		args = append(args, *q.EndDate)
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	if len(q.SourceKinds) > 0 {
		kinds := make([]string, len(q.SourceKinds))
		for i, k := range q.SourceKinds {
			kinds[i] = string(k)
		}
		args = append(args, kinds)
		query += ` AND e.source_kind = ANY($` + strconv.Itoa(len(args)) + `)`
	}

	lines, err := r.queryAccountLines(ctx, query+`;`, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountLineSlice(lines), nil
}

// ListTransactionsByAccountID retrieves a paginated list of an account's lines, newest first.
func (r *PgxJournalRepository) ListTransactionsByAccountID(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.AccountLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + accountLineColumns + `
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.user_id = $1 AND l.account_id = $2 AND e.is_deleted = FALSE`
	args := []any{userID, accountID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, lastLineID, decodeErr := pagination.DecodeLineToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison is concise and efficient in Postgres
		query += ` AND (e.entry_date, e.created_at, l.line_id) < ($3, $4, $5)`
		args = append(args, lastDate, lastCreatedAt, lastLineID)
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY e.entry_date DESC, e.created_at DESC, l.line_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	lines, err := r.queryAccountLines(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(lines) > limit {
		last := lines[limit-1]
		token := pagination.EncodeLineToken(last.EntryDate, last.CreatedAt, last.LineID)
		nextTokenVal = &token
		lines = lines[:limit]
	}
	return mapping.ToDomainAccountLineSlice(lines), nextTokenVal, nil
}

func (r *PgxJournalRepository) queryAccountLines(ctx context.Context, query string, args ...any) ([]models.AccountLine, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account lines", err)
	}
	defer rows.Close()

	lines := []models.AccountLine{}
	for rows.Next() {
		m, err := scanAccountLine(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account line row", err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account line rows", err)
	}
	return lines, nil
}

// CountLinesForAccount counts live lines that reference the account.
func (r *PgxJournalRepository) CountLinesForAccount(ctx context.Context, userID, accountID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.user_id = $1 AND l.account_id = $2 AND e.is_deleted = FALSE;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, userID, accountID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count lines of account "+accountID, err)
	}
	return count, nil
}
