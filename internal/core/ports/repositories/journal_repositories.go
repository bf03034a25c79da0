package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a non-deleted entry with its lines.
	FindEntryByID(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error)

	// FindEntriesBySource retrieves the entries produced by one business record, lines included.
	FindEntriesBySource(ctx context.Context, userID string, source domain.SourceRef, includeDeleted bool) ([]domain.JournalEntry, error)

	// ListEntries retrieves a page of non-deleted entries, newest first, using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, userID string, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// AccountLineReader aggregates and lists the lines of a single account.
// Lines of soft-deleted entries are always excluded.
type AccountLineReader interface {
	// SumAccountLines returns SUM(debits) - SUM(credits) for the account.
	// When before is set only entries dated strictly before it are counted.
	SumAccountLines(ctx context.Context, userID, accountID string, before *time.Time) (decimal.Decimal, error)

	// ListAccountLines returns the account's lines joined with their entry headers,
	// bounded by the query's date range and source kinds. Ordering is left to the caller.
	ListAccountLines(ctx context.Context, userID, accountID string, query domain.LedgerQuery) ([]domain.AccountLine, error)

	// ListTransactionsByAccountID retrieves a paginated list of an account's lines, newest first.
	ListTransactionsByAccountID(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.AccountLine, *string, error)

	// CountLinesForAccount counts lines of non-deleted entries that reference the account.
	CountLinesForAccount(ctx context.Context, userID, accountID string) (int, error)
}

// JournalWriter defines write operations for journal data.
// Each method writes the entry header and its lines atomically.
type JournalWriter interface {
	// SaveEntry persists a new entry and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceEntry updates the header of an existing entry and replaces all of its lines.
	ReplaceEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceEntriesBySource hard-deletes every entry of source and saves entries in its place.
	ReplaceEntriesBySource(ctx context.Context, userID string, source domain.SourceRef, entries []domain.JournalEntry) error

	// SoftDeleteEntry marks one entry deleted.
	SoftDeleteEntry(ctx context.Context, userID, entryID, deletedBy string, deletedAt time.Time) error

	// SoftDeleteEntriesBySource marks every entry of source deleted and returns how many changed.
	SoftDeleteEntriesBySource(ctx context.Context, userID string, source domain.SourceRef, deletedBy string, deletedAt time.Time) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	AccountLineReader
	JournalWriter
}
