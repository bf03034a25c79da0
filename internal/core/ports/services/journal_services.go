package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntry retrieves a non-deleted entry with its lines.
	GetJournalEntry(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries, newest first.
	ListJournalEntries(ctx context.Context, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines the manual journal operations exposed over HTTP.
type JournalWriterSvc interface {
	// CreateJournalEntry validates and posts a manual entry.
	CreateJournalEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateJournalEntry replaces an entry's header and all of its lines.
	// Accounts touched before or after the change are recalculated.
	UpdateJournalEntry(ctx context.Context, userID, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error)

	// DeleteJournalEntry soft-deletes an entry. Deleting an entry produced by a sale
	// invoice removes the invoice and its other entries as well.
	DeleteJournalEntry(ctx context.Context, userID, entryID string) error
}

// JournalPoster is how business documents write to the journal.
// Every method validates before writing and recalculates the affected accounts after.
type JournalPoster interface {
	// Post saves one new entry.
	Post(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// Repost replaces every entry of source with entries.
	// Accounts of both the old and the new entries are recalculated.
	Repost(ctx context.Context, userID string, source domain.SourceRef, entries ...domain.JournalEntry) ([]domain.JournalEntry, error)

	// Retract soft-deletes every entry of source.
	Retract(ctx context.Context, userID string, source domain.SourceRef) error
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPoster
}

// ReportCacheInvalidator drops cached reports of a user after the journal changes.
type ReportCacheInvalidator interface {
	Invalidate(ctx context.Context, userID string) error
}
