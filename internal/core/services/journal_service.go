package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

// journalService owns every write to the journal. Business documents reach it through
// the JournalPoster methods; manual entries through the writer methods.
type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountReader
	balances     portssvc.BalanceRecalculatorSvc
	saleInvoices portsrepo.SaleInvoiceRepository
	reportCache  portssvc.ReportCacheInvalidator
}

// JournalOption configures the journal service.
type JournalOption func(*journalService)

// WithSaleInvoiceRepository enables the entry to invoice delete cascade.
func WithSaleInvoiceRepository(repo portsrepo.SaleInvoiceRepository) JournalOption {
	return func(s *journalService) {
		s.saleInvoices = repo
	}
}

// WithReportCache invalidates cached reports after every journal write.
func WithReportCache(cache portssvc.ReportCacheInvalidator) JournalOption {
	return func(s *journalService) {
		s.reportCache = cache
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, balances portssvc.BalanceRecalculatorSvc, options ...JournalOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		balances:    balances,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validateEntry checks an entry before anything is written: the lines must balance,
// the source must be well formed, and every account must exist for the owner.
func (s *journalService) validateEntry(ctx context.Context, entry domain.JournalEntry) error {
	if entry.UserID == "" {
		return fmt.Errorf("%w: journal entry has no owner", apperrors.ErrValidation)
	}
	if entry.Date.IsZero() {
		return fmt.Errorf("%w: journal entry date is required", apperrors.ErrValidation)
	}
	if err := entry.Source.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if err := accounting.ValidateEntryLines(entry.Lines); err != nil {
		return err
	}

	accountIDs := entry.AccountIDs()
	found, err := s.accountRepo.FindAccountsByIDs(ctx, entry.UserID, accountIDs)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range accountIDs {
		if _, ok := found[id]; !ok {
			return fmt.Errorf("%w: account %s does not exist", apperrors.ErrValidation, id)
		}
	}
	return nil
}

// prepareEntry assigns ids, positions and audit fields to a new entry.
func (s *journalService) prepareEntry(entry domain.JournalEntry) domain.JournalEntry {
	now := s.now()
	if entry.EntryID == "" {
		entry.EntryID = uuid.NewString()
	}
	entry.AuditFields = domain.NewAuditFields(entry.UserID, now)
	entry.IsDeleted = false
	lines := make([]domain.JournalLine, len(entry.Lines))
	for i, l := range entry.Lines {
		l.LineID = uuid.NewString()
		l.EntryID = entry.EntryID
		l.Position = i
		lines[i] = l
	}
	entry.Lines = lines
	return entry
}

// afterWrite brings cached balances and reports in line with the journal.
// The journal write has committed by now; a failure here is healed by the next recalculation.
func (s *journalService) afterWrite(ctx context.Context, userID string, accountIDs []string) error {
	if s.reportCache != nil {
		if err := s.reportCache.Invalidate(ctx, userID); err != nil {
			s.LogWarn(ctx, "Failed to invalidate report cache", slog.String("error", err.Error()))
		}
	}
	if err := s.balances.RecalculateAccounts(ctx, userID, accountIDs); err != nil {
		s.LogError(ctx, err, "Balance recalculation failed after journal write", slog.Any("account_ids", accountIDs))
		return fmt.Errorf("journal saved but balance recalculation failed: %w", err)
	}
	return nil
}

// Post validates and saves one new entry, then recalculates its accounts.
func (s *journalService) Post(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	if err := s.validateEntry(ctx, entry); err != nil {
		s.LogWarn(ctx, "Rejected journal entry", slog.String("source", entry.Source.String()), slog.String("error", err.Error()))
		return nil, err
	}
	entry = s.prepareEntry(entry)

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("source", entry.Source.String()))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	if err := s.afterWrite(ctx, entry.UserID, entry.AccountIDs()); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entry.EntryID), slog.String("source", entry.Source.String()))
	return &entry, nil
}

// Repost swaps every entry of source for entries. The new set is validated first so a
// rejected set leaves the old entries in place.
func (s *journalService) Repost(ctx context.Context, userID string, source domain.SourceRef, entries ...domain.JournalEntry) ([]domain.JournalEntry, error) {
	if source.IsManual() {
		return nil, fmt.Errorf("%w: manual entries cannot be reposted by source", apperrors.ErrValidation)
	}

	prepared := make([]domain.JournalEntry, len(entries))
	for i, entry := range entries {
		entry.UserID = userID
		entry.Source = source
		if err := s.validateEntry(ctx, entry); err != nil {
			s.LogWarn(ctx, "Rejected journal entry on repost", slog.String("source", source.String()), slog.String("error", err.Error()))
			return nil, err
		}
		prepared[i] = s.prepareEntry(entry)
	}

	previous, err := s.journalRepo.FindEntriesBySource(ctx, userID, source, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load previous entries of %s: %w", source, err)
	}

	if err := s.journalRepo.ReplaceEntriesBySource(ctx, userID, source, prepared); err != nil {
		s.LogError(ctx, err, "Failed to replace journal entries", slog.String("source", source.String()))
		return nil, fmt.Errorf("failed to replace entries of %s: %w", source, err)
	}

	affected := make([]string, 0)
	for _, e := range previous {
		affected = append(affected, e.AccountIDs()...)
	}
	for _, e := range prepared {
		affected = append(affected, e.AccountIDs()...)
	}
	if err := s.afterWrite(ctx, userID, affected); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entries reposted",
		slog.String("source", source.String()),
		slog.Int("removed", len(previous)),
		slog.Int("posted", len(prepared)))
	return prepared, nil
}

// Retract soft-deletes every entry of source and recalculates their accounts.
func (s *journalService) Retract(ctx context.Context, userID string, source domain.SourceRef) error {
	entries, err := s.journalRepo.FindEntriesBySource(ctx, userID, source, false)
	if err != nil {
		return fmt.Errorf("failed to load entries of %s: %w", source, err)
	}
	if len(entries) == 0 {
		return nil
	}

	if _, err := s.journalRepo.SoftDeleteEntriesBySource(ctx, userID, source, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to soft-delete journal entries", slog.String("source", source.String()))
		return fmt.Errorf("failed to delete entries of %s: %w", source, err)
	}

	affected := make([]string, 0)
	for _, e := range entries {
		affected = append(affected, e.AccountIDs()...)
	}
	if err := s.afterWrite(ctx, userID, affected); err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal entries retracted", slog.String("source", source.String()), slog.Int("count", len(entries)))
	return nil
}

func entryFromRequest(userID string, req dto.CreateJournalEntryRequest) (domain.JournalEntry, error) {
	date, err := dto.ParseDate(req.Date)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return domain.JournalEntry{
		UserID:      userID,
		Date:        date,
		Time:        req.Time,
		Description: req.Description,
		BillNo:      req.BillNo,
		PaymentType: req.PaymentType,
		CustomerID:  req.CustomerID,
		SupplierID:  req.SupplierID,
		Source:      domain.ManualSource(),
		Lines:       dto.ToDomainLines(req.Lines),
	}, nil
}

// CreateJournalEntry posts a manual entry.
func (s *journalService) CreateJournalEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	entry, err := entryFromRequest(userID, req)
	if err != nil {
		return nil, err
	}
	return s.Post(ctx, entry)
}

// GetJournalEntry retrieves a non-deleted entry with its lines.
func (s *journalService) GetJournalEntry(ctx context.Context, userID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, userID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListJournalEntries retrieves a page of entries for the owner.
func (s *journalService) ListJournalEntries(ctx context.Context, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	var filter domain.JournalEntryFilter
	var err error
	if filter.StartDate, err = dto.ParseOptionalDate(params.StartDate); err != nil {
		return nil, err
	}
	if filter.EndDate, err = dto.ParseOptionalDate(params.EndDate); err != nil {
		return nil, err
	}
	if params.Source != "" {
		kind, err := domain.ParseSourceKind(params.Source)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.SourceKind = &kind
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, userID, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	s.LogDebug(ctx, "Journal entries listed", slog.Int("count", len(entries)))
	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// UpdateJournalEntry replaces the header and lines of an entry and recalculates the
// accounts of both the old and the new lines.
func (s *journalService) UpdateJournalEntry(ctx context.Context, userID, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	existing, err := s.GetJournalEntry(ctx, userID, entryID)
	if err != nil {
		return nil, err
	}

	updated, err := entryFromRequest(userID, dto.CreateJournalEntryRequest(req))
	if err != nil {
		return nil, err
	}
	updated.EntryID = existing.EntryID
	updated.Source = existing.Source
	if err := s.validateEntry(ctx, updated); err != nil {
		s.LogWarn(ctx, "Rejected journal entry update", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	prepared := s.prepareEntry(updated)
	prepared.AuditFields = existing.AuditFields
	prepared.Touch(userID, s.now())

	if err := s.journalRepo.ReplaceEntry(ctx, prepared); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry %s: %w", entryID, err)
	}

	affected := append(existing.AccountIDs(), prepared.AccountIDs()...)
	if err := s.afterWrite(ctx, userID, affected); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", entryID))
	return &prepared, nil
}

// DeleteJournalEntry soft-deletes an entry. An entry produced by a sale invoice takes the
// invoice and the invoice's other entries with it.
func (s *journalService) DeleteJournalEntry(ctx context.Context, userID, entryID string) error {
	entry, err := s.GetJournalEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}

	switch entry.Source.Kind {
	case domain.SourceSaleInvoice:
		if s.saleInvoices != nil {
			return s.deleteWithSaleInvoice(ctx, userID, entry)
		}
		s.LogWarn(ctx, "Sale invoice repository not configured; deleting entry only", slog.String("entry_id", entryID))
	case domain.SourceManual, domain.SourcePurchaseInvoice, domain.SourceExpense, domain.SourcePayBill,
		domain.SourceReceivePayment, domain.SourceSupplier, domain.SourceOpeningBalance:
	}

	if err := s.journalRepo.SoftDeleteEntry(ctx, userID, entryID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if err := s.afterWrite(ctx, userID, entry.AccountIDs()); err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

func (s *journalService) deleteWithSaleInvoice(ctx context.Context, userID string, entry *domain.JournalEntry) error {
	invoiceID := entry.Source.ID
	if err := s.saleInvoices.DeleteSaleInvoice(ctx, userID, invoiceID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to delete sale invoice of journal entry", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete sale invoice %s: %w", invoiceID, err)
	}
	if err := s.Retract(ctx, userID, entry.Source); err != nil {
		return err
	}
	s.LogInfo(ctx, "Journal entry deleted with its sale invoice", slog.String("entry_id", entry.EntryID), slog.String("invoice_id", invoiceID))
	return nil
}
