package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

const supplierOpeningDescription = "Opening Balance - Supplier"

// supplierService manages suppliers and their payable accounts.
type supplierService struct {
	BaseService
	supplierRepo portsrepo.SupplierRepositoryFacade
	lineRepo     portsrepo.AccountLineReader
	accounts     chartOfAccounts
	journal      portssvc.JournalPoster
	balances     portssvc.BalanceRecalculatorSvc
}

// NewSupplierService creates a new supplier service.
func NewSupplierService(
	supplierRepo portsrepo.SupplierRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	lineRepo portsrepo.AccountLineReader,
	journal portssvc.JournalPoster,
	balances portssvc.BalanceRecalculatorSvc,
) portssvc.SupplierSvcFacade {
	svc := &supplierService{
		supplierRepo: supplierRepo,
		lineRepo:     lineRepo,
		journal:      journal,
		balances:     balances,
	}
	svc.accounts = newChartOfAccounts(accountRepo, svc.now)
	return svc
}

var _ portssvc.SupplierSvcFacade = (*supplierService)(nil)

func (s *supplierService) CreateSupplier(ctx context.Context, userID string, req dto.CreateSupplierRequest) (*domain.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("supplier name is required")
	}
	if req.OpeningBalance.IsNegative() {
		return nil, apperrors.NewValidationError("opening balance cannot be negative")
	}
	if err := accounting.ValidatePlaces("opening balance", req.OpeningBalance); err != nil {
		return nil, err
	}

	account, err := s.accounts.partyAccount(ctx, userID, name, domain.CategorySupplier)
	if err != nil {
		return nil, err
	}

	supplier := domain.Supplier{
		SupplierID:     uuid.NewString(),
		UserID:         userID,
		Name:           name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Notes:          req.Notes,
		SupplierType:   req.SupplierType,
		OpeningBalance: req.OpeningBalance,
		AccountID:      account.AccountID,
		AuditFields:    domain.NewAuditFields(userID, s.now()),
	}
	if err := s.supplierRepo.SaveSupplier(ctx, supplier); err != nil {
		s.LogError(ctx, err, "Failed to save supplier", slog.String("name", name))
		return nil, fmt.Errorf("failed to save supplier: %w", err)
	}

	if err := s.postOpeningBalance(ctx, &supplier); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Supplier created",
		slog.String("supplier_id", supplier.SupplierID),
		slog.String("account_id", supplier.AccountID))
	return &supplier, nil
}

// postOpeningBalance credits the supplier with what the business already owed it.
func (s *supplierService) postOpeningBalance(ctx context.Context, supplier *domain.Supplier) error {
	source := domain.SourceOf(domain.SourceSupplier, supplier.SupplierID)
	if !supplier.OpeningBalance.IsPositive() {
		return s.journal.Retract(ctx, supplier.UserID, source)
	}

	equity, err := s.accounts.openingBalanceEquity(ctx, supplier.UserID)
	if err != nil {
		return err
	}
	supplierID := supplier.SupplierID
	entry := domain.JournalEntry{
		Date:        supplier.CreatedAt.Truncate(24 * time.Hour),
		Description: supplierOpeningDescription,
		SupplierID:  &supplierID,
		Lines: []domain.JournalLine{
			domain.NewLine(equity.AccountID, domain.Debit, supplier.OpeningBalance),
			domain.NewLine(supplier.AccountID, domain.Credit, supplier.OpeningBalance),
		},
	}
	_, err = s.journal.Repost(ctx, supplier.UserID, source, entry)
	return err
}

func (s *supplierService) GetSupplier(ctx context.Context, userID, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.FindSupplierByID(ctx, userID, supplierID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find supplier", slog.String("supplier_id", supplierID))
		}
		return nil, fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

func (s *supplierService) ListSuppliers(ctx context.Context, userID, search string) ([]domain.Supplier, error) {
	suppliers, err := s.supplierRepo.ListSuppliers(ctx, userID, strings.TrimSpace(search))
	if err != nil {
		s.LogError(ctx, err, "Failed to list suppliers")
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	if suppliers == nil {
		return []domain.Supplier{}, nil
	}
	return suppliers, nil
}

// ResolveSupplier finds a supplier by id, or by name when no id is given. An unknown
// name creates a supplier with no opening balance.
func (s *supplierService) ResolveSupplier(ctx context.Context, userID, supplierID, name string) (*domain.Supplier, error) {
	if supplierID != "" {
		return s.GetSupplier(ctx, userID, supplierID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("supplier id or name is required")
	}

	supplier, err := s.supplierRepo.FindSupplierByName(ctx, userID, name)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find supplier %q: %w", name, err)
	}

	s.LogInfo(ctx, "Creating supplier from purchase", slog.String("name", name))
	return s.CreateSupplier(ctx, userID, dto.CreateSupplierRequest{Name: name})
}

func (s *supplierService) UpdateSupplier(ctx context.Context, userID, supplierID string, req dto.UpdateSupplierRequest) (*domain.Supplier, error) {
	supplier, err := s.GetSupplier(ctx, userID, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("supplier name is required")
		}
		supplier.Name = name
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Address != nil {
		supplier.Address = *req.Address
	}
	if req.Notes != nil {
		supplier.Notes = *req.Notes
	}
	if req.SupplierType != nil {
		supplier.SupplierType = *req.SupplierType
	}
	openingChanged := false
	if req.OpeningBalance != nil {
		if req.OpeningBalance.IsNegative() {
			return nil, apperrors.NewValidationError("opening balance cannot be negative")
		}
		if err := accounting.ValidatePlaces("opening balance", *req.OpeningBalance); err != nil {
			return nil, err
		}
		openingChanged = !req.OpeningBalance.Equal(supplier.OpeningBalance)
		supplier.OpeningBalance = *req.OpeningBalance
	}

	supplier.Touch(userID, s.now())
	if err := s.supplierRepo.UpdateSupplier(ctx, *supplier); err != nil {
		s.LogError(ctx, err, "Failed to update supplier", slog.String("supplier_id", supplierID))
		return nil, fmt.Errorf("failed to update supplier %s: %w", supplierID, err)
	}

	if openingChanged {
		if err := s.postOpeningBalance(ctx, supplier); err != nil {
			return nil, err
		}
	}

	s.LogInfo(ctx, "Supplier updated", slog.String("supplier_id", supplierID))
	return supplier, nil
}

// DeleteSupplier soft-deletes a supplier and retracts its opening balance. A supplier
// whose account carries other postings cannot be deleted.
func (s *supplierService) DeleteSupplier(ctx context.Context, userID, supplierID string) error {
	supplier, err := s.GetSupplier(ctx, userID, supplierID)
	if err != nil {
		return err
	}

	inUse, err := s.lineRepo.CountLinesForAccount(ctx, userID, supplier.AccountID)
	if err != nil {
		return fmt.Errorf("failed to check supplier postings: %w", err)
	}
	if supplier.OpeningBalance.IsPositive() {
		inUse--
	}
	if inUse > 0 {
		return fmt.Errorf("%w: supplier has %d journal postings", apperrors.ErrConflict, inUse)
	}

	if err := s.supplierRepo.MarkSupplierDeleted(ctx, userID, supplierID, userID, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to delete supplier", slog.String("supplier_id", supplierID))
		return fmt.Errorf("failed to delete supplier %s: %w", supplierID, err)
	}
	if err := s.journal.Retract(ctx, userID, domain.SourceOf(domain.SourceSupplier, supplierID)); err != nil {
		return err
	}

	s.LogInfo(ctx, "Supplier deleted", slog.String("supplier_id", supplierID))
	return nil
}

func (s *supplierService) GetSupplierBalance(ctx context.Context, userID, supplierID string) (decimal.Decimal, error) {
	supplier, err := s.GetSupplier(ctx, userID, supplierID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balances.RecalculateAccountBalance(ctx, userID, supplier.AccountID)
}
