package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	lineRepo    portsrepo.AccountLineReader
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, lineRepo portsrepo.AccountLineReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		lineRepo:    lineRepo,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("account name is required")
	}
	if domain.IsRestrictedAccountName(name) {
		return nil, fmt.Errorf("%w: account name %q is reserved", apperrors.ErrValidation, name)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if !req.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, req.Category)
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		next, err := s.accountRepo.NextAccountCode(ctx, userID, partyAccountCodePrefix)
		if err != nil {
			s.LogError(ctx, err, "Failed to generate account code")
			return nil, fmt.Errorf("failed to generate account code: %w", err)
		}
		code = next
	}

	account := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Code:        code,
		Name:        name,
		AccountType: req.AccountType,
		Category:    req.Category,
		Description: req.Description,
		AuditFields: domain.NewAuditFields(userID, s.now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("code", code))
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, userID, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs", slog.Int("count", len(accountIDs)))
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, categories ...domain.AccountCategory) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, categories...)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("account name is required")
		}
		if domain.IsRestrictedAccountName(name) {
			return nil, fmt.Errorf("%w: account name %q is reserved", apperrors.ErrValidation, name)
		}
		account.Name = name
		updated = true
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, *req.Category)
		}
		account.Category = *req.Category
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	account.Touch(userID, s.now())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount refuses to remove an account while journal lines still reference it.
func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID string) error {
	if _, err := s.GetAccountByID(ctx, userID, accountID); err != nil {
		return err
	}

	inUse, err := s.lineRepo.CountLinesForAccount(ctx, userID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count journal lines of account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: account is used by %d journal lines", apperrors.ErrConflict, inUse)
	}

	if err := s.accountRepo.DeleteAccount(ctx, userID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return nil
}
