package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
)

const partyAccountCodePrefix = "ACC"

// chartOfAccounts resolves the accounts posting flows write to: the well-known
// system accounts and the accounts linked to customers and suppliers.
type chartOfAccounts struct {
	BaseService
	repo portsrepo.AccountRepositoryFacade
}

func newChartOfAccounts(repo portsrepo.AccountRepositoryFacade, now func() time.Time) chartOfAccounts {
	return chartOfAccounts{BaseService: BaseService{Now: now}, repo: repo}
}

// wellKnown finds a system account by name and type. Its absence is a configuration error.
func (c chartOfAccounts) wellKnown(ctx context.Context, userID, name string, accountType domain.AccountType) (*domain.Account, error) {
	acc, err := c.repo.FindAccountByNameAndType(ctx, userID, name, accountType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewConfigurationError(fmt.Sprintf("%s account of type %s is not set up", name, accountType))
		}
		return nil, fmt.Errorf("failed to find %s account: %w", name, err)
	}
	return acc, nil
}

func (c chartOfAccounts) sales(ctx context.Context, userID string) (*domain.Account, error) {
	return c.wellKnown(ctx, userID, domain.SalesAccountName, domain.Income)
}

func (c chartOfAccounts) purchases(ctx context.Context, userID string) (*domain.Account, error) {
	return c.wellKnown(ctx, userID, domain.PurchasesAccountName, domain.ExpenseAccount)
}

// openingBalanceEquity returns the equity account opening balances are posted against,
// creating it on first use.
func (c chartOfAccounts) openingBalanceEquity(ctx context.Context, userID string) (*domain.Account, error) {
	acc, err := c.repo.FindAccountByNameAndType(ctx, userID, domain.OpeningBalanceAccountName, domain.Equity)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find opening balance account: %w", err)
	}
	created, err := c.create(ctx, userID, domain.OpeningBalanceAccountName, domain.Equity, domain.CategoryOther)
	if err != nil {
		return nil, err
	}
	c.LogInfo(ctx, "Created opening balance equity account", slog.String("account_id", created.AccountID))
	return created, nil
}

// partyAccount creates the receivable or payable account linked to a new customer or supplier.
func (c chartOfAccounts) partyAccount(ctx context.Context, userID, partyName string, category domain.AccountCategory) (*domain.Account, error) {
	accountType := domain.Asset
	if category == domain.CategorySupplier {
		accountType = domain.Liability
	}
	return c.create(ctx, userID, partyName, accountType, category)
}

func (c chartOfAccounts) create(ctx context.Context, userID, name string, accountType domain.AccountType, category domain.AccountCategory) (*domain.Account, error) {
	code, err := c.repo.NextAccountCode(ctx, userID, partyAccountCodePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to generate account code: %w", err)
	}
	acc := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      userID,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Category:    category,
		AuditFields: domain.NewAuditFields(userID, c.now()),
	}
	if err := c.repo.SaveAccount(ctx, acc); err != nil {
		c.LogError(ctx, err, "Failed to create account", slog.String("name", name))
		return nil, fmt.Errorf("failed to create account %q: %w", name, err)
	}
	return &acc, nil
}

// require loads an account the caller referenced, such as a payment account.
func (c chartOfAccounts) require(ctx context.Context, userID, accountID, role string) (*domain.Account, error) {
	acc, err := c.repo.FindAccountByID(ctx, userID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(role + " account")
		}
		return nil, fmt.Errorf("failed to find %s account: %w", role, err)
	}
	return acc, nil
}
