package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
// Every method is scoped to the owning user.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts keyed by account id.
	// Ids that do not exist for the user are absent from the map.
	FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByNameAndType looks up a well-known account such as "sales".
	// The name comparison is case-insensitive.
	FindAccountByNameAndType(ctx context.Context, userID, name string, accountType domain.AccountType) (*domain.Account, error)

	// ListAccounts retrieves the user's accounts ordered by code, optionally filtered by category.
	ListAccounts(ctx context.Context, userID string, categories ...domain.AccountCategory) ([]domain.Account, error)

	// NextAccountCode returns the next free code of the form <prefix>-NNNN for the user.
	NextAccountCode(ctx context.Context, userID, prefix string) (string, error)
}

// AccountWriter defines write operations for account data.
// None of them touch the cached balance.
type AccountWriter interface {
	// SaveAccount persists a new account with a zero balance.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates descriptive fields of an account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account that no journal line references.
	DeleteAccount(ctx context.Context, userID, accountID string) error
}

// AccountBalanceWriter is the only path that writes the cached balance column.
type AccountBalanceWriter interface {
	// SetAccountBalance overwrites the cached balance of an account.
	SetAccountBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal, updatedAt time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceWriter
}
