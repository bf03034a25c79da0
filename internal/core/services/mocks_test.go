package services_test

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
)

var (
	_ portssvc.ReportCache              = (*MockReportCache)(nil)
	_ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)
	_ portsrepo.AccountLineReader       = (*MockAccountLineReader)(nil)
)

// --- Mock ReportCache ---
type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Get copies the first return argument, when non-nil, into dest as a cache hit.
func (m *MockReportCache) Get(ctx context.Context, userID, name, params string, dest any) (bool, error) {
	args := m.Called(ctx, userID, name, params, dest)
	if cached := args.Get(0); cached != nil {
		raw, err := json.Marshal(cached)
		if err != nil {
			return false, err
		}
		if err := json.Unmarshal(raw, dest); err != nil {
			return false, err
		}
		return true, args.Error(1)
	}
	return false, args.Error(1)
}

func (m *MockReportCache) Set(ctx context.Context, userID, name, params string, value any) error {
	args := m.Called(ctx, userID, name, params, value)
	return args.Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, userID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNameAndType(ctx context.Context, userID, name string, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, userID, name, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, userID string, categories ...domain.AccountCategory) ([]domain.Account, error) {
	args := m.Called(ctx, userID, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) NextAccountCode(ctx context.Context, userID, prefix string) (string, error) {
	args := m.Called(ctx, userID, prefix)
	return args.String(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, userID, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal, updatedAt time.Time) error {
	args := m.Called(ctx, userID, accountID, balance, updatedAt)
	return args.Error(0)
}

// MockAccountLineReader is a mock type for the AccountLineReader interface
type MockAccountLineReader struct {
	mock.Mock
}

func (m *MockAccountLineReader) SumAccountLines(ctx context.Context, userID, accountID string, before *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, accountID, before)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountLineReader) ListAccountLines(ctx context.Context, userID, accountID string, query domain.LedgerQuery) ([]domain.AccountLine, error) {
	args := m.Called(ctx, userID, accountID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountLine), args.Error(1)
}

func (m *MockAccountLineReader) ListTransactionsByAccountID(ctx context.Context, userID, accountID string, limit int, nextToken *string) ([]domain.AccountLine, *string, error) {
	args := m.Called(ctx, userID, accountID, limit, nextToken)
	var lines []domain.AccountLine
	if args.Get(0) != nil {
		lines = args.Get(0).([]domain.AccountLine)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return lines, next, args.Error(2)
}

func (m *MockAccountLineReader) CountLinesForAccount(ctx context.Context, userID, accountID string) (int, error) {
	args := m.Called(ctx, userID, accountID)
	return args.Int(0), args.Error(1)
}
