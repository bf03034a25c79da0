package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
)

// books wires the real services onto an in-memory store for one user.
type books struct {
	ctx    context.Context
	store  *memStore
	svc    *portssvc.ServiceContainer
	userID string
}

func newBooks(t *testing.T) *books {
	t.Helper()
	store := newMemStore()
	repos := portsrepo.RepositoryProvider{
		AccountRepo:         store,
		JournalRepo:         store,
		CustomerRepo:        store,
		SupplierRepo:        store,
		SaleInvoiceRepo:     store,
		PurchaseInvoiceRepo: store,
		ExpenseRepo:         store,
		ReceivePaymentRepo:  store,
		PayBillRepo:         store,
	}
	return &books{
		ctx:    context.Background(),
		store:  store,
		svc:    services.NewServiceContainer(&config.Config{RecalcConcurrency: 2}, repos),
		userID: uuid.NewString(),
	}
}

// account stores an account directly, bypassing the restricted-name checks.
func (b *books) account(t *testing.T, name string, accountType domain.AccountType, category domain.AccountCategory) domain.Account {
	t.Helper()
	code, err := b.store.NextAccountCode(b.ctx, b.userID, "T")
	require.NoError(t, err)
	acc := domain.Account{
		AccountID:   uuid.NewString(),
		UserID:      b.userID,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Category:    category,
		AuditFields: domain.NewAuditFields(b.userID, time.Now().UTC()),
	}
	require.NoError(t, b.store.SaveAccount(b.ctx, acc))
	return acc
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debit(accountID, amt string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Type: domain.Debit, Amount: amount(amt)}
}

func credit(accountID, amt string) dto.JournalLineRequest {
	return dto.JournalLineRequest{AccountID: accountID, Type: domain.Credit, Amount: amount(amt)}
}

func manualEntry(date string, lines ...dto.JournalLineRequest) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        date,
		Description: "manual entry",
		Lines:       lines,
	}
}

// post creates a manual entry and fails the test on error.
func (b *books) post(t *testing.T, date string, lines ...dto.JournalLineRequest) *domain.JournalEntry {
	t.Helper()
	entry, err := b.svc.Journal.CreateJournalEntry(b.ctx, b.userID, manualEntry(date, lines...))
	require.NoError(t, err)
	return entry
}

// requireBalance checks both the cached balance and a fresh recalculation.
func (b *books) requireBalance(t *testing.T, accountID, want string) {
	t.Helper()
	require.True(t, amount(want).Equal(b.store.balance(accountID)),
		"cached balance of %s: want %s, got %s", accountID, want, b.store.balance(accountID))
	recalculated, err := b.svc.Balance.RecalculateAccountBalance(b.ctx, b.userID, accountID)
	require.NoError(t, err)
	require.True(t, amount(want).Equal(recalculated),
		"recalculated balance of %s: want %s, got %s", accountID, want, recalculated)
}
