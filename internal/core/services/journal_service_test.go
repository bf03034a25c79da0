package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

type JournalServiceTestSuite struct {
	suite.Suite
	books   *books
	cash    domain.Account
	bank    domain.Account
	capital domain.Account
	sales   domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.books = newBooks(suite.T())
	suite.cash = suite.books.account(suite.T(), "Cash", domain.Asset, domain.CategoryCash)
	suite.bank = suite.books.account(suite.T(), "Bank", domain.Asset, domain.CategoryBank)
	suite.capital = suite.books.account(suite.T(), "Owner Capital", domain.Equity, domain.CategoryOther)
	suite.sales = suite.books.account(suite.T(), domain.SalesAccountName, domain.Income, domain.CategoryOther)
}

func (suite *JournalServiceTestSuite) TestCreate_BalancedEntryUpdatesBalances() {
	b := suite.books

	entry := b.post(suite.T(), "2024-03-01", debit(suite.cash.AccountID, "250.50"), credit(suite.capital.AccountID, "250.50"))

	suite.NotEmpty(entry.EntryID)
	suite.Equal(domain.ManualSource(), entry.Source)
	suite.Equal(b.userID, entry.CreatedBy)
	suite.Require().Len(entry.Lines, 2)
	for i, l := range entry.Lines {
		suite.Equal(i, l.Position)
		suite.Equal(entry.EntryID, l.EntryID)
	}
	b.requireBalance(suite.T(), suite.cash.AccountID, "250.50")
	b.requireBalance(suite.T(), suite.capital.AccountID, "-250.50")
}

func (suite *JournalServiceTestSuite) TestCreate_UnbalancedEntryIsRejected() {
	b := suite.books

	_, err := b.svc.Journal.CreateJournalEntry(b.ctx, b.userID,
		manualEntry("2024-03-01", debit(suite.cash.AccountID, "100"), credit(suite.capital.AccountID, "90")))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(b.store.entries)
	suite.Zero(b.store.balanceWrites)
}

func (suite *JournalServiceTestSuite) TestCreate_UnknownAccountIsRejected() {
	b := suite.books

	_, err := b.svc.Journal.CreateJournalEntry(b.ctx, b.userID,
		manualEntry("2024-03-01", debit(suite.cash.AccountID, "10"), credit(uuid.NewString(), "10")))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(b.store.entries)
}

func (suite *JournalServiceTestSuite) TestCreate_OtherUsersAccountIsRejected() {
	b := suite.books
	other := newBooks(suite.T())
	foreign := other.account(suite.T(), "Their Cash", domain.Asset, domain.CategoryCash)
	b.store.accounts[foreign.AccountID] = foreign

	_, err := b.svc.Journal.CreateJournalEntry(b.ctx, b.userID,
		manualEntry("2024-03-01", debit(suite.cash.AccountID, "10"), credit(foreign.AccountID, "10")))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestCreate_BadDateIsRejected() {
	b := suite.books

	_, err := b.svc.Journal.CreateJournalEntry(b.ctx, b.userID,
		manualEntry("01/03/2024", debit(suite.cash.AccountID, "10"), credit(suite.capital.AccountID, "10")))

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestUpdate_RecalculatesOldAndNewAccounts() {
	b := suite.books
	b.post(suite.T(), "2024-03-01", debit(suite.bank.AccountID, "500"), credit(suite.capital.AccountID, "500"))
	entry := b.post(suite.T(), "2024-03-02", debit(suite.cash.AccountID, "100"), credit(suite.bank.AccountID, "100"))
	b.requireBalance(suite.T(), suite.bank.AccountID, "400")

	updated, err := b.svc.Journal.UpdateJournalEntry(b.ctx, b.userID, entry.EntryID, dto.UpdateJournalEntryRequest(
		manualEntry("2024-03-02", debit(suite.cash.AccountID, "60"), credit(suite.capital.AccountID, "60"))))

	suite.Require().NoError(err)
	suite.Equal(entry.EntryID, updated.EntryID)
	suite.Equal(entry.CreatedAt, updated.CreatedAt)
	b.requireBalance(suite.T(), suite.cash.AccountID, "60")
	b.requireBalance(suite.T(), suite.bank.AccountID, "500")
	b.requireBalance(suite.T(), suite.capital.AccountID, "-560")
}

func (suite *JournalServiceTestSuite) TestUpdate_RejectedLinesLeaveEntryUntouched() {
	b := suite.books
	entry := b.post(suite.T(), "2024-03-02", debit(suite.cash.AccountID, "100"), credit(suite.bank.AccountID, "100"))

	_, err := b.svc.Journal.UpdateJournalEntry(b.ctx, b.userID, entry.EntryID, dto.UpdateJournalEntryRequest(
		manualEntry("2024-03-02", debit(suite.cash.AccountID, "60"), credit(suite.bank.AccountID, "50"))))

	suite.ErrorIs(err, apperrors.ErrValidation)
	stored, err := b.svc.Journal.GetJournalEntry(b.ctx, b.userID, entry.EntryID)
	suite.Require().NoError(err)
	suite.True(amount("100").Equal(stored.Lines[0].Amount))
	b.requireBalance(suite.T(), suite.cash.AccountID, "100")
}

func (suite *JournalServiceTestSuite) TestRepost_ReplacesEntriesOfSource() {
	b := suite.books
	source := domain.SourceOf(domain.SourceExpense, uuid.NewString())
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := b.svc.Journal.Repost(b.ctx, b.userID, source, domain.JournalEntry{
		Date: date,
		Lines: []domain.JournalLine{
			domain.NewLine(suite.capital.AccountID, domain.Debit, amount("80")),
			domain.NewLine(suite.cash.AccountID, domain.Credit, amount("80")),
		},
	})
	suite.Require().NoError(err)

	_, err = b.svc.Journal.Repost(b.ctx, b.userID, source, domain.JournalEntry{
		Date: date,
		Lines: []domain.JournalLine{
			domain.NewLine(suite.capital.AccountID, domain.Debit, amount("30")),
			domain.NewLine(suite.bank.AccountID, domain.Credit, amount("30")),
		},
	})
	suite.Require().NoError(err)

	suite.Len(b.store.liveEntries(source), 1)
	b.requireBalance(suite.T(), suite.cash.AccountID, "0")
	b.requireBalance(suite.T(), suite.bank.AccountID, "-30")
	b.requireBalance(suite.T(), suite.capital.AccountID, "30")
}

func (suite *JournalServiceTestSuite) TestRepost_RejectedSetKeepsPreviousEntries() {
	b := suite.books
	source := domain.SourceOf(domain.SourceExpense, uuid.NewString())
	date := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := b.svc.Journal.Repost(b.ctx, b.userID, source, domain.JournalEntry{
		Date: date,
		Lines: []domain.JournalLine{
			domain.NewLine(suite.capital.AccountID, domain.Debit, amount("80")),
			domain.NewLine(suite.cash.AccountID, domain.Credit, amount("80")),
		},
	})
	suite.Require().NoError(err)

	_, err = b.svc.Journal.Repost(b.ctx, b.userID, source, domain.JournalEntry{
		Date: date,
		Lines: []domain.JournalLine{
			domain.NewLine(suite.capital.AccountID, domain.Debit, amount("80")),
			domain.NewLine(suite.cash.AccountID, domain.Credit, amount("79.99")),
		},
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Len(b.store.liveEntries(source), 1)
	b.requireBalance(suite.T(), suite.cash.AccountID, "-80")
}

func (suite *JournalServiceTestSuite) TestRepost_ManualSourceIsRejected() {
	b := suite.books

	_, err := b.svc.Journal.Repost(b.ctx, b.userID, domain.ManualSource())

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *JournalServiceTestSuite) TestRetract_SoftDeletesAndRecalculates() {
	b := suite.books
	source := domain.SourceOf(domain.SourcePayBill, uuid.NewString())
	_, err := b.svc.Journal.Repost(b.ctx, b.userID, source, domain.JournalEntry{
		Date: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Lines: []domain.JournalLine{
			domain.NewLine(suite.capital.AccountID, domain.Debit, amount("15")),
			domain.NewLine(suite.cash.AccountID, domain.Credit, amount("15")),
		},
	})
	suite.Require().NoError(err)

	suite.Require().NoError(b.svc.Journal.Retract(b.ctx, b.userID, source))
	suite.Require().NoError(b.svc.Journal.Retract(b.ctx, b.userID, source), "retracting twice is a no-op")

	suite.Empty(b.store.liveEntries(source))
	b.requireBalance(suite.T(), suite.cash.AccountID, "0")
}

func (suite *JournalServiceTestSuite) TestDeleteAccount_PurgesSoftDeletedEntries() {
	b := suite.books
	petty := b.account(suite.T(), "Petty Cash", domain.Asset, domain.CategoryCash)
	deleted := b.post(suite.T(), "2024-03-06", debit(petty.AccountID, "40"), credit(suite.capital.AccountID, "40"))
	suite.Require().NoError(b.svc.Journal.DeleteJournalEntry(b.ctx, b.userID, deleted.EntryID))
	live := b.post(suite.T(), "2024-03-07", debit(suite.cash.AccountID, "10"), credit(suite.capital.AccountID, "10"))

	suite.Require().NoError(b.svc.Account.DeleteAccount(b.ctx, b.userID, petty.AccountID))

	suite.NotContains(b.store.accounts, petty.AccountID)
	suite.NotContains(b.store.entries, deleted.EntryID)
	suite.Contains(b.store.entries, live.EntryID)
	b.requireBalance(suite.T(), suite.capital.AccountID, "-10")
}

func (suite *JournalServiceTestSuite) TestDeleteAccount_LiveEntryBlocks() {
	b := suite.books
	b.post(suite.T(), "2024-03-06", debit(suite.bank.AccountID, "40"), credit(suite.capital.AccountID, "40"))

	err := b.svc.Account.DeleteAccount(b.ctx, b.userID, suite.bank.AccountID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(b.store.accounts, suite.bank.AccountID)
}

func (suite *JournalServiceTestSuite) TestDelete_SaleInvoiceEntryTakesInvoiceWithIt() {
	b := suite.books
	customer, err := b.svc.Customer.CreateCustomer(b.ctx, b.userID, dto.CreateCustomerRequest{Name: "Acme"})
	suite.Require().NoError(err)
	paymentAccount := suite.cash.AccountID
	invoice, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, dto.SaleInvoiceRequest{
		CustomerID:       customer.CustomerID,
		Date:             "2024-03-10",
		TotalAmount:      amount("300"),
		PaidAmount:       amount("100"),
		PaymentAccountID: &paymentAccount,
	})
	suite.Require().NoError(err)
	source := domain.SourceOf(domain.SourceSaleInvoice, invoice.InvoiceID)
	entries := b.store.liveEntries(source)
	suite.Require().Len(entries, 1)

	suite.Require().NoError(b.svc.Journal.DeleteJournalEntry(b.ctx, b.userID, entries[0].EntryID))

	_, err = b.svc.SaleInvoice.GetSaleInvoice(b.ctx, b.userID, invoice.InvoiceID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(b.store.liveEntries(source))
	b.requireBalance(suite.T(), customer.AccountID, "0")
	b.requireBalance(suite.T(), suite.cash.AccountID, "0")
	b.requireBalance(suite.T(), suite.sales.AccountID, "0")
}

func (suite *JournalServiceTestSuite) TestRecalculationFailure_EntryStaysAndHeals() {
	b := suite.books
	b.store.setBalanceErr = errStoreDown

	_, err := b.svc.Journal.CreateJournalEntry(b.ctx, b.userID,
		manualEntry("2024-03-01", debit(suite.cash.AccountID, "10"), credit(suite.capital.AccountID, "10")))

	suite.Require().Error(err)
	suite.ErrorIs(err, errStoreDown)
	suite.Len(b.store.entries, 1, "the journal write is not rolled back")

	b.store.setBalanceErr = nil
	suite.True(b.store.balance(suite.cash.AccountID).IsZero(), "cache is stale until the next recalculation")
	_, err = b.svc.Balance.RecalculateAllUserAccounts(b.ctx, b.userID)
	suite.Require().NoError(err)
	b.requireBalance(suite.T(), suite.cash.AccountID, "10")
}

func (suite *JournalServiceTestSuite) TestList_FiltersBySource() {
	b := suite.books
	b.post(suite.T(), "2024-03-01", debit(suite.cash.AccountID, "10"), credit(suite.capital.AccountID, "10"))
	_, err := b.svc.Journal.Repost(b.ctx, b.userID, domain.SourceOf(domain.SourceExpense, uuid.NewString()), domain.JournalEntry{
		Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Lines: []domain.JournalLine{
			domain.NewLine(suite.capital.AccountID, domain.Debit, amount("4")),
			domain.NewLine(suite.cash.AccountID, domain.Credit, amount("4")),
		},
	})
	suite.Require().NoError(err)

	resp, err := b.svc.Journal.ListJournalEntries(b.ctx, b.userID, dto.ListJournalEntriesParams{Limit: 20, Source: "expense"})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Entries, 1)
	suite.Equal(domain.SourceExpense, resp.Entries[0].Source.Kind)
	suite.True(amount("4").Equal(resp.Entries[0].Amount))

	_, err = b.svc.Journal.ListJournalEntries(b.ctx, b.userID, dto.ListJournalEntriesParams{Limit: 20, Source: "bogus"})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func TestJournalService_InvalidatesReportCache(t *testing.T) {
	b := newBooks(t)
	cash := b.account(t, "Cash", domain.Asset, domain.CategoryCash)
	capital := b.account(t, "Capital Account", domain.Equity, domain.CategoryOther)
	cache := new(MockReportCache)
	cache.On("Invalidate", mock.Anything, b.userID).Return(errors.New("redis down")).Once()
	journal := services.NewJournalService(b.store, b.store, b.svc.Balance, services.WithReportCache(cache))

	entry, err := journal.CreateJournalEntry(b.ctx, b.userID,
		manualEntry("2024-03-01", debit(cash.AccountID, "10"), credit(capital.AccountID, "10")))

	require.NoError(t, err, "cache failures must not fail the write")
	require.NotNil(t, entry)
	cache.AssertExpectations(t)
}
