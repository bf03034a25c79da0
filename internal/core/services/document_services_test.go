package services_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

type DocumentServicesTestSuite struct {
	suite.Suite
	books     *books
	cash      domain.Account
	bank      domain.Account
	sales     domain.Account
	purchases domain.Account
	rent      domain.Account
	customer  *domain.Customer
}

func (suite *DocumentServicesTestSuite) SetupTest() {
	t := suite.T()
	suite.books = newBooks(t)
	b := suite.books
	suite.cash = b.account(t, "Cash", domain.Asset, domain.CategoryCash)
	suite.bank = b.account(t, "Bank", domain.Asset, domain.CategoryBank)
	suite.sales = b.account(t, domain.SalesAccountName, domain.Income, domain.CategoryOther)
	suite.purchases = b.account(t, domain.PurchasesAccountName, domain.ExpenseAccount, domain.CategoryOther)
	suite.rent = b.account(t, "Rent", domain.ExpenseAccount, domain.CategoryOther)

	customer, err := b.svc.Customer.CreateCustomer(b.ctx, b.userID, dto.CreateCustomerRequest{Name: "Acme"})
	suite.Require().NoError(err)
	suite.customer = customer
}

func (suite *DocumentServicesTestSuite) saleRequest(total, paid string) dto.SaleInvoiceRequest {
	cash := suite.cash.AccountID
	return dto.SaleInvoiceRequest{
		CustomerID:       suite.customer.CustomerID,
		Date:             "2024-05-01",
		TotalAmount:      amount(total),
		PaidAmount:       amount(paid),
		PaymentAccountID: &cash,
	}
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_PostsOneEntry() {
	b := suite.books

	invoice, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("1000", "400"))

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePartial, invoice.Status)
	suite.Equal("1001", invoice.BillNo)
	entries := b.store.liveEntries(domain.SourceOf(domain.SourceSaleInvoice, invoice.InvoiceID))
	suite.Require().Len(entries, 1)
	suite.Equal("Sale Invoice", entries[0].Description)
	suite.Equal("cash", entries[0].PaymentType)
	suite.Len(entries[0].Lines, 4)
	b.requireBalance(suite.T(), suite.customer.AccountID, "600")
	b.requireBalance(suite.T(), suite.cash.AccountID, "400")
	b.requireBalance(suite.T(), suite.sales.AccountID, "-1000")
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_UnpaidSkipsPaymentLines() {
	b := suite.books
	req := suite.saleRequest("250", "0")
	req.PaymentAccountID = nil

	invoice, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, req)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceUnpaid, invoice.Status)
	entries := b.store.liveEntries(domain.SourceOf(domain.SourceSaleInvoice, invoice.InvoiceID))
	suite.Require().Len(entries, 1)
	suite.Len(entries[0].Lines, 2)
	b.requireBalance(suite.T(), suite.customer.AccountID, "250")
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_Validation() {
	b := suite.books

	_, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("100", "150"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	req := suite.saleRequest("100", "50")
	req.PaymentAccountID = nil
	_, err = b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, req)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("0", "0"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Empty(b.store.sales)
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_MissingSalesAccount() {
	b := suite.books
	delete(b.store.accounts, suite.sales.AccountID)

	_, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("100", "0"))

	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.Empty(b.store.sales)
	suite.Empty(b.store.entries)
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_RecordPayment() {
	b := suite.books
	invoice, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("1000", "400"))
	suite.Require().NoError(err)
	source := domain.SourceOf(domain.SourceSaleInvoice, invoice.InvoiceID)

	paid, err := b.svc.SaleInvoice.RecordPayment(b.ctx, b.userID, invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount:    amount("250"),
		AccountID: suite.bank.AccountID,
		Date:      "2024-05-10",
	})

	suite.Require().NoError(err)
	suite.True(amount("650").Equal(paid.PaidAmount))
	suite.Equal(domain.InvoicePartial, paid.Status)
	suite.Len(b.store.liveEntries(source), 2)
	b.requireBalance(suite.T(), suite.customer.AccountID, "350")
	b.requireBalance(suite.T(), suite.bank.AccountID, "250")

	_, err = b.svc.SaleInvoice.RecordPayment(b.ctx, b.userID, invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount:    amount("350.01"),
		AccountID: suite.bank.AccountID,
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	settled, err := b.svc.SaleInvoice.RecordPayment(b.ctx, b.userID, invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount:    amount("350"),
		AccountID: suite.bank.AccountID,
	})
	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePaid, settled.Status)
	b.requireBalance(suite.T(), suite.customer.AccountID, "0")
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_RecordPaymentTime() {
	b := suite.books
	invoice, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("1000", "0"))
	suite.Require().NoError(err)
	source := domain.SourceOf(domain.SourceSaleInvoice, invoice.InvoiceID)

	_, err = b.svc.SaleInvoice.RecordPayment(b.ctx, b.userID, invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount:    amount("100"),
		AccountID: suite.cash.AccountID,
		Date:      "2024-05-10",
	})
	suite.Require().NoError(err)
	_, err = b.svc.SaleInvoice.RecordPayment(b.ctx, b.userID, invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount:    amount("200"),
		AccountID: suite.cash.AccountID,
		Date:      "2024-05-11",
		Time:      "14:30",
	})
	suite.Require().NoError(err)

	times := map[string]string{}
	for _, e := range b.store.liveEntries(source) {
		if e.Description == "Additional Payment" {
			times[e.Date.Format("2006-01-02")] = e.Time
		}
	}
	suite.Equal(map[string]string{"2024-05-10": "", "2024-05-11": "14:30"}, times)
}

func (suite *DocumentServicesTestSuite) TestDocuments_SubCentAmountsWriteNothing() {
	b := suite.books

	_, err := b.svc.Expense.CreateExpense(b.ctx, b.userID, suite.expenseRequest("10.125",
		dto.ExpensePaymentRequest{AccountID: suite.cash.AccountID, Amount: amount("10.125")},
	))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("100.001", "0"))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = b.svc.ReceivePayment.CreateReceivePayment(b.ctx, b.userID, dto.ReceivePaymentRequest{
		CustomerID: suite.customer.CustomerID,
		AccountID:  suite.bank.AccountID,
		Amount:     amount("0.001"),
		Date:       "2024-05-04",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.Empty(b.store.expenses)
	suite.Empty(b.store.sales)
	suite.Empty(b.store.receipts)
	suite.Empty(b.store.entries)
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_UpdateConsolidatesPayments() {
	b := suite.books
	invoice, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("1000", "400"))
	suite.Require().NoError(err)
	_, err = b.svc.SaleInvoice.RecordPayment(b.ctx, b.userID, invoice.InvoiceID, dto.RecordPaymentRequest{
		Amount:    amount("100"),
		AccountID: suite.cash.AccountID,
	})
	suite.Require().NoError(err)

	updated, err := b.svc.SaleInvoice.UpdateSaleInvoice(b.ctx, b.userID, invoice.InvoiceID, suite.saleRequest("1200", "500"))

	suite.Require().NoError(err)
	suite.Equal(invoice.BillNo, updated.BillNo)
	suite.Len(b.store.liveEntries(domain.SourceOf(domain.SourceSaleInvoice, invoice.InvoiceID)), 1)
	b.requireBalance(suite.T(), suite.customer.AccountID, "700")
	b.requireBalance(suite.T(), suite.cash.AccountID, "500")
	b.requireBalance(suite.T(), suite.sales.AccountID, "-1200")
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_Delete() {
	b := suite.books
	invoice, err := b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, suite.saleRequest("1000", "400"))
	suite.Require().NoError(err)

	suite.Require().NoError(b.svc.SaleInvoice.DeleteSaleInvoice(b.ctx, b.userID, invoice.InvoiceID))

	suite.Empty(b.store.sales)
	b.requireBalance(suite.T(), suite.customer.AccountID, "0")
	b.requireBalance(suite.T(), suite.cash.AccountID, "0")
	b.requireBalance(suite.T(), suite.sales.AccountID, "0")
}

func (suite *DocumentServicesTestSuite) TestSaleInvoice_NextBillNo() {
	b := suite.books
	next, err := b.svc.SaleInvoice.GetNextBillNo(b.ctx, b.userID)
	suite.Require().NoError(err)
	suite.Equal("1001", next)

	req := suite.saleRequest("10", "0")
	req.PaymentAccountID = nil
	req.BillNo = "2040"
	_, err = b.svc.SaleInvoice.CreateSaleInvoice(b.ctx, b.userID, req)
	suite.Require().NoError(err)

	next, err = b.svc.SaleInvoice.GetNextBillNo(b.ctx, b.userID)
	suite.Require().NoError(err)
	suite.Equal("2041", next)
}

func (suite *DocumentServicesTestSuite) TestPurchaseInvoice_ResolvesSupplierByName() {
	b := suite.books
	bank := suite.bank.AccountID

	invoice, err := b.svc.PurchaseInvoice.CreatePurchaseInvoice(b.ctx, b.userID, dto.PurchaseInvoiceRequest{
		SupplierName:     "Ink Ltd",
		BillNo:           "P-7",
		Date:             "2024-05-02",
		GrandTotal:       amount("800"),
		PaidAmount:       amount("300"),
		PaymentAccountID: &bank,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.InvoicePartial, invoice.Status)
	supplier, err := b.svc.Supplier.GetSupplier(b.ctx, b.userID, invoice.SupplierID)
	suite.Require().NoError(err)
	suite.Equal("Ink Ltd", supplier.Name)

	entries := b.store.liveEntries(domain.SourceOf(domain.SourcePurchaseInvoice, invoice.InvoiceID))
	suite.Require().Len(entries, 1)
	suite.Equal("Purchase Invoice #P-7", entries[0].Description)
	b.requireBalance(suite.T(), suite.purchases.AccountID, "800")
	b.requireBalance(suite.T(), supplier.AccountID, "-500")
	b.requireBalance(suite.T(), suite.bank.AccountID, "-300")
}

func (suite *DocumentServicesTestSuite) TestPurchaseInvoice_UpdateAndDelete() {
	b := suite.books
	bank := suite.bank.AccountID
	invoice, err := b.svc.PurchaseInvoice.CreatePurchaseInvoice(b.ctx, b.userID, dto.PurchaseInvoiceRequest{
		SupplierName:     "Ink Ltd",
		Date:             "2024-05-02",
		GrandTotal:       amount("800"),
		PaidAmount:       amount("300"),
		PaymentAccountID: &bank,
	})
	suite.Require().NoError(err)
	supplier, err := b.svc.Supplier.GetSupplier(b.ctx, b.userID, invoice.SupplierID)
	suite.Require().NoError(err)

	_, err = b.svc.PurchaseInvoice.UpdatePurchaseInvoice(b.ctx, b.userID, invoice.InvoiceID, dto.PurchaseInvoiceRequest{
		SupplierID: supplier.SupplierID,
		Date:       "2024-05-02",
		GrandTotal: amount("900"),
	})
	suite.Require().NoError(err)
	b.requireBalance(suite.T(), supplier.AccountID, "-900")
	b.requireBalance(suite.T(), suite.bank.AccountID, "0")

	suite.Require().NoError(b.svc.PurchaseInvoice.DeletePurchaseInvoice(b.ctx, b.userID, invoice.InvoiceID))
	_, err = b.svc.PurchaseInvoice.GetPurchaseInvoice(b.ctx, b.userID, invoice.InvoiceID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	b.requireBalance(suite.T(), supplier.AccountID, "0")
	b.requireBalance(suite.T(), suite.purchases.AccountID, "0")
}

func (suite *DocumentServicesTestSuite) TestPurchaseInvoice_MissingPurchasesAccount() {
	b := suite.books
	delete(b.store.accounts, suite.purchases.AccountID)
	accountsBefore := len(b.store.accounts)

	_, err := b.svc.PurchaseInvoice.CreatePurchaseInvoice(b.ctx, b.userID, dto.PurchaseInvoiceRequest{
		SupplierName: "Ink Ltd",
		Date:         "2024-05-02",
		GrandTotal:   amount("800"),
	})

	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.Empty(b.store.purchases)
	suite.Empty(b.store.suppliers, "no supplier is created for a rejected invoice")
	suite.Len(b.store.accounts, accountsBefore)
}

func (suite *DocumentServicesTestSuite) TestPurchaseInvoice_UnknownPaymentAccountCreatesNoSupplier() {
	b := suite.books
	missing := uuid.NewString()

	_, err := b.svc.PurchaseInvoice.CreatePurchaseInvoice(b.ctx, b.userID, dto.PurchaseInvoiceRequest{
		SupplierName:     "Ink Ltd",
		Date:             "2024-05-02",
		GrandTotal:       amount("800"),
		PaidAmount:       amount("100"),
		PaymentAccountID: &missing,
	})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(b.store.purchases)
	suite.Empty(b.store.suppliers)
}

func (suite *DocumentServicesTestSuite) expenseRequest(amt string, splits ...dto.ExpensePaymentRequest) dto.ExpenseRequest {
	return dto.ExpenseRequest{
		Date:              "2024-05-03",
		CategoryAccountID: suite.rent.AccountID,
		Amount:            amount(amt),
		Payments:          splits,
	}
}

func (suite *DocumentServicesTestSuite) TestExpense_SplitPayments() {
	b := suite.books

	expense, err := b.svc.Expense.CreateExpense(b.ctx, b.userID, suite.expenseRequest("1200",
		dto.ExpensePaymentRequest{AccountID: suite.cash.AccountID, Amount: amount("700")},
		dto.ExpensePaymentRequest{AccountID: suite.bank.AccountID, Amount: amount("500")},
	))

	suite.Require().NoError(err)
	entries := b.store.liveEntries(domain.SourceOf(domain.SourceExpense, expense.ExpenseID))
	suite.Require().Len(entries, 1)
	suite.Equal("Expense Entry", entries[0].Description)
	b.requireBalance(suite.T(), suite.rent.AccountID, "1200")
	b.requireBalance(suite.T(), suite.cash.AccountID, "-700")
	b.requireBalance(suite.T(), suite.bank.AccountID, "-500")

	suite.Require().NoError(b.svc.Expense.DeleteExpense(b.ctx, b.userID, expense.ExpenseID))
	b.requireBalance(suite.T(), suite.rent.AccountID, "0")
	b.requireBalance(suite.T(), suite.cash.AccountID, "0")
}

func (suite *DocumentServicesTestSuite) TestExpense_SplitMismatchIsRejected() {
	b := suite.books

	_, err := b.svc.Expense.CreateExpense(b.ctx, b.userID, suite.expenseRequest("1200",
		dto.ExpensePaymentRequest{AccountID: suite.cash.AccountID, Amount: amount("700")},
		dto.ExpensePaymentRequest{AccountID: suite.bank.AccountID, Amount: amount("400")},
	))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Empty(b.store.expenses)
	suite.Empty(b.store.entries)
}

func (suite *DocumentServicesTestSuite) TestExpense_UnknownPaymentAccountWritesNothing() {
	b := suite.books

	_, err := b.svc.Expense.CreateExpense(b.ctx, b.userID, suite.expenseRequest("100",
		dto.ExpensePaymentRequest{AccountID: suite.cash.AccountID, Amount: amount("60")},
		dto.ExpensePaymentRequest{AccountID: uuid.NewString(), Amount: amount("40")},
	))

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Empty(b.store.expenses)
	suite.Empty(b.store.entries)
	b.requireBalance(suite.T(), suite.rent.AccountID, "0")
}

func (suite *DocumentServicesTestSuite) TestExpense_UpdateWithUnknownPaymentAccountKeepsRecord() {
	b := suite.books
	expense, err := b.svc.Expense.CreateExpense(b.ctx, b.userID, suite.expenseRequest("100",
		dto.ExpensePaymentRequest{AccountID: suite.cash.AccountID, Amount: amount("100")},
	))
	suite.Require().NoError(err)

	_, err = b.svc.Expense.UpdateExpense(b.ctx, b.userID, expense.ExpenseID, suite.expenseRequest("250",
		dto.ExpensePaymentRequest{AccountID: uuid.NewString(), Amount: amount("250")},
	))

	suite.ErrorIs(err, apperrors.ErrNotFound)
	stored, err := b.svc.Expense.GetExpense(b.ctx, b.userID, expense.ExpenseID)
	suite.Require().NoError(err)
	suite.True(stored.Amount.Equal(amount("100")), stored.Amount.String())
	b.requireBalance(suite.T(), suite.rent.AccountID, "100")
	b.requireBalance(suite.T(), suite.cash.AccountID, "-100")
}

func (suite *DocumentServicesTestSuite) TestExpense_UnknownCategory() {
	b := suite.books
	req := suite.expenseRequest("10", dto.ExpensePaymentRequest{AccountID: suite.cash.AccountID, Amount: amount("10")})
	req.CategoryAccountID = suite.customer.CustomerID

	_, err := b.svc.Expense.CreateExpense(b.ctx, b.userID, req)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DocumentServicesTestSuite) TestReceivePayment_Lifecycle() {
	b := suite.books

	payment, err := b.svc.ReceivePayment.CreateReceivePayment(b.ctx, b.userID, dto.ReceivePaymentRequest{
		CustomerID: suite.customer.CustomerID,
		AccountID:  suite.bank.AccountID,
		Amount:     amount("120"),
		Date:       "2024-05-04",
	})
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(payment.BillNo, "RCV-"))
	source := domain.SourceOf(domain.SourceReceivePayment, payment.PaymentID)
	entries := b.store.liveEntries(source)
	suite.Require().Len(entries, 1)
	suite.Equal("Receive Payment", entries[0].Description)
	b.requireBalance(suite.T(), suite.bank.AccountID, "120")
	b.requireBalance(suite.T(), suite.customer.AccountID, "-120")

	_, err = b.svc.ReceivePayment.UpdateReceivePayment(b.ctx, b.userID, payment.PaymentID, dto.ReceivePaymentRequest{
		CustomerID: suite.customer.CustomerID,
		AccountID:  suite.cash.AccountID,
		Amount:     amount("90"),
		Date:       "2024-05-04",
	})
	suite.Require().NoError(err)
	suite.Len(b.store.liveEntries(source), 1)
	b.requireBalance(suite.T(), suite.bank.AccountID, "0")
	b.requireBalance(suite.T(), suite.cash.AccountID, "90")

	suite.Require().NoError(b.svc.ReceivePayment.DeleteReceivePayment(b.ctx, b.userID, payment.PaymentID))
	suite.Empty(b.store.liveEntries(source))
	b.requireBalance(suite.T(), suite.customer.AccountID, "0")
}

func (suite *DocumentServicesTestSuite) TestPayBill_Lifecycle() {
	b := suite.books
	supplier, err := b.svc.Supplier.CreateSupplier(b.ctx, b.userID, dto.CreateSupplierRequest{Name: "Paper Co", OpeningBalance: amount("300")})
	suite.Require().NoError(err)

	bill, err := b.svc.PayBill.CreatePayBill(b.ctx, b.userID, dto.PayBillRequest{
		SupplierID: supplier.SupplierID,
		AccountID:  suite.cash.AccountID,
		Amount:     amount("100"),
		Date:       "2024-05-05",
	})
	suite.Require().NoError(err)
	entries := b.store.liveEntries(domain.SourceOf(domain.SourcePayBill, bill.PaymentID))
	suite.Require().Len(entries, 1)
	suite.Equal("Pay Bill", entries[0].Description)
	b.requireBalance(suite.T(), supplier.AccountID, "-200")
	b.requireBalance(suite.T(), suite.cash.AccountID, "-100")

	suite.Require().NoError(b.svc.PayBill.DeletePayBill(b.ctx, b.userID, bill.PaymentID))
	b.requireBalance(suite.T(), supplier.AccountID, "-300")

	_, err = b.svc.PayBill.CreatePayBill(b.ctx, b.userID, dto.PayBillRequest{
		SupplierID: supplier.SupplierID,
		AccountID:  suite.cash.AccountID,
		Amount:     amount("0"),
		Date:       "2024-05-05",
	})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestDocumentServices(t *testing.T) {
	suite.Run(t, new(DocumentServicesTestSuite))
}
