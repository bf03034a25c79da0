package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// SaleInvoiceRepository persists sale invoices. Sale invoices are hard-deleted.
type SaleInvoiceRepository interface {
	FindSaleInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.SaleInvoice, error)
	// ListSaleInvoices lists invoices newest first, optionally for one customer.
	ListSaleInvoices(ctx context.Context, userID string, customerID *string) ([]domain.SaleInvoice, error)
	// ListBillNumbers returns the bill numbers of the user's most recent invoices, newest first.
	ListBillNumbers(ctx context.Context, userID string, limit int) ([]string, error)
	SaveSaleInvoice(ctx context.Context, invoice domain.SaleInvoice) error
	UpdateSaleInvoice(ctx context.Context, invoice domain.SaleInvoice) error
	DeleteSaleInvoice(ctx context.Context, userID, invoiceID string) error
}

// PurchaseInvoiceRepository persists purchase invoices.
type PurchaseInvoiceRepository interface {
	FindPurchaseInvoiceByID(ctx context.Context, userID, invoiceID string) (*domain.PurchaseInvoice, error)
	ListPurchaseInvoices(ctx context.Context, userID string, supplierID *string) ([]domain.PurchaseInvoice, error)
	SavePurchaseInvoice(ctx context.Context, invoice domain.PurchaseInvoice) error
	UpdatePurchaseInvoice(ctx context.Context, invoice domain.PurchaseInvoice) error
	MarkPurchaseInvoiceDeleted(ctx context.Context, userID, invoiceID, deletedBy string, deletedAt time.Time) error
}

// ExpenseRepository persists expenses together with their payment splits.
type ExpenseRepository interface {
	FindExpenseByID(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error)
	SaveExpense(ctx context.Context, expense domain.Expense) error
	UpdateExpense(ctx context.Context, expense domain.Expense) error
	MarkExpenseDeleted(ctx context.Context, userID, expenseID, deletedBy string, deletedAt time.Time) error
}

// ReceivePaymentRepository persists payments received from customers.
type ReceivePaymentRepository interface {
	FindReceivePaymentByID(ctx context.Context, userID, paymentID string) (*domain.ReceivePayment, error)
	ListReceivePayments(ctx context.Context, userID string, customerID *string) ([]domain.ReceivePayment, error)
	SaveReceivePayment(ctx context.Context, payment domain.ReceivePayment) error
	UpdateReceivePayment(ctx context.Context, payment domain.ReceivePayment) error
	MarkReceivePaymentDeleted(ctx context.Context, userID, paymentID, deletedBy string, deletedAt time.Time) error
}

// PayBillRepository persists payments made to suppliers.
type PayBillRepository interface {
	FindPayBillByID(ctx context.Context, userID, paymentID string) (*domain.PayBill, error)
	ListPayBills(ctx context.Context, userID string, supplierID *string) ([]domain.PayBill, error)
	SavePayBill(ctx context.Context, payment domain.PayBill) error
	UpdatePayBill(ctx context.Context, payment domain.PayBill) error
	MarkPayBillDeleted(ctx context.Context, userID, paymentID, deletedBy string, deletedAt time.Time) error
}
