package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
)

// SaleInvoiceSvcFacade records sales and the payments against them.
type SaleInvoiceSvcFacade interface {
	CreateSaleInvoice(ctx context.Context, userID string, req dto.SaleInvoiceRequest) (*domain.SaleInvoice, error)
	GetSaleInvoice(ctx context.Context, userID, invoiceID string) (*domain.SaleInvoice, error)
	ListSaleInvoices(ctx context.Context, userID string, customerID *string) ([]domain.SaleInvoice, error)
	UpdateSaleInvoice(ctx context.Context, userID, invoiceID string, req dto.SaleInvoiceRequest) (*domain.SaleInvoice, error)
	DeleteSaleInvoice(ctx context.Context, userID, invoiceID string) error
	// RecordPayment posts a further payment against the invoice and updates its status.
	RecordPayment(ctx context.Context, userID, invoiceID string, req dto.RecordPaymentRequest) (*domain.SaleInvoice, error)
	// GetNextBillNo suggests the bill number of the next invoice.
	GetNextBillNo(ctx context.Context, userID string) (string, error)
}

// PurchaseInvoiceSvcFacade records purchases from suppliers.
type PurchaseInvoiceSvcFacade interface {
	CreatePurchaseInvoice(ctx context.Context, userID string, req dto.PurchaseInvoiceRequest) (*domain.PurchaseInvoice, error)
	GetPurchaseInvoice(ctx context.Context, userID, invoiceID string) (*domain.PurchaseInvoice, error)
	ListPurchaseInvoices(ctx context.Context, userID string, supplierID *string) ([]domain.PurchaseInvoice, error)
	UpdatePurchaseInvoice(ctx context.Context, userID, invoiceID string, req dto.PurchaseInvoiceRequest) (*domain.PurchaseInvoice, error)
	DeletePurchaseInvoice(ctx context.Context, userID, invoiceID string) error
}

// ExpenseSvcFacade records expenses paid from one or more accounts.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, userID string, req dto.ExpenseRequest) (*domain.Expense, error)
	GetExpense(ctx context.Context, userID, expenseID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, userID string) ([]domain.Expense, error)
	UpdateExpense(ctx context.Context, userID, expenseID string, req dto.ExpenseRequest) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, userID, expenseID string) error
}

// ReceivePaymentSvcFacade records money received from customers.
type ReceivePaymentSvcFacade interface {
	CreateReceivePayment(ctx context.Context, userID string, req dto.ReceivePaymentRequest) (*domain.ReceivePayment, error)
	GetReceivePayment(ctx context.Context, userID, paymentID string) (*domain.ReceivePayment, error)
	ListReceivePayments(ctx context.Context, userID string, customerID *string) ([]domain.ReceivePayment, error)
	UpdateReceivePayment(ctx context.Context, userID, paymentID string, req dto.ReceivePaymentRequest) (*domain.ReceivePayment, error)
	DeleteReceivePayment(ctx context.Context, userID, paymentID string) error
}

// PayBillSvcFacade records money paid to suppliers.
type PayBillSvcFacade interface {
	CreatePayBill(ctx context.Context, userID string, req dto.PayBillRequest) (*domain.PayBill, error)
	GetPayBill(ctx context.Context, userID, paymentID string) (*domain.PayBill, error)
	ListPayBills(ctx context.Context, userID string, supplierID *string) ([]domain.PayBill, error)
	UpdatePayBill(ctx context.Context, userID, paymentID string, req dto.PayBillRequest) (*domain.PayBill, error)
	DeletePayBill(ctx context.Context, userID, paymentID string) error
}
