package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks how much of an invoice has been settled.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "Unpaid"
	InvoicePartial InvoiceStatus = "Partial"
	InvoicePaid    InvoiceStatus = "Paid"
)

// StatusFor derives the settlement status from the paid and total amounts.
func StatusFor(paid, total decimal.Decimal) InvoiceStatus {
	switch {
	case paid.GreaterThanOrEqual(total) && total.IsPositive():
		return InvoicePaid
	case paid.IsPositive():
		return InvoicePartial
	default:
		return InvoiceUnpaid
	}
}

// InvoiceItem is a priced line on an invoice. It carries no accounting meaning.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleInvoice records a sale to a customer.
type SaleInvoice struct {
	InvoiceID        string          `json:"invoiceID"`
	UserID           string          `json:"userID"`
	CustomerID       string          `json:"customerID"`
	BillNo           string          `json:"billNo"`
	Date             time.Time       `json:"date"`
	Time             string          `json:"time"`
	Items            []InvoiceItem   `json:"items"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	PaymentAccountID *string         `json:"paymentAccountID,omitempty"`
	PaymentType      string          `json:"paymentType"`
	Status           InvoiceStatus   `json:"status"`
	AuditFields
}

// PurchaseInvoice records a purchase from a supplier.
type PurchaseInvoice struct {
	InvoiceID        string          `json:"invoiceID"`
	UserID           string          `json:"userID"`
	SupplierID       string          `json:"supplierID"`
	BillNo           string          `json:"billNo"`
	Date             time.Time       `json:"date"`
	Items            []InvoiceItem   `json:"items"`
	GrandTotal       decimal.Decimal `json:"grandTotal"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	PaymentAccountID *string         `json:"paymentAccountID,omitempty"`
	Status           InvoiceStatus   `json:"status"`
	IsDeleted        bool            `json:"isDeleted"`
	AuditFields
}

// ExpensePayment is one account an expense was paid from.
type ExpensePayment struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// Expense records money spent against an expense category account,
// paid from one or more accounts.
type Expense struct {
	ExpenseID         string           `json:"expenseID"`
	UserID            string           `json:"userID"`
	Date              time.Time        `json:"date"`
	Description       string           `json:"description"`
	CategoryAccountID string           `json:"categoryAccountID"`
	Amount            decimal.Decimal  `json:"amount"`
	Payments          []ExpensePayment `json:"payments"`
	IsDeleted         bool             `json:"isDeleted"`
	AuditFields
}

// ReceivePayment records money received from a customer into a cash or bank account.
type ReceivePayment struct {
	PaymentID   string          `json:"paymentID"`
	UserID      string          `json:"userID"`
	CustomerID  string          `json:"customerID"`
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	BillNo      string          `json:"billNo"`
	Description string          `json:"description"`
	IsDeleted   bool            `json:"isDeleted"`
	AuditFields
}

// ReceiptBillNo derives the receipt number from the payment id.
func ReceiptBillNo(paymentID string) string {
	suffix := paymentID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}
	return "RCV-" + suffix
}

// PayBill records money paid to a supplier from a cash or bank account.
type PayBill struct {
	PaymentID   string          `json:"paymentID"`
	UserID      string          `json:"userID"`
	SupplierID  string          `json:"supplierID"`
	AccountID   string          `json:"accountID"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	IsDeleted   bool            `json:"isDeleted"`
	AuditFields
}
