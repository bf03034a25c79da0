package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is stored inside the items JSONB column of an invoice.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// SaleInvoice represents a row of the sale_invoices table.
type SaleInvoice struct {
	InvoiceID        string          `db:"invoice_id"`
	UserID           string          `db:"user_id"`
	CustomerID       string          `db:"customer_id"`
	BillNo           string          `db:"bill_no"`
	InvoiceDate      time.Time       `db:"invoice_date"`
	InvoiceTime      string          `db:"invoice_time"`
	Items            []InvoiceItem   `db:"items"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	PaidAmount       decimal.Decimal `db:"paid_amount"`
	PaymentAccountID *string         `db:"payment_account_id"`
	PaymentType      string          `db:"payment_type"`
	Status           string          `db:"status"`
	AuditFields
}

// PurchaseInvoice represents a row of the purchase_invoices table.
type PurchaseInvoice struct {
	InvoiceID        string          `db:"invoice_id"`
	UserID           string          `db:"user_id"`
	SupplierID       string          `db:"supplier_id"`
	BillNo           string          `db:"bill_no"`
	InvoiceDate      time.Time       `db:"invoice_date"`
	Items            []InvoiceItem   `db:"items"`
	GrandTotal       decimal.Decimal `db:"grand_total"`
	PaidAmount       decimal.Decimal `db:"paid_amount"`
	PaymentAccountID *string         `db:"payment_account_id"`
	Status           string          `db:"status"`
	SoftDelete
	AuditFields
}

// ExpensePayment is stored inside the payments JSONB column of an expense.
type ExpensePayment struct {
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
}

// Expense represents a row of the expenses table.
type Expense struct {
	ExpenseID         string           `db:"expense_id"`
	UserID            string           `db:"user_id"`
	ExpenseDate       time.Time        `db:"expense_date"`
	Description       string           `db:"description"`
	CategoryAccountID string           `db:"category_account_id"`
	Amount            decimal.Decimal  `db:"amount"`
	Payments          []ExpensePayment `db:"payments"`
	SoftDelete
	AuditFields
}

// ReceivePayment represents a row of the receive_payments table.
type ReceivePayment struct {
	PaymentID   string          `db:"payment_id"`
	UserID      string          `db:"user_id"`
	CustomerID  string          `db:"customer_id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate time.Time       `db:"payment_date"`
	BillNo      string          `db:"bill_no"`
	Description string          `db:"description"`
	SoftDelete
	AuditFields
}

// PayBill represents a row of the pay_bills table.
type PayBill struct {
	PaymentID   string          `db:"payment_id"`
	UserID      string          `db:"user_id"`
	SupplierID  string          `db:"supplier_id"`
	AccountID   string          `db:"account_id"`
	Amount      decimal.Decimal `db:"amount"`
	PaymentDate time.Time       `db:"payment_date"`
	Description string          `db:"description"`
	SoftDelete
	AuditFields
}
