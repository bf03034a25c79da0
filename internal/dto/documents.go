package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one priced line of an invoice.
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"dpositive"`
	Rate        decimal.Decimal `json:"rate" binding:"dnonnegative"`
	Amount      decimal.Decimal `json:"amount" binding:"dnonnegative"`
}

// ToDomainItems converts invoice item requests.
func ToDomainItems(reqs []InvoiceItemRequest) []domain.InvoiceItem {
	items := make([]domain.InvoiceItem, len(reqs))
	for i, r := range reqs {
		items[i] = domain.InvoiceItem{
			Description: r.Description,
			Quantity:    r.Quantity,
			Rate:        r.Rate,
			Amount:      r.Amount,
		}
	}
	return items
}

// SaleInvoiceRequest creates or replaces a sale invoice.
// PaidAmount needs PaymentAccountID when positive.
type SaleInvoiceRequest struct {
	CustomerID       string               `json:"customerID" binding:"required"`
	BillNo           string               `json:"billNo"` // next number when empty
	Date             string               `json:"date" binding:"required,datetime=2006-01-02"`
	Time             string               `json:"time" binding:"omitempty,clock"`
	Items            []InvoiceItemRequest `json:"items" binding:"dive"`
	TotalAmount      decimal.Decimal      `json:"totalAmount" binding:"dpositive"`
	PaidAmount       decimal.Decimal      `json:"paidAmount" binding:"dnonnegative"`
	PaymentAccountID *string              `json:"paymentAccountID"`
	PaymentType      string               `json:"paymentType"`
}

// RecordPaymentRequest records a further payment against a sale invoice.
type RecordPaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"dpositive"`
	AccountID   string          `json:"accountID" binding:"required"`
	Date        string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time        string          `json:"time" binding:"omitempty,clock"`
	PaymentType string          `json:"paymentType"`
}

// NextBillNoResponse carries the suggested number for the next sale invoice.
type NextBillNoResponse struct {
	BillNo string `json:"billNo"`
}

// PurchaseInvoiceRequest creates or replaces a purchase invoice.
// Either SupplierID or SupplierName must be set; an unknown name creates the supplier.
type PurchaseInvoiceRequest struct {
	SupplierID       string               `json:"supplierID" binding:"required_without=SupplierName"`
	SupplierName     string               `json:"supplierName" binding:"required_without=SupplierID"`
	BillNo           string               `json:"billNo"`
	Date             string               `json:"date" binding:"required,datetime=2006-01-02"`
	Items            []InvoiceItemRequest `json:"items" binding:"dive"`
	GrandTotal       decimal.Decimal      `json:"grandTotal" binding:"dpositive"`
	PaidAmount       decimal.Decimal      `json:"paidAmount" binding:"dnonnegative"`
	PaymentAccountID *string              `json:"paymentAccountID"`
}

// ExpensePaymentRequest is one account an expense was paid from.
type ExpensePaymentRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"dpositive"`
}

// ExpenseRequest creates or replaces an expense. Payments must sum to Amount.
type ExpenseRequest struct {
	Date              string                  `json:"date" binding:"required,datetime=2006-01-02"`
	Description       string                  `json:"description"`
	CategoryAccountID string                  `json:"categoryAccountID" binding:"required"`
	Amount            decimal.Decimal         `json:"amount" binding:"dpositive"`
	Payments          []ExpensePaymentRequest `json:"payments" binding:"required,min=1,dive"`
}

// ToDomainPayments converts expense payment splits.
func (r ExpenseRequest) ToDomainPayments() []domain.ExpensePayment {
	out := make([]domain.ExpensePayment, len(r.Payments))
	for i, p := range r.Payments {
		out[i] = domain.ExpensePayment{AccountID: p.AccountID, Amount: p.Amount}
	}
	return out
}

// ReceivePaymentRequest creates or replaces a payment received from a customer.
type ReceivePaymentRequest struct {
	CustomerID  string          `json:"customerID" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"dpositive"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description"`
}

// PayBillRequest creates or replaces a payment made to a supplier.
type PayBillRequest struct {
	SupplierID  string          `json:"supplierID" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"dpositive"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description string          `json:"description"`
}

// PartyFilterParams narrows document listings to one customer or supplier.
type PartyFilterParams struct {
	CustomerID string `form:"customerID"`
	SupplierID string `form:"supplierID"`
}
