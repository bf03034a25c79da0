package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a customer.
// A positive OpeningBalance is posted as an opening entry.
type CreateCustomerRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	Email          string          `json:"email" binding:"omitempty,email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Type           string          `json:"type"`
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"dnonnegative"`
}

// UpdateCustomerRequest defines the fields that may change on a customer.
type UpdateCustomerRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=255"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	Type           *string          `json:"type"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
}

// CreateSupplierRequest defines the data needed to create a supplier.
type CreateSupplierRequest struct {
	Name           string          `json:"name" binding:"required,max=255"`
	Email          string          `json:"email" binding:"omitempty,email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes"`
	SupplierType   string          `json:"supplierType"`
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"dnonnegative"`
}

// UpdateSupplierRequest defines the fields that may change on a supplier.
type UpdateSupplierRequest struct {
	Name           *string          `json:"name" binding:"omitempty,max=255"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	Notes          *string          `json:"notes"`
	SupplierType   *string          `json:"supplierType"`
	OpeningBalance *decimal.Decimal `json:"openingBalance"`
}

// PartyBalanceResponse is the derived balance of a customer or supplier.
type PartyBalanceResponse struct {
	PartyID   string          `json:"partyID"`
	AccountID string          `json:"accountID"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListCustomersResponse wraps a list of customers.
type ListCustomersResponse struct {
	Customers []domain.Customer `json:"customers"`
}

// ListSuppliersResponse wraps a list of suppliers.
type ListSuppliersResponse struct {
	Suppliers []domain.Supplier `json:"suppliers"`
}

// SearchParams is the optional free-text filter of party listings.
type SearchParams struct {
	Search string `form:"search"`
}
