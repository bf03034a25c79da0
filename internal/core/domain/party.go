package domain

import "github.com/shopspring/decimal"

// Customer is someone the business sells to. Its balance lives on the linked account.
type Customer struct {
	CustomerID     string          `json:"customerID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Type           string          `json:"type"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AccountID      string          `json:"accountID"`
	IsDeleted      bool            `json:"isDeleted"`
	AuditFields
}

// Supplier is someone the business buys from. Its balance lives on the linked account.
type Supplier struct {
	SupplierID     string          `json:"supplierID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	Notes          string          `json:"notes"`
	SupplierType   string          `json:"supplierType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AccountID      string          `json:"accountID"`
	IsDeleted      bool            `json:"isDeleted"`
	AuditFields
}
