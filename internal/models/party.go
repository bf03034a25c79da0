package models

import "github.com/shopspring/decimal"

// Customer represents a row of the customers table.
type Customer struct {
	CustomerID     string          `db:"customer_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Address        string          `db:"address"`
	CustomerType   string          `db:"customer_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	AccountID      string          `db:"account_id"`
	SoftDelete
	AuditFields
}

// Supplier represents a row of the suppliers table.
type Supplier struct {
	SupplierID     string          `db:"supplier_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	Phone          string          `db:"phone"`
	Address        string          `db:"address"`
	Notes          string          `db:"notes"`
	SupplierType   string          `db:"supplier_type"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	AccountID      string          `db:"account_id"`
	SoftDelete
	AuditFields
}
