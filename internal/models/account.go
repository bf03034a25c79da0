package models

import (
	"github.com/shopspring/decimal"
)

// Account represents a row of the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Code           string          `db:"code"` // Unique per user
	Name           string          `db:"name"`
	AccountType    string          `db:"account_type"`
	Category       string          `db:"category"`
	Description    string          `db:"description"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	AuditFields
	Balance decimal.Decimal `db:"balance"` // Written only by balance recalculation
}
