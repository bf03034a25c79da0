package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset          AccountType = "ASSET"
	Liability      AccountType = "LIABILITY"
	Equity         AccountType = "EQUITY"
	Income         AccountType = "INCOME"
	ExpenseAccount AccountType = "EXPENSE" // domain.Expense names the expense document
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, ExpenseAccount:
		return true
	}
	return false
}

// AccountCategory groups accounts by how money moves through them.
type AccountCategory string

const (
	CategoryCash     AccountCategory = "cash"
	CategoryBank     AccountCategory = "bank"
	CategoryCheque   AccountCategory = "cheque"
	CategoryOnline   AccountCategory = "online"
	CategoryCredit   AccountCategory = "credit"
	CategoryOther    AccountCategory = "other"
	CategoryCustomer AccountCategory = "customer"
	CategorySupplier AccountCategory = "supplier"
)

// IsValid reports whether c is one of the known categories.
func (c AccountCategory) IsValid() bool {
	switch c {
	case CategoryCash, CategoryBank, CategoryCheque, CategoryOnline,
		CategoryCredit, CategoryOther, CategoryCustomer, CategorySupplier:
		return true
	}
	return false
}

// IsCashOrBank reports whether money held in this category counts as cash on hand.
func (c AccountCategory) IsCashOrBank() bool {
	return c == CategoryCash || c == CategoryBank
}

// Well-known account names the posting flows look up by name and type.
const (
	SalesAccountName          = "sales"
	PurchasesAccountName      = "purchases"
	OpeningBalanceAccountName = "Opening Balance Equity"
)

// restrictedAccountNames cannot be created or renamed-to by users.
var restrictedAccountNames = map[string]struct{}{
	"capital":           {},
	"opening balance":   {},
	"retained earnings": {},
}

// IsRestrictedAccountName reports whether name is reserved for system use.
func IsRestrictedAccountName(name string) bool {
	_, ok := restrictedAccountNames[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Account represents a financial account within the core domain.
// The balance is a cache of the account's journal lines. It is only loaded from
// storage and only written back by balance recalculation.
type Account struct {
	AccountID      string          `json:"accountID"`
	UserID         string          `json:"userID"` // owner
	Code           string          `json:"code"`   // unique per owner
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	Category       AccountCategory `json:"category"`
	Description    string          `json:"description"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields

	balance decimal.Decimal
}

// Balance returns the cached balance in debit-positive convention.
func (a Account) Balance() decimal.Decimal {
	return a.balance
}

// HydrateBalance sets the cached balance as read from storage.
func (a *Account) HydrateBalance(balance decimal.Decimal) {
	a.balance = balance
}

// RecalculationResult is the outcome of recalculating one account.
type RecalculationResult struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	Err       error           `json:"-"`
}

// Failed reports whether recalculation of this account failed.
func (r RecalculationResult) Failed() bool {
	return r.Err != nil
}
