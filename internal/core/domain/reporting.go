package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance totals every account's debits and credits.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
}

// CashFlowMonth holds money moving in and out of cash and bank accounts in one month.
type CashFlowMonth struct {
	Month   int             `json:"month"` // 1-12
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// CashFlow is a year of monthly cash movements.
type CashFlow struct {
	Year   int             `json:"year"`
	Months []CashFlowMonth `json:"months"`
}

// AccountAmount represents an account with its amount for summary reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  AccountCategory `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
}

// CashBankSummary lists cash and bank balances.
type CashBankSummary struct {
	Cash      []AccountAmount `json:"cash"`
	Bank      []AccountAmount `json:"bank"`
	TotalCash decimal.Decimal `json:"totalCash"`
	TotalBank decimal.Decimal `json:"totalBank"`
	Total     decimal.Decimal `json:"total"`
}
