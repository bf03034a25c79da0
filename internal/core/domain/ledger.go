package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerQuery bounds a ledger view. A nil StartDate means no opening balance carry-forward.
type LedgerQuery struct {
	StartDate   *time.Time
	EndDate     *time.Time
	SourceKinds []SourceKind
}

// AccountLine is a journal line of one account joined with its entry's header,
// as read for ledger views.
type AccountLine struct {
	EntryID     string
	LineID      string
	Date        time.Time
	Time        string
	CreatedAt   time.Time
	Position    int
	Description string
	BillNo      string
	Source      SourceRef
	Type        LineType
	Amount      decimal.Decimal
}

// LedgerRow is one line of a ledger with the balance after it.
type LedgerRow struct {
	EntryID        string          `json:"entryID,omitempty"`
	Date           time.Time       `json:"date"`
	Time           string          `json:"time,omitempty"`
	Description    string          `json:"description"`
	BillNo         string          `json:"billNo,omitempty"`
	Source         SourceRef       `json:"source"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
	IsOpening      bool            `json:"isOpening"`
}

// Ledger is the chronological, running-balance view of one account.
type Ledger struct {
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Rows           []LedgerRow     `json:"rows"`
}
