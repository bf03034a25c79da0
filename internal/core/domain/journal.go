package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineType indicates whether a journal line is a Debit or a Credit.
type LineType string

const (
	Debit  LineType = "DEBIT"
	Credit LineType = "CREDIT"
)

// IsValid reports whether t is DEBIT or CREDIT.
func (t LineType) IsValid() bool {
	return t == Debit || t == Credit
}

// JournalLine is a single debit or credit against one account.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Type      LineType        `json:"type"`
	Amount    decimal.Decimal `json:"amount"` // always positive
	Position  int             `json:"position"`
}

// JournalEntry is one balanced financial event made of two or more lines.
// Lines are replaced as a whole on update, never edited individually.
type JournalEntry struct {
	EntryID     string        `json:"entryID"`
	UserID      string        `json:"userID"` // owner
	Date        time.Time     `json:"date"`
	Time        string        `json:"time"` // optional HH:MM[:SS], used for ordering within a day
	Description string        `json:"description"`
	Lines       []JournalLine `json:"lines"`
	Source      SourceRef     `json:"source"`
	BillNo      string        `json:"billNo"`
	PaymentType string        `json:"paymentType"`
	CustomerID  *string       `json:"customerID,omitempty"`
	SupplierID  *string       `json:"supplierID,omitempty"`
	IsDeleted   bool          `json:"isDeleted"`
	AuditFields
}

// AccountIDs returns the distinct account ids touched by the entry's lines, in line order.
func (e JournalEntry) AccountIDs() []string {
	return LineAccountIDs(e.Lines)
}

// LineAccountIDs returns the distinct account ids referenced by lines, in order of first use.
func LineAccountIDs(lines []JournalLine) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}
	return ids
}

// NewLine is shorthand for building a posting line.
func NewLine(accountID string, lineType LineType, amount decimal.Decimal) JournalLine {
	return JournalLine{AccountID: accountID, Type: lineType, Amount: amount}
}

// JournalEntryFilter narrows journal listings.
type JournalEntryFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	SourceKind *SourceKind
}
