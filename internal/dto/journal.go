package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit of a manual journal entry.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Type      domain.LineType `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	Amount    decimal.Decimal `json:"amount" binding:"dpositive"`
}

// CreateJournalEntryRequest defines the data for a manual journal entry.
type CreateJournalEntryRequest struct {
	Date        string               `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string               `json:"time" binding:"omitempty,clock"`
	Description string               `json:"description" binding:"required"`
	BillNo      string               `json:"billNo"`
	PaymentType string               `json:"paymentType"`
	CustomerID  *string              `json:"customerID"`
	SupplierID  *string              `json:"supplierID"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest replaces the header and all lines of an entry.
type UpdateJournalEntryRequest CreateJournalEntryRequest

// ToDomainLines converts line requests into positioned domain lines.
func ToDomainLines(reqs []JournalLineRequest) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(reqs))
	for i, l := range reqs {
		lines[i] = domain.JournalLine{
			AccountID: l.AccountID,
			Type:      l.Type,
			Amount:    l.Amount,
			Position:  i,
		}
	}
	return lines
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Type      domain.LineType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID     string                `json:"entryID"`
	Date        string                `json:"date"`
	Time        string                `json:"time,omitempty"`
	Description string                `json:"description"`
	Source      domain.SourceRef      `json:"source"`
	BillNo      string                `json:"billNo,omitempty"`
	PaymentType string                `json:"paymentType,omitempty"`
	CustomerID  *string               `json:"customerID,omitempty"`
	SupplierID  *string               `json:"supplierID,omitempty"`
	Amount      decimal.Decimal       `json:"amount"`
	Lines       []JournalLineResponse `json:"lines"`
	CreatedAt   time.Time             `json:"createdAt"`
	CreatedBy   string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
// Amount is the debit side total.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:     e.EntryID,
		Date:        e.Date.Format(DateLayout),
		Time:        e.Time,
		Description: e.Description,
		Source:      e.Source,
		BillNo:      e.BillNo,
		PaymentType: e.PaymentType,
		CustomerID:  e.CustomerID,
		SupplierID:  e.SupplierID,
		Amount:      decimal.Zero,
		Lines:       make([]JournalLineResponse, len(e.Lines)),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	for i, l := range e.Lines {
		resp.Lines[i] = JournalLineResponse{
			LineID:    l.LineID,
			AccountID: l.AccountID,
			Type:      l.Type,
			Amount:    l.Amount,
		}
		if l.Type == domain.Debit {
			resp.Amount = resp.Amount.Add(l.Amount)
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
	StartDate string  `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string  `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Source    string  `form:"source" binding:"omitempty,sourcekind"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// TransactionResponse is one line of an account, as listed under the account.
type TransactionResponse struct {
	EntryID     string           `json:"entryID"`
	LineID      string           `json:"lineID"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Source      domain.SourceRef `json:"source"`
	Type        domain.LineType  `json:"type"`
	Amount      decimal.Decimal  `json:"amount"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// ToTransactionResponses converts account lines for the transactions listing.
func ToTransactionResponses(lines []domain.AccountLine) []TransactionResponse {
	out := make([]TransactionResponse, len(lines))
	for i, l := range lines {
		out[i] = TransactionResponse{
			EntryID:     l.EntryID,
			LineID:      l.LineID,
			Date:        l.Date.Format(DateLayout),
			Description: l.Description,
			Source:      l.Source,
			Type:        l.Type,
			Amount:      l.Amount,
			CreatedAt:   l.CreatedAt,
		}
	}
	return out
}

// ListTransactionsParams defines query parameters for listing an account's lines.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of account lines.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
