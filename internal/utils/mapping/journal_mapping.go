package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry.
// Lines are mapped separately with ToModelJournalLine.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:     d.EntryID,
		UserID:      d.UserID,
		EntryDate:   d.Date,
		EntryTime:   d.Time,
		Description: d.Description,
		SourceKind:  string(d.Source.Kind),
		BillNo:      d.BillNo,
		PaymentType: d.PaymentType,
		CustomerID:  d.CustomerID,
		SupplierID:  d.SupplierID,
		SoftDelete:  models.SoftDelete{IsDeleted: d.IsDeleted},
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.Source.ID != "" {
		id := d.Source.ID
		m.SourceID = &id
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		Date:        m.EntryDate,
		Time:        m.EntryTime,
		Description: m.Description,
		Lines:       ToDomainJournalLineSlice(lines),
		Source:      toDomainSource(m.SourceKind, m.SourceID),
		BillNo:      m.BillNo,
		PaymentType: m.PaymentType,
		CustomerID:  m.CustomerID,
		SupplierID:  m.SupplierID,
		IsDeleted:   m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		AccountID: d.AccountID,
		LineType:  string(d.Type),
		Amount:    d.Amount,
		Position:  d.Position,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Type:      domain.LineType(m.LineType),
		Amount:    m.Amount,
		Position:  m.Position,
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to a slice of domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToDomainAccountLine converts a joined line row to a domain AccountLine
func ToDomainAccountLine(m models.AccountLine) domain.AccountLine {
	return domain.AccountLine{
		EntryID:     m.EntryID,
		LineID:      m.LineID,
		Date:        m.EntryDate,
		Time:        m.EntryTime,
		CreatedAt:   m.CreatedAt,
		Position:    m.Position,
		Description: m.Description,
		BillNo:      m.BillNo,
		Source:      toDomainSource(m.SourceKind, m.SourceID),
		Type:        domain.LineType(m.LineType),
		Amount:      m.Amount,
	}
}

// ToDomainAccountLineSlice converts a slice of joined line rows to domain AccountLines
func ToDomainAccountLineSlice(ms []models.AccountLine) []domain.AccountLine {
	ds := make([]domain.AccountLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountLine(m)
	}
	return ds
}

func toDomainSource(kind string, id *string) domain.SourceRef {
	ref := domain.SourceRef{Kind: domain.SourceKind(kind)}
	if id != nil {
		ref.ID = *id
	}
	return ref
}
