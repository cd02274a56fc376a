package mapping

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/quarryworks/quarry_books_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry.
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		EntryID:      d.EntryID,
		QuarryID:     d.QuarryID,
		EntryDate:    d.EntryDate,
		Reference:    d.Reference,
		Description:  d.Description,
		EntryType:    models.EntryType(d.EntryType),
		SourceID:     d.SourceID,
		FiscalYear:   d.FiscalYear,
		FiscalPeriod: d.FiscalPeriod,
		IsPosted:     d.IsPosted,
		PostedBy:     d.PostedBy,
		PostedAt:     d.PostedAt,
		TotalDebit:   d.TotalDebit,
		TotalCredit:  d.TotalCredit,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.SourceType != nil {
		st := string(*d.SourceType)
		m.SourceType = &st
	}
	return m
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		EntryID:      m.EntryID,
		QuarryID:     m.QuarryID,
		EntryDate:    m.EntryDate,
		Reference:    m.Reference,
		Description:  m.Description,
		EntryType:    domain.EntryType(m.EntryType),
		SourceID:     m.SourceID,
		FiscalYear:   m.FiscalYear,
		FiscalPeriod: m.FiscalPeriod,
		IsPosted:     m.IsPosted,
		PostedBy:     m.PostedBy,
		PostedAt:     m.PostedAt,
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.SourceType != nil {
		sk := domain.SourceKind(*m.SourceType)
		d.SourceType = &sk
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:     d.LineID,
		EntryID:    d.EntryID,
		AccountID:  d.AccountID,
		Debit:      d.Debit,
		Credit:     d.Credit,
		Memo:       d.Memo,
		LineNumber: d.LineNumber,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:     m.LineID,
		EntryID:    m.EntryID,
		AccountID:  m.AccountID,
		Debit:      m.Debit,
		Credit:     m.Credit,
		Memo:       m.Memo,
		LineNumber: m.LineNumber,
	}
}

// ToDomainJournalLineSlice converts a slice of model lines to domain lines.
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
