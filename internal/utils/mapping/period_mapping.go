package mapping

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/quarryworks/quarry_books_app/internal/models"
)

// ToModelAccountingPeriod converts a domain AccountingPeriod to its model form.
func ToModelAccountingPeriod(d domain.AccountingPeriod) models.AccountingPeriod {
	return models.AccountingPeriod{
		PeriodID:     d.PeriodID,
		QuarryID:     d.QuarryID,
		FiscalYear:   d.FiscalYear,
		PeriodNumber: d.PeriodNumber,
		StartDate:    d.StartDate,
		EndDate:      d.EndDate,
		IsClosed:     d.IsClosed,
		ClosedBy:     d.ClosedBy,
		ClosedAt:     d.ClosedAt,
		ClosingNotes: d.ClosingNotes,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccountingPeriod converts a model AccountingPeriod to its domain form.
func ToDomainAccountingPeriod(m models.AccountingPeriod) domain.AccountingPeriod {
	return domain.AccountingPeriod{
		PeriodID:     m.PeriodID,
		QuarryID:     m.QuarryID,
		FiscalYear:   m.FiscalYear,
		PeriodNumber: m.PeriodNumber,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		IsClosed:     m.IsClosed,
		ClosedBy:     m.ClosedBy,
		ClosedAt:     m.ClosedAt,
		ClosingNotes: m.ClosingNotes,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
