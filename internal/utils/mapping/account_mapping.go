package mapping

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/quarryworks/quarry_books_app/internal/models"
)

// ToModelLedgerAccount converts a domain LedgerAccount to a model LedgerAccount.
func ToModelLedgerAccount(d domain.LedgerAccount) models.LedgerAccount {
	return models.LedgerAccount{
		AccountID:     d.AccountID,
		QuarryID:      d.QuarryID,
		Code:          d.Code,
		Name:          d.Name,
		Description:   d.Description,
		Category:      models.AccountCategory(d.Category),
		IsDebitNormal: d.IsDebitNormal,
		IsSystem:      d.IsSystem,
		DisplayOrder:  d.DisplayOrder,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerAccount converts a model LedgerAccount to a domain LedgerAccount.
func ToDomainLedgerAccount(m models.LedgerAccount) domain.LedgerAccount {
	return domain.LedgerAccount{
		AccountID:     m.AccountID,
		QuarryID:      m.QuarryID,
		Code:          m.Code,
		Name:          m.Name,
		Description:   m.Description,
		Category:      domain.AccountCategory(m.Category),
		IsDebitNormal: m.IsDebitNormal,
		IsSystem:      m.IsSystem,
		DisplayOrder:  m.DisplayOrder,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
