package models

// AccountCategory mirrors domain.AccountCategory at the db layer.
type AccountCategory string

// LedgerAccount represents one row of the ledger_accounts table.
type LedgerAccount struct {
	AccountID     string          `db:"account_id"`
	QuarryID      string          `db:"quarry_id"`
	Code          string          `db:"code"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Category      AccountCategory `db:"category"`
	IsDebitNormal bool            `db:"is_debit_normal"`
	IsSystem      bool            `db:"is_system"`
	DisplayOrder  int             `db:"display_order"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}
