package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType mirrors domain.EntryType at the db layer.
type EntryType string

// JournalEntry represents one row of the journal_entries table.
type JournalEntry struct {
	EntryID      string          `db:"entry_id"`
	QuarryID     string          `db:"quarry_id"`
	EntryDate    time.Time       `db:"entry_date"`
	Reference    string          `db:"reference"`
	Description  string          `db:"description"`
	EntryType    EntryType       `db:"entry_type"`
	SourceType   *string         `db:"source_type"`
	SourceID     *string         `db:"source_id"`
	FiscalYear   int             `db:"fiscal_year"`
	FiscalPeriod int             `db:"fiscal_period"`
	IsPosted     bool            `db:"is_posted"`
	PostedBy     string          `db:"posted_by"`
	PostedAt     *time.Time      `db:"posted_at"`
	TotalDebit   decimal.Decimal `db:"total_debit"`
	TotalCredit  decimal.Decimal `db:"total_credit"`
	IsActive     bool            `db:"is_active"`
	AuditFields
}

// JournalLine represents one row of the journal_lines table.
type JournalLine struct {
	LineID     string          `db:"line_id"`
	EntryID    string          `db:"entry_id"`
	AccountID  string          `db:"account_id"`
	Debit      decimal.Decimal `db:"debit"`
	Credit     decimal.Decimal `db:"credit"`
	Memo       string          `db:"memo"`
	LineNumber int             `db:"line_number"`
}
