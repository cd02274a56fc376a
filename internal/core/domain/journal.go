package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType distinguishes human-entered journal entries from derived ones.
type EntryType string

const (
	Manual EntryType = "MANUAL"
	Auto   EntryType = "AUTO"
)

// SourceKind is the closed set of operational transaction kinds the
// auto-generation engine derives journal entries from.
type SourceKind string

const (
	SourceSale       SourceKind = "SALE"
	SourceExpense    SourceKind = "EXPENSE"
	SourceBanking    SourceKind = "BANKING"
	SourcePrepayment SourceKind = "PREPAYMENT"
	SourceCollection SourceKind = "COLLECTION"
)

// SourceKey identifies the operational transaction a derived entry came from.
// At most one journal entry may exist per key within a quarry.
type SourceKey struct {
	Kind SourceKind
	ID   string
}

// JournalEntry represents a single, balanced financial event composed of lines.
type JournalEntry struct {
	EntryID      string          `json:"entryID"`  // Primary Key (UUID)
	QuarryID     string          `json:"quarryID"` // Owning tenant
	EntryDate    time.Time       `json:"entryDate"`
	Reference    string          `json:"reference"` // {PREFIX}-{fiscalYear}-{5-digit-seq}
	Description  string          `json:"description"`
	EntryType    EntryType       `json:"entryType"`
	SourceType   *SourceKind     `json:"sourceType,omitempty"` // Set only on AUTO entries
	SourceID     *string         `json:"sourceID,omitempty"`
	FiscalYear   int             `json:"fiscalYear"`
	FiscalPeriod int             `json:"fiscalPeriod"` // Month number 1..12
	IsPosted     bool            `json:"isPosted"`
	PostedBy     string          `json:"postedBy,omitempty"`
	PostedAt     *time.Time      `json:"postedAt,omitempty"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	IsActive     bool            `json:"isActive"` // Soft-delete flag
	AuditFields

	// Lines are loaded separately for list views; populated on single-entry reads.
	Lines []JournalLine `json:"lines,omitempty"`
}

// SourceKeyOf returns the entry's source key, or false for manual entries.
func (e JournalEntry) SourceKeyOf() (SourceKey, bool) {
	if e.SourceType == nil || e.SourceID == nil {
		return SourceKey{}, false
	}
	return SourceKey{Kind: *e.SourceType, ID: *e.SourceID}, true
}

// JournalLine is a single debit or credit against one account within an entry.
// It is exclusively owned by its JournalEntry.
type JournalLine struct {
	LineID     string          `json:"lineID"`  // Primary Key (UUID)
	EntryID    string          `json:"entryID"` // FK -> JournalEntry
	AccountID  string          `json:"accountID"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Memo       string          `json:"memo"`
	LineNumber int             `json:"lineNumber"` // 1-based, entry-scoped
}
