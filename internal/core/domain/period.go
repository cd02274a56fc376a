package domain

import "time"

// AccountingPeriod is a lockable fiscal month within a fiscal year.
// Closing a period blocks unposting of entries dated inside it; posting
// backdated entries into a closed period remains allowed.
type AccountingPeriod struct {
	PeriodID     string     `json:"periodID"` // Primary Key (UUID)
	QuarryID     string     `json:"quarryID"`
	FiscalYear   int        `json:"fiscalYear"`
	PeriodNumber int        `json:"periodNumber"` // Month number 1..12
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	IsClosed     bool       `json:"isClosed"`
	ClosedBy     string     `json:"closedBy,omitempty"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosingNotes string     `json:"closingNotes,omitempty"`
	AuditFields
}

// Contains reports whether the given date falls within the period's range, inclusive.
func (p AccountingPeriod) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}
