package models

import "time"

// AccountingPeriod represents one row of the accounting_periods table.
type AccountingPeriod struct {
	PeriodID     string     `db:"period_id"`
	QuarryID     string     `db:"quarry_id"`
	FiscalYear   int        `db:"fiscal_year"`
	PeriodNumber int        `db:"period_number"`
	StartDate    time.Time  `db:"start_date"`
	EndDate      time.Time  `db:"end_date"`
	IsClosed     bool       `db:"is_closed"`
	ClosedBy     string     `db:"closed_by"`
	ClosedAt     *time.Time `db:"closed_at"`
	ClosingNotes string     `db:"closing_notes"`
	AuditFields
}
