package dto

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// ClosePeriodRequest is the payload for closing a period.
type ClosePeriodRequest struct {
	Notes string `json:"notes"`
}

// ProvisionYearRequest is the payload for seeding a fiscal year's periods.
type ProvisionYearRequest struct {
	FiscalYear int `json:"fiscalYear" binding:"required,min=2000,max=2100"`
}

// PeriodResponse is the API shape of an accounting period.
type PeriodResponse struct {
	PeriodID     string `json:"periodID"`
	FiscalYear   int    `json:"fiscalYear"`
	PeriodNumber int    `json:"periodNumber"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsClosed     bool   `json:"isClosed"`
	ClosedBy     string `json:"closedBy,omitempty"`
	ClosingNotes string `json:"closingNotes,omitempty"`
}

// ToPeriodResponse converts a domain period to its API shape.
func ToPeriodResponse(p *domain.AccountingPeriod) PeriodResponse {
	return PeriodResponse{
		PeriodID:     p.PeriodID,
		FiscalYear:   p.FiscalYear,
		PeriodNumber: p.PeriodNumber,
		StartDate:    p.StartDate.Format("2006-01-02"),
		EndDate:      p.EndDate.Format("2006-01-02"),
		IsClosed:     p.IsClosed,
		ClosedBy:     p.ClosedBy,
		ClosingNotes: p.ClosingNotes,
	}
}

// ToPeriodResponses converts a slice of domain periods.
func ToPeriodResponses(periods []domain.AccountingPeriod) []PeriodResponse {
	out := make([]PeriodResponse, len(periods))
	for i := range periods {
		out[i] = ToPeriodResponse(&periods[i])
	}
	return out
}
