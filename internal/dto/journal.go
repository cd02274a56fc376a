package dto

import (
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a manual journal entry payload.
type JournalLineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// CreateJournalEntryRequest is the payload for a new manual entry.
type CreateJournalEntryRequest struct {
	EntryDate   time.Time            `json:"entryDate" binding:"required"`
	Description string               `json:"description" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest replaces an unposted manual entry's details and
// lines wholesale.
type UpdateJournalEntryRequest struct {
	EntryDate   *time.Time           `json:"entryDate"`
	Description *string              `json:"description"`
	Lines       []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ListEntriesParams narrows a journal entry listing.
type ListEntriesParams struct {
	FromDate  *time.Time
	ToDate    *time.Time
	EntryType *domain.EntryType
	Limit     int
	Offset    int
}

// JournalLineResponse is the API shape of a journal line.
type JournalLineResponse struct {
	LineID     string          `json:"lineID"`
	AccountID  string          `json:"accountID"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
	Memo       string          `json:"memo,omitempty"`
	LineNumber int             `json:"lineNumber"`
}

// JournalEntryResponse is the API shape of a journal entry.
type JournalEntryResponse struct {
	EntryID      string                `json:"entryID"`
	EntryDate    string                `json:"entryDate"`
	Reference    string                `json:"reference"`
	Description  string                `json:"description"`
	EntryType    string                `json:"entryType"`
	SourceType   *string               `json:"sourceType,omitempty"`
	SourceID     *string               `json:"sourceID,omitempty"`
	FiscalYear   int                   `json:"fiscalYear"`
	FiscalPeriod int                   `json:"fiscalPeriod"`
	IsPosted     bool                  `json:"isPosted"`
	TotalDebit   decimal.Decimal       `json:"totalDebit"`
	TotalCredit  decimal.Decimal       `json:"totalCredit"`
	Lines        []JournalLineResponse `json:"lines,omitempty"`
}

// ToJournalEntryResponse converts a domain entry (and any loaded lines) to
// its API shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:      e.EntryID,
		EntryDate:    e.EntryDate.Format("2006-01-02"),
		Reference:    e.Reference,
		Description:  e.Description,
		EntryType:    string(e.EntryType),
		SourceID:     e.SourceID,
		FiscalYear:   e.FiscalYear,
		FiscalPeriod: e.FiscalPeriod,
		IsPosted:     e.IsPosted,
		TotalDebit:   e.TotalDebit,
		TotalCredit:  e.TotalCredit,
	}
	if e.SourceType != nil {
		st := string(*e.SourceType)
		resp.SourceType = &st
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, line := range e.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:     line.LineID,
				AccountID:  line.AccountID,
				Debit:      line.Debit,
				Credit:     line.Credit,
				Memo:       line.Memo,
				LineNumber: line.LineNumber,
			}
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of domain entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	out := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		out[i] = ToJournalEntryResponse(&entries[i])
	}
	return out
}
