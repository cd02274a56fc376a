package dto

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
)

// CreateAccountRequest is the payload for adding an account to the chart.
type CreateAccountRequest struct {
	Code         string `json:"code" binding:"required,numeric"`
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description"`
	Category     string `json:"category" binding:"required,oneof=ASSETS LIABILITIES EQUITY REVENUE COST_OF_SALES EXPENSES"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdateAccountRequest is the payload for editing an account. Only name,
// description and display order are editable; nil fields are left unchanged.
type UpdateAccountRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
}

// AccountResponse is the API shape of a ledger account.
type AccountResponse struct {
	AccountID     string `json:"accountID"`
	Code          string `json:"code"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category"`
	IsDebitNormal bool   `json:"isDebitNormal"`
	IsSystem      bool   `json:"isSystem"`
	DisplayOrder  int    `json:"displayOrder"`
	IsActive      bool   `json:"isActive"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.LedgerAccount) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		Description:   a.Description,
		Category:      string(a.Category),
		IsDebitNormal: a.IsDebitNormal,
		IsSystem:      a.IsSystem,
		DisplayOrder:  a.DisplayOrder,
		IsActive:      a.IsActive,
	}
}

// ToAccountResponses converts a slice of domain accounts.
func ToAccountResponses(accounts []domain.LedgerAccount) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
