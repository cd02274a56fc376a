package dto

import "github.com/shopspring/decimal"

// ProvisionQuarryRequest is the payload for provisioning a new quarry's
// accounting state: the standard chart, one fiscal year of periods, fee
// settings and account code mappings.
type ProvisionQuarryRequest struct {
	FiscalYear              int               `json:"fiscalYear" binding:"required,min=2000,max=2100"`
	LoadersFeeRate          decimal.Decimal   `json:"loadersFeeRate"`
	LandRatePerUnit         decimal.Decimal   `json:"landRatePerUnit"`
	RejectsFeePerUnit       decimal.Decimal   `json:"rejectsFeePerUnit"`
	ProductRevenueMappings  map[string]string `json:"productRevenueMappings"`
	ExpenseCategoryMappings map[string]string `json:"expenseCategoryMappings"`
}

// ProvisionQuarryResponse summarises what provisioning installed.
type ProvisionQuarryResponse struct {
	AccountsSeeded int               `json:"accountsSeeded"`
	PeriodsSeeded  int               `json:"periodsSeeded"`
	Accounts       []AccountResponse `json:"accounts"`
	Periods        []PeriodResponse  `json:"periods"`
}
