package dto

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

const reportDateLayout = "2006-01-02"

// TrialBalanceResponse is the API shape of a trial balance report.
type TrialBalanceResponse struct {
	AsOf        string                   `json:"asOf"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
	IsBalanced  bool                     `json:"isBalanced"`
	Difference  decimal.Decimal          `json:"difference"`
}

// ToTrialBalanceResponse converts a domain trial balance to its API shape.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	return TrialBalanceResponse{
		AsOf:        r.AsOf.Format(reportDateLayout),
		Rows:        r.Rows,
		TotalDebit:  r.TotalDebit,
		TotalCredit: r.TotalCredit,
		IsBalanced:  r.IsBalanced,
		Difference:  r.Difference,
	}
}

// ProfitAndLossResponse is the API shape of a P&L report.
type ProfitAndLossResponse struct {
	FromDate         string              `json:"fromDate"`
	ToDate           string              `json:"toDate"`
	Revenue          []domain.ReportLine `json:"revenue"`
	CostOfSales      []domain.ReportLine `json:"costOfSales"`
	Expenses         []domain.ReportLine `json:"expenses"`
	TotalRevenue     decimal.Decimal     `json:"totalRevenue"`
	TotalCostOfSales decimal.Decimal     `json:"totalCostOfSales"`
	TotalExpenses    decimal.Decimal     `json:"totalExpenses"`
	GrossProfit      decimal.Decimal     `json:"grossProfit"`
	OperatingProfit  decimal.Decimal     `json:"operatingProfit"`
	NetProfit        decimal.Decimal     `json:"netProfit"`
	HasComparative   bool                `json:"hasComparative"`
}

// ToProfitAndLossResponse converts a domain P&L report to its API shape.
func ToProfitAndLossResponse(r *domain.ProfitAndLossReport) ProfitAndLossResponse {
	return ProfitAndLossResponse{
		FromDate:         r.FromDate.Format(reportDateLayout),
		ToDate:           r.ToDate.Format(reportDateLayout),
		Revenue:          r.Revenue,
		CostOfSales:      r.CostOfSales,
		Expenses:         r.Expenses,
		TotalRevenue:     r.TotalRevenue,
		TotalCostOfSales: r.TotalCostOfSales,
		TotalExpenses:    r.TotalExpenses,
		GrossProfit:      r.GrossProfit,
		OperatingProfit:  r.OperatingProfit,
		NetProfit:        r.NetProfit,
		HasComparative:   r.HasComparative,
	}
}

// BalanceSheetResponse is the API shape of a balance sheet report.
type BalanceSheetResponse struct {
	AsOf                  string              `json:"asOf"`
	CurrentAssets         []domain.ReportLine `json:"currentAssets"`
	NonCurrentAssets      []domain.ReportLine `json:"nonCurrentAssets"`
	CurrentLiabilities    []domain.ReportLine `json:"currentLiabilities"`
	NonCurrentLiabilities []domain.ReportLine `json:"nonCurrentLiabilities"`
	Equity                []domain.ReportLine `json:"equity"`
	CurrentYearEarnings   decimal.Decimal     `json:"currentYearEarnings"`
	TotalAssets           decimal.Decimal     `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal     `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal     `json:"totalEquity"`
	IsBalanced            bool                `json:"isBalanced"`
	HasComparative        bool                `json:"hasComparative"`
}

// ToBalanceSheetResponse converts a domain balance sheet to its API shape.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:                  r.AsOf.Format(reportDateLayout),
		CurrentAssets:         r.CurrentAssets,
		NonCurrentAssets:      r.NonCurrentAssets,
		CurrentLiabilities:    r.CurrentLiabilities,
		NonCurrentLiabilities: r.NonCurrentLiabilities,
		Equity:                r.EquityLines,
		CurrentYearEarnings:   r.CurrentYearEarnings,
		TotalAssets:           r.TotalAssets,
		TotalLiabilities:      r.TotalLiabilities,
		TotalEquity:           r.TotalEquity,
		IsBalanced:            r.IsBalanced,
		HasComparative:        r.HasComparative,
	}
}

// CashFlowResponse is the API shape of a cash flow report.
type CashFlowResponse struct {
	FromDate           string                    `json:"fromDate"`
	ToDate             string                    `json:"toDate"`
	OpeningBalance     decimal.Decimal           `json:"openingBalance"`
	SalesReceipts      decimal.Decimal           `json:"salesReceipts"`
	Prepayments        decimal.Decimal           `json:"prepayments"`
	Collections        decimal.Decimal           `json:"collections"`
	TotalInflows       decimal.Decimal           `json:"totalInflows"`
	TotalOutflows      decimal.Decimal           `json:"totalOutflows"`
	OutflowsByCategory []domain.CashFlowCategory `json:"outflowsByCategory"`
	CashBanked         decimal.Decimal           `json:"cashBanked"`
	NetChange          decimal.Decimal           `json:"netChange"`
	ClosingBalance     decimal.Decimal           `json:"closingBalance"`
}

// ToCashFlowResponse converts a domain cash flow report to its API shape.
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	return CashFlowResponse{
		FromDate:           r.FromDate.Format(reportDateLayout),
		ToDate:             r.ToDate.Format(reportDateLayout),
		OpeningBalance:     r.OpeningBalance,
		SalesReceipts:      r.SalesReceipts,
		Prepayments:        r.Prepayments,
		Collections:        r.Collections,
		TotalInflows:       r.TotalInflows,
		TotalOutflows:      r.TotalOutflows,
		OutflowsByCategory: r.OutflowsByCategory,
		CashBanked:         r.CashBanked,
		NetChange:          r.NetChange,
		ClosingBalance:     r.ClosingBalance,
	}
}

// ARAgingResponse is the API shape of a receivables aging report.
type ARAgingResponse struct {
	AsOf  string              `json:"asOf"`
	Rows  []domain.ARAgingRow `json:"rows"`
	Total domain.AgingBuckets `json:"total"`
}

// ToARAgingResponse converts a domain AR aging report to its API shape.
func ToARAgingResponse(r *domain.ARAgingReport) ARAgingResponse {
	return ARAgingResponse{
		AsOf:  r.AsOf.Format(reportDateLayout),
		Rows:  r.Rows,
		Total: r.Total,
	}
}

// APSummaryResponse is the API shape of a payables summary report.
type APSummaryResponse struct {
	AsOf                string                    `json:"asOf"`
	MonthStart          string                    `json:"monthStart"`
	MonthEnd            string                    `json:"monthEnd"`
	BrokerCommissions   []domain.BrokerCommission `json:"brokerCommissions"`
	TotalCommissions    decimal.Decimal           `json:"totalCommissions"`
	AccruedLoadersFees  decimal.Decimal           `json:"accruedLoadersFees"`
	AccruedLandRateFees decimal.Decimal           `json:"accruedLandRateFees"`
	TotalPayables       decimal.Decimal           `json:"totalPayables"`
}

// ToAPSummaryResponse converts a domain AP summary to its API shape.
func ToAPSummaryResponse(r *domain.APSummaryReport) APSummaryResponse {
	return APSummaryResponse{
		AsOf:                r.AsOf.Format(reportDateLayout),
		MonthStart:          r.MonthStart.Format(reportDateLayout),
		MonthEnd:            r.MonthEnd.Format(reportDateLayout),
		BrokerCommissions:   r.BrokerCommissions,
		TotalCommissions:    r.TotalCommissions,
		AccruedLoadersFees:  r.AccruedLoadersFees,
		AccruedLandRateFees: r.AccruedLandRateFees,
		TotalPayables:       r.TotalPayables,
	}
}

// GeneralLedgerResponse is the API shape of a general ledger report.
type GeneralLedgerResponse struct {
	AccountID      string                     `json:"accountID"`
	Code           string                     `json:"code"`
	AccountName    string                     `json:"accountName"`
	FromDate       string                     `json:"fromDate"`
	ToDate         string                     `json:"toDate"`
	OpeningBalance decimal.Decimal            `json:"openingBalance"`
	Lines          []domain.GeneralLedgerLine `json:"lines"`
	ClosingBalance decimal.Decimal            `json:"closingBalance"`
}

// ToGeneralLedgerResponse converts a domain general ledger report to its API shape.
func ToGeneralLedgerResponse(r *domain.GeneralLedgerReport) GeneralLedgerResponse {
	return GeneralLedgerResponse{
		AccountID:      r.AccountID,
		Code:           r.Code,
		AccountName:    r.AccountName,
		FromDate:       r.FromDate.Format(reportDateLayout),
		ToDate:         r.ToDate.Format(reportDateLayout),
		OpeningBalance: r.OpeningBalance,
		Lines:          r.Lines,
		ClosingBalance: r.ClosingBalance,
	}
}

// BalancesResponse is the API shape of the all-balances calculator output.
type BalancesResponse struct {
	AsOf     string                  `json:"asOf"`
	Balances []domain.AccountBalance `json:"balances"`
}
