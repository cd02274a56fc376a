package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account's row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	Category    AccountCategory `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport is the full trial balance as of a date.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	IsBalanced  bool              `json:"isBalanced"`
	Difference  decimal.Decimal   `json:"difference"`
}

// ReportLine is one account's contribution to a statement section, with an
// optional comparative figure from the equivalent prior period.
type ReportLine struct {
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	Amount            decimal.Decimal  `json:"amount"`
	PctOfRevenue      decimal.Decimal  `json:"pctOfRevenue,omitempty"`
	ComparativeAmount *decimal.Decimal `json:"comparativeAmount,omitempty"`
}

// ProfitAndLossReport groups posted activity for a period by category.
type ProfitAndLossReport struct {
	FromDate         time.Time       `json:"fromDate"`
	ToDate           time.Time       `json:"toDate"`
	Revenue          []ReportLine    `json:"revenue"`
	CostOfSales      []ReportLine    `json:"costOfSales"`
	Expenses         []ReportLine    `json:"expenses"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalCostOfSales decimal.Decimal `json:"totalCostOfSales"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	GrossProfit      decimal.Decimal `json:"grossProfit"`
	OperatingProfit  decimal.Decimal `json:"operatingProfit"`
	NetProfit        decimal.Decimal `json:"netProfit"`
	HasComparative   bool            `json:"hasComparative"`
}

// BalanceSheetReport partitions balances into the classic statement sections.
// Current vs non-current is decided by configured account-code thresholds.
type BalanceSheetReport struct {
	AsOf                  time.Time       `json:"asOf"`
	CurrentAssets         []ReportLine    `json:"currentAssets"`
	NonCurrentAssets      []ReportLine    `json:"nonCurrentAssets"`
	CurrentLiabilities    []ReportLine    `json:"currentLiabilities"`
	NonCurrentLiabilities []ReportLine    `json:"nonCurrentLiabilities"`
	EquityLines           []ReportLine    `json:"equity"`
	CurrentYearEarnings   decimal.Decimal `json:"currentYearEarnings"` // Fiscal-YTD P&L shown in equity
	TotalAssets           decimal.Decimal `json:"totalAssets"`
	TotalLiabilities      decimal.Decimal `json:"totalLiabilities"`
	TotalEquity           decimal.Decimal `json:"totalEquity"`
	IsBalanced            bool            `json:"isBalanced"`
	HasComparative        bool            `json:"hasComparative"`
}

// CashFlowCategory is an informational per-category outflow sub-line.
type CashFlowCategory struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CashFlowReport summarises cash movement over a period.
type CashFlowReport struct {
	FromDate           time.Time          `json:"fromDate"`
	ToDate             time.Time          `json:"toDate"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"`
	SalesReceipts      decimal.Decimal    `json:"salesReceipts"`
	Prepayments        decimal.Decimal    `json:"prepayments"`
	Collections        decimal.Decimal    `json:"collections"`
	TotalInflows       decimal.Decimal    `json:"totalInflows"`
	TotalOutflows      decimal.Decimal    `json:"totalOutflows"`
	OutflowsByCategory []CashFlowCategory `json:"outflowsByCategory"`
	CashBanked         decimal.Decimal    `json:"cashBanked"` // Informational; not part of the net change
	NetChange          decimal.Decimal    `json:"netChange"`
	ClosingBalance     decimal.Decimal    `json:"closingBalance"`
}

// AgingBuckets holds outstanding amounts by overdue day-count range.
type AgingBuckets struct {
	Current    decimal.Decimal `json:"current"`
	Days1To30  decimal.Decimal `json:"days1To30"`
	Days31To60 decimal.Decimal `json:"days31To60"`
	Days61To90 decimal.Decimal `json:"days61To90"`
	Over90     decimal.Decimal `json:"over90"`
}

// Total sums all buckets.
func (b AgingBuckets) Total() decimal.Decimal {
	return b.Current.Add(b.Days1To30).Add(b.Days31To60).Add(b.Days61To90).Add(b.Over90)
}

// ARAgingRow is one customer's (vehicle registration's) aged receivables.
type ARAgingRow struct {
	CustomerKey  string          `json:"customerKey"`
	Buckets      AgingBuckets    `json:"buckets"`
	Total        decimal.Decimal `json:"total"`
	InvoiceCount int             `json:"invoiceCount"`
}

// ARAgingReport buckets unpaid sales by how overdue they are.
type ARAgingReport struct {
	AsOf  time.Time    `json:"asOf"`
	Rows  []ARAgingRow `json:"rows"`
	Total AgingBuckets `json:"total"`
}

// BrokerCommission is one broker's accrued commission for the month.
type BrokerCommission struct {
	BrokerName string          `json:"brokerName"`
	Amount     decimal.Decimal `json:"amount"`
	SaleCount  int             `json:"saleCount"`
}

// APSummaryReport summarises accrued payables for the fiscal month
// containing the as-of date.
type APSummaryReport struct {
	AsOf                time.Time          `json:"asOf"`
	MonthStart          time.Time          `json:"monthStart"`
	MonthEnd            time.Time          `json:"monthEnd"`
	BrokerCommissions   []BrokerCommission `json:"brokerCommissions"`
	TotalCommissions    decimal.Decimal    `json:"totalCommissions"`
	AccruedLoadersFees  decimal.Decimal    `json:"accruedLoadersFees"`
	AccruedLandRateFees decimal.Decimal    `json:"accruedLandRateFees"`
	TotalPayables       decimal.Decimal    `json:"totalPayables"`
}

// GeneralLedgerLine is one posted line affecting an account, with the balance
// after applying it.
type GeneralLedgerLine struct {
	EntryDate      time.Time       `json:"entryDate"`
	Reference      string          `json:"reference"`
	Description    string          `json:"description"`
	Memo           string          `json:"memo,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// GeneralLedgerReport is one account's activity over a date range.
type GeneralLedgerReport struct {
	AccountID      string              `json:"accountID"`
	Code           string              `json:"code"`
	AccountName    string              `json:"accountName"`
	FromDate       time.Time           `json:"fromDate"`
	ToDate         time.Time           `json:"toDate"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Lines          []GeneralLedgerLine `json:"lines"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
}

// AccountActivity is the grouped debit/credit aggregation for one account,
// produced in a single query across the chart.
type AccountActivity struct {
	AccountID     string          `json:"accountID"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Category      AccountCategory `json:"category"`
	IsDebitNormal bool            `json:"isDebitNormal"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// AccountBalance pairs an account with its balance as of some date.
type AccountBalance struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Category  AccountCategory `json:"category"`
	Balance   decimal.Decimal `json:"balance"`
}

// RegenerationSummary reports per-kind processed counts from a batch run.
type RegenerationSummary struct {
	SalesProcessed       int `json:"salesProcessed"`
	ExpensesProcessed    int `json:"expensesProcessed"`
	BankingsProcessed    int `json:"bankingsProcessed"`
	PrepaymentsProcessed int `json:"prepaymentsProcessed"`
	CollectionsProcessed int `json:"collectionsProcessed"`
	Skipped              int `json:"skipped"` // Already generated or not applicable
	Failed               int `json:"failed"`  // Per-transaction construction failures
}

// TotalProcessed sums the per-kind processed counts.
func (s RegenerationSummary) TotalProcessed() int {
	return s.SalesProcessed + s.ExpensesProcessed + s.BankingsProcessed +
		s.PrepaymentsProcessed + s.CollectionsProcessed
}
