package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService builds the seven financial statements from grouped
// aggregations and the source transaction tables.
type reportingService struct {
	BaseService
	accountRepo   portsrepo.AccountReader
	reportingRepo portsrepo.ReportingRepository
	sourceRepo    portsrepo.SourceReader
	settingsRepo  portsrepo.QuarrySettingsRepository

	// Balance sheet presentation thresholds: accounts with a numeric code at
	// or below the threshold report as current.
	currentAssetMaxCode     int
	currentLiabilityMaxCode int
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	accountRepo portsrepo.AccountReader,
	reportingRepo portsrepo.ReportingRepository,
	sourceRepo portsrepo.SourceReader,
	settingsRepo portsrepo.QuarrySettingsRepository,
	currentAssetMaxCode, currentLiabilityMaxCode int,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo:             accountRepo,
		reportingRepo:           reportingRepo,
		sourceRepo:              sourceRepo,
		settingsRepo:            settingsRepo,
		currentAssetMaxCode:     currentAssetMaxCode,
		currentLiabilityMaxCode: currentLiabilityMaxCode,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists every account with a non-zero balance, placed in the
// debit or credit column by the sign of its raw debit-minus-credit net.
func (s *reportingService) TrialBalance(ctx context.Context, quarryID string, asOf time.Time) (*domain.TrialBalanceReport, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, quarryID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate trial balance activity", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to aggregate trial balance activity: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:        asOf,
		Rows:        []domain.TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, a := range activity {
		net := a.Debit.Sub(a.Credit)
		if accounting.IsZero(net) {
			continue
		}
		row := domain.TrialBalanceRow{
			AccountID:   a.AccountID,
			Code:        a.Code,
			AccountName: a.Name,
			Category:    a.Category,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if net.IsPositive() {
			row.Debit = net
			report.TotalDebit = report.TotalDebit.Add(net)
		} else {
			row.Credit = net.Neg()
			report.TotalCredit = report.TotalCredit.Add(net.Neg())
		}
		report.Rows = append(report.Rows, row)
	}

	sort.Slice(report.Rows, func(i, j int) bool { return report.Rows[i].Code < report.Rows[j].Code })

	report.Difference = report.TotalDebit.Sub(report.TotalCredit)
	report.IsBalanced = accounting.IsZero(report.Difference)
	return report, nil
}

// plFigures holds one period's P&L activity keyed by account code.
type plFigures struct {
	revenue     map[string]domain.AccountActivity
	costOfSales map[string]domain.AccountActivity
	expenses    map[string]domain.AccountActivity
}

func (s *reportingService) loadPLFigures(ctx context.Context, quarryID string, from, to time.Time) (*plFigures, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate period activity: %w", err)
	}
	f := &plFigures{
		revenue:     map[string]domain.AccountActivity{},
		costOfSales: map[string]domain.AccountActivity{},
		expenses:    map[string]domain.AccountActivity{},
	}
	for _, a := range activity {
		switch a.Category {
		case domain.Revenue:
			f.revenue[a.Code] = a
		case domain.CostOfSales:
			f.costOfSales[a.Code] = a
		case domain.Expenses:
			f.expenses[a.Code] = a
		}
	}
	return f, nil
}

func netOf(a domain.AccountActivity) decimal.Decimal {
	return accounting.SignedBalance(a.Debit, a.Credit, a.IsDebitNormal)
}

// plSection renders one category's lines with percentage-of-revenue and, when
// a comparative set is supplied, the prior-period figure matched by code.
func plSection(current, comparative map[string]domain.AccountActivity, totalRevenue decimal.Decimal) ([]domain.ReportLine, decimal.Decimal) {
	lines := make([]domain.ReportLine, 0, len(current))
	total := decimal.Zero
	for code, a := range current {
		amount := netOf(a)
		line := domain.ReportLine{Code: code, Name: a.Name, Amount: amount}
		if totalRevenue.IsPositive() {
			line.PctOfRevenue = amount.Div(totalRevenue).Mul(oneHundred).Round(2)
		}
		if comparative != nil {
			prior := decimal.Zero
			if pa, ok := comparative[code]; ok {
				prior = netOf(pa)
			}
			line.ComparativeAmount = &prior
		}
		lines = append(lines, line)
		total = total.Add(amount)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Code < lines[j].Code })
	return lines, total
}

// ProfitAndLoss groups posted activity for the range by category, with an
// optional comparative covering the same span one year earlier.
func (s *reportingService) ProfitAndLoss(ctx context.Context, quarryID string, from, to time.Time, comparative bool) (*domain.ProfitAndLossReport, error) {
	figures, err := s.loadPLFigures(ctx, quarryID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build profit and loss", slog.String("quarry_id", quarryID))
		return nil, err
	}

	var prior *plFigures
	if comparative {
		prior, err = s.loadPLFigures(ctx, quarryID, from.AddDate(-1, 0, 0), to.AddDate(-1, 0, 0))
		if err != nil {
			s.LogError(ctx, err, "Failed to build comparative profit and loss", slog.String("quarry_id", quarryID))
			return nil, err
		}
	}

	totalRevenue := decimal.Zero
	for _, a := range figures.revenue {
		totalRevenue = totalRevenue.Add(netOf(a))
	}

	var priorRevenue, priorCOS, priorExpenses map[string]domain.AccountActivity
	if prior != nil {
		priorRevenue, priorCOS, priorExpenses = prior.revenue, prior.costOfSales, prior.expenses
	}

	report := &domain.ProfitAndLossReport{
		FromDate:       from,
		ToDate:         to,
		HasComparative: comparative,
	}
	report.Revenue, report.TotalRevenue = plSection(figures.revenue, priorRevenue, totalRevenue)
	report.CostOfSales, report.TotalCostOfSales = plSection(figures.costOfSales, priorCOS, totalRevenue)
	report.Expenses, report.TotalExpenses = plSection(figures.expenses, priorExpenses, totalRevenue)

	report.GrossProfit = report.TotalRevenue.Sub(report.TotalCostOfSales)
	report.OperatingProfit = report.GrossProfit.Sub(report.TotalExpenses)
	report.NetProfit = report.OperatingProfit
	return report, nil
}

// netProfitForRange computes the P&L bottom line over a range, used for the
// balance sheet's year-to-date earnings equity line.
func (s *reportingService) netProfitForRange(ctx context.Context, quarryID string, from, to time.Time) (decimal.Decimal, error) {
	figures, err := s.loadPLFigures(ctx, quarryID, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	net := decimal.Zero
	for _, a := range figures.revenue {
		net = net.Add(netOf(a))
	}
	for _, a := range figures.costOfSales {
		net = net.Sub(netOf(a))
	}
	for _, a := range figures.expenses {
		net = net.Sub(netOf(a))
	}
	return net, nil
}

// bsFigures holds per-code balances for one balance sheet date.
type bsFigures struct {
	balances map[string]decimal.Decimal // signed by normal balance, keyed by code
	accounts map[string]domain.AccountActivity
	earnings decimal.Decimal
}

func (s *reportingService) loadBSFigures(ctx context.Context, quarryID string, asOf time.Time) (*bsFigures, error) {
	activity, err := s.reportingRepo.GetAccountActivity(ctx, quarryID, time.Time{}, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate balance sheet activity: %w", err)
	}
	f := &bsFigures{
		balances: map[string]decimal.Decimal{},
		accounts: map[string]domain.AccountActivity{},
	}
	for _, a := range activity {
		f.balances[a.Code] = netOf(a)
		f.accounts[a.Code] = a
	}

	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	f.earnings, err = s.netProfitForRange(ctx, quarryID, yearStart, asOf)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// codeAtOrBelow reports whether a numeric account code is at or below the
// given threshold. Non-numeric codes classify as non-current.
func codeAtOrBelow(code string, threshold int) bool {
	n, err := strconv.Atoi(code)
	if err != nil {
		return false
	}
	return n <= threshold
}

func bsLine(a domain.AccountActivity, amount decimal.Decimal, prior *bsFigures) domain.ReportLine {
	line := domain.ReportLine{Code: a.Code, Name: a.Name, Amount: amount}
	if prior != nil {
		priorAmount := decimal.Zero
		if pb, ok := prior.balances[a.Code]; ok {
			priorAmount = pb
		}
		line.ComparativeAmount = &priorAmount
	}
	return line
}

// BalanceSheet partitions balances into the statement sections, splitting
// assets and liabilities into current and non-current by the configured code
// thresholds, and shows fiscal-year-to-date earnings as an equity line.
func (s *reportingService) BalanceSheet(ctx context.Context, quarryID string, asOf time.Time, comparative bool) (*domain.BalanceSheetReport, error) {
	figures, err := s.loadBSFigures(ctx, quarryID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to build balance sheet", slog.String("quarry_id", quarryID))
		return nil, err
	}

	var prior *bsFigures
	if comparative {
		prior, err = s.loadBSFigures(ctx, quarryID, asOf.AddDate(-1, 0, 0))
		if err != nil {
			s.LogError(ctx, err, "Failed to build comparative balance sheet", slog.String("quarry_id", quarryID))
			return nil, err
		}
	}

	report := &domain.BalanceSheetReport{
		AsOf:           asOf,
		HasComparative: comparative,
	}

	codes := make([]string, 0, len(figures.accounts))
	for code := range figures.accounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		a := figures.accounts[code]
		amount := figures.balances[code]
		if accounting.IsZero(amount) {
			continue
		}
		line := bsLine(a, amount, prior)
		switch a.Category {
		case domain.Assets:
			report.TotalAssets = report.TotalAssets.Add(amount)
			if codeAtOrBelow(code, s.currentAssetMaxCode) {
				report.CurrentAssets = append(report.CurrentAssets, line)
			} else {
				report.NonCurrentAssets = append(report.NonCurrentAssets, line)
			}
		case domain.Liabilities:
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
			if codeAtOrBelow(code, s.currentLiabilityMaxCode) {
				report.CurrentLiabilities = append(report.CurrentLiabilities, line)
			} else {
				report.NonCurrentLiabilities = append(report.NonCurrentLiabilities, line)
			}
		case domain.Equity:
			report.TotalEquity = report.TotalEquity.Add(amount)
			report.EquityLines = append(report.EquityLines, line)
		}
	}

	report.CurrentYearEarnings = figures.earnings
	report.TotalEquity = report.TotalEquity.Add(figures.earnings)
	report.IsBalanced = accounting.IsZero(
		report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity)))
	return report, nil
}

// CashFlow summarises cash movement over the range: opening cash balance the
// day before the range starts, inflows from paid sales, prepayments and late
// collections, outflows from expenses with a per-category breakdown. Cash
// banked is reported separately and does not enter the net change.
func (s *reportingService) CashFlow(ctx context.Context, quarryID string, from, to time.Time) (*domain.CashFlowReport, error) {
	cashAccount, err := s.accountRepo.FindAccountByCode(ctx, quarryID, domain.CodeCash)
	if err != nil {
		return nil, err
	}

	debit, credit, err := s.reportingRepo.GetAccountBalanceSums(ctx, quarryID, cashAccount.AccountID, from.AddDate(0, 0, -1))
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening cash balance", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to compute opening cash balance: %w", err)
	}
	opening := accounting.SignedBalance(debit, credit, cashAccount.IsDebitNormal)

	report := &domain.CashFlowReport{
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: opening,
	}

	sales, err := s.sourceRepo.ListSales(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	for _, sale := range sales {
		if sale.Status == domain.SalePaid && !sale.IsLateCollection() {
			report.SalesReceipts = report.SalesReceipts.Add(sale.GrossAmount())
		}
	}

	prepayments, err := s.sourceRepo.ListPrepayments(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list prepayments: %w", err)
	}
	for _, p := range prepayments {
		report.Prepayments = report.Prepayments.Add(p.TotalAmountPaid)
	}

	paidSales, err := s.sourceRepo.ListSalesPaidBetween(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid sales: %w", err)
	}
	for _, sale := range paidSales {
		if sale.IsLateCollection() {
			report.Collections = report.Collections.Add(sale.GrossAmount())
		}
	}

	expenses, err := s.sourceRepo.ListExpenses(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	byCategory := map[string]decimal.Decimal{}
	for _, e := range expenses {
		report.TotalOutflows = report.TotalOutflows.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, c := range categories {
		report.OutflowsByCategory = append(report.OutflowsByCategory, domain.CashFlowCategory{Category: c, Amount: byCategory[c]})
	}

	bankings, err := s.sourceRepo.ListBankings(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bankings: %w", err)
	}
	for _, b := range bankings {
		report.CashBanked = report.CashBanked.Add(b.AmountBanked)
	}

	report.TotalInflows = report.SalesReceipts.Add(report.Prepayments).Add(report.Collections)
	report.NetChange = report.TotalInflows.Sub(report.TotalOutflows)
	report.ClosingBalance = report.OpeningBalance.Add(report.NetChange)
	return report, nil
}

// agingBucketFor assigns an overdue day count to its bucket.
func agingBucketFor(buckets *domain.AgingBuckets, daysOverdue int, amount decimal.Decimal) {
	switch {
	case daysOverdue <= 0:
		buckets.Current = buckets.Current.Add(amount)
	case daysOverdue <= 30:
		buckets.Days1To30 = buckets.Days1To30.Add(amount)
	case daysOverdue <= 60:
		buckets.Days31To60 = buckets.Days31To60.Add(amount)
	case daysOverdue <= 90:
		buckets.Days61To90 = buckets.Days61To90.Add(amount)
	default:
		buckets.Over90 = buckets.Over90.Add(amount)
	}
}

// ARAging groups unpaid sales by customer key (vehicle registration) and
// buckets each invoice by how many days past its sale date it is.
func (s *reportingService) ARAging(ctx context.Context, quarryID string, asOf time.Time) (*domain.ARAgingReport, error) {
	unpaid, err := s.sourceRepo.ListUnpaidSales(ctx, quarryID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to list unpaid sales", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to list unpaid sales: %w", err)
	}

	type agg struct {
		buckets domain.AgingBuckets
		count   int
	}
	byCustomer := map[string]*agg{}
	report := &domain.ARAgingReport{AsOf: asOf, Rows: []domain.ARAgingRow{}}

	asOfDay := asOf.Truncate(24 * time.Hour)
	for _, sale := range unpaid {
		amount := sale.GrossAmount()
		if !amount.IsPositive() {
			continue
		}
		days := int(asOfDay.Sub(sale.SaleDate.Truncate(24*time.Hour)).Hours() / 24)
		a, ok := byCustomer[sale.VehicleReg]
		if !ok {
			a = &agg{}
			byCustomer[sale.VehicleReg] = a
		}
		agingBucketFor(&a.buckets, days, amount)
		agingBucketFor(&report.Total, days, amount)
		a.count++
	}

	for customer, a := range byCustomer {
		report.Rows = append(report.Rows, domain.ARAgingRow{
			CustomerKey:  customer,
			Buckets:      a.buckets,
			Total:        a.buckets.Total(),
			InvoiceCount: a.count,
		})
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		cmp := report.Rows[i].Total.Cmp(report.Rows[j].Total)
		if cmp != 0 {
			return cmp > 0
		}
		return report.Rows[i].CustomerKey < report.Rows[j].CustomerKey
	})
	return report, nil
}

// APSummary summarises accrued payables for the fiscal month containing the
// as-of date: broker commissions grouped by broker, plus loaders fee and
// land-rate fee totals from the quarry's configured rates.
func (s *reportingService) APSummary(ctx context.Context, quarryID string, asOf time.Time) (*domain.APSummaryReport, error) {
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)

	sales, err := s.sourceRepo.ListSales(ctx, quarryID, monthStart, monthEnd)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sales for payables summary", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	var settings domain.QuarrySettings
	if loaded, err := s.settingsRepo.GetSettings(ctx, quarryID); err == nil && loaded != nil {
		settings = *loaded
	}

	report := &domain.APSummaryReport{
		AsOf:              asOf,
		MonthStart:        monthStart,
		MonthEnd:          monthEnd,
		BrokerCommissions: []domain.BrokerCommission{},
	}

	type agg struct {
		amount decimal.Decimal
		count  int
	}
	byBroker := map[string]*agg{}
	for _, sale := range sales {
		if sale.BrokerName != "" && sale.CommissionPerUnit.IsPositive() {
			commission := sale.Quantity.Mul(sale.CommissionPerUnit)
			a, ok := byBroker[sale.BrokerName]
			if !ok {
				a = &agg{}
				byBroker[sale.BrokerName] = a
			}
			a.amount = a.amount.Add(commission)
			a.count++
			report.TotalCommissions = report.TotalCommissions.Add(commission)
		}

		if settings.LoadersFeeRate.IsPositive() {
			report.AccruedLoadersFees = report.AccruedLoadersFees.Add(sale.Quantity.Mul(settings.LoadersFeeRate))
		}
		rate := settings.LandRatePerUnit
		if sale.IsReject {
			rate = settings.RejectsFeePerUnit
		}
		if rate.IsPositive() {
			report.AccruedLandRateFees = report.AccruedLandRateFees.Add(sale.Quantity.Mul(rate))
		}
	}

	for broker, a := range byBroker {
		report.BrokerCommissions = append(report.BrokerCommissions, domain.BrokerCommission{
			BrokerName: broker,
			Amount:     a.amount,
			SaleCount:  a.count,
		})
	}
	sort.Slice(report.BrokerCommissions, func(i, j int) bool {
		cmp := report.BrokerCommissions[i].Amount.Cmp(report.BrokerCommissions[j].Amount)
		if cmp != 0 {
			return cmp > 0
		}
		return report.BrokerCommissions[i].BrokerName < report.BrokerCommissions[j].BrokerName
	})

	report.TotalPayables = report.TotalCommissions.Add(report.AccruedLoadersFees).Add(report.AccruedLandRateFees)
	return report, nil
}

// GeneralLedger lists one account's posted lines over the range with a
// running balance recomputed line by line from the opening balance.
func (s *reportingService) GeneralLedger(ctx context.Context, quarryID, accountID string, from, to time.Time) (*domain.GeneralLedgerReport, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, quarryID, accountID)
	if err != nil {
		return nil, err
	}

	debit, credit, err := s.reportingRepo.GetAccountBalanceSums(ctx, quarryID, accountID, from.AddDate(0, 0, -1))
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balance", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to compute opening balance: %w", err)
	}
	opening := accounting.SignedBalance(debit, credit, account.IsDebitNormal)

	lines, err := s.reportingRepo.GetLedgerLines(ctx, quarryID, accountID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger lines", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to load ledger lines: %w", err)
	}

	running := opening
	for i := range lines {
		running = running.Add(accounting.SignedBalance(lines[i].Debit, lines[i].Credit, account.IsDebitNormal))
		lines[i].RunningBalance = running
	}

	return &domain.GeneralLedgerReport{
		AccountID:      account.AccountID,
		Code:           account.Code,
		AccountName:    account.Name,
		FromDate:       from,
		ToDate:         to,
		OpeningBalance: opening,
		Lines:          lines,
		ClosingBalance: running,
	}, nil
}
