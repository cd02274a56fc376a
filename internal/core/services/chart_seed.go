package services

import "github.com/quarryworks/quarry_books_app/internal/core/domain"

// chartTemplate is one entry of the standard chart of accounts installed for
// every new quarry. All seeded accounts are system accounts.
type chartTemplate struct {
	Code         string
	Name         string
	Category     domain.AccountCategory
	DisplayOrder int
}

// standardChart is the default chart of accounts. The codes referenced by the
// auto-generation engine (cash, bank, receivables, deposits, accrued
// payables, revenue and the fee expense accounts) must all be present here.
var standardChart = []chartTemplate{
	{Code: domain.CodeCash, Name: "Cash", Category: domain.Assets, DisplayOrder: 10},
	{Code: domain.CodeBank, Name: "Bank", Category: domain.Assets, DisplayOrder: 20},
	{Code: domain.CodeAccountsReceivable, Name: "Accounts Receivable", Category: domain.Assets, DisplayOrder: 30},
	{Code: "1500", Name: "Plant & Equipment", Category: domain.Assets, DisplayOrder: 40},
	{Code: domain.CodeCustomerDeposits, Name: "Customer Deposits", Category: domain.Liabilities, DisplayOrder: 50},
	{Code: domain.CodeAccruedPayables, Name: "Accrued Payables", Category: domain.Liabilities, DisplayOrder: 60},
	{Code: "2500", Name: "Long-Term Loans", Category: domain.Liabilities, DisplayOrder: 70},
	{Code: "3000", Name: "Owner's Equity", Category: domain.Equity, DisplayOrder: 80},
	{Code: "3100", Name: "Retained Earnings", Category: domain.Equity, DisplayOrder: 90},
	{Code: domain.CodeSalesRevenue, Name: "Sales Revenue", Category: domain.Revenue, DisplayOrder: 100},
	{Code: "5000", Name: "Cost of Sales", Category: domain.CostOfSales, DisplayOrder: 110},
	{Code: "6000", Name: "General Expenses", Category: domain.Expenses, DisplayOrder: 120},
	{Code: domain.CodeCommissionExpense, Name: "Commission Expense", Category: domain.Expenses, DisplayOrder: 130},
	{Code: domain.CodeLoadersFeeExpense, Name: "Loaders Fee Expense", Category: domain.Expenses, DisplayOrder: 140},
	{Code: domain.CodeLandRateExpense, Name: "Land Rate Expense", Category: domain.Expenses, DisplayOrder: 150},
	{Code: "6400", Name: "Fuel Expense", Category: domain.Expenses, DisplayOrder: 160},
	{Code: "6500", Name: "Salaries & Wages", Category: domain.Expenses, DisplayOrder: 170},
	{Code: "6600", Name: "Repairs & Maintenance", Category: domain.Expenses, DisplayOrder: 180},
}
