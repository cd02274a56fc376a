package domain

// AccountCategory defines the fundamental accounting category of a ledger account.
type AccountCategory string

const (
	Assets      AccountCategory = "ASSETS"
	Liabilities AccountCategory = "LIABILITIES"
	Equity      AccountCategory = "EQUITY"
	Revenue     AccountCategory = "REVENUE"
	CostOfSales AccountCategory = "COST_OF_SALES"
	Expenses    AccountCategory = "EXPENSES"
)

// IsDebitNormal reports whether accounts of this category increase on the debit side.
func (c AccountCategory) IsDebitNormal() bool {
	switch c {
	case Assets, Expenses, CostOfSales:
		return true
	default:
		return false
	}
}

// IsValid reports whether the category is one of the known values.
func (c AccountCategory) IsValid() bool {
	switch c {
	case Assets, Liabilities, Equity, Revenue, CostOfSales, Expenses:
		return true
	}
	return false
}

// Well-known account codes used by the auto-generation engine. These are part of
// the standard chart seeded at quarry provisioning and marked as system accounts.
const (
	CodeCash               = "1000"
	CodeBank               = "1010"
	CodeAccountsReceivable = "1100"
	CodeCustomerDeposits   = "2100"
	CodeAccruedPayables    = "2200"
	CodeSalesRevenue       = "4000"
	CodeGeneralExpenses    = "6000"
	CodeCommissionExpense  = "6100"
	CodeLoadersFeeExpense  = "6200"
	CodeLandRateExpense    = "6300"
)

// LedgerAccount represents one account in a quarry's chart of accounts.
type LedgerAccount struct {
	AccountID     string          `json:"accountID"` // Primary Key (UUID)
	QuarryID      string          `json:"quarryID"`  // Owning tenant
	Code          string          `json:"code"`      // Numeric string, unique per quarry (e.g. "1000")
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      AccountCategory `json:"category"`
	IsDebitNormal bool            `json:"isDebitNormal"` // Derived from Category at creation
	IsSystem      bool            `json:"isSystem"`      // Seeded accounts; immutable beyond name/description
	DisplayOrder  int             `json:"displayOrder"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}
