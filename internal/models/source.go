package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents one row of the sales table.
type Sale struct {
	SaleID              string          `db:"sale_id"`
	QuarryID            string          `db:"quarry_id"`
	SaleDate            time.Time       `db:"sale_date"`
	VehicleReg          string          `db:"vehicle_reg"`
	ProductName         string          `db:"product_name"`
	IsReject            bool            `db:"is_reject"`
	Quantity            decimal.Decimal `db:"quantity"`
	PricePerUnit        decimal.Decimal `db:"price_per_unit"`
	CommissionPerUnit   decimal.Decimal `db:"commission_per_unit"`
	BrokerName          string          `db:"broker_name"`
	Status              string          `db:"status"`
	PaymentReceivedDate *time.Time      `db:"payment_received_date"`
}

// Expense represents one row of the expenses table.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	QuarryID    string          `db:"quarry_id"`
	ExpenseDate time.Time       `db:"expense_date"`
	Category    string          `db:"category"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
}

// BankingDeposit represents one row of the bankings table.
type BankingDeposit struct {
	BankingID    string          `db:"banking_id"`
	QuarryID     string          `db:"quarry_id"`
	DepositDate  time.Time       `db:"deposit_date"`
	AmountBanked decimal.Decimal `db:"amount_banked"`
	Reference    string          `db:"reference"`
}

// Prepayment represents one row of the prepayments table.
type Prepayment struct {
	PrepaymentID    string          `db:"prepayment_id"`
	QuarryID        string          `db:"quarry_id"`
	PaymentDate     time.Time       `db:"payment_date"`
	CustomerName    string          `db:"customer_name"`
	VehicleReg      string          `db:"vehicle_reg"`
	TotalAmountPaid decimal.Decimal `db:"total_amount_paid"`
}

// QuarrySettings represents one row of the quarry_settings table.
type QuarrySettings struct {
	QuarryID          string          `db:"quarry_id"`
	LoadersFeeRate    decimal.Decimal `db:"loaders_fee_rate"`
	LandRatePerUnit   decimal.Decimal `db:"land_rate_per_unit"`
	RejectsFeePerUnit decimal.Decimal `db:"rejects_fee_per_unit"`
	AuditFields
}
