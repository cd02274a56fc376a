package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus indicates whether payment has been received for a sale.
type SaleStatus string

const (
	SalePaid    SaleStatus = "PAID"
	SaleNotPaid SaleStatus = "NOT_PAID"
)

// Sale is an operational sale record pushed into the accounting core by the
// sales module. The core never creates sales.
type Sale struct {
	SaleID              string          `json:"saleID"`
	QuarryID            string          `json:"quarryID"`
	SaleDate            time.Time       `json:"saleDate"`
	VehicleReg          string          `json:"vehicleReg"` // Customer key for receivables
	ProductName         string          `json:"productName"`
	IsReject            bool            `json:"isReject"` // Reject product lines attract the rejects fee instead of land rate
	Quantity            decimal.Decimal `json:"quantity"`
	PricePerUnit        decimal.Decimal `json:"pricePerUnit"`
	CommissionPerUnit   decimal.Decimal `json:"commissionPerUnit"`
	BrokerName          string          `json:"brokerName,omitempty"`
	Status              SaleStatus      `json:"status"`
	PaymentReceivedDate *time.Time      `json:"paymentReceivedDate,omitempty"`
}

// GrossAmount is the sale value before levies: quantity * price per unit.
func (s Sale) GrossAmount() decimal.Decimal {
	return s.Quantity.Mul(s.PricePerUnit)
}

// IsLateCollection reports whether the sale was paid on a later date than it
// was made, which is what triggers a derived collection entry.
func (s Sale) IsLateCollection() bool {
	if s.Status != SalePaid || s.PaymentReceivedDate == nil {
		return false
	}
	pd := s.PaymentReceivedDate.Truncate(24 * time.Hour)
	sd := s.SaleDate.Truncate(24 * time.Hour)
	return !pd.Equal(sd)
}

// Expense is an operational expense record.
type Expense struct {
	ExpenseID   string          `json:"expenseID"`
	QuarryID    string          `json:"quarryID"`
	ExpenseDate time.Time       `json:"expenseDate"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// BankingDeposit records cash moved from the cash box to the bank.
type BankingDeposit struct {
	BankingID    string          `json:"bankingID"`
	QuarryID     string          `json:"quarryID"`
	DepositDate  time.Time       `json:"depositDate"`
	AmountBanked decimal.Decimal `json:"amountBanked"`
	Reference    string          `json:"reference,omitempty"`
}

// Prepayment records money received from a customer ahead of delivery.
type Prepayment struct {
	PrepaymentID    string          `json:"prepaymentID"`
	QuarryID        string          `json:"quarryID"`
	PaymentDate     time.Time       `json:"paymentDate"`
	CustomerName    string          `json:"customerName"`
	VehicleReg      string          `json:"vehicleReg,omitempty"`
	TotalAmountPaid decimal.Decimal `json:"totalAmountPaid"`
}

// QuarrySettings carries the per-quarry fee configuration seeded at
// provisioning. A zero rate means the levy is not configured.
type QuarrySettings struct {
	QuarryID          string          `json:"quarryID"`
	LoadersFeeRate    decimal.Decimal `json:"loadersFeeRate"`
	LandRatePerUnit   decimal.Decimal `json:"landRatePerUnit"`
	RejectsFeePerUnit decimal.Decimal `json:"rejectsFeePerUnit"`
	AuditFields
}
