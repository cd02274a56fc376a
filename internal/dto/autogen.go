package dto

import (
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleEvent is a completed sale pushed in by the sales module.
type SaleEvent struct {
	SaleID              string          `json:"saleID" binding:"required"`
	SaleDate            time.Time       `json:"saleDate" binding:"required"`
	VehicleReg          string          `json:"vehicleReg" binding:"required"`
	ProductName         string          `json:"productName" binding:"required"`
	IsReject            bool            `json:"isReject"`
	Quantity            decimal.Decimal `json:"quantity" binding:"required"`
	PricePerUnit        decimal.Decimal `json:"pricePerUnit" binding:"required"`
	CommissionPerUnit   decimal.Decimal `json:"commissionPerUnit"`
	BrokerName          string          `json:"brokerName"`
	Status              string          `json:"status" binding:"required,oneof=PAID NOT_PAID"`
	PaymentReceivedDate *time.Time      `json:"paymentReceivedDate"`
}

// ToDomainSale converts the event to a domain sale scoped to the quarry.
func (e SaleEvent) ToDomainSale(quarryID string) domain.Sale {
	return domain.Sale{
		SaleID:              e.SaleID,
		QuarryID:            quarryID,
		SaleDate:            e.SaleDate,
		VehicleReg:          e.VehicleReg,
		ProductName:         e.ProductName,
		IsReject:            e.IsReject,
		Quantity:            e.Quantity,
		PricePerUnit:        e.PricePerUnit,
		CommissionPerUnit:   e.CommissionPerUnit,
		BrokerName:          e.BrokerName,
		Status:              domain.SaleStatus(e.Status),
		PaymentReceivedDate: e.PaymentReceivedDate,
	}
}

// ExpenseEvent is a completed expense pushed in by the expenses module.
type ExpenseEvent struct {
	ExpenseID   string          `json:"expenseID" binding:"required"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// ToDomainExpense converts the event to a domain expense scoped to the quarry.
func (e ExpenseEvent) ToDomainExpense(quarryID string) domain.Expense {
	return domain.Expense{
		ExpenseID:   e.ExpenseID,
		QuarryID:    quarryID,
		ExpenseDate: e.ExpenseDate,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
	}
}

// BankingEvent is a completed bank deposit pushed in by the banking module.
type BankingEvent struct {
	BankingID    string          `json:"bankingID" binding:"required"`
	DepositDate  time.Time       `json:"depositDate" binding:"required"`
	AmountBanked decimal.Decimal `json:"amountBanked" binding:"required"`
	Reference    string          `json:"reference"`
}

// ToDomainBanking converts the event to a domain deposit scoped to the quarry.
func (e BankingEvent) ToDomainBanking(quarryID string) domain.BankingDeposit {
	return domain.BankingDeposit{
		BankingID:    e.BankingID,
		QuarryID:     quarryID,
		DepositDate:  e.DepositDate,
		AmountBanked: e.AmountBanked,
		Reference:    e.Reference,
	}
}

// PrepaymentEvent is a customer prepayment pushed in by the prepayment module.
type PrepaymentEvent struct {
	PrepaymentID    string          `json:"prepaymentID" binding:"required"`
	PaymentDate     time.Time       `json:"paymentDate" binding:"required"`
	CustomerName    string          `json:"customerName" binding:"required"`
	VehicleReg      string          `json:"vehicleReg"`
	TotalAmountPaid decimal.Decimal `json:"totalAmountPaid" binding:"required"`
}

// ToDomainPrepayment converts the event to a domain prepayment scoped to the quarry.
func (e PrepaymentEvent) ToDomainPrepayment(quarryID string) domain.Prepayment {
	return domain.Prepayment{
		PrepaymentID:    e.PrepaymentID,
		QuarryID:        quarryID,
		PaymentDate:     e.PaymentDate,
		CustomerName:    e.CustomerName,
		VehicleReg:      e.VehicleReg,
		TotalAmountPaid: e.TotalAmountPaid,
	}
}

// RegenerateRequest is the payload for a batch regeneration run.
type RegenerateRequest struct {
	FromDate time.Time `json:"fromDate" binding:"required"`
	ToDate   time.Time `json:"toDate" binding:"required"`
}

// RegenerationSummaryResponse is the API shape of a batch run's result.
type RegenerationSummaryResponse struct {
	SalesProcessed       int `json:"salesProcessed"`
	ExpensesProcessed    int `json:"expensesProcessed"`
	BankingsProcessed    int `json:"bankingsProcessed"`
	PrepaymentsProcessed int `json:"prepaymentsProcessed"`
	CollectionsProcessed int `json:"collectionsProcessed"`
	TotalProcessed       int `json:"totalProcessed"`
	Skipped              int `json:"skipped"`
	Failed               int `json:"failed"`
}

// ToRegenerationSummaryResponse converts a domain summary to its API shape.
func ToRegenerationSummaryResponse(s *domain.RegenerationSummary) RegenerationSummaryResponse {
	return RegenerationSummaryResponse{
		SalesProcessed:       s.SalesProcessed,
		ExpensesProcessed:    s.ExpensesProcessed,
		BankingsProcessed:    s.BankingsProcessed,
		PrepaymentsProcessed: s.PrepaymentsProcessed,
		CollectionsProcessed: s.CollectionsProcessed,
		TotalProcessed:       s.TotalProcessed(),
		Skipped:              s.Skipped,
		Failed:               s.Failed,
	}
}
