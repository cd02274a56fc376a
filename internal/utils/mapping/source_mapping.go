package mapping

import (
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	"github.com/quarryworks/quarry_books_app/internal/models"
)

// ToDomainSale converts a model Sale to a domain Sale.
func ToDomainSale(m models.Sale) domain.Sale {
	return domain.Sale{
		SaleID:              m.SaleID,
		QuarryID:            m.QuarryID,
		SaleDate:            m.SaleDate,
		VehicleReg:          m.VehicleReg,
		ProductName:         m.ProductName,
		IsReject:            m.IsReject,
		Quantity:            m.Quantity,
		PricePerUnit:        m.PricePerUnit,
		CommissionPerUnit:   m.CommissionPerUnit,
		BrokerName:          m.BrokerName,
		Status:              domain.SaleStatus(m.Status),
		PaymentReceivedDate: m.PaymentReceivedDate,
	}
}

// ToDomainExpense converts a model Expense to a domain Expense.
func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		QuarryID:    m.QuarryID,
		ExpenseDate: m.ExpenseDate,
		Category:    m.Category,
		Description: m.Description,
		Amount:      m.Amount,
	}
}

// ToDomainBankingDeposit converts a model BankingDeposit to its domain form.
func ToDomainBankingDeposit(m models.BankingDeposit) domain.BankingDeposit {
	return domain.BankingDeposit{
		BankingID:    m.BankingID,
		QuarryID:     m.QuarryID,
		DepositDate:  m.DepositDate,
		AmountBanked: m.AmountBanked,
		Reference:    m.Reference,
	}
}

// ToDomainPrepayment converts a model Prepayment to a domain Prepayment.
func ToDomainPrepayment(m models.Prepayment) domain.Prepayment {
	return domain.Prepayment{
		PrepaymentID:    m.PrepaymentID,
		QuarryID:        m.QuarryID,
		PaymentDate:     m.PaymentDate,
		CustomerName:    m.CustomerName,
		VehicleReg:      m.VehicleReg,
		TotalAmountPaid: m.TotalAmountPaid,
	}
}

// ToModelQuarrySettings converts domain settings to their model form.
func ToModelQuarrySettings(d domain.QuarrySettings) models.QuarrySettings {
	return models.QuarrySettings{
		QuarryID:          d.QuarryID,
		LoadersFeeRate:    d.LoadersFeeRate,
		LandRatePerUnit:   d.LandRatePerUnit,
		RejectsFeePerUnit: d.RejectsFeePerUnit,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainQuarrySettings converts model settings to their domain form.
func ToDomainQuarrySettings(m models.QuarrySettings) domain.QuarrySettings {
	return domain.QuarrySettings{
		QuarryID:          m.QuarryID,
		LoadersFeeRate:    m.LoadersFeeRate,
		LandRatePerUnit:   m.LandRatePerUnit,
		RejectsFeePerUnit: m.RejectsFeePerUnit,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}
